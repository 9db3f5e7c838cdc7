/*
Package badger persists pixel sets in a BadgerDB key-value store.  Each pixel set has a
msgpack metadata record and one snappy-compressed, checksummed value per XY plane.
*/
package badger

import (
	"fmt"
	"os"
	"time"

	"github.com/blang/semver"
	"github.com/dgraph-io/badger/v3"
	"github.com/janelia-flyem/dvidplane/dvid"
)

// FormatVersion is the version of the key and value layout written by this package.
// Stores with a different major version are refused.
var FormatVersion = semver.MustParse("0.1.0")

const (
	// DefaultValueThreshold is the size of values in bytes that if exceeded get stored in
	// value log instead of the LSM tree.
	DefaultValueThreshold = 1 * dvid.Kilo

	// DefaultSyncInterval is how often an on-disk store is synced.
	DefaultSyncInterval = 30 * time.Second
)

// Config specifies how to open a store.
type Config struct {
	// Path of the database directory.  Ignored if InMemory is set.
	Path string `toml:"path" yaml:"path"`

	// InMemory keeps the whole store in memory, e.g., for testing.
	InMemory bool `toml:"in_memory" yaml:"in_memory"`

	ReadOnly   bool `toml:"read_only" yaml:"read_only"`
	SyncWrites bool `toml:"sync_writes" yaml:"sync_writes"`

	// ValueThreshold, if non-zero, overrides DefaultValueThreshold.
	ValueThreshold int64 `toml:"value_threshold" yaml:"value_threshold"`
}

func (c Config) options() (badger.Options, error) {
	var opts badger.Options
	if c.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if c.Path == "" {
			return opts, fmt.Errorf("%q must be specified for BadgerDB configuration", "path")
		}
		opts = badger.DefaultOptions(c.Path).WithReadOnly(c.ReadOnly)
	}
	threshold := c.ValueThreshold
	if threshold == 0 {
		threshold = DefaultValueThreshold
	}
	opts = opts.WithValueThreshold(threshold).
		WithSyncWrites(c.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{})
	return opts, nil
}

// Store is a BadgerDB-backed pixel set store.  It is safe for concurrent use.
type Store struct {
	config Config
	db     *badger.DB

	// stopSyncCh is used to signal the sync goroutine to stop.
	stopSyncCh chan struct{}
	syncDone   chan struct{}
}

// Open returns a store, creating the database if it doesn't exist.
func Open(config Config) (*Store, error) {
	opts, err := config.options()
	if err != nil {
		return nil, err
	}
	if !config.InMemory {
		if _, err := os.Stat(config.Path); os.IsNotExist(err) {
			if config.ReadOnly {
				return nil, fmt.Errorf("no badger store at %s to open read-only", config.Path)
			}
			dvid.Infof("Database not already at path (%s). Creating directory...\n", config.Path)
			if err := os.MkdirAll(config.Path, 0744); err != nil {
				return nil, fmt.Errorf("can't make directory at %s: %v", config.Path, err)
			}
		}
	}
	timedLog := dvid.NewTimeLog()
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	s := &Store{config: config, db: db}
	if err := s.checkVersion(); err != nil {
		db.Close()
		return nil, err
	}
	if !config.InMemory && !config.ReadOnly {
		s.stopSyncCh = make(chan struct{})
		s.syncDone = make(chan struct{})
		go s.syncPeriodically(DefaultSyncInterval)
	}
	timedLog.Infof("Opened %s", s)
	return s, nil
}

// Periodically sync to prevent too many writes from being buffered
// if the process crashes.
func (s *Store) syncPeriodically(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(s.syncDone)
	for {
		select {
		case <-s.stopSyncCh:
			return
		case <-ticker.C:
			if err := s.db.Sync(); err != nil {
				dvid.Errorf("Unable to sync %s: %v\n", s, err)
			}
		}
	}
}

// checkVersion writes the format version to a new store or verifies the version of an
// existing one.
func (s *Store) checkVersion() error {
	var stored []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey())
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		stored, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return err
	}
	if stored == nil {
		if s.config.ReadOnly {
			return fmt.Errorf("%s has no format version", s)
		}
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Set(versionKey(), []byte(FormatVersion.String()))
		})
	}
	ver, err := semver.Parse(string(stored))
	if err != nil {
		return fmt.Errorf("bad format version %q in %s: %v", string(stored), s, err)
	}
	if ver.Major != FormatVersion.Major {
		return fmt.Errorf("%s has format version %s, incompatible with %s", s, ver, FormatVersion)
	}
	if ver.GT(FormatVersion) {
		dvid.Warningf("%s has newer format version %s than %s\n", s, ver, FormatVersion)
	}
	return nil
}

// Version returns the format version recorded in the store.
func (s *Store) Version() (semver.Version, error) {
	var ver semver.Version
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey())
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			ver, err = semver.Parse(string(val))
			return err
		})
	})
	return ver, err
}

// Close stops background syncing and closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.stopSyncCh != nil {
		close(s.stopSyncCh)
		<-s.syncDone
	}
	err := s.db.Close()
	s.db = nil
	dvid.Infof("Closed %s\n", s)
	return err
}

func (s *Store) String() string {
	if s.config.InMemory {
		return "in-memory badger"
	}
	return fmt.Sprintf("badger @ %s", s.config.Path)
}

// badgerLogger routes badger's logging through the dvid logger.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{})   { dvid.Errorf(format, args...) }
func (badgerLogger) Warningf(format string, args ...interface{}) { dvid.Warningf(format, args...) }
func (badgerLogger) Infof(format string, args ...interface{})    { dvid.Debugf(format, args...) }
func (badgerLogger) Debugf(format string, args ...interface{})   { dvid.Debugf(format, args...) }
