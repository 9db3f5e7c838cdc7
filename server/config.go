package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/janelia-flyem/dvidplane/datatype/pixels"
	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/storage/badger"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultStorePath is the badger directory used when none is configured.
	DefaultStorePath = "dvidplane-db"

	// DefaultCacheSize is the region cache size in MB.
	DefaultCacheSize = 256
)

// Config is the configuration of a Service, read from a TOML or YAML file.
type Config struct {
	Logging dvid.LogConfig `toml:"logging" yaml:"logging"`
	Pixels  pixelsConfig   `toml:"pixels" yaml:"pixels"`
	Store   badger.Config  `toml:"store" yaml:"store"`
	Cache   cacheConfig    `toml:"cache" yaml:"cache"`

	// location of the file the configuration was loaded from, if any.
	location string
}

type pixelsConfig struct {
	// ByteOrder for pixel sets that don't declare one: "big" or "little".
	ByteOrder   string `toml:"byteorder" yaml:"byteorder"`
	CopyRegions bool   `toml:"copy_regions" yaml:"copy_regions"`
}

type cacheConfig struct {
	// Size in MB of the region cache.  Zero disables caching.
	Size int `toml:"size" yaml:"size"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Pixels: pixelsConfig{ByteOrder: "big"},
		Store:  badger.Config{Path: DefaultStorePath},
		Cache:  cacheConfig{Size: DefaultCacheSize},
	}
}

// LoadConfig reads configuration from a TOML file, or a YAML file if the name ends in
// .yaml or .yml.  Settings missing from the file keep their defaults.  An empty filename
// returns the defaults.
func LoadConfig(filename string) (*Config, error) {
	c := DefaultConfig()
	if filename == "" {
		return c, nil
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("could not decode YAML config: %v", err)
		}
	default:
		if _, err := toml.DecodeFile(filename, c); err != nil {
			return nil, fmt.Errorf("could not decode TOML config: %v", err)
		}
	}
	c.location = filename
	if err := c.convertPathsToAbsolute(filename); err != nil {
		return nil, fmt.Errorf("could not convert relative paths to absolute paths in config: %v", err)
	}
	if _, err := c.ExtractorConfig(); err != nil {
		return nil, err
	}
	dvid.Debugf("Loaded config from %s: %+v\n", filename, *c)
	return c, nil
}

// Some settings can be given as relative paths.  This function converts them in-place
// to absolute paths, assuming the given paths were relative to the config file's own
// directory.
func (c *Config) convertPathsToAbsolute(configPath string) error {
	var err error

	configDir := filepath.Dir(configPath)

	// [logging].logfile
	if c.Logging.Logfile != "" {
		c.Logging.Logfile, err = dvid.ConvertToAbsolute(c.Logging.Logfile, configDir)
		if err != nil {
			return fmt.Errorf("error converting logfile setting to absolute path")
		}
	}

	// [store].path
	if c.Store.Path != "" && !c.Store.InMemory {
		c.Store.Path, err = dvid.ConvertToAbsolute(c.Store.Path, configDir)
		if err != nil {
			return fmt.Errorf("error converting store path %q to absolute path", c.Store.Path)
		}
	}
	return nil
}

// Location returns the file the configuration was loaded from or "" for defaults.
func (c *Config) Location() string {
	return c.location
}

// ExtractorConfig returns the plane extraction conventions.
func (c *Config) ExtractorConfig() (pixels.ExtractorConfig, error) {
	order, err := dvid.ParseEndianness(c.Pixels.ByteOrder)
	if err != nil {
		return pixels.ExtractorConfig{}, fmt.Errorf("bad [pixels] byteorder: %v", err)
	}
	return pixels.ExtractorConfig{Endianness: order, CopyRegions: c.Pixels.CopyRegions}, nil
}

// CacheBytes returns the region cache size in bytes.
func (c *Config) CacheBytes() int {
	return c.Cache.Size * dvid.Mega
}
