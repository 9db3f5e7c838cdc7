package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/storage"
)

// ErrPixelSetNotFound is returned for ids without stored metadata.
var ErrPixelSetNotFound = errors.New("pixel set not found")

// PutPixelSet stores the metadata of a pixel set under a new id.  Planes are added
// with PutPlane or by copying through the returned buffer.
func (s *Store) PutPixelSet(ctx context.Context, name string, set *dvid.PixelSet) (string, error) {
	id := NewID()
	if err := s.putRecord(newPixelSetRecord(id, name, set)); err != nil {
		return "", err
	}
	return id, nil
}

// UpdatePixelSet replaces the metadata of an existing pixel set, e.g., to record channel
// statistics.  The dimensions, pixel type, and byte order of the stored planes can't change.
func (s *Store) UpdatePixelSet(ctx context.Context, id string, set *dvid.PixelSet) error {
	rec, err := s.getRecord(id)
	if err != nil {
		return err
	}
	old := rec.pixelSet()
	if old.SizeX != set.SizeX || old.SizeY != set.SizeY || old.SizeZ != set.SizeZ ||
		old.SizeC != set.SizeC || old.SizeT != set.SizeT || old.PixelType != set.PixelType {
		return fmt.Errorf("can't change layout of pixel set %s from %s to %s", id, old, set)
	}
	if old.Endianness != set.Endianness {
		return fmt.Errorf("can't change byte order of pixel set %s from %s to %s", id, old.Endianness, set.Endianness)
	}
	updated := newPixelSetRecord(id, rec.Name, set)
	updated.Created = rec.Created
	return s.putRecord(updated)
}

func (s *Store) putRecord(rec *pixelSetRecord) error {
	set := rec.pixelSet()
	if err := set.Validate(); err != nil {
		return err
	}
	if _, err := set.PlaneBytes(); err != nil {
		return err
	}
	if err := checkID(rec.ID); err != nil {
		return err
	}
	b, err := rec.MarshalMsg(nil)
	if err != nil {
		return err
	}
	value, err := dvid.SerializeData(b, dvid.Uncompressed, dvid.CRC32)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pixelSetKey(rec.ID), value)
	})
}

func (s *Store) getRecord(id string) (*pixelSetRecord, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pixelSetKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrPixelSetNotFound, id)
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(value)
}

func decodeRecord(value []byte) (*pixelSetRecord, error) {
	b, _, err := dvid.DeserializeData(value)
	if err != nil {
		return nil, err
	}
	rec := new(pixelSetRecord)
	if _, err := rec.UnmarshalMsg(b); err != nil {
		return nil, err
	}
	return rec, nil
}

// PixelSet returns the stored metadata of a pixel set.
func (s *Store) PixelSet(ctx context.Context, id string) (*dvid.PixelSet, error) {
	rec, err := s.getRecord(id)
	if err != nil {
		return nil, err
	}
	return rec.pixelSet(), nil
}

// List returns every stored pixel set in id order.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	var infos []Info
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte{pixelSetKeyPrefix}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			rec, err := decodeRecord(value)
			if err != nil {
				return fmt.Errorf("bad record at key %x: %v", it.Item().Key(), err)
			}
			infos = append(infos, rec.info())
		}
		return nil
	})
	return infos, err
}

// Delete removes a pixel set and all of its planes.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.getRecord(id); err != nil {
		return err
	}
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // key only
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := planePrefix(id)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}
	keys = append(keys, pixelSetKey(id))
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}
	dvid.Infof("Deleted pixel set %s and %d planes from %s\n", id, len(keys)-1, s)
	return nil
}

// PutPlane stores the XY plane at (z, c, t) of a pixel set.
func (s *Store) PutPlane(ctx context.Context, id string, z, c, t int32, data []byte) error {
	set, err := s.PixelSet(ctx, id)
	if err != nil {
		return err
	}
	return s.putPlane(set, id, z, c, t, data)
}

func (s *Store) putPlane(set *dvid.PixelSet, id string, z, c, t int32, data []byte) error {
	if err := checkPlane(set, z, c, t); err != nil {
		return err
	}
	planeBytes, err := set.PlaneBytes()
	if err != nil {
		return err
	}
	if len(data) != planeBytes {
		return &dvid.DimensionError{What: fmt.Sprintf("plane (%d,%d,%d)", z, c, t), Expected: planeBytes, Got: len(data)}
	}
	value, err := dvid.SerializeData(data, dvid.Snappy, dvid.CRC32)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(planeKey(id, z, c, t), value)
	})
}

func checkPlane(set *dvid.PixelSet, z, c, t int32) error {
	if err := dvid.CheckCoordinate("z", z, set.SizeZ); err != nil {
		return err
	}
	if err := dvid.CheckCoordinate("c", c, set.SizeC); err != nil {
		return err
	}
	return dvid.CheckCoordinate("t", t, set.SizeT)
}

func getPlane(txn *badger.Txn, id string, z, c, t int32) ([]byte, error) {
	item, err := txn.Get(planeKey(id, z, c, t))
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("no plane (%d,%d,%d) stored for pixel set %s", z, c, t, id)
	}
	if err != nil {
		return nil, err
	}
	var data []byte
	err = item.Value(func(val []byte) error {
		decoded, compress, err := dvid.DeserializeData(val)
		if err != nil {
			return err
		}
		if compress == dvid.Uncompressed {
			// val is only valid within the transaction
			decoded = append([]byte(nil), decoded...)
		}
		data = decoded
		return nil
	})
	return data, err
}

// Buffer returns a storage backend for one stored pixel set.
func (s *Store) Buffer(ctx context.Context, id string) (*Buffer, error) {
	set, err := s.PixelSet(ctx, id)
	if err != nil {
		return nil, err
	}
	planeBytes, err := set.PlaneBytes()
	if err != nil {
		return nil, err
	}
	return &Buffer{store: s, id: id, set: set, planeBytes: planeBytes}, nil
}

// Buffer serves the planes of one stored pixel set.  Regions are decoded copies owned by
// the caller.  It fulfills storage.PixelSource and storage.PlaneWriter.
type Buffer struct {
	store      *Store
	id         string
	set        *dvid.PixelSet
	planeBytes int
}

var (
	_ storage.PixelSource = (*Buffer)(nil)
	_ storage.PlaneWriter = (*Buffer)(nil)
)

// ID returns the id of the pixel set.
func (b *Buffer) ID() string {
	return b.id
}

// PixelSet returns the metadata of the pixel set as it was when the buffer was made.
func (b *Buffer) PixelSet(ctx context.Context) (*dvid.PixelSet, error) {
	return b.set.Duplicate(), nil
}

// GetPlane returns the XY plane at (z, c, t).
func (b *Buffer) GetPlane(ctx context.Context, z, c, t int32) ([]byte, error) {
	if err := checkPlane(b.set, z, c, t); err != nil {
		return nil, err
	}
	var data []byte
	err := b.store.db.View(func(txn *badger.Txn) error {
		var err error
		data, err = getPlane(txn, b.id, z, c, t)
		return err
	})
	return data, err
}

// GetStack assembles the Z-stack at (c, t) from its XY planes in one read transaction.
func (b *Buffer) GetStack(ctx context.Context, c, t int32) ([]byte, error) {
	if err := checkPlane(b.set, 0, c, t); err != nil {
		return nil, err
	}
	stack := make([]byte, 0, b.planeBytes*int(b.set.SizeZ))
	err := b.store.db.View(func(txn *badger.Txn) error {
		for z := int32(0); z < b.set.SizeZ; z++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := getPlane(txn, b.id, z, c, t)
			if err != nil {
				return err
			}
			if len(data) != b.planeBytes {
				return &dvid.DimensionError{What: fmt.Sprintf("stored plane (%d,%d,%d)", z, c, t), Expected: b.planeBytes, Got: len(data)}
			}
			stack = append(stack, data...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stack, nil
}

// PutPlane stores the XY plane at (z, c, t).
func (b *Buffer) PutPlane(ctx context.Context, z, c, t int32, data []byte) error {
	return b.store.putPlane(b.set, b.id, z, c, t, data)
}
