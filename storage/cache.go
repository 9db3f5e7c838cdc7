package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/coocood/freecache"
	"github.com/dustin/go-humanize"
	"github.com/janelia-flyem/dvidplane/dvid"
)

const (
	planeRegion byte = 'p'
	stackRegion byte = 's'
)

// RegionCache is a fixed-size cache of raw regions shared among any number of buffers.
type RegionCache struct {
	cache *freecache.Cache

	attempts uint64
	hits     uint64
}

// NewRegionCache returns a cache holding up to ~numBytes of regions.  freecache rejects
// entries larger than 1/1024 of the cache size; those regions are simply not cached.
func NewRegionCache(numBytes int) *RegionCache {
	dvid.Infof("Created freecache of ~ %s for pixel regions.\n", humanize.Bytes(uint64(numBytes)))
	return &RegionCache{cache: freecache.NewCache(numBytes)}
}

// Wrap returns a buffer that serves regions of src through the cache.  The id must be
// unique among buffers sharing the cache.
func (rc *RegionCache) Wrap(id string, src PixelBuffer) *CachedBuffer {
	return &CachedBuffer{rc: rc, id: []byte(id), src: src}
}

// Stats returns the # of lookups and hits since creation.
func (rc *RegionCache) Stats() (attempts, hits uint64) {
	return atomic.LoadUint64(&rc.attempts), atomic.LoadUint64(&rc.hits)
}

// Clear empties the cache.
func (rc *RegionCache) Clear() {
	rc.cache.Clear()
}

// CachedBuffer fulfills PixelBuffer by checking a RegionCache before its source.
// Regions returned from the cache are copies owned by the caller.
type CachedBuffer struct {
	rc  *RegionCache
	id  []byte
	src PixelBuffer
}

func (cb *CachedBuffer) key(kind byte, z, c, t int32) []byte {
	k := make([]byte, len(cb.id)+1+12)
	n := copy(k, cb.id)
	k[n] = kind
	binary.BigEndian.PutUint32(k[n+1:n+5], uint32(z))
	binary.BigEndian.PutUint32(k[n+5:n+9], uint32(c))
	binary.BigEndian.PutUint32(k[n+9:n+13], uint32(t))
	return k
}

func (cb *CachedBuffer) get(ctx context.Context, kind byte, z, c, t int32, fetch func() ([]byte, error)) ([]byte, error) {
	atomic.AddUint64(&cb.rc.attempts, 1)
	k := cb.key(kind, z, c, t)
	data, err := cb.rc.cache.Get(k)
	if err == nil {
		atomic.AddUint64(&cb.rc.hits, 1)
		return data, nil
	}
	if err != freecache.ErrNotFound {
		return nil, err
	}
	if data, err = fetch(); err != nil {
		return nil, err
	}
	if err := cb.rc.cache.Set(k, data, 0); err != nil {
		dvid.Debugf("Not caching %s region of %s: %v\n", humanize.Bytes(uint64(len(data))), cb.id, err)
	}
	return data, nil
}

// GetPlane returns the XY plane at (z, c, t), from cache if possible.
func (cb *CachedBuffer) GetPlane(ctx context.Context, z, c, t int32) ([]byte, error) {
	return cb.get(ctx, planeRegion, z, c, t, func() ([]byte, error) {
		return cb.src.GetPlane(ctx, z, c, t)
	})
}

// GetStack returns the Z-stack at (c, t), from cache if possible.
func (cb *CachedBuffer) GetStack(ctx context.Context, c, t int32) ([]byte, error) {
	return cb.get(ctx, stackRegion, 0, c, t, func() ([]byte, error) {
		return cb.src.GetStack(ctx, c, t)
	})
}

// PixelSet delegates to the source if it can describe its pixel set.
func (cb *CachedBuffer) PixelSet(ctx context.Context) (*dvid.PixelSet, error) {
	mp, ok := cb.src.(MetadataProvider)
	if !ok {
		return nil, fmt.Errorf("cached buffer %q has no metadata provider", cb.id)
	}
	return mp.PixelSet(ctx)
}
