package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/DmitriyVTitov/size"
	"github.com/janelia-flyem/dvidplane/dvid"
)

// MemoryBuffer holds a whole 5d pixel array in memory, laid out X fastest, then Y, Z, C, T.
// It fulfills PixelSource and PlaneWriter.
type MemoryBuffer struct {
	set *dvid.PixelSet

	planeBytes int
	stackBytes int

	mu   sync.RWMutex
	data []byte
}

// NewMemoryBuffer returns a buffer for the pixel set.  If data is nil, a zeroed array is
// allocated; otherwise data must hold exactly sizeC*sizeT stacks and is used directly.
func NewMemoryBuffer(set *dvid.PixelSet, data []byte) (*MemoryBuffer, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	stackBytes, err := set.StackBytes()
	if err != nil {
		return nil, err
	}
	planeBytes, _ := set.PlaneBytes()
	total := stackBytes * int(set.SizeC) * int(set.SizeT)
	if data == nil {
		data = make([]byte, total)
	} else if len(data) != total {
		return nil, &dvid.DimensionError{What: "memory buffer", Expected: total, Got: len(data)}
	}
	return &MemoryBuffer{
		set:        set.Duplicate(),
		planeBytes: planeBytes,
		stackBytes: stackBytes,
		data:       data,
	}, nil
}

func (m *MemoryBuffer) stackOffset(c, t int32) int {
	return (int(t)*int(m.set.SizeC) + int(c)) * m.stackBytes
}

// PixelSet returns a copy of the described pixel set.
func (m *MemoryBuffer) PixelSet(ctx context.Context) (*dvid.PixelSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.Duplicate(), nil
}

// SetChannelStats replaces the statistics for channel c.
func (m *MemoryBuffer) SetChannelStats(c int32, stats dvid.ChannelStats) error {
	if err := dvid.CheckCoordinate("c", c, m.set.SizeC); err != nil {
		return err
	}
	m.mu.Lock()
	m.set.Channels[c] = stats
	m.mu.Unlock()
	return nil
}

// GetPlane returns a view into the buffer for the XY plane at (z, c, t).
func (m *MemoryBuffer) GetPlane(ctx context.Context, z, c, t int32) ([]byte, error) {
	if err := checkPlaneCoord(m.set, z, c, t); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	beg := m.stackOffset(c, t) + int(z)*m.planeBytes
	return m.data[beg : beg+m.planeBytes : beg+m.planeBytes], nil
}

// GetStack returns a view into the buffer for the Z-stack at (c, t).
func (m *MemoryBuffer) GetStack(ctx context.Context, c, t int32) ([]byte, error) {
	if err := checkStackCoord(m.set, c, t); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	beg := m.stackOffset(c, t)
	return m.data[beg : beg+m.stackBytes : beg+m.stackBytes], nil
}

// PutPlane copies an XY plane into the buffer.
func (m *MemoryBuffer) PutPlane(ctx context.Context, z, c, t int32, data []byte) error {
	if err := checkPlaneCoord(m.set, z, c, t); err != nil {
		return err
	}
	if len(data) != m.planeBytes {
		return &dvid.DimensionError{What: fmt.Sprintf("plane (%d,%d,%d)", z, c, t), Expected: m.planeBytes, Got: len(data)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	beg := m.stackOffset(c, t) + int(z)*m.planeBytes
	copy(m.data[beg:beg+m.planeBytes], data)
	return nil
}

// MemoryUsage returns the approximate # of bytes held by the buffer.
func (m *MemoryBuffer) MemoryUsage() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return size.Of(m.data) + size.Of(m.set)
}
