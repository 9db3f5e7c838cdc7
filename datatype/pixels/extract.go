package pixels

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/storage"
	"golang.org/x/sync/errgroup"
)

// DefaultEndianness is the byte order assumed for pixel sets that don't declare one.
// Legacy repositories were written big endian.
const DefaultEndianness = dvid.BigEndian

// PlaneRequest selects one plane.  Z is used by XY requests, FixedY by XZ requests, and
// FixedX by ZY requests; C and T are always used.
type PlaneRequest struct {
	Shape  dvid.Orientation
	Z      int32
	C      int32
	T      int32
	FixedY int32
	FixedX int32
}

// XYRequest returns a request for the XY plane at z.
func XYRequest(z, c, t int32) PlaneRequest {
	return PlaneRequest{Shape: dvid.XY, Z: z, C: c, T: t}
}

// XZRequest returns a request for the XZ plane at y.
func XZRequest(y, c, t int32) PlaneRequest {
	return PlaneRequest{Shape: dvid.XZ, FixedY: y, C: c, T: t}
}

// ZYRequest returns a request for the ZY plane at x.
func ZYRequest(x, c, t int32) PlaneRequest {
	return PlaneRequest{Shape: dvid.ZY, FixedX: x, C: c, T: t}
}

func (r PlaneRequest) String() string {
	switch r.Shape {
	case dvid.XY:
		return fmt.Sprintf("%s at z=%d c=%d t=%d", r.Shape, r.Z, r.C, r.T)
	case dvid.XZ:
		return fmt.Sprintf("%s at y=%d c=%d t=%d", r.Shape, r.FixedY, r.C, r.T)
	case dvid.ZY:
		return fmt.Sprintf("%s at x=%d c=%d t=%d", r.Shape, r.FixedX, r.C, r.T)
	default:
		return fmt.Sprintf("%s c=%d t=%d", r.Shape, r.C, r.T)
	}
}

// Validate checks every coordinate the request uses against the pixel set.
func (r PlaneRequest) Validate(set *dvid.PixelSet) error {
	if err := dvid.CheckCoordinate("c", r.C, set.SizeC); err != nil {
		return err
	}
	if err := dvid.CheckCoordinate("t", r.T, set.SizeT); err != nil {
		return err
	}
	switch r.Shape {
	case dvid.XY:
		return dvid.CheckCoordinate("z", r.Z, set.SizeZ)
	case dvid.XZ:
		return dvid.CheckCoordinate("fixedY", r.FixedY, set.SizeY)
	case dvid.ZY:
		return dvid.CheckCoordinate("fixedX", r.FixedX, set.SizeX)
	default:
		return fmt.Errorf("%w: unknown orientation %d", dvid.ErrInvalidCoordinate, r.Shape)
	}
}

// ExtractorConfig holds the conventions an Extractor applies.
type ExtractorConfig struct {
	// Endianness used for pixel sets that don't declare one.  UnknownEndian selects
	// DefaultEndianness.
	Endianness dvid.Endianness

	// CopyRegions makes planes own a copy of their region instead of borrowing the
	// backend's slice.  Use it when a backend can't guarantee a region outlives the call.
	CopyRegions bool
}

// Extractor builds planes from pixel sets held in storage backends.  It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	endianness  dvid.Endianness
	copyRegions bool
}

// NewExtractor returns an extractor using the given conventions.
func NewExtractor(config ExtractorConfig) *Extractor {
	e := &Extractor{
		endianness:  config.Endianness,
		copyRegions: config.CopyRegions,
	}
	if e.endianness == dvid.UnknownEndian {
		e.endianness = DefaultEndianness
	}
	return e
}

// Endianness returns the byte order the extractor would use for a pixel set.
func (e *Extractor) Endianness(set *dvid.PixelSet) dvid.Endianness {
	if set.Endianness != dvid.UnknownEndian {
		return set.Endianness
	}
	return e.endianness
}

// Extract fetches the region for a plane request from the backend and binds it to the
// appropriate geometry and decoder.  It performs exactly one backend read.
func (e *Extractor) Extract(ctx context.Context, set *dvid.PixelSet, buf storage.PixelBuffer, req PlaneRequest) (*Plane, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	bytesPerPixel, _, _, err := Layout(set.PixelType)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(set); err != nil {
		return nil, err
	}

	var region []byte
	var geom *Geometry
	var size1, size2 int32
	var expected int
	switch req.Shape {
	case dvid.XY:
		if region, err = buf.GetPlane(ctx, req.Z, req.C, req.T); err != nil {
			return nil, &dvid.BackendError{Op: fmt.Sprintf("GetPlane(%d, %d, %d)", req.Z, req.C, req.T), Err: err}
		}
		geom, err = NewGeometry(dvid.XY, set.SizeX, set.SizeY, 0, bytesPerPixel)
		size1, size2 = set.SizeX, set.SizeY
		expected, _ = set.PlaneBytes()
	case dvid.XZ:
		if region, err = buf.GetStack(ctx, req.C, req.T); err != nil {
			return nil, &dvid.BackendError{Op: fmt.Sprintf("GetStack(%d, %d)", req.C, req.T), Err: err}
		}
		geom, err = NewGeometry(dvid.XZ, set.SizeX, set.SizeY, req.FixedY, bytesPerPixel)
		size1, size2 = set.SizeX, set.SizeZ
		expected, _ = set.StackBytes()
	case dvid.ZY:
		if region, err = buf.GetStack(ctx, req.C, req.T); err != nil {
			return nil, &dvid.BackendError{Op: fmt.Sprintf("GetStack(%d, %d)", req.C, req.T), Err: err}
		}
		geom, err = NewGeometry(dvid.ZY, set.SizeX, set.SizeY, req.FixedX, bytesPerPixel)
		size1, size2 = set.SizeZ, set.SizeY
		expected, _ = set.StackBytes()
	}
	if err != nil {
		return nil, err
	}
	if len(region) != expected {
		return nil, &dvid.DimensionError{What: fmt.Sprintf("region for %s", req), Expected: expected, Got: len(region)}
	}
	if e.copyRegions {
		region = append([]byte(nil), region...)
	}
	dvid.Debugf("Extracted %s from %s region of %s\n", req, humanize.Bytes(uint64(len(region))), set)
	return NewPlane(region, geom, set.PixelType, e.Endianness(set), size1, size2)
}

// ExtractChannels extracts the requested plane for every channel concurrently, ignoring
// the request's channel index.  The returned planes are ordered by channel.
func (e *Extractor) ExtractChannels(ctx context.Context, set *dvid.PixelSet, buf storage.PixelBuffer, req PlaneRequest) ([]*Plane, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	planes := make([]*Plane, set.SizeC)
	g, gctx := errgroup.WithContext(ctx)
	for c := int32(0); c < set.SizeC; c++ {
		c := c
		g.Go(func() error {
			chReq := req
			chReq.C = c
			plane, err := e.Extract(gctx, set, buf, chReq)
			if err != nil {
				return err
			}
			planes[c] = plane
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return planes, nil
}
