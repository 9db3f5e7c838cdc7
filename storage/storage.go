/*
Package storage defines the boundary between plane extraction and the backends that hold
pixel data, plus backend-independent helpers: an in-memory buffer and a region cache.

A backend returns raw regions: either one XY plane (sizeX*sizeY*bytesPerPixel bytes)
or a full Z-stack for a (channel, timepoint) pair (sizeZ*sizeX*sizeY*bytesPerPixel
bytes), XY slices concatenated in Z order, X varying fastest within a slice.
The caller borrows a returned region for the duration of one extraction call and
must not modify it.
*/
package storage

import (
	"context"

	"github.com/janelia-flyem/dvidplane/dvid"
)

// PixelBuffer returns raw regions of one pixel set.  Implementations must be safe
// for concurrent reads.
type PixelBuffer interface {
	// GetPlane returns the bytes of the XY plane at (z, c, t).
	GetPlane(ctx context.Context, z, c, t int32) ([]byte, error)

	// GetStack returns the bytes of every XY plane for (c, t), concatenated in Z order.
	GetStack(ctx context.Context, c, t int32) ([]byte, error)
}

// MetadataProvider exposes the description of a pixel set.
type MetadataProvider interface {
	PixelSet(ctx context.Context) (*dvid.PixelSet, error)
}

// PixelSource is a backend that can describe and return the pixels of one pixel set.
type PixelSource interface {
	PixelBuffer
	MetadataProvider
}

// PlaneWriter accepts XY planes, e.g., when importing from another source.
type PlaneWriter interface {
	PutPlane(ctx context.Context, z, c, t int32, data []byte) error
}

// checkPlaneCoord validates a (z, c, t) triple against a pixel set.
func checkPlaneCoord(set *dvid.PixelSet, z, c, t int32) error {
	if err := dvid.CheckCoordinate("z", z, set.SizeZ); err != nil {
		return err
	}
	return checkStackCoord(set, c, t)
}

func checkStackCoord(set *dvid.PixelSet, c, t int32) error {
	if err := dvid.CheckCoordinate("c", c, set.SizeC); err != nil {
		return err
	}
	return dvid.CheckCoordinate("t", t, set.SizeT)
}

// CopyPlanes writes every XY plane of src into dst, e.g., to import a file into a store.
func CopyPlanes(ctx context.Context, set *dvid.PixelSet, src PixelBuffer, dst PlaneWriter) error {
	timedLog := dvid.NewTimeLog()
	for t := int32(0); t < set.SizeT; t++ {
		for c := int32(0); c < set.SizeC; c++ {
			for z := int32(0); z < set.SizeZ; z++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				plane, err := src.GetPlane(ctx, z, c, t)
				if err != nil {
					return err
				}
				if err := dst.PutPlane(ctx, z, c, t, plane); err != nil {
					return err
				}
			}
		}
	}
	timedLog.Infof("Copied %d planes of %s", set.SizeZ*set.SizeC*set.SizeT, set)
	return nil
}
