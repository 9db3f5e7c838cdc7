package dvid

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPixelType is returned for pixel encodings that can't be decoded, e.g., 1-bit.
	ErrUnsupportedPixelType = errors.New("unsupported pixel type")

	// ErrInvalidCoordinate is returned when a requested index lies outside declared bounds.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrBackendIO wraps failures of the pixel storage backend.
	ErrBackendIO = errors.New("pixel backend I/O failure")

	// ErrDimensionMismatch is returned when a region's length disagrees with pixel set metadata.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDegeneratePixelSet is returned for pixel sets with a non-positive size or no channels.
	ErrDegeneratePixelSet = errors.New("degenerate pixel set")
)

// CoordinateError describes an index outside [0, Size) along a named axis.
type CoordinateError struct {
	Axis  string
	Value int32
	Size  int32
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%v: %s = %d not in [0, %d)", ErrInvalidCoordinate, e.Axis, e.Value, e.Size)
}

func (e *CoordinateError) Is(target error) bool {
	return target == ErrInvalidCoordinate
}

// CheckCoordinate returns a *CoordinateError if v is not in [0, size).
func CheckCoordinate(axis string, v, size int32) error {
	if v < 0 || v >= size {
		return &CoordinateError{Axis: axis, Value: v, Size: size}
	}
	return nil
}

// BackendError wraps an error returned by a pixel storage backend.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%v during %s: %v", ErrBackendIO, e.Op, e.Err)
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackendIO
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// DimensionError reports a region whose byte length disagrees with pixel set metadata.
type DimensionError struct {
	What     string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: %s has %d bytes, expected %d", ErrDimensionMismatch, e.What, e.Got, e.Expected)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
