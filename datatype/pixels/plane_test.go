package pixels

import (
	"errors"
	"testing"

	"github.com/janelia-flyem/dvidplane/dvid"
)

func TestPlaneValue(t *testing.T) {
	// 3 x 2 uint8 plane with value 10*y + x
	region := []byte{0, 1, 2, 10, 11, 12}
	g, err := NewGeometry(dvid.XY, 3, 2, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPlane(region, g, dvid.T_uint8, dvid.BigEndian, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	for y := int32(0); y < 2; y++ {
		for x := int32(0); x < 3; x++ {
			v, err := p.Value(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if v != float64(10*y+x) {
				t.Errorf("(%d, %d): expected %d, got %g\n", x, y, 10*y+x, v)
			}
		}
	}
	values := p.Values()
	for i, v := range values {
		if v != float64(region[i]) {
			t.Errorf("Values()[%d] = %g, expected %d\n", i, v, region[i])
		}
	}

	// out of range coordinates name the plane-local axis
	_, err = p.Value(3, 0)
	var coordErr *dvid.CoordinateError
	if !errors.As(err, &coordErr) {
		t.Fatalf("expected coordinate error, got %v\n", err)
	}
	if coordErr.Axis != "X" || coordErr.Size != 3 {
		t.Errorf("bad coordinate error: %v\n", coordErr)
	}
	if _, err := p.Value(0, -1); !errors.Is(err, dvid.ErrInvalidCoordinate) {
		t.Errorf("expected invalid coordinate for y = -1, got %v\n", err)
	}

	// region doesn't change underneath, and no values are cached
	region[4] = 99
	if v, _ := p.Value(1, 1); v != 99 {
		t.Errorf("expected plane to re-read region, got %g\n", v)
	}
}

func TestNewPlaneErrors(t *testing.T) {
	g, _ := NewGeometry(dvid.XY, 3, 2, 0, 2)
	if _, err := NewPlane(make([]byte, 11), g, dvid.T_uint16, dvid.LittleEndian, 3, 2); !errors.Is(err, dvid.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch for short region, got %v\n", err)
	}
	if _, err := NewPlane(make([]byte, 12), g, dvid.T_uint8, dvid.LittleEndian, 3, 2); err == nil {
		t.Errorf("expected error for pixel type not matching geometry\n")
	}
	if _, err := NewPlane(make([]byte, 12), g, dvid.T_int16, dvid.UnknownEndian, 3, 2); !errors.Is(err, dvid.ErrUnsupportedPixelType) {
		t.Errorf("expected unsupported pixel type for unknown byte order, got %v\n", err)
	}
	if _, err := NewPlane(make([]byte, 12), g, dvid.T_int16, dvid.LittleEndian, 0, 2); !errors.Is(err, dvid.ErrDegeneratePixelSet) {
		t.Errorf("expected degenerate pixel set, got %v\n", err)
	}
	p, err := NewPlane(make([]byte, 12), g, dvid.T_int16, dvid.LittleEndian, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind() != KindInt16 || p.BytesPerPixel() != 2 || p.PixelType() != dvid.T_int16 {
		t.Errorf("bad plane accessors: %s\n", p)
	}
}
