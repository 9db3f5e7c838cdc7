package dvid

import (
	"errors"
	"testing"
)

func testPixelSet() *PixelSet {
	return &PixelSet{
		SizeX: 4, SizeY: 3, SizeZ: 5, SizeC: 2, SizeT: 1,
		PixelType: T_uint16,
		Channels:  make([]ChannelStats, 2),
	}
}

func TestPixelSetValidate(t *testing.T) {
	set := testPixelSet()
	if err := set.Validate(); err != nil {
		t.Fatalf("expected valid pixel set, got %v\n", err)
	}

	bad := set.Duplicate()
	bad.SizeC = 0
	bad.Channels = nil
	if err := bad.Validate(); !errors.Is(err, ErrDegeneratePixelSet) {
		t.Errorf("expected degenerate pixel set error for sizeC 0, got %v\n", err)
	}

	bad = set.Duplicate()
	bad.SizeZ = -1
	if err := bad.Validate(); !errors.Is(err, ErrDegeneratePixelSet) {
		t.Errorf("expected degenerate pixel set error for negative sizeZ, got %v\n", err)
	}

	bad = set.Duplicate()
	bad.Channels = bad.Channels[:1]
	if err := bad.Validate(); !errors.Is(err, ErrDegeneratePixelSet) {
		t.Errorf("expected degenerate pixel set error for missing channel stats, got %v\n", err)
	}

	var nilSet *PixelSet
	if err := nilSet.Validate(); !errors.Is(err, ErrDegeneratePixelSet) {
		t.Errorf("expected degenerate pixel set error for nil set, got %v\n", err)
	}
}

func TestPixelSetBytes(t *testing.T) {
	set := testPixelSet()
	planeBytes, err := set.PlaneBytes()
	if err != nil {
		t.Fatal(err)
	}
	if planeBytes != 4*3*2 {
		t.Errorf("expected %d plane bytes, got %d\n", 4*3*2, planeBytes)
	}
	stackBytes, err := set.StackBytes()
	if err != nil {
		t.Fatal(err)
	}
	if stackBytes != 4*3*2*5 {
		t.Errorf("expected %d stack bytes, got %d\n", 4*3*2*5, stackBytes)
	}

	set.PixelType = T_bit
	if _, err := set.PlaneBytes(); !errors.Is(err, ErrUnsupportedPixelType) {
		t.Errorf("expected unsupported pixel type for bit plane bytes, got %v\n", err)
	}
}

func TestPhotometric(t *testing.T) {
	if ParsePhotometric("rgb") != RGBPhotometric {
		t.Errorf("expected RGB photometric")
	}
	if ParsePhotometric("MONOCHROME2") != MonochromePhotometric {
		t.Errorf("expected monochrome photometric")
	}
}

func TestCoordinateErrors(t *testing.T) {
	if err := CheckCoordinate("c", 2, 2); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected invalid coordinate, got %v\n", err)
	}
	if err := CheckCoordinate("c", -1, 2); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected invalid coordinate for negative index, got %v\n", err)
	}
	if err := CheckCoordinate("c", 1, 2); err != nil {
		t.Errorf("unexpected error: %v\n", err)
	}
	cause := errors.New("disk on fire")
	err := error(&BackendError{Op: "GetPlane", Err: cause})
	if !errors.Is(err, ErrBackendIO) || !errors.Is(err, cause) {
		t.Errorf("backend error should match sentinel and cause: %v\n", err)
	}
}

func TestOrientationString(t *testing.T) {
	tests := map[string]Orientation{"xy": XY, "XZ": XZ, "zy": ZY, "yz": ZY, "0_2": XZ}
	for s, expected := range tests {
		o, err := OrientationString(s).Orientation()
		if err != nil {
			t.Fatalf("can't parse %q: %v\n", s, err)
		}
		if o != expected {
			t.Errorf("parsed %q as %s, expected %s\n", s, o, expected)
		}
	}
	if _, err := OrientationString("arb").Orientation(); err == nil {
		t.Errorf("expected error for arbitrary orientation")
	}
}
