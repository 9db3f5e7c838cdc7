package pixels

import (
	"errors"
	"math"
	"testing"

	"github.com/janelia-flyem/dvidplane/dvid"
)

func TestPackerRoundTrip(t *testing.T) {
	tests := []struct {
		t dvid.PixelType
		v float64
	}{
		{dvid.T_int8, -5},
		{dvid.T_uint8, 200},
		{dvid.T_int16, -1234},
		{dvid.T_uint16, 60000},
		{dvid.T_int32, -123456},
		{dvid.T_uint32, 4000000000},
		{dvid.T_float32, 1.5},
		{dvid.T_float64, math.Pi},
	}
	for _, order := range []dvid.Endianness{dvid.BigEndian, dvid.LittleEndian} {
		for _, tc := range tests {
			b, err := EncodeValue(tc.t, order, tc.v)
			if err != nil {
				t.Fatalf("encode %s %s: %v\n", tc.t, order, err)
			}
			bpp, _, _, err := Layout(tc.t)
			if err != nil {
				t.Fatal(err)
			}
			if len(b) != bpp {
				t.Errorf("%s encoded to %d bytes, expected %d\n", tc.t, len(b), bpp)
			}
			pack, err := NewPacker(tc.t, order)
			if err != nil {
				t.Fatal(err)
			}
			// surround the pixel with junk to make sure only its bytes are read
			buf := append([]byte{0xAA, 0xBB, 0xCC}, b...)
			buf = append(buf, 0xDD, 0xEE)
			if got := pack(buf, 3, bpp); got != tc.v {
				t.Errorf("%s %s: expected %g, got %g\n", tc.t, order, tc.v, got)
			}
		}
	}
}

func TestPackerByteOrder(t *testing.T) {
	pack, err := NewPacker(dvid.T_uint16, dvid.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	if v := pack([]byte{0x03, 0xE8}, 0, 2); v != 1000 {
		t.Errorf("big endian uint16: expected 1000, got %g\n", v)
	}
	pack, _ = NewPacker(dvid.T_uint16, dvid.LittleEndian)
	if v := pack([]byte{0xE8, 0x03}, 0, 2); v != 1000 {
		t.Errorf("little endian uint16: expected 1000, got %g\n", v)
	}

	// sign extension only for signed types
	pack, _ = NewPacker(dvid.T_int16, dvid.BigEndian)
	if v := pack([]byte{0xFF, 0xFE}, 0, 2); v != -2 {
		t.Errorf("int16 0xFFFE: expected -2, got %g\n", v)
	}
	pack, _ = NewPacker(dvid.T_uint16, dvid.BigEndian)
	if v := pack([]byte{0xFF, 0xFE}, 0, 2); v != 65534 {
		t.Errorf("uint16 0xFFFE: expected 65534, got %g\n", v)
	}
	pack, _ = NewPacker(dvid.T_int8, dvid.LittleEndian)
	if v := pack([]byte{0x80}, 0, 1); v != -128 {
		t.Errorf("int8 0x80: expected -128, got %g\n", v)
	}
	pack, _ = NewPacker(dvid.T_uint32, dvid.LittleEndian)
	if v := pack([]byte{0xFF, 0xFF, 0xFF, 0xFF}, 0, 4); v != 4294967295 {
		t.Errorf("uint32 max: expected 4294967295, got %g\n", v)
	}
}

func TestPackerFloats(t *testing.T) {
	f := float32(0.1)
	b, err := EncodeValue(dvid.T_float32, dvid.LittleEndian, float64(f))
	if err != nil {
		t.Fatal(err)
	}
	pack, _ := NewPacker(dvid.T_float32, dvid.LittleEndian)
	if got := pack(b, 0, 4); got != float64(f) {
		t.Errorf("float32 widening not exact: expected %v, got %v\n", float64(f), got)
	}

	b, _ = EncodeValue(dvid.T_float32, dvid.BigEndian, math.NaN())
	pack, _ = NewPacker(dvid.T_float32, dvid.BigEndian)
	if got := pack(b, 0, 4); !math.IsNaN(got) {
		t.Errorf("expected NaN to survive decoding, got %v\n", got)
	}

	b, _ = EncodeValue(dvid.T_float64, dvid.BigEndian, math.Inf(-1))
	pack, _ = NewPacker(dvid.T_float64, dvid.BigEndian)
	if got := pack(b, 0, 8); !math.IsInf(got, -1) {
		t.Errorf("expected -Inf, got %v\n", got)
	}
}

func TestUnsupportedPacker(t *testing.T) {
	if _, err := NewPacker(dvid.T_bit, dvid.BigEndian); !errors.Is(err, dvid.ErrUnsupportedPixelType) {
		t.Errorf("expected unsupported pixel type for bit, got %v\n", err)
	}
	if _, err := NewPacker(dvid.T_uint8, dvid.UnknownEndian); !errors.Is(err, dvid.ErrUnsupportedPixelType) {
		t.Errorf("expected unsupported pixel type for unknown byte order, got %v\n", err)
	}
	if _, err := NewPacker(dvid.PixelType(200), dvid.LittleEndian); !errors.Is(err, dvid.ErrUnsupportedPixelType) {
		t.Errorf("expected unsupported pixel type for bad type, got %v\n", err)
	}
	if _, _, _, err := Layout(dvid.T_bit); !errors.Is(err, dvid.ErrUnsupportedPixelType) {
		t.Errorf("expected no layout for bit, got %v\n", err)
	}
	if _, err := EncodeValue(dvid.T_bit, dvid.LittleEndian, 1); !errors.Is(err, dvid.ErrUnsupportedPixelType) {
		t.Errorf("expected bit encoding to fail, got %v\n", err)
	}
}

func TestLayoutKinds(t *testing.T) {
	expected := map[dvid.PixelType]NumericKind{
		dvid.T_uint8:   KindInt8,
		dvid.T_int16:   KindInt16,
		dvid.T_uint32:  KindInt32,
		dvid.T_float32: KindFloat32,
		dvid.T_float64: KindFloat64,
	}
	for pt, kind := range expected {
		_, got, _, err := Layout(pt)
		if err != nil {
			t.Fatal(err)
		}
		if got != kind {
			t.Errorf("%s: expected kind %s, got %s\n", pt, kind, got)
		}
	}
	if _, _, signed, _ := Layout(dvid.T_uint16); signed {
		t.Errorf("uint16 should not be signed\n")
	}
}
