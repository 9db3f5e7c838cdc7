/*
	This file decodes stored pixel bytes into intensities.  Decoders are selected from a
	table indexed by (pixel type, byte order) so decoding is independent of plane
	orientation.
*/

package pixels

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/janelia-flyem/dvidplane/dvid"
)

// Packer converts buf[offset:offset+length] into an intensity.  The length is always the
// byte width of the pixel type it was selected for.
type Packer func(buf []byte, offset, length int) float64

// NumericKind is the numeric family a pixel type decodes through.  Unsigned types share
// the integer paths of their signed width with sign extension suppressed.
type NumericKind uint8

const (
	KindInt8 NumericKind = iota
	KindInt16
	KindInt32
	KindFloat32
	KindFloat64
)

func (k NumericKind) String() string {
	switch k {
	case KindInt8:
		return "i8"
	case KindInt16:
		return "i16"
	case KindInt32:
		return "i32"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	default:
		return "unknown"
	}
}

// typeLayout gives bytes/pixel, numeric kind, and whether the value is sign-extended.
type typeLayout struct {
	bytes  int
	kind   NumericKind
	signed bool
}

var layouts = map[dvid.PixelType]typeLayout{
	dvid.T_int8:    {1, KindInt8, true},
	dvid.T_uint8:   {1, KindInt8, false},
	dvid.T_int16:   {2, KindInt16, true},
	dvid.T_uint16:  {2, KindInt16, false},
	dvid.T_int32:   {4, KindInt32, true},
	dvid.T_uint32:  {4, KindInt32, false},
	dvid.T_float32: {4, KindFloat32, true},
	dvid.T_float64: {8, KindFloat64, true},
}

// Layout returns the byte width and numeric kind for a pixel type.
func Layout(t dvid.PixelType) (bytesPerPixel int, kind NumericKind, signed bool, err error) {
	l, found := layouts[t]
	if !found {
		err = fmt.Errorf("%w: %s", dvid.ErrUnsupportedPixelType, t)
		return
	}
	return l.bytes, l.kind, l.signed, nil
}

func packInt8(buf []byte, offset, length int) float64 {
	return float64(int8(buf[offset]))
}

func packUint8(buf []byte, offset, length int) float64 {
	return float64(buf[offset])
}

func packers(order binary.ByteOrder) [dvid.NumPixelTypes]Packer {
	return [dvid.NumPixelTypes]Packer{
		dvid.T_int8:  packInt8,
		dvid.T_uint8: packUint8,
		dvid.T_int16: func(buf []byte, offset, length int) float64 {
			return float64(int16(order.Uint16(buf[offset : offset+length])))
		},
		dvid.T_uint16: func(buf []byte, offset, length int) float64 {
			return float64(order.Uint16(buf[offset : offset+length]))
		},
		dvid.T_int32: func(buf []byte, offset, length int) float64 {
			return float64(int32(order.Uint32(buf[offset : offset+length])))
		},
		dvid.T_uint32: func(buf []byte, offset, length int) float64 {
			return float64(order.Uint32(buf[offset : offset+length]))
		},
		dvid.T_float32: func(buf []byte, offset, length int) float64 {
			return float64(math.Float32frombits(order.Uint32(buf[offset : offset+length])))
		},
		dvid.T_float64: func(buf []byte, offset, length int) float64 {
			return math.Float64frombits(order.Uint64(buf[offset : offset+length]))
		},
		// dvid.T_bit has no byte-addressable decoder.
	}
}

// packerTable is indexed by [byte order][pixel type].
var packerTable = map[dvid.Endianness][dvid.NumPixelTypes]Packer{
	dvid.BigEndian:    packers(binary.BigEndian),
	dvid.LittleEndian: packers(binary.LittleEndian),
}

// NewPacker returns the decoder for a pixel type stored in the given byte order.
func NewPacker(t dvid.PixelType, order dvid.Endianness) (Packer, error) {
	table, found := packerTable[order]
	if !found {
		return nil, fmt.Errorf("%w: %s with %s byte order", dvid.ErrUnsupportedPixelType, t, order)
	}
	if int(t) >= dvid.NumPixelTypes || table[t] == nil {
		return nil, fmt.Errorf("%w: %s", dvid.ErrUnsupportedPixelType, t)
	}
	return table[t], nil
}

// EncodeValue returns the stored bytes for v as pixel type t in the given byte order.
// Integer values are truncated toward zero and wrap like Go conversions.
func EncodeValue(t dvid.PixelType, order dvid.Endianness, v float64) ([]byte, error) {
	bo := order.ByteOrder()
	if bo == nil {
		return nil, fmt.Errorf("%w: %s with %s byte order", dvid.ErrUnsupportedPixelType, t, order)
	}
	switch t {
	case dvid.T_int8:
		return []byte{byte(int8(v))}, nil
	case dvid.T_uint8:
		return []byte{uint8(v)}, nil
	case dvid.T_int16:
		b := make([]byte, 2)
		bo.PutUint16(b, uint16(int16(v)))
		return b, nil
	case dvid.T_uint16:
		b := make([]byte, 2)
		bo.PutUint16(b, uint16(v))
		return b, nil
	case dvid.T_int32:
		b := make([]byte, 4)
		bo.PutUint32(b, uint32(int32(v)))
		return b, nil
	case dvid.T_uint32:
		b := make([]byte, 4)
		bo.PutUint32(b, uint32(v))
		return b, nil
	case dvid.T_float32:
		b := make([]byte, 4)
		bo.PutUint32(b, math.Float32bits(float32(v)))
		return b, nil
	case dvid.T_float64:
		b := make([]byte, 8)
		bo.PutUint64(b, math.Float64bits(v))
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s", dvid.ErrUnsupportedPixelType, t)
	}
}
