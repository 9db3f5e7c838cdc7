/*
	This file handles the declared numeric encoding of stored pixels and the byte
	order used for multi-byte values.
*/

package dvid

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
)

// PixelType is the declared numeric encoding of a stored pixel, e.g., a uint16 or a float32.
type PixelType uint8

const (
	T_int8 PixelType = iota
	T_uint8
	T_int16
	T_uint16
	T_int32
	T_uint32
	T_float32
	T_float64
	T_bit

	numPixelTypes
)

var typeBytes = [numPixelTypes]int{
	T_int8:    1,
	T_uint8:   1,
	T_int16:   2,
	T_uint16:  2,
	T_int32:   4,
	T_uint32:  4,
	T_float32: 4,
	T_float64: 8,
	T_bit:     0,
}

var typeNames = [numPixelTypes]string{
	T_int8:    "int8",
	T_uint8:   "uint8",
	T_int16:   "int16",
	T_uint16:  "uint16",
	T_int32:   "int32",
	T_uint32:  "uint32",
	T_float32: "float32",
	T_float64: "float64",
	T_bit:     "bit",
}

// NumPixelTypes is the number of declared pixel types, including unsupported ones.
const NumPixelTypes = int(numPixelTypes)

// PixelTypes returns every declared pixel type in declaration order.
func PixelTypes() []PixelType {
	types := make([]PixelType, numPixelTypes)
	for i := range types {
		types[i] = PixelType(i)
	}
	return types
}

// Bytes returns the # of bytes used to store one pixel of this type.  Types that are
// not byte-addressable (1-bit) or unknown return ErrUnsupportedPixelType.
func (t PixelType) Bytes() (int, error) {
	if t >= numPixelTypes || typeBytes[t] == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedPixelType, t)
	}
	return typeBytes[t], nil
}

// Signed returns true if the type is a signed integer or floating point type.
func (t PixelType) Signed() bool {
	switch t {
	case T_int8, T_int16, T_int32, T_float32, T_float64:
		return true
	}
	return false
}

// Float returns true for IEEE-754 floating point types.
func (t PixelType) Float() bool {
	return t == T_float32 || t == T_float64
}

func (t PixelType) String() string {
	if t >= numPixelTypes {
		return fmt.Sprintf("unknown pixel type %d", uint8(t))
	}
	return typeNames[t]
}

// ParsePixelType returns the pixel type for a name like "uint16".
func ParsePixelType(s string) (PixelType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, typeName := range typeNames {
		if typeName == name {
			return PixelType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPixelType, s)
}

// MarshalJSON implements the json.Marshaler interface.
func (t PixelType) MarshalJSON() ([]byte, error) {
	if t >= numPixelTypes {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedPixelType, uint8(t))
	}
	return json.Marshal(typeNames[t])
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *PixelType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParsePixelType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Endianness is the byte order of multi-byte pixel values.  UnknownEndian defers to
// whatever convention the extracting component was configured with.
type Endianness uint8

const (
	UnknownEndian Endianness = iota
	BigEndian
	LittleEndian
)

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return "unknown"
	}
}

// ByteOrder returns the encoding/binary byte order or nil if unknown.
func (e Endianness) ByteOrder() binary.ByteOrder {
	switch e {
	case BigEndian:
		return binary.BigEndian
	case LittleEndian:
		return binary.LittleEndian
	default:
		return nil
	}
}

// ParseEndianness accepts "big", "little", and their common abbreviations.
// An empty string returns UnknownEndian.
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return UnknownEndian, nil
	case "big", "be", "b", "bigendian", "big-endian":
		return BigEndian, nil
	case "little", "le", "l", "littleendian", "little-endian":
		return LittleEndian, nil
	default:
		return UnknownEndian, fmt.Errorf("unknown byte order %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (e Endianness) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Endianness) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "unknown" {
		*e = UnknownEndian
		return nil
	}
	parsed, err := ParseEndianness(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
