package dvid

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Orientation describes which two axes of the XYZ volume a plane spans.
type Orientation uint8

const (
	// XY describes a 2d rectangle of pixels that share a z-coord.
	XY Orientation = iota

	// XZ describes a 2d rectangle of pixels that share a y-coord.
	XZ

	// ZY describes a 2d rectangle of pixels that share a x-coord.  Plane-local
	// coordinates are (z, y).
	ZY
)

func (o Orientation) String() string {
	switch o {
	case XY:
		return "XY slice"
	case XZ:
		return "XZ slice"
	case ZY:
		return "ZY slice"
	default:
		return "Unknown shape"
	}
}

// AxisNames returns the names of the plane-local axes, e.g., "X" and "Z" for XZ.
func (o Orientation) AxisNames() (string, string) {
	switch o {
	case XY:
		return "X", "Y"
	case XZ:
		return "X", "Z"
	case ZY:
		return "Z", "Y"
	default:
		return "Unknown", "Unknown"
	}
}

// String for specifying a slice orientation.
type OrientationString string

// List of strings associated with orientations.
var orientationStrings = map[string]Orientation{
	"xy":  XY,
	"xz":  XZ,
	"zy":  ZY,
	"yz":  ZY,
	"0_1": XY,
	"0_2": XZ,
	"2_1": ZY,
	"0,1": XY,
	"0,2": XZ,
	"2,1": ZY,
}

// Orientation returns the orientation constant associated with the string.
func (s OrientationString) Orientation() (o Orientation, err error) {
	o, found := orientationStrings[strings.ToLower(strings.TrimSpace(string(s)))]
	if !found {
		err = fmt.Errorf("Unknown plane orientation specification (%s)", s)
	}
	return
}

// MarshalJSON implements the json.Marshaler interface.
func (o Orientation) MarshalJSON() ([]byte, error) {
	switch o {
	case XY:
		return json.Marshal("xy")
	case XZ:
		return json.Marshal("xz")
	case ZY:
		return json.Marshal("zy")
	}
	return nil, fmt.Errorf("can't marshal unknown orientation %d", uint8(o))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *Orientation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := OrientationString(s).Orientation()
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
