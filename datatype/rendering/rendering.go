/*
Package rendering synthesizes default display settings for pixel sets: an 8-bit
quantization, one linear channel binding per channel spanning the channel's global
intensity range, and the initial z-section and timepoint to show.

Synthesis is a pure function of pixel set metadata.  Callers that want to adjust the
result should work on a Copy.
*/
package rendering

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Family is the mapping from channel input range to the quantized codomain.
type Family uint8

const (
	Linear Family = iota
)

func (f Family) String() string {
	if f == Linear {
		return "linear"
	}
	return fmt.Sprintf("unknown family %d", f)
}

// MarshalJSON implements the json.Marshaler interface.
func (f Family) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Family) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.ToLower(s) != "linear" {
		return fmt.Errorf("unknown rendering family %q", s)
	}
	*f = Linear
	return nil
}

// Model is the color model channels are composited with.
type Model uint8

const (
	Greyscale Model = iota
	RGBModel
)

func (m Model) String() string {
	switch m {
	case Greyscale:
		return "greyscale"
	case RGBModel:
		return "rgb"
	default:
		return fmt.Sprintf("unknown model %d", m)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (m Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Model) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "greyscale", "grayscale":
		*m = Greyscale
	case "rgb":
		*m = RGBModel
	default:
		return fmt.Errorf("unknown rendering model %q", s)
	}
	return nil
}

// RGB is a display color.
type RGB struct {
	R, G, B uint8
}

var (
	Red   = RGB{255, 0, 0}
	Green = RGB{0, 255, 0}
	Blue  = RGB{0, 0, 255}
	White = RGB{255, 255, 255}
)

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MarshalJSON writes the color as a "#RRGGBB" string.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON reads a "#RRGGBB" string.
func (c *RGB) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("bad color %q, expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fmt.Errorf("bad color %q: %v", s, err)
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return nil
}

// Quantum maps channel intensities into an integer display codomain.
type Quantum struct {
	BitResolution int `json:"bitResolution"`
	CodomainStart int `json:"codomainStart"`
	CodomainEnd   int `json:"codomainEnd"`
}

// DefaultQuantum is the fixed 8-bit display quantization, independent of pixel type.
var DefaultQuantum = Quantum{BitResolution: 8, CodomainStart: 0, CodomainEnd: 255}

// ChannelBinding is the display configuration of one channel.
type ChannelBinding struct {
	InputStart  float64 `json:"inputStart"`
	InputEnd    float64 `json:"inputEnd"`
	Color       RGB     `json:"color"`
	Active      bool    `json:"active"`
	Family      Family  `json:"family"`
	Coefficient float64 `json:"coefficient"`
}

// Defaults are the synthesized rendering settings for a pixel set.
type Defaults struct {
	Quantum  Quantum          `json:"quantum"`
	Channels []ChannelBinding `json:"channels"`
	DefaultZ int32            `json:"defaultZ"`
	DefaultT int32            `json:"defaultT"`
	Model    Model            `json:"model"`
}

// Copy returns a deep copy that can be modified without affecting d.
func (d *Defaults) Copy() *Defaults {
	dup := *d
	dup.Channels = append([]ChannelBinding(nil), d.Channels...)
	return &dup
}

// ActiveChannels returns the indices of active channels in order.
func (d *Defaults) ActiveChannels() []int {
	var active []int
	for i, ch := range d.Channels {
		if ch.Active {
			active = append(active, i)
		}
	}
	return active
}

func (d *Defaults) String() string {
	return fmt.Sprintf("%s rendering of %d channels at z=%d t=%d, active %v",
		d.Model, len(d.Channels), d.DefaultZ, d.DefaultT, d.ActiveChannels())
}
