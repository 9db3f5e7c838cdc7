package dvid

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Photometric is the acquisition's interpretation of channel samples.
type Photometric uint8

const (
	MonochromePhotometric Photometric = iota
	RGBPhotometric
)

func (p Photometric) String() string {
	if p == RGBPhotometric {
		return "RGB"
	}
	return "MONOCHROME"
}

// ParsePhotometric maps DICOM-style interpretation strings onto a Photometric.
// Anything that isn't an RGB variant is treated as monochrome.
func ParsePhotometric(s string) Photometric {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RGB", "YBR_FULL", "YBR_FULL_422", "YBR_RCT", "YBR_ICT":
		return RGBPhotometric
	default:
		return MonochromePhotometric
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (p Photometric) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Photometric) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = ParsePhotometric(s)
	return nil
}

// ChannelInfo is acquisition metadata for a channel.
type ChannelInfo struct {
	Name string

	// EmissionWavelength in nanometers or 0 if unknown.
	EmissionWavelength float64
}

// ChannelStats holds precomputed intensity statistics for one channel.
type ChannelStats struct {
	GlobalMin float64
	GlobalMax float64
	Info      ChannelInfo
}

// PixelSet describes a 5d (X, Y, Z, channel, time) pixel array.  It is immutable
// for the lifetime of a rendering session.
type PixelSet struct {
	SizeX, SizeY, SizeZ, SizeC, SizeT int32

	PixelType  PixelType
	Endianness Endianness

	Photometric Photometric

	// Channels has one entry per channel.
	Channels []ChannelStats
}

func (s *PixelSet) String() string {
	return fmt.Sprintf("%s pixel set %d x %d x %d, %d channels, %d timepoints",
		s.PixelType, s.SizeX, s.SizeY, s.SizeZ, s.SizeC, s.SizeT)
}

// Validate returns ErrDegeneratePixelSet if any size is non-positive or the number of
// channel statistics doesn't match the number of channels.
func (s *PixelSet) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil pixel set", ErrDegeneratePixelSet)
	}
	sizes := []struct {
		name string
		v    int32
	}{
		{"sizeX", s.SizeX}, {"sizeY", s.SizeY}, {"sizeZ", s.SizeZ}, {"sizeC", s.SizeC}, {"sizeT", s.SizeT},
	}
	for _, sz := range sizes {
		if sz.v <= 0 {
			return fmt.Errorf("%w: %s = %d", ErrDegeneratePixelSet, sz.name, sz.v)
		}
	}
	if len(s.Channels) != int(s.SizeC) {
		return fmt.Errorf("%w: %d channel stats for %d channels", ErrDegeneratePixelSet, len(s.Channels), s.SizeC)
	}
	return nil
}

// PlaneBytes returns the # of bytes in one XY plane.
func (s *PixelSet) PlaneBytes() (int, error) {
	bpp, err := s.PixelType.Bytes()
	if err != nil {
		return 0, err
	}
	return int(s.SizeX) * int(s.SizeY) * bpp, nil
}

// StackBytes returns the # of bytes in one Z-stack for a fixed channel and timepoint.
func (s *PixelSet) StackBytes() (int, error) {
	planeBytes, err := s.PlaneBytes()
	if err != nil {
		return 0, err
	}
	return planeBytes * int(s.SizeZ), nil
}

// Duplicate returns a deep copy of the pixel set.
func (s *PixelSet) Duplicate() *PixelSet {
	dup := *s
	dup.Channels = append([]ChannelStats(nil), s.Channels...)
	return &dup
}
