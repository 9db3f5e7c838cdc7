package rendering

import (
	"context"

	"github.com/janelia-flyem/dvidplane/dvid"
	"golang.org/x/sync/errgroup"
)

// ColorPolicy picks the display color of a channel from its index and acquisition metadata.
type ColorPolicy func(channel int, info dvid.ChannelInfo) RGB

// DefaultColorPolicy colors channels by emission wavelength when it's known: blue below
// 500 nm, green below 560 nm, and red otherwise.  Channels without a wavelength are
// colored red, green, blue by index, which matches the sample order of RGB acquisitions.
func DefaultColorPolicy(channel int, info dvid.ChannelInfo) RGB {
	if info.EmissionWavelength > 0 {
		switch {
		case info.EmissionWavelength < 500:
			return Blue
		case info.EmissionWavelength < 560:
			return Green
		default:
			return Red
		}
	}
	switch channel % 3 {
	case 0:
		return Red
	case 1:
		return Green
	default:
		return Blue
	}
}

// Synthesizer builds rendering defaults from pixel set metadata.  It has no mutable state.
type Synthesizer struct {
	policy ColorPolicy
}

// NewSynthesizer returns a synthesizer using the given color policy, or
// DefaultColorPolicy if policy is nil.
func NewSynthesizer(policy ColorPolicy) *Synthesizer {
	if policy == nil {
		policy = DefaultColorPolicy
	}
	return &Synthesizer{policy: policy}
}

// DefaultZ returns the initial z-section for a stack of sizeZ sections: the middle
// section, or the lower of the two middle sections for even sizes.
func DefaultZ(sizeZ int32) int32 {
	return sizeZ/2 + sizeZ%2 - 1
}

// Synthesize returns rendering defaults for the pixel set.  Every channel is active for
// RGB acquisitions; otherwise only channel 0 is.  A pixel set without channels or with
// any non-positive size returns dvid.ErrDegeneratePixelSet.
func (s *Synthesizer) Synthesize(set *dvid.PixelSet) (*Defaults, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	d := &Defaults{
		Quantum:  DefaultQuantum,
		Channels: make([]ChannelBinding, set.SizeC),
		DefaultZ: DefaultZ(set.SizeZ),
		DefaultT: 0,
		Model:    Greyscale,
	}
	for w, stats := range set.Channels {
		d.Channels[w] = ChannelBinding{
			InputStart:  stats.GlobalMin,
			InputEnd:    stats.GlobalMax,
			Color:       s.policy(w, stats.Info),
			Family:      Linear,
			Coefficient: 1.0,
		}
	}
	if set.Photometric == dvid.RGBPhotometric {
		d.Model = RGBModel
		for w := range d.Channels {
			d.Channels[w].Active = true
		}
	} else {
		d.Channels[0].Active = true
	}
	return d, nil
}

// SynthesizeAll synthesizes defaults for independent pixel sets in parallel.  Results are
// in the order of sets.  The first failure cancels the rest.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, sets []*dvid.PixelSet) ([]*Defaults, error) {
	results := make([]*Defaults, len(sets))
	g, gctx := errgroup.WithContext(ctx)
	for i, set := range sets {
		i, set := i, set
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := s.Synthesize(set)
			if err != nil {
				return err
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	dvid.Debugf("Synthesized rendering defaults for %d pixel sets\n", len(sets))
	return results, nil
}
