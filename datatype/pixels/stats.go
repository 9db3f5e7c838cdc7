package pixels

import (
	"context"
	"fmt"
	"math"

	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/storage"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes the intensities of one channel over every z and timepoint.
// NaN samples are skipped.  A channel without any finite sample has all fields zero.
type Statistics struct {
	Channel int32
	Count   int // # of non-NaN samples
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
}

func (s Statistics) String() string {
	return fmt.Sprintf("channel %d: %d samples, min %g, max %g, mean %g, stddev %g",
		s.Channel, s.Count, s.Min, s.Max, s.Mean, s.StdDev)
}

// ChannelStats returns the statistics as precomputed pixel set statistics, keeping info.
func (s Statistics) ChannelStats(info dvid.ChannelInfo) dvid.ChannelStats {
	return dvid.ChannelStats{GlobalMin: s.Min, GlobalMax: s.Max, Info: info}
}

// moments accumulates count, mean, and the sum of squared deviations over batches of
// samples, merging each batch with the pairwise update of Chan et al.
type moments struct {
	n    int
	min  float64
	max  float64
	mean float64
	m2   float64
}

func (m *moments) add(values []float64) {
	nb := len(values)
	if nb == 0 {
		return
	}
	minB, maxB := floats.Min(values), floats.Max(values)
	var meanB, m2B float64
	if nb == 1 {
		meanB = values[0]
	} else {
		var variance float64
		meanB, variance = stat.MeanVariance(values, nil)
		m2B = variance * float64(nb-1)
	}
	if m.n == 0 {
		*m = moments{n: nb, min: minB, max: maxB, mean: meanB, m2: m2B}
		return
	}
	n := m.n + nb
	delta := meanB - m.mean
	m.mean += delta * float64(nb) / float64(n)
	m.m2 += m2B + delta*delta*float64(m.n)*float64(nb)/float64(n)
	m.n = n
	m.min = math.Min(m.min, minB)
	m.max = math.Max(m.max, maxB)
}

// ChannelStatistics decodes every XY plane of channel c and summarizes its intensities.
// Planes are summarized one at a time, so memory use is bounded by a single plane.
func (e *Extractor) ChannelStatistics(ctx context.Context, set *dvid.PixelSet, buf storage.PixelBuffer, c int32) (Statistics, error) {
	stats := Statistics{Channel: c}
	if err := set.Validate(); err != nil {
		return stats, err
	}
	if err := dvid.CheckCoordinate("c", c, set.SizeC); err != nil {
		return stats, err
	}
	var acc moments
	values := make([]float64, 0, int(set.SizeX)*int(set.SizeY))
	for t := int32(0); t < set.SizeT; t++ {
		for z := int32(0); z < set.SizeZ; z++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			plane, err := e.Extract(ctx, set, buf, XYRequest(z, c, t))
			if err != nil {
				return stats, err
			}
			values = values[:0]
			for x2 := int32(0); x2 < plane.size2; x2++ {
				for x1 := int32(0); x1 < plane.size1; x1++ {
					v := plane.pack(plane.region, plane.geom.Offset(x1, x2), plane.bytesPerPixel)
					if !math.IsNaN(v) {
						values = append(values, v)
					}
				}
			}
			acc.add(values)
		}
	}
	stats.Count = acc.n
	if acc.n == 0 {
		return stats, nil
	}
	stats.Min, stats.Max, stats.Mean = acc.min, acc.max, acc.mean
	if acc.n > 1 {
		stats.StdDev = math.Sqrt(acc.m2 / float64(acc.n-1))
	}
	return stats, nil
}

// ComputeStats computes statistics for every channel concurrently.
func (e *Extractor) ComputeStats(ctx context.Context, set *dvid.PixelSet, buf storage.PixelBuffer) ([]Statistics, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	timedLog := dvid.NewTimeLog()
	results := make([]Statistics, set.SizeC)
	g, gctx := errgroup.WithContext(ctx)
	for c := int32(0); c < set.SizeC; c++ {
		c := c
		g.Go(func() error {
			stats, err := e.ChannelStatistics(gctx, set, buf, c)
			if err != nil {
				return err
			}
			results[c] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	timedLog.Debugf("Computed statistics for %d channels of %s", set.SizeC, set)
	return results, nil
}

// WithStats returns a copy of the pixel set whose channel min/max come from stats.
// Channel info is kept.
func WithStats(set *dvid.PixelSet, stats []Statistics) (*dvid.PixelSet, error) {
	if len(stats) != len(set.Channels) {
		return nil, fmt.Errorf("got statistics for %d channels, pixel set has %d", len(stats), len(set.Channels))
	}
	dup := set.Duplicate()
	for i, s := range stats {
		dup.Channels[i] = s.ChannelStats(dup.Channels[i].Info)
	}
	return dup, nil
}
