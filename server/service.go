package server

import (
	"context"
	"fmt"

	"github.com/janelia-flyem/dvidplane/datatype/pixels"
	"github.com/janelia-flyem/dvidplane/datatype/rendering"
	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/storage"
	"github.com/janelia-flyem/dvidplane/storage/badger"
	"github.com/janelia-flyem/dvidplane/storage/dicom"
)

// Service ties a pixel set store to plane extraction and rendering defaults.  It is safe
// for concurrent use.
type Service struct {
	config      *Config
	store       *badger.Store
	cache       *storage.RegionCache
	extractor   *pixels.Extractor
	synthesizer *rendering.Synthesizer
}

// NewService opens the configured store.  If policy is nil, rendering defaults use
// rendering.DefaultColorPolicy.
func NewService(config *Config, policy rendering.ColorPolicy) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	extConfig, err := config.ExtractorConfig()
	if err != nil {
		return nil, err
	}
	store, err := badger.Open(config.Store)
	if err != nil {
		return nil, fmt.Errorf("unable to open pixel store: %v", err)
	}
	s := &Service{
		config:      config,
		store:       store,
		extractor:   pixels.NewExtractor(extConfig),
		synthesizer: rendering.NewSynthesizer(policy),
	}
	if size := config.CacheBytes(); size > 0 {
		s.cache = storage.NewRegionCache(size)
	}
	return s, nil
}

// Close closes the store.
func (s *Service) Close() error {
	return s.store.Close()
}

// Store returns the underlying pixel set store.
func (s *Service) Store() *badger.Store {
	return s.store
}

// Extractor returns the configured plane extractor.
func (s *Service) Extractor() *pixels.Extractor {
	return s.extractor
}

// CacheStats returns region cache lookups and hits, or zeros if caching is disabled.
func (s *Service) CacheStats() (attempts, hits uint64) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}

// Source returns the stored pixel set with the given id, served through the region
// cache if one is configured.
func (s *Service) Source(ctx context.Context, id string) (storage.PixelSource, *dvid.PixelSet, error) {
	buf, err := s.store.Buffer(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	set, err := buf.PixelSet(ctx)
	if err != nil {
		return nil, nil, err
	}
	if s.cache == nil {
		return buf, set, nil
	}
	return s.cache.Wrap(id, buf), set, nil
}

// ExtractPlane returns a plane of a stored pixel set.
func (s *Service) ExtractPlane(ctx context.Context, id string, req pixels.PlaneRequest) (*pixels.Plane, error) {
	src, set, err := s.Source(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.extractor.Extract(ctx, set, src, req)
}

// Defaults synthesizes rendering defaults for a stored pixel set.
func (s *Service) Defaults(ctx context.Context, id string) (*rendering.Defaults, error) {
	set, err := s.store.PixelSet(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.synthesizer.Synthesize(set)
}

// DefaultsAll synthesizes rendering defaults for several stored pixel sets in parallel.
func (s *Service) DefaultsAll(ctx context.Context, ids []string) ([]*rendering.Defaults, error) {
	sets := make([]*dvid.PixelSet, len(ids))
	for i, id := range ids {
		set, err := s.store.PixelSet(ctx, id)
		if err != nil {
			return nil, err
		}
		sets[i] = set
	}
	return s.synthesizer.SynthesizeAll(ctx, sets)
}

// Stats computes channel statistics of a stored pixel set.  If update is true, the
// channel min/max recorded for the pixel set are replaced by the computed values.
func (s *Service) Stats(ctx context.Context, id string, update bool) ([]pixels.Statistics, error) {
	src, set, err := s.Source(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.extractor.ComputeStats(ctx, set, src)
	if err != nil {
		return nil, err
	}
	if update {
		updated, err := pixels.WithStats(set, stats)
		if err != nil {
			return nil, err
		}
		if err := s.store.UpdatePixelSet(ctx, id, updated); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// Import copies every plane of src into the store under a new id.  If computeStats is
// true, channel statistics are computed from the pixels instead of taken from src.
func (s *Service) Import(ctx context.Context, name string, src storage.PixelSource, computeStats bool) (string, error) {
	set, err := src.PixelSet(ctx)
	if err != nil {
		return "", err
	}
	if computeStats {
		stats, err := s.extractor.ComputeStats(ctx, set, src)
		if err != nil {
			return "", err
		}
		if set, err = pixels.WithStats(set, stats); err != nil {
			return "", err
		}
	}
	id, err := s.store.PutPixelSet(ctx, name, set)
	if err != nil {
		return "", err
	}
	if err := s.copyPlanes(ctx, id, set, src); err != nil {
		if delErr := s.store.Delete(ctx, id); delErr != nil {
			dvid.Errorf("Unable to remove partially imported pixel set %s: %v\n", id, delErr)
		}
		return "", err
	}
	dvid.Infof("Imported %q as pixel set %s: %s\n", name, id, set)
	return id, nil
}

func (s *Service) copyPlanes(ctx context.Context, id string, set *dvid.PixelSet, src storage.PixelSource) error {
	buf, err := s.store.Buffer(ctx, id)
	if err != nil {
		return err
	}
	return storage.CopyPlanes(ctx, set, src, buf)
}

// ImportDICOM reads a DICOM file and imports it.  The pixel set is named after the file
// if name is empty.  Statistics are computed if the file's intensity range is unknown.
func (s *Service) ImportDICOM(ctx context.Context, path, name string, computeStats bool) (string, error) {
	f, err := dicom.Open(ctx, path)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = f.Path()
	}
	return s.Import(ctx, name, f, computeStats || !f.HasStats())
}
