/*
Package dicom reads DICOM files as pixel sets.  Frames become z-sections and samples
become channels, so an RGB acquisition yields a three-channel pixel set with RGB
photometric interpretation.  There is a single timepoint.
*/
package dicom

import (
	"context"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/dustin/go-humanize"
	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/storage"
)

var sampleNames = []string{"R", "G", "B"}

// File is a decoded DICOM file.  All frames are held in memory.  It fulfills
// storage.PixelSource.
type File struct {
	*storage.MemoryBuffer

	path string

	// hasStats is false if the file's intensity range couldn't be determined, in which
	// case every channel reports an empty [0, 0] range.
	hasStats bool
}

var _ storage.PixelSource = (*File)(nil)

// Open parses and decodes the DICOM file at path.  Encapsulated transfer syntaxes are
// transcoded to explicit VR little endian first, which requires a codec for the syntax
// to be registered with the go-dicom codec registry.
func Open(ctx context.Context, path string) (*File, error) {
	timedLog := dvid.NewTimeLog()
	res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return nil, fmt.Errorf("unable to parse DICOM file %s: %v", path, err)
	}
	ds := res.Dataset
	if res.TransferSyntax != nil && res.TransferSyntax.IsEncapsulated() {
		tr := codec.NewTranscoder(res.TransferSyntax, transfer.ExplicitVRLittleEndian)
		if ds, err = tr.Transcode(ds); err != nil {
			return nil, fmt.Errorf("unable to transcode %s from %v: %v", path, res.TransferSyntax, err)
		}
	}
	pd, err := imaging.CreatePixelData(ds)
	if err != nil {
		return nil, fmt.Errorf("no pixel data in %s: %v", path, err)
	}

	info := pd.Info
	pixelType, err := PixelType(uint16(info.BitsAllocated), uint16(info.PixelRepresentation))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	samples := int32(info.SamplesPerPixel)
	if samples == 0 {
		samples = 1
	}
	photometric, _ := ds.GetString(tag.PhotometricInterpretation)
	planar := ds.TryGetUInt16(tag.PlanarConfiguration, 0) == 1

	set := &dvid.PixelSet{
		SizeX:       int32(info.Width),
		SizeY:       int32(info.Height),
		SizeZ:       int32(pd.FrameCount()),
		SizeC:       samples,
		SizeT:       1,
		PixelType:   pixelType,
		Endianness:  dvid.LittleEndian,
		Photometric: dvid.ParsePhotometric(photometric),
		Channels:    make([]dvid.ChannelStats, samples),
	}
	hasStats := true
	minVal, maxVal, err := pd.MinMax(true)
	if err != nil {
		dvid.Warningf("Unable to get intensity range of %s, channel statistics must be computed: %v\n", path, err)
		minVal, maxVal, hasStats = 0, 0, false
	}
	for c := range set.Channels {
		set.Channels[c].GlobalMin = float64(minVal)
		set.Channels[c].GlobalMax = float64(maxVal)
		if samples > 1 && c < len(sampleNames) {
			set.Channels[c].Info.Name = sampleNames[c]
		}
	}

	buf, err := storage.NewMemoryBuffer(set, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bytesPerPixel, err := pixelType.Bytes()
	if err != nil {
		return nil, err
	}
	for z := int32(0); z < set.SizeZ; z++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := pd.GetFrame(int(z))
		if err != nil {
			return nil, fmt.Errorf("unable to read frame %d of %s: %v", z, path, err)
		}
		planes, err := SplitSamples(frame, int(set.SizeX), int(set.SizeY), int(samples), bytesPerPixel, planar)
		if err != nil {
			return nil, fmt.Errorf("frame %d of %s: %w", z, path, err)
		}
		for c, plane := range planes {
			if err := buf.PutPlane(ctx, z, int32(c), 0, plane); err != nil {
				return nil, err
			}
		}
	}
	f := &File{MemoryBuffer: buf, path: path, hasStats: hasStats}
	timedLog.Infof("Read %s from %s (%s)", set, path, humanize.Bytes(uint64(buf.MemoryUsage())))
	return f, nil
}

// Path returns the file the pixel set was read from.
func (f *File) Path() string {
	return f.path
}

// HasStats returns true if the channel ranges were read from the file.  The range
// covers all samples, so every channel of a multi-sample file shares it.
func (f *File) HasStats() bool {
	return f.hasStats
}

// PixelType maps DICOM BitsAllocated and PixelRepresentation onto a pixel type.  A pixel
// representation of 1 denotes two's complement samples.
func PixelType(bitsAllocated, pixelRepresentation uint16) (dvid.PixelType, error) {
	signed := pixelRepresentation == 1
	switch bitsAllocated {
	case 1:
		return dvid.T_bit, fmt.Errorf("%w: 1-bit DICOM pixel data", dvid.ErrUnsupportedPixelType)
	case 8:
		if signed {
			return dvid.T_int8, nil
		}
		return dvid.T_uint8, nil
	case 16:
		if signed {
			return dvid.T_int16, nil
		}
		return dvid.T_uint16, nil
	case 32:
		if signed {
			return dvid.T_int32, nil
		}
		return dvid.T_uint32, nil
	default:
		return dvid.T_bit, fmt.Errorf("%w: %d bits allocated", dvid.ErrUnsupportedPixelType, bitsAllocated)
	}
}

// SplitSamples separates a frame into one XY plane per sample.  Interleaved frames store
// samples of a pixel together (RGBRGB...), planar frames store each sample's plane in turn.
func SplitSamples(frame []byte, width, height, samples, bytesPerPixel int, planar bool) ([][]byte, error) {
	planeBytes := width * height * bytesPerPixel
	if len(frame) < planeBytes*samples {
		return nil, &dvid.DimensionError{What: "DICOM frame", Expected: planeBytes * samples, Got: len(frame)}
	}
	planes := make([][]byte, samples)
	if samples == 1 || planar {
		for s := range planes {
			planes[s] = frame[s*planeBytes : (s+1)*planeBytes]
		}
		return planes, nil
	}
	for s := range planes {
		planes[s] = make([]byte, planeBytes)
	}
	pixelBytes := samples * bytesPerPixel
	for i := 0; i < width*height; i++ {
		for s := 0; s < samples; s++ {
			src := i*pixelBytes + s*bytesPerPixel
			copy(planes[s][i*bytesPerPixel:(i+1)*bytesPerPixel], frame[src:src+bytesPerPixel])
		}
	}
	return planes, nil
}
