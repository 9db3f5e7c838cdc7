package badger

//go:generate msgp -io=false -tests=false

import (
	"time"

	"github.com/janelia-flyem/dvidplane/dvid"
)

// pixelSetRecord is the stored metadata of a pixel set.
type pixelSetRecord struct {
	ID          string          `msg:"id"`
	Name        string          `msg:"name"`
	Created     int64           `msg:"created"`
	SizeX       int32           `msg:"sx"`
	SizeY       int32           `msg:"sy"`
	SizeZ       int32           `msg:"sz"`
	SizeC       int32           `msg:"sc"`
	SizeT       int32           `msg:"st"`
	PixelType   uint8           `msg:"pixtype"`
	Endianness  uint8           `msg:"endian"`
	Photometric uint8           `msg:"photometric"`
	Channels    []channelRecord `msg:"channels"`
}

type channelRecord struct {
	Name       string  `msg:"name"`
	Wavelength float64 `msg:"wavelength"`
	Min        float64 `msg:"min"`
	Max        float64 `msg:"max"`
}

func newPixelSetRecord(id, name string, set *dvid.PixelSet) *pixelSetRecord {
	rec := &pixelSetRecord{
		ID:          id,
		Name:        name,
		Created:     time.Now().Unix(),
		SizeX:       set.SizeX,
		SizeY:       set.SizeY,
		SizeZ:       set.SizeZ,
		SizeC:       set.SizeC,
		SizeT:       set.SizeT,
		PixelType:   uint8(set.PixelType),
		Endianness:  uint8(set.Endianness),
		Photometric: uint8(set.Photometric),
		Channels:    make([]channelRecord, len(set.Channels)),
	}
	for i, ch := range set.Channels {
		rec.Channels[i] = channelRecord{
			Name:       ch.Info.Name,
			Wavelength: ch.Info.EmissionWavelength,
			Min:        ch.GlobalMin,
			Max:        ch.GlobalMax,
		}
	}
	return rec
}

func (rec *pixelSetRecord) pixelSet() *dvid.PixelSet {
	set := &dvid.PixelSet{
		SizeX:       rec.SizeX,
		SizeY:       rec.SizeY,
		SizeZ:       rec.SizeZ,
		SizeC:       rec.SizeC,
		SizeT:       rec.SizeT,
		PixelType:   dvid.PixelType(rec.PixelType),
		Endianness:  dvid.Endianness(rec.Endianness),
		Photometric: dvid.Photometric(rec.Photometric),
		Channels:    make([]dvid.ChannelStats, len(rec.Channels)),
	}
	for i, ch := range rec.Channels {
		set.Channels[i] = dvid.ChannelStats{
			GlobalMin: ch.Min,
			GlobalMax: ch.Max,
			Info:      dvid.ChannelInfo{Name: ch.Name, EmissionWavelength: ch.Wavelength},
		}
	}
	return set
}

// Info describes a stored pixel set.
type Info struct {
	ID      string
	Name    string
	Created time.Time
	Set     *dvid.PixelSet
}

func (rec *pixelSetRecord) info() Info {
	return Info{
		ID:      rec.ID,
		Name:    rec.Name,
		Created: time.Unix(rec.Created, 0),
		Set:     rec.pixelSet(),
	}
}
