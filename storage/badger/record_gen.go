package badger

// NOTE: THIS FILE WAS PRODUCED BY THE
// MSGP CODE GENERATION TOOL (github.com/tinylib/msgp)
// DO NOT EDIT

import (
	"github.com/tinylib/msgp/msgp"
)

// MarshalMsg implements msgp.Marshaler
func (z *channelRecord) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 4
	o = msgp.AppendMapHeader(o, 4)
	o = msgp.AppendString(o, "name")
	o = msgp.AppendString(o, z.Name)
	o = msgp.AppendString(o, "wavelength")
	o = msgp.AppendFloat64(o, z.Wavelength)
	o = msgp.AppendString(o, "min")
	o = msgp.AppendFloat64(o, z.Min)
	o = msgp.AppendString(o, "max")
	o = msgp.AppendFloat64(o, z.Max)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *channelRecord) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "name":
			z.Name, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Name")
				return
			}
		case "wavelength":
			z.Wavelength, bts, err = msgp.ReadFloat64Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Wavelength")
				return
			}
		case "min":
			z.Min, bts, err = msgp.ReadFloat64Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Min")
				return
			}
		case "max":
			z.Max, bts, err = msgp.ReadFloat64Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Max")
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *channelRecord) Msgsize() (s int) {
	s = 1 + 5 + msgp.StringPrefixSize + len(z.Name) + 11 + msgp.Float64Size + 4 + msgp.Float64Size + 4 + msgp.Float64Size
	return
}

// MarshalMsg implements msgp.Marshaler
func (z *pixelSetRecord) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 12
	o = msgp.AppendMapHeader(o, 12)
	o = msgp.AppendString(o, "id")
	o = msgp.AppendString(o, z.ID)
	o = msgp.AppendString(o, "name")
	o = msgp.AppendString(o, z.Name)
	o = msgp.AppendString(o, "created")
	o = msgp.AppendInt64(o, z.Created)
	o = msgp.AppendString(o, "sx")
	o = msgp.AppendInt32(o, z.SizeX)
	o = msgp.AppendString(o, "sy")
	o = msgp.AppendInt32(o, z.SizeY)
	o = msgp.AppendString(o, "sz")
	o = msgp.AppendInt32(o, z.SizeZ)
	o = msgp.AppendString(o, "sc")
	o = msgp.AppendInt32(o, z.SizeC)
	o = msgp.AppendString(o, "st")
	o = msgp.AppendInt32(o, z.SizeT)
	o = msgp.AppendString(o, "pixtype")
	o = msgp.AppendUint8(o, z.PixelType)
	o = msgp.AppendString(o, "endian")
	o = msgp.AppendUint8(o, z.Endianness)
	o = msgp.AppendString(o, "photometric")
	o = msgp.AppendUint8(o, z.Photometric)
	o = msgp.AppendString(o, "channels")
	o = msgp.AppendArrayHeader(o, uint32(len(z.Channels)))
	for za0001 := range z.Channels {
		o, err = z.Channels[za0001].MarshalMsg(o)
		if err != nil {
			err = msgp.WrapError(err, "Channels", za0001)
			return
		}
	}
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *pixelSetRecord) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "id":
			z.ID, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "ID")
				return
			}
		case "name":
			z.Name, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Name")
				return
			}
		case "created":
			z.Created, bts, err = msgp.ReadInt64Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Created")
				return
			}
		case "sx":
			z.SizeX, bts, err = msgp.ReadInt32Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "SizeX")
				return
			}
		case "sy":
			z.SizeY, bts, err = msgp.ReadInt32Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "SizeY")
				return
			}
		case "sz":
			z.SizeZ, bts, err = msgp.ReadInt32Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "SizeZ")
				return
			}
		case "sc":
			z.SizeC, bts, err = msgp.ReadInt32Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "SizeC")
				return
			}
		case "st":
			z.SizeT, bts, err = msgp.ReadInt32Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "SizeT")
				return
			}
		case "pixtype":
			z.PixelType, bts, err = msgp.ReadUint8Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "PixelType")
				return
			}
		case "endian":
			z.Endianness, bts, err = msgp.ReadUint8Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Endianness")
				return
			}
		case "photometric":
			z.Photometric, bts, err = msgp.ReadUint8Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Photometric")
				return
			}
		case "channels":
			var zb0002 uint32
			zb0002, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Channels")
				return
			}
			if cap(z.Channels) >= int(zb0002) {
				z.Channels = (z.Channels)[:zb0002]
			} else {
				z.Channels = make([]channelRecord, zb0002)
			}
			for za0001 := range z.Channels {
				bts, err = z.Channels[za0001].UnmarshalMsg(bts)
				if err != nil {
					err = msgp.WrapError(err, "Channels", za0001)
					return
				}
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *pixelSetRecord) Msgsize() (s int) {
	s = 1 + 3 + msgp.StringPrefixSize + len(z.ID) + 5 + msgp.StringPrefixSize + len(z.Name) + 8 + msgp.Int64Size +
		3 + msgp.Int32Size + 3 + msgp.Int32Size + 3 + msgp.Int32Size + 3 + msgp.Int32Size + 3 + msgp.Int32Size +
		8 + msgp.Uint8Size + 7 + msgp.Uint8Size + 12 + msgp.Uint8Size + 9 + msgp.ArrayHeaderSize
	for za0001 := range z.Channels {
		s += z.Channels[za0001].Msgsize()
	}
	return
}
