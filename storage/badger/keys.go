package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/twinj/uuid"
)

// Key prefixes.  Pixel set ids never contain a zero byte, so the zero byte terminates
// the id in plane keys.
const (
	versionKeyPrefix  byte = 0x01
	pixelSetKeyPrefix byte = 0x02
	planeKeyPrefix    byte = 0x03
)

// NewID returns a new random pixel set id.
func NewID() string {
	return fmt.Sprintf("%x", uuid.NewV4().Bytes())
}

func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("empty pixel set id")
	}
	if strings.IndexByte(id, 0) >= 0 {
		return fmt.Errorf("pixel set id %q contains a zero byte", id)
	}
	return nil
}

func versionKey() []byte {
	return []byte{versionKeyPrefix}
}

func pixelSetKey(id string) []byte {
	key := make([]byte, 1+len(id))
	key[0] = pixelSetKeyPrefix
	copy(key[1:], id)
	return key
}

// planePrefix returns the prefix shared by every plane key of a pixel set.
func planePrefix(id string) []byte {
	key := make([]byte, 2+len(id), 2+len(id)+12)
	key[0] = planeKeyPrefix
	copy(key[1:], id)
	return key
}

// planeKey orders planes by timepoint, channel, then z, so the planes of a Z-stack are
// contiguous.
func planeKey(id string, z, c, t int32) []byte {
	key := planePrefix(id)
	key = binary.BigEndian.AppendUint32(key, uint32(t))
	key = binary.BigEndian.AppendUint32(key, uint32(c))
	return binary.BigEndian.AppendUint32(key, uint32(z))
}
