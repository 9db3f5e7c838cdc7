package dvid

import (
	"bytes"
	"testing"
)

func TestSerialization(t *testing.T) {
	data := bytes.Repeat([]byte("some plane bytes 0123456789"), 100)
	for _, compression := range []Compression{Uncompressed, Snappy} {
		for _, checksum := range []Checksum{NoChecksum, CRC32} {
			s, err := SerializeData(data, compression, checksum)
			if err != nil {
				t.Fatalf("couldn't serialize with %s, %s: %v\n", compression, checksum, err)
			}
			if len(s) == 0 {
				t.Fatalf("Bad SerializeData() - output length 0")
			}
			got, compress, err := DeserializeData(s)
			if err != nil {
				t.Fatalf("couldn't deserialize with %s, %s: %v\n", compression, checksum, err)
			}
			if compress != compression {
				t.Errorf("expected compression %s, got %s\n", compression, compress)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("round trip with %s, %s changed data\n", compression, checksum)
			}

			if checksum != NoChecksum {
				s[7] = s[7] ^ 0x04 // Flip a bit
				if _, _, err = DeserializeData(s); err == nil {
					t.Errorf("expected checksum error after flipping a bit with %s\n", compression)
				}
			}
		}
	}
}

func TestDeserializeEmpty(t *testing.T) {
	if _, _, err := DeserializeData(nil); err == nil {
		t.Errorf("expected error deserializing nil data")
	}
}
