package badger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/storage"
)

func openTestStore(t *testing.T) *Store {
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("unable to open in-memory badger: %v\n", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("error closing store: %v\n", err)
		}
	})
	return s
}

func testSet() *dvid.PixelSet {
	return &dvid.PixelSet{
		SizeX: 4, SizeY: 3, SizeZ: 2, SizeC: 2, SizeT: 1,
		PixelType:   dvid.T_uint16,
		Endianness:  dvid.LittleEndian,
		Photometric: dvid.RGBPhotometric,
		Channels: []dvid.ChannelStats{
			{GlobalMin: 1, GlobalMax: 2, Info: dvid.ChannelInfo{Name: "GFP", EmissionWavelength: 509}},
			{GlobalMin: -1, GlobalMax: 100.5},
		},
	}
}

func TestPixelSetMetadata(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := testSet()
	id, err := s.PutPixelSet(ctx, "sample", set)
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex digit id, got %q\n", id)
	}
	got, err := s.PixelSet(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != set.String() || got.Photometric != set.Photometric || got.Endianness != set.Endianness {
		t.Errorf("expected %s, got %s\n", set, got)
	}
	for i := range set.Channels {
		if got.Channels[i] != set.Channels[i] {
			t.Errorf("channel %d: expected %+v, got %+v\n", i, set.Channels[i], got.Channels[i])
		}
	}

	if _, err := s.PixelSet(ctx, NewID()); !errors.Is(err, ErrPixelSetNotFound) {
		t.Errorf("expected not found for unknown id, got %v\n", err)
	}

	updated := set.Duplicate()
	updated.Channels[1].GlobalMax = 7
	if err := s.UpdatePixelSet(ctx, id, updated); err != nil {
		t.Fatal(err)
	}
	got, _ = s.PixelSet(ctx, id)
	if got.Channels[1].GlobalMax != 7 {
		t.Errorf("update not stored: %+v\n", got.Channels[1])
	}
	resized := set.Duplicate()
	resized.SizeZ = 9
	if err := s.UpdatePixelSet(ctx, id, resized); err == nil {
		t.Errorf("expected error changing pixel set layout\n")
	}
	reordered := set.Duplicate()
	reordered.Endianness = dvid.BigEndian
	if err := s.UpdatePixelSet(ctx, id, reordered); err == nil {
		t.Errorf("expected error changing byte order of stored planes\n")
	}
	got, _ = s.PixelSet(ctx, id)
	if got.Endianness != dvid.LittleEndian {
		t.Errorf("stored byte order changed to %s\n", got.Endianness)
	}

	degenerate := set.Duplicate()
	degenerate.SizeC = 0
	degenerate.Channels = nil
	if _, err := s.PutPixelSet(ctx, "bad", degenerate); !errors.Is(err, dvid.ErrDegeneratePixelSet) {
		t.Errorf("expected degenerate pixel set, got %v\n", err)
	}

	id2, err := s.PutPixelSet(ctx, "second", set)
	if err != nil {
		t.Fatal(err)
	}
	infos, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 pixel sets, got %d\n", len(infos))
	}
	names := map[string]string{}
	for _, info := range infos {
		names[info.ID] = info.Name
	}
	if names[id] != "sample" || names[id2] != "second" {
		t.Errorf("bad listing: %v\n", names)
	}
}

func TestStoredPlanes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := testSet()
	id, err := s.PutPixelSet(ctx, "planes", set)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := s.Buffer(ctx, id)
	if err != nil {
		t.Fatal(err)
	}

	// fill an in-memory copy and import it through CopyPlanes
	src, err := storage.NewMemoryBuffer(set, nil)
	if err != nil {
		t.Fatal(err)
	}
	for z := int32(0); z < set.SizeZ; z++ {
		for c := int32(0); c < set.SizeC; c++ {
			plane := make([]byte, 24)
			for i := range plane {
				plane[i] = byte(int(z)*100 + int(c)*50 + i)
			}
			if err := src.PutPlane(ctx, z, c, 0, plane); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := storage.CopyPlanes(ctx, set, src, buf); err != nil {
		t.Fatal(err)
	}

	for c := int32(0); c < set.SizeC; c++ {
		expected, _ := src.GetStack(ctx, c, 0)
		got, err := buf.GetStack(ctx, c, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, expected) {
			t.Errorf("stack for channel %d differs from source\n", c)
		}
		expected, _ = src.GetPlane(ctx, 1, c, 0)
		got, err = buf.GetPlane(ctx, 1, c, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, expected) {
			t.Errorf("plane z=1 for channel %d differs from source\n", c)
		}
	}

	if _, err := buf.GetPlane(ctx, 2, 0, 0); !errors.Is(err, dvid.ErrInvalidCoordinate) {
		t.Errorf("expected invalid coordinate for z=2, got %v\n", err)
	}
	if err := s.PutPlane(ctx, id, 0, 0, 0, make([]byte, 23)); !errors.Is(err, dvid.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch for short plane, got %v\n", err)
	}

	// a pixel set without planes can't serve stacks
	empty, err := s.PutPixelSet(ctx, "empty", set)
	if err != nil {
		t.Fatal(err)
	}
	emptyBuf, err := s.Buffer(ctx, empty)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := emptyBuf.GetStack(ctx, 0, 0); err == nil {
		t.Errorf("expected error reading unstored stack\n")
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Buffer(ctx, id); !errors.Is(err, ErrPixelSetNotFound) {
		t.Errorf("expected deleted pixel set to be gone, got %v\n", err)
	}
	if _, err := buf.GetPlane(ctx, 0, 0, 0); err == nil {
		t.Errorf("expected planes to be deleted\n")
	}
}

func TestFormatVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	ver, err := s.Version()
	if err != nil {
		t.Fatal(err)
	}
	if !ver.Equals(FormatVersion) {
		t.Errorf("expected version %s, got %s\n", FormatVersion, ver)
	}
	id, err := s.PutPixelSet(context.Background(), "persisted", testSet())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("unable to reopen store: %v\n", err)
	}
	defer s.Close()
	if _, err := s.PixelSet(context.Background(), id); err != nil {
		t.Errorf("pixel set not persisted: %v\n", err)
	}
}

func TestBadIDs(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.PixelSet(context.Background(), ""); err == nil {
		t.Errorf("expected error for empty id\n")
	}
	if _, err := s.PixelSet(context.Background(), "a\x00b"); err == nil {
		t.Errorf("expected error for id with zero byte\n")
	}
	if _, err := Open(Config{}); err == nil {
		t.Errorf("expected error opening store without path\n")
	}
}
