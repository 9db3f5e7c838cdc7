package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/janelia-flyem/dvidplane/datatype/pixels"
	"github.com/janelia-flyem/dvidplane/dvid"
)

func TestPlaneRequest(t *testing.T) {
	tests := []struct {
		shape string
		want  pixels.PlaneRequest
	}{
		{"xy", pixels.XYRequest(4, 1, 2)},
		{"XZ", pixels.XZRequest(4, 1, 2)},
		{"zy", pixels.ZYRequest(4, 1, 2)},
		{"yz", pixels.ZYRequest(4, 1, 2)},
		{"0,2", pixels.XZRequest(4, 1, 2)},
	}
	for _, tc := range tests {
		got, err := planeRequest(tc.shape, 4, 1, 2)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("shape %q: expected %s, got %s\n", tc.shape, tc.want, got)
		}
	}
	if _, err := planeRequest("xx", 0, 0, 0); err == nil {
		t.Errorf("expected error for unknown shape\n")
	}
}

func testPlane(t *testing.T) *pixels.Plane {
	geom, err := pixels.NewGeometry(dvid.XY, 3, 2, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	plane, err := pixels.NewPlane([]byte{1, 2, 3, 4, 5, 250}, geom, dvid.T_uint8, dvid.BigEndian, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	return plane
}

func TestWritePlane(t *testing.T) {
	var buf bytes.Buffer
	if err := writePlane(&buf, testPlane(t)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1 2 3\n4 5 250\n" {
		t.Errorf("bad text output:\n%s", buf.String())
	}

	buf.Reset()
	if err := writePlaneJSON(&buf, testPlane(t)); err != nil {
		t.Fatal(err)
	}
	expected := `{"shape":"xy","pixel_type":"uint8","width":3,"height":2,"values":[1,2,3,4,5,250]}`
	if strings.TrimSpace(buf.String()) != expected {
		t.Errorf("expected %s, got %s\n", expected, buf.String())
	}
}
