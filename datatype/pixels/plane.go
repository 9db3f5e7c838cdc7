package pixels

import (
	"fmt"

	"github.com/janelia-flyem/dvidplane/dvid"
)

// Plane is a read-only 2d view into a raw region.  Unless the extractor was configured to
// copy regions, the plane borrows the slice returned by the storage backend and must not
// be used after the backend may have reused or released it.  Every Value call re-reads
// and re-decodes from the region.
type Plane struct {
	region []byte
	geom   *Geometry
	pack   Packer

	pixelType     dvid.PixelType
	bytesPerPixel int
	kind          NumericKind

	// plane-local dimensions along x1 and x2.
	size1, size2 int32
}

// NewPlane binds a region to a geometry and the decoder for a pixel type.  The region
// length is checked against the plane-local dimensions so every valid coordinate is
// addressable.
func NewPlane(region []byte, geom *Geometry, t dvid.PixelType, order dvid.Endianness, size1, size2 int32) (*Plane, error) {
	bytesPerPixel, kind, _, err := Layout(t)
	if err != nil {
		return nil, err
	}
	if bytesPerPixel != geom.BytesPerPixel() {
		return nil, fmt.Errorf("geometry uses %d bytes/pixel but %s needs %d", geom.BytesPerPixel(), t, bytesPerPixel)
	}
	pack, err := NewPacker(t, order)
	if err != nil {
		return nil, err
	}
	if size1 <= 0 || size2 <= 0 {
		return nil, fmt.Errorf("%w: plane of size %d x %d", dvid.ErrDegeneratePixelSet, size1, size2)
	}
	p := &Plane{
		region:        region,
		geom:          geom,
		pack:          pack,
		pixelType:     t,
		bytesPerPixel: bytesPerPixel,
		kind:          kind,
		size1:         size1,
		size2:         size2,
	}
	if last := geom.Offset(size1-1, size2-1); last+bytesPerPixel > len(region) {
		return nil, &dvid.DimensionError{What: geom.String(), Expected: last + bytesPerPixel, Got: len(region)}
	}
	return p, nil
}

// Value returns the intensity at plane-local (x1, x2).  For XY planes that is (x, y),
// for XZ (x, z), and for ZY (z, y).
func (p *Plane) Value(x1, x2 int32) (float64, error) {
	name1, name2 := p.geom.Shape().AxisNames()
	if err := dvid.CheckCoordinate(name1, x1, p.size1); err != nil {
		return 0, err
	}
	if err := dvid.CheckCoordinate(name2, x2, p.size2); err != nil {
		return 0, err
	}
	return p.pack(p.region, p.geom.Offset(x1, x2), p.bytesPerPixel), nil
}

// Values decodes the whole plane with x1 varying fastest.
func (p *Plane) Values() []float64 {
	values := make([]float64, int(p.size1)*int(p.size2))
	var i int
	for x2 := int32(0); x2 < p.size2; x2++ {
		for x1 := int32(0); x1 < p.size1; x1++ {
			values[i] = p.pack(p.region, p.geom.Offset(x1, x2), p.bytesPerPixel)
			i++
		}
	}
	return values
}

// Size returns the plane-local dimensions.
func (p *Plane) Size() (int32, int32) {
	return p.size1, p.size2
}

// Shape returns the plane orientation.
func (p *Plane) Shape() dvid.Orientation {
	return p.geom.Shape()
}

func (p *Plane) PixelType() dvid.PixelType {
	return p.pixelType
}

func (p *Plane) BytesPerPixel() int {
	return p.bytesPerPixel
}

func (p *Plane) Kind() NumericKind {
	return p.kind
}

func (p *Plane) String() string {
	return fmt.Sprintf("%s plane %d x %d (%s)", p.pixelType, p.size1, p.size2, p.geom)
}
