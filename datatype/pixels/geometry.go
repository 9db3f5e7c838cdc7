package pixels

import (
	"fmt"

	"github.com/janelia-flyem/dvidplane/dvid"
)

// Geometry maps plane-local coordinates (x1, x2) to a byte offset within a region.
// Regions are XY slices stacked along Z, each slice row-major with X fastest.  An XY
// geometry addresses a single slice; XZ and ZY geometries address a whole Z-stack with
// one axis fixed, so no transposed copy of the stack is needed.
type Geometry struct {
	shape         dvid.Orientation
	sizeX, sizeY  int
	fixed         int // Y for XZ, X for ZY
	bytesPerPixel int
}

type offsetFunc func(g *Geometry, x1, x2 int32) int

var offsetFuncs = [...]offsetFunc{
	dvid.XY: func(g *Geometry, x, y int32) int {
		return g.bytesPerPixel * (g.sizeX*int(y) + int(x))
	},
	dvid.XZ: func(g *Geometry, x, z int32) int {
		return g.bytesPerPixel * (int(z)*g.sizeX*g.sizeY + g.sizeX*g.fixed + int(x))
	},
	dvid.ZY: func(g *Geometry, z, y int32) int {
		return g.bytesPerPixel * (int(z)*g.sizeX*g.sizeY + g.sizeX*int(y) + g.fixed)
	},
}

// NewGeometry returns the geometry for an orientation over a volume sizeX wide and
// sizeY high.  The fixed coordinate is Y for XZ planes, X for ZY planes, and ignored
// for XY planes.
func NewGeometry(shape dvid.Orientation, sizeX, sizeY, fixed int32, bytesPerPixel int) (*Geometry, error) {
	if int(shape) >= len(offsetFuncs) {
		return nil, fmt.Errorf("no geometry for orientation %s", shape)
	}
	if sizeX <= 0 || sizeY <= 0 {
		return nil, fmt.Errorf("%w: geometry of size %d x %d", dvid.ErrDegeneratePixelSet, sizeX, sizeY)
	}
	switch bytesPerPixel {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%w: %d bytes/pixel", dvid.ErrUnsupportedPixelType, bytesPerPixel)
	}
	switch shape {
	case dvid.XZ:
		if err := dvid.CheckCoordinate("fixedY", fixed, sizeY); err != nil {
			return nil, err
		}
	case dvid.ZY:
		if err := dvid.CheckCoordinate("fixedX", fixed, sizeX); err != nil {
			return nil, err
		}
	default:
		fixed = 0
	}
	return &Geometry{
		shape:         shape,
		sizeX:         int(sizeX),
		sizeY:         int(sizeY),
		fixed:         int(fixed),
		bytesPerPixel: bytesPerPixel,
	}, nil
}

// Offset returns the byte offset of (x1, x2).  No bounds checking is done here;
// see Plane.Value.
func (g *Geometry) Offset(x1, x2 int32) int {
	return offsetFuncs[g.shape](g, x1, x2)
}

// Shape returns the orientation of the geometry.
func (g *Geometry) Shape() dvid.Orientation {
	return g.shape
}

// BytesPerPixel returns the pixel width the offsets are computed with.
func (g *Geometry) BytesPerPixel() int {
	return g.bytesPerPixel
}

func (g *Geometry) String() string {
	switch g.shape {
	case dvid.XZ:
		return fmt.Sprintf("%s at y = %d over %d x %d", g.shape, g.fixed, g.sizeX, g.sizeY)
	case dvid.ZY:
		return fmt.Sprintf("%s at x = %d over %d x %d", g.shape, g.fixed, g.sizeX, g.sizeY)
	default:
		return fmt.Sprintf("%s over %d x %d", g.shape, g.sizeX, g.sizeY)
	}
}
