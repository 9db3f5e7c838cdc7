/*
Package pixels extracts 2d planes from 5d pixel sets and decodes their intensities.

An Extractor fetches one raw region from a storage.PixelBuffer per request: a single XY
plane, or the whole Z-stack of a (channel, timepoint) pair for XZ and ZY planes.  The
region is bound to a Geometry, which maps plane-local coordinates to byte offsets, and to
a Packer, which converts the stored bytes of one pixel into a float64 intensity given the
pixel type and byte order.

	ext := pixels.NewExtractor(pixels.ExtractorConfig{})
	plane, err := ext.Extract(ctx, set, buf, pixels.XZRequest(y, c, t))
	if err != nil {
		...
	}
	v, err := plane.Value(x, z)

Planes decode lazily and never cache values, so a plane is cheap to build and safe to
share among readers as long as the backing region isn't modified.
*/
package pixels
