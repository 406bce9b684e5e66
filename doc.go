// Package fx renders SVG filter effects on raster images.
//
// # Overview
//
// A Filter is an ordered chain of primitives. Each primitive reads one or
// more named images from a slot table, applies an effect (blur, composite,
// lighting, noise and so on) and writes its output back under a result
// name. The chain runs over a rendered source image and returns the
// filtered image, shaped like the source.
//
// # Quick Start
//
//	f := fx.New()
//	blur := f.AddEffect(fx.NewGaussianBlur(4, 4))
//	blur.SetOutput(f.NamedSlot("blur"))
//
//	merge := f.AddEffect(fx.NewMerge())
//	merge.SetInputAt(0, f.NamedSlot("blur"))
//	merge.SetInputAt(1, fx.SlotSourceGraphic)
//
//	bbox := fx.XYWH(0, 0, 100, 100)
//	out, err := f.Render(fx.RenderInput{
//	    Source:   src,
//	    CTM:      fx.Identity(),
//	    ItemBBox: &bbox,
//	})
//
// # Coordinate Systems
//
// Region and primitive attributes are given in user space or as fractions
// of the item's bounding box (UnitType). The chain runs in a pixel block
// (pb) space derived from the CTM and the filter resolution. When the CTM
// rotates or skews and a primitive needs axis-aligned pixels, the source is
// resampled into pb space and the result mapped back.
//
// # Color
//
// Surfaces hold premultiplied samples tagged with a color space. Every
// primitive works in its color interpolation space (linearRGB by default);
// inputs are converted on demand and the result is returned in the
// source's space.
//
// # Concurrency
//
// Pixel kernels split their rows across a Pool when DrawingOptions enables
// it. A Filter may be rendered from several goroutines at once as long as
// nobody modifies it.
package fx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
