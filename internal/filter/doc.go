// Package filter implements the pixel filters behind SVG filter primitives.
//
// Every filter works on image.Surface buffers holding premultiplied samples:
//   - Gaussian blur (IIR for large deviations, FIR for small ones)
//   - Composite (Porter-Duff operators and arithmetic)
//   - Blend modes, color matrix, component transfer
//   - Morphology, convolve matrix, displacement map
//   - Diffuse and specular lighting
//   - Turbulence noise
//   - Tile, offset and merge helpers
//
// Row-parallel filters take a *parallel.WorkerPool; a nil pool runs them on
// the calling goroutine. Filters never fail: malformed parameters degrade to
// an identity or transparent result and are logged at warn level.
package filter
