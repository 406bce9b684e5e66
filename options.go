package fx

import (
	"github.com/gogpu/fx/internal/filter"
	"github.com/gogpu/fx/internal/parallel"
)

// Quality trades accuracy for speed. It caps the automatic filter
// resolution and selects how far blurs may downsample.
type Quality = filter.Quality

// Quality tiers, from fastest to most accurate.
const (
	QualityWorst  = filter.QualityWorst
	QualityWorse  = filter.QualityWorse
	QualityNormal = filter.QualityNormal
	QualityBetter = filter.QualityBetter
	QualityBest   = filter.QualityBest
)

// Pool runs the row loops of primitive kernels on several goroutines.
type Pool = parallel.WorkerPool

// NewPool starts a pool with the given number of workers; zero or less uses
// GOMAXPROCS. Close it when done.
func NewPool(workers int) *Pool {
	return parallel.NewWorkerPool(workers)
}

// DrawingOptions are the per-render settings supplied by the caller.
type DrawingOptions struct {
	// DeviceScale is the number of surface pixels per pb unit.
	DeviceScale float64

	BlurQuality   Quality
	FilterQuality Quality

	// Parallel enables multi-threaded kernels when Pool is set.
	Parallel bool
	Pool     *Pool

	// MaxResolution caps both filter resolution axes when positive. The
	// aspect ratio is preserved.
	MaxResolution int
}

// DefaultDrawingOptions returns the options used when none are given: unit
// scale, best quality, single-threaded.
func DefaultDrawingOptions() DrawingOptions {
	return DrawingOptions{
		DeviceScale:   1,
		BlurQuality:   QualityBest,
		FilterQuality: QualityBest,
	}
}

// pool returns the worker pool kernels should use, or nil for serial.
func (o *DrawingOptions) pool() *Pool {
	if !o.Parallel {
		return nil
	}
	return o.Pool
}

func (o *DrawingOptions) normalize() {
	if !(o.DeviceScale > 0) {
		o.DeviceScale = 1
	}
}

// Option configures a Filter during creation.
//
// Example:
//
//	f := fx.New(
//	    fx.WithRegion(fx.Pct(0), fx.Pct(0), fx.Pct(100), fx.Pct(100)),
//	    fx.WithPrimitiveUnits(fx.ObjectBoundingBox),
//	)
type Option func(*Filter)

// WithRegion sets the filter effects region.
func WithRegion(x, y, width, height Length) Option {
	return func(f *Filter) {
		f.SetRegion(x, y, width, height)
	}
}

// WithFilterUnits sets the units of the filter region.
func WithFilterUnits(u UnitType) Option {
	return func(f *Filter) {
		f.filterUnits = u
	}
}

// WithPrimitiveUnits sets the units of primitive attributes.
func WithPrimitiveUnits(u UnitType) Option {
	return func(f *Filter) {
		f.primitiveUnits = u
	}
}

// WithResolution sets an explicit filter resolution. A non-positive y takes
// its value from the region's aspect ratio.
func WithResolution(x, y float64) Option {
	return func(f *Filter) {
		f.SetResolution(x, y)
	}
}

// WithOutput selects the slot whose content the filter returns.
func WithOutput(id SlotID) Option {
	return func(f *Filter) {
		f.output = id
	}
}
