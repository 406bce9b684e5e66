package fx

import (
	"image"
	"math"
)

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle with floating point edges. X0 <= X1 and
// Y0 <= Y1 for a well-formed rectangle.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// XYWH creates a rectangle from its origin and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

// Width returns X1-X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1-Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X0, r.Y0} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return !(r.X1 > r.X0 && r.Y1 > r.Y0) }

// Transform returns the bounding box of r mapped through m.
func (r Rect) Transform(m Matrix) Rect {
	corners := [4]Point{
		m.TransformPoint(Point{r.X0, r.Y0}),
		m.TransformPoint(Point{r.X1, r.Y0}),
		m.TransformPoint(Point{r.X0, r.Y1}),
		m.TransformPoint(Point{r.X1, r.Y1}),
	}
	out := Rect{corners[0].X, corners[0].Y, corners[0].X, corners[0].Y}
	for _, c := range corners[1:] {
		out.X0 = min(out.X0, c.X)
		out.Y0 = min(out.Y0, c.Y)
		out.X1 = max(out.X1, c.X)
		out.Y1 = max(out.Y1, c.Y)
	}
	return out
}

// Intersect returns the largest rectangle inside both r and o. The result
// may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{max(r.X0, o.X0), max(r.Y0, o.Y0), min(r.X1, o.X1), min(r.Y1, o.Y1)}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{min(r.X0, o.X0), min(r.Y0, o.Y0), max(r.X1, o.X1), max(r.Y1, o.Y1)}
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X0)), int(math.Floor(r.Y0)),
		int(math.Ceil(r.X1)), int(math.Ceil(r.Y1)),
	)
}

// Round returns r with every edge rounded to the nearest integer.
func (r Rect) Round() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X0)), int(math.Round(r.Y0)),
		int(math.Round(r.X1)), int(math.Round(r.Y1)),
	)
}
