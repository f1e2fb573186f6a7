// Package canvas defines the logical card canvas and the conversions between
// logical units and percentages of a rendered viewport.
package canvas

import (
	"fmt"
	"math"
	"strconv"
)

// Logical canvas extents. Every element position and size is stored in these units.
const (
	Width  = 300.0
	Height = 200.0
)

// DefaultFontSize is the font size, in logical pixels, used when a text element has none.
const DefaultFontSize = 16.0

// Point is a top-left anchored position in logical units.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Size is a width/height pair in logical units.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Box is an element placement expressed as percentages of the rendered viewport.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToPercent maps a logical value onto a percentage of the given axis extent.
// Values outside [0, axisExtent] are not clamped.
func ToPercent(value, axisExtent float64) float64 {
	return value / axisExtent * 100
}

// ToLogical maps a pixel value measured on a rendered viewport back to logical units.
func ToLogical(rendered, renderedExtent, axisExtent float64) float64 {
	if renderedExtent == 0 {
		return 0
	}
	return rendered / renderedExtent * axisExtent
}

// Project places a logical rectangle onto the canvas as percentages.
func Project(p Point, s Size) Box {
	return Box{
		Left:   ToPercent(p.X, Width),
		Top:    ToPercent(p.Y, Height),
		Width:  ToPercent(s.Width, Width),
		Height: ToPercent(s.Height, Height),
	}
}

// FontSizePercent scales a font size against the canvas height so text grows
// with the rendered card instead of staying at a fixed pixel size.
func FontSizePercent(px float64) float64 {
	return ToPercent(px, Height)
}

// RotateTransform renders a rotation in degrees as a CSS transform value.
func RotateTransform(degrees float64) string {
	return fmt.Sprintf("rotate(%sdeg)", strconv.FormatFloat(degrees, 'f', -1, 64))
}

// RotatedBounds returns the axis-aligned bounding box of a rectangle rotated
// about its center.
func RotatedBounds(p Point, s Size, degrees float64) (Point, Size) {
	cx, cy := p.X+s.Width/2, p.Y+s.Height/2
	m := rotateAbout(cx, cy, degrees*math.Pi/180)

	corners := [4]Point{
		{p.X, p.Y},
		{p.X + s.Width, p.Y},
		{p.X + s.Width, p.Y + s.Height},
		{p.X, p.Y + s.Height},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		q := m.apply(c)
		minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
		minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
	}
	return Point{X: minX, Y: minY}, Size{Width: maxX - minX, Height: maxY - minY}
}

// Overflows reports whether any part of the rotated rectangle lies outside the canvas.
func Overflows(p Point, s Size, degrees float64) bool {
	const eps = 1e-9
	lo, size := RotatedBounds(p, s, degrees)
	return lo.X < -eps || lo.Y < -eps ||
		lo.X+size.Width > Width+eps || lo.Y+size.Height > Height+eps
}

// affine is a 2D affine transform | a c e ; b d f ; 0 0 1 |.
type affine struct{ a, b, c, d, e, f float64 }

func (m affine) mul(n affine) affine {
	return affine{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func (m affine) apply(p Point) Point {
	return Point{X: m.a*p.X + m.c*p.Y + m.e, Y: m.b*p.X + m.d*p.Y + m.f}
}

func translate(tx, ty float64) affine { return affine{a: 1, d: 1, e: tx, f: ty} }

func rotate(rad float64) affine {
	s, c := math.Sincos(rad)
	return affine{a: c, b: s, c: -s, d: c}
}

func rotateAbout(cx, cy, rad float64) affine {
	return translate(cx, cy).mul(rotate(rad)).mul(translate(-cx, -cy))
}
