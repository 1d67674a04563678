package model

import (
	"math"

	"github.com/tsawler/fixedsom/internal/jsonx"
	"golang.org/x/image/math/f64"
)

// Point represents a 2D point in page space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle in page space. Y grows downward, so Top
// is the smaller Y value. The zero value is a zero-sized rectangle at the
// origin; use EmptyRect for "no area at all".
type Rect struct {
	X      float64 `json:"x"` // Left
	Y      float64 `json:"y"` // Top
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a rectangle from its four edges. Edges given in the wrong
// order are swapped.
func NewRect(left, top, right, bottom float64) Rect {
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// NewRectFromPoints creates a rectangle spanning two points
func NewRectFromPoints(p1, p2 Point) Rect {
	return NewRect(p1.X, p1.Y, p2.X, p2.Y)
}

// EmptyRect returns the empty rectangle. It contains nothing and is the
// identity element of Union.
func EmptyRect() Rect {
	return Rect{
		X:      math.Inf(1),
		Y:      math.Inf(1),
		Width:  math.Inf(-1),
		Height: math.Inf(-1),
	}
}

// IsEmpty reports whether r is the empty rectangle
func (r Rect) IsEmpty() bool {
	return r.Width < 0 || r.Height < 0
}

// Left returns the left edge X coordinate
func (r Rect) Left() float64 {
	return r.X
}

// Top returns the top edge Y coordinate
func (r Rect) Top() float64 {
	return r.Y
}

// Right returns the right edge X coordinate
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Area returns the area of the rectangle, 0 when empty
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains checks if a point is inside the rectangle (edges inclusive)
func (r Rect) Contains(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// ContainsRect checks if other lies entirely inside r (edges inclusive)
func (r Rect) ContainsRect(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Left() <= other.Left() && r.Top() <= other.Top() &&
		r.Right() >= other.Right() && r.Bottom() >= other.Bottom()
}

// Intersects checks if two rectangles intersect
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return !(r.Right() < other.Left() ||
		r.Left() > other.Right() ||
		r.Bottom() < other.Top() ||
		r.Top() > other.Bottom())
}

// Intersection returns the intersection of two rectangles
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return EmptyRect()
	}
	return NewRect(
		math.Max(r.Left(), other.Left()),
		math.Max(r.Top(), other.Top()),
		math.Min(r.Right(), other.Right()),
		math.Min(r.Bottom(), other.Bottom()),
	)
}

// Union returns the smallest rectangle containing both rectangles
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return NewRect(
		math.Min(r.Left(), other.Left()),
		math.Min(r.Top(), other.Top()),
		math.Max(r.Right(), other.Right()),
		math.Max(r.Bottom(), other.Bottom()),
	)
}

// Inflate grows the rectangle by dx on the left and right and by dy on the
// top and bottom. Negative values deflate; a rectangle deflated past zero
// size becomes empty.
func (r Rect) Inflate(dx, dy float64) Rect {
	if r.IsEmpty() {
		return r
	}
	width := r.Width + 2*dx
	height := r.Height + 2*dy
	if width < 0 || height < 0 {
		return EmptyRect()
	}
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: width, Height: height}
}

// Matrix is a 2D affine transform stored in the row-major layout of
// f64.Aff3: x' = m[0]*x + m[1]*y + m[2], y' = m[3]*x + m[4]*y + m[5].
type Matrix f64.Aff3

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0}
}

// NewMatrix builds a matrix from the render-transform convention used by
// fixed page markup: "m11,m12,m21,m22,offsetX,offsetY".
func NewMatrix(m11, m12, m21, m22, offsetX, offsetY float64) Matrix {
	return Matrix{m11, m21, offsetX, m12, m22, offsetY}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, tx, 0, 1, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, 0, sy, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, -sin, 0, sin, cos, 0}
}

// IsZero reports whether every coefficient is 0. Input primitives use the
// zero matrix to mean "no transform".
func (m Matrix) IsZero() bool {
	return m == Matrix{}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// OrIdentity returns m, or the identity matrix when m is zero
func (m Matrix) OrIdentity() Matrix {
	if m.IsZero() {
		return Identity()
	}
	return m
}

// Aff3 returns the matrix as an f64.Aff3
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3(m)
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// TransformRect returns the axis-aligned bounds of r after transformation
func (m Matrix) TransformRect(r Rect) Rect {
	if r.IsEmpty() {
		return r
	}
	corners := [4]Point{
		m.Transform(Point{r.Left(), r.Top()}),
		m.Transform(Point{r.Right(), r.Top()}),
		m.Transform(Point{r.Left(), r.Bottom()}),
		m.Transform(Point{r.Right(), r.Bottom()}),
	}
	out := EmptyRect()
	for _, c := range corners {
		out = out.Union(Rect{X: c.X, Y: c.Y})
	}
	return out
}

// Multiply returns the matrix that applies m first and then other
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		other[0]*m[0] + other[1]*m[3],
		other[0]*m[1] + other[1]*m[4],
		other[0]*m[2] + other[1]*m[5] + other[2],
		other[3]*m[0] + other[4]*m[3],
		other[3]*m[1] + other[4]*m[4],
		other[3]*m[2] + other[4]*m[5] + other[5],
	}
}

// WithoutOffset returns the rotation/scale part of m with the translation
// zeroed. Text lines that share this matrix are laid out along the same axis.
func (m Matrix) WithoutOffset() Matrix {
	m[2], m[5] = 0, 0
	return m
}

// Offset returns the translation part of m
func (m Matrix) Offset() Point {
	return Point{X: m[2], Y: m[5]}
}

// MarshalJSON encodes the matrix in render-transform order
func (m Matrix) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal([6]float64{m[0], m[3], m[1], m[4], m[2], m[5]})
}

// UnmarshalJSON decodes a matrix given in render-transform order
// ([m11, m12, m21, m22, offsetX, offsetY]).
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var v [6]float64
	if err := jsonx.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5])
	return nil
}
