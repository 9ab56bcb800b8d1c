package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

var (
	// ErrCorruptRange is returned when a range does not have exactly two values.
	ErrCorruptRange = errors.New("range must have exactly 2 values")

	// ErrInvertedRange is returned when a range or pair of corners has max < min.
	ErrInvertedRange = errors.New("range max must not be less than min")
)

// Axis selects the X or Y range of a bounding box
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns a string representation of the axis
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Geometry is implemented by the objects a BBox can be asked to contain.
type Geometry interface {
	bounds() (xr, yr Range, ok bool)
}

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) bounds() (Range, Range, bool) {
	return Range{Min: int(p.X), Max: int(p.X)}, Range{Min: int(p.Y), Max: int(p.Y)}, true
}

// Range is an inclusive integer interval
type Range struct {
	Min, Max int
}

// NewRange creates a range from float bounds, truncating both to int
func NewRange(min, max float64) (Range, error) {
	if max < min {
		return Range{}, fmt.Errorf("[%v,%v]: %w", min, max, ErrInvertedRange)
	}
	return Range{Min: int(min), Max: int(max)}, nil
}

// Len returns Max - Min
func (r Range) Len() int {
	return r.Max - r.Min
}

// Contains reports whether v lies within the range (inclusive)
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// ContainsRange reports whether o lies entirely within r
func (r Range) ContainsRange(o Range) bool {
	return o.Min >= r.Min && o.Max <= r.Max
}

func (r Range) interval() r1.Interval {
	return r1.Interval{Lo: float64(r.Min), Hi: float64(r.Max)}
}

func rangeFromInterval(i r1.Interval) Range {
	return Range{Min: int(i.Lo), Max: int(i.Hi)}
}

// BBox is an axis-aligned bounding box held as [[xmin,xmax],[ymin,ymax]].
// Coordinates are truncated to int when stored. Either axis may be unset,
// e.g. while a box is being accreted point by point.
//
// Mutating methods change the box in place; callers that need a modified
// box without disturbing the original should Copy it first.
type BBox struct {
	ranges [2]Range
	set    [2]bool
}

// NewBBox creates a bounding box from explicit [min, max] ranges.
// A nil range leaves that axis unset.
func NewBBox(xRange, yRange []float64) (*BBox, error) {
	b := &BBox{}
	for axis, rr := range [][]float64{xRange, yRange} {
		if rr == nil {
			continue
		}
		if len(rr) != 2 {
			return nil, fmt.Errorf("%s range %v: %w", Axis(axis), rr, ErrCorruptRange)
		}
		if err := b.SetRange(Axis(axis), rr[0], rr[1]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// MustBBox is like NewBBox but panics on error. Intended for constants and tests.
func MustBBox(xRange, yRange []float64) *BBox {
	b, err := NewBBox(xRange, yRange)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBBoxFromPoints creates a bounding box from its lower and upper corners
func NewBBoxFromPoints(min, max Point) (*BBox, error) {
	if max.X < min.X || max.Y < min.Y {
		return nil, fmt.Errorf("corners %v, %v: %w", min, max, ErrInvertedRange)
	}
	return NewBBox([]float64{min.X, max.X}, []float64{min.Y, max.Y})
}

// NewBBoxFromXYWH creates a bounding box from an origin, a width and a height
func NewBBoxFromXYWH(origin Point, width, height float64) (*BBox, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("width %v height %v: %w", width, height, ErrInvertedRange)
	}
	return NewBBox([]float64{origin.X, origin.X + width}, []float64{origin.Y, origin.Y + height})
}

// SetRange sets one axis, truncating both bounds to int
func (b *BBox) SetRange(axis Axis, min, max float64) error {
	r, err := NewRange(min, max)
	if err != nil {
		return fmt.Errorf("%s range: %w", axis, err)
	}
	b.ranges[axis] = r
	b.set[axis] = true
	return nil
}

// Range returns the range for an axis and whether it has been set
func (b *BBox) Range(axis Axis) (Range, bool) {
	if b == nil {
		return Range{}, false
	}
	return b.ranges[axis], b.set[axis]
}

// AddCoordinate grows the box so that it includes p. Unset axes are
// initialised to the point itself.
func (b *BBox) AddCoordinate(p Point) {
	for axis, v := range [2]int{int(p.X), int(p.Y)} {
		if !b.set[axis] {
			b.ranges[axis] = Range{Min: v, Max: v}
			b.set[axis] = true
			continue
		}
		if v < b.ranges[axis].Min {
			b.ranges[axis].Min = v
		}
		if v > b.ranges[axis].Max {
			b.ranges[axis].Max = v
		}
	}
}

// Copy returns an independent copy of the box
func (b *BBox) Copy() *BBox {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// IsValid returns true if both axes are set
func (b *BBox) IsValid() bool {
	return b != nil && b.set[AxisX] && b.set[AxisY]
}

// Width returns the X extent; ok is false if the X range was never set
func (b *BBox) Width() (int, bool) {
	r, ok := b.Range(AxisX)
	return r.Len(), ok
}

// Height returns the Y extent; ok is false if the Y range was never set
func (b *BBox) Height() (int, bool) {
	r, ok := b.Range(AxisY)
	return r.Len(), ok
}

// X0 returns the minimum X (0 if unset)
func (b *BBox) X0() int { return b.ranges[AxisX].Min }

// X1 returns the maximum X (0 if unset)
func (b *BBox) X1() int { return b.ranges[AxisX].Max }

// Y0 returns the minimum Y (0 if unset)
func (b *BBox) Y0() int { return b.ranges[AxisY].Min }

// Y1 returns the maximum Y (0 if unset)
func (b *BBox) Y1() int { return b.ranges[AxisY].Max }

// Area returns width * height, or 0 for a box with an unset axis
func (b *BBox) Area() int {
	if !b.IsValid() {
		return 0
	}
	return b.ranges[AxisX].Len() * b.ranges[AxisY].Len()
}

// Center returns the center point
func (b *BBox) Center() Point {
	return Point{
		X: float64(b.ranges[AxisX].Min+b.ranges[AxisX].Max) / 2,
		Y: float64(b.ranges[AxisY].Min+b.ranges[AxisY].Max) / 2,
	}
}

// Intersect returns the per-axis overlap of two boxes, or nil if either box
// has an unset axis or the boxes are disjoint on some axis.
// Boxes that only touch intersect in a zero-width range.
func (b *BBox) Intersect(other *BBox) *BBox {
	if !b.IsValid() || !other.IsValid() {
		return nil
	}
	result := &BBox{}
	for axis := AxisX; axis <= AxisY; axis++ {
		in := b.ranges[axis].interval().Intersection(other.ranges[axis].interval())
		if in.IsEmpty() {
			return nil
		}
		result.ranges[axis] = rangeFromInterval(in)
		result.set[axis] = true
	}
	return result
}

// Intersects reports whether Intersect would return a box
func (b *BBox) Intersects(other *BBox) bool {
	return b.Intersect(other) != nil
}

// Union returns the smallest box containing both boxes. An axis unset on
// one side takes the range of the other.
func (b *BBox) Union(other *BBox) *BBox {
	if b == nil {
		return other.Copy()
	}
	if other == nil {
		return b.Copy()
	}
	result := &BBox{}
	for axis := AxisX; axis <= AxisY; axis++ {
		switch {
		case b.set[axis] && other.set[axis]:
			u := b.ranges[axis].interval().Union(other.ranges[axis].interval())
			result.ranges[axis] = rangeFromInterval(u)
		case b.set[axis]:
			result.ranges[axis] = b.ranges[axis]
		case other.set[axis]:
			result.ranges[axis] = other.ranges[axis]
		default:
			continue
		}
		result.set[axis] = true
	}
	return result
}

// ContainsPoint reports whether the point lies inside the box (inclusive)
func (b *BBox) ContainsPoint(p Point) bool {
	return b.ContainsGeomObject(p)
}

// ContainsGeomObject reports whether g lies entirely inside the box.
// g may be a Point or another *BBox.
func (b *BBox) ContainsGeomObject(g Geometry) bool {
	if !b.IsValid() || g == nil {
		return false
	}
	xr, yr, ok := g.bounds()
	if !ok {
		return false
	}
	return b.ranges[AxisX].ContainsRange(xr) && b.ranges[AxisY].ContainsRange(yr)
}

func (b *BBox) bounds() (Range, Range, bool) {
	if !b.IsValid() {
		return Range{}, Range{}, false
	}
	return b.ranges[AxisX], b.ranges[AxisY], true
}

// ExpandByMargin grows both axes by margin on each side (shrinks if negative)
func (b *BBox) ExpandByMargin(margin float64) *BBox {
	return b.ExpandByMargins(margin, margin)
}

// ExpandByMargins grows the X and Y axes by separate margins
func (b *BBox) ExpandByMargins(xMargin, yMargin float64) *BBox {
	b.ChangeRange(AxisX, xMargin)
	b.ChangeRange(AxisY, yMargin)
	return b
}

// ChangeRange moves the min of one axis down by margin and the max up by
// margin. If a negative margin would leave min >= max, the range collapses
// to a 1-unit range around its midpoint. Unset axes are left alone.
func (b *BBox) ChangeRange(axis Axis, margin float64) {
	if !b.set[axis] {
		return
	}
	r := &b.ranges[axis]
	r.Min = int(float64(r.Min) - margin)
	r.Max = int(float64(r.Max) + margin)
	if r.Min >= r.Max {
		mid := float64(r.Min+r.Max) / 2
		r.Min = int(mid - 0.5)
		r.Max = int(mid + 0.5)
	}
}

// Equal reports whether two boxes have the same set axes and ranges
func (b *BBox) Equal(other *BBox) bool {
	if b == nil || other == nil {
		return b == other
	}
	return *b == *other
}

// Rect converts the box to an r2.Rect. Unset axes become empty intervals.
func (b *BBox) Rect() r2.Rect {
	rect := r2.EmptyRect()
	if b == nil {
		return rect
	}
	if b.set[AxisX] {
		rect.X = b.ranges[AxisX].interval()
	}
	if b.set[AxisY] {
		rect.Y = b.ranges[AxisY].interval()
	}
	return rect
}

// String renders the box as [[x0,x1],[y0,y1]]; unset axes print as None
func (b *BBox) String() string {
	if b == nil {
		return "None"
	}
	s := "["
	for axis := AxisX; axis <= AxisY; axis++ {
		if axis == AxisY {
			s += ","
		}
		if b.set[axis] {
			s += fmt.Sprintf("[%d,%d]", b.ranges[axis].Min, b.ranges[axis].Max)
		} else {
			s += "None"
		}
	}
	return s + "]"
}
