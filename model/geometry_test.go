package model

import (
	"errors"
	"math"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// Construction Tests
// ============================================================================

func TestNewBBox(t *testing.T) {
	bbox, err := NewBBox([]float64{10.9, 110.2}, []float64{20, 70.99})
	if err != nil {
		t.Fatalf("NewBBox() error = %v", err)
	}
	if got := bbox.String(); got != "[[10,110],[20,70]]" {
		t.Errorf("NewBBox() = %s, want [[10,110],[20,70]]", got)
	}
}

func TestNewBBoxErrors(t *testing.T) {
	tests := []struct {
		name   string
		xr, yr []float64
		want   error
	}{
		{"one element range", []float64{10}, []float64{0, 10}, ErrCorruptRange},
		{"three element range", []float64{0, 10}, []float64{0, 5, 10}, ErrCorruptRange},
		{"inverted x", []float64{20, 10}, []float64{0, 10}, ErrInvertedRange},
		{"inverted y", []float64{0, 10}, []float64{10, 0}, ErrInvertedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBBox(tt.xr, tt.yr)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewBBox() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewBBoxFromPoints(t *testing.T) {
	bbox, err := NewBBoxFromPoints(Point{10, 20}, Point{50, 70})
	if err != nil {
		t.Fatalf("NewBBoxFromPoints() error = %v", err)
	}
	if bbox.String() != "[[10,50],[20,70]]" {
		t.Errorf("NewBBoxFromPoints() = %s", bbox)
	}

	if _, err := NewBBoxFromPoints(Point{50, 70}, Point{10, 20}); !errors.Is(err, ErrInvertedRange) {
		t.Errorf("inverted corners: error = %v, want ErrInvertedRange", err)
	}
}

func TestNewBBoxFromXYWH(t *testing.T) {
	bbox, err := NewBBoxFromXYWH(Point{10, 20}, 30, 40)
	if err != nil {
		t.Fatalf("NewBBoxFromXYWH() error = %v", err)
	}
	w, _ := bbox.Width()
	h, _ := bbox.Height()
	if w != 30 || h != 40 {
		t.Errorf("size = %dx%d, want 30x40", w, h)
	}

	if _, err := NewBBoxFromXYWH(Point{0, 0}, -1, 5); err == nil {
		t.Error("expected error for negative width")
	}
}

func TestBBoxUnsetAxis(t *testing.T) {
	bbox, err := NewBBox([]float64{0, 10}, nil)
	if err != nil {
		t.Fatalf("NewBBox() error = %v", err)
	}
	if _, ok := bbox.Height(); ok {
		t.Error("Height() should report unset Y range")
	}
	if w, ok := bbox.Width(); !ok || w != 10 {
		t.Errorf("Width() = %d, %v; want 10, true", w, ok)
	}
	if bbox.IsValid() {
		t.Error("box with unset axis should not be valid")
	}
	if bbox.String() != "[[0,10],None]" {
		t.Errorf("String() = %s", bbox)
	}
}

func TestBBoxAddCoordinate(t *testing.T) {
	bbox := &BBox{}
	bbox.AddCoordinate(Point{10.7, 5})
	bbox.AddCoordinate(Point{3, 25.2})
	bbox.AddCoordinate(Point{7, 12})

	if bbox.String() != "[[3,10],[5,25]]" {
		t.Errorf("accreted box = %s, want [[3,10],[5,25]]", bbox)
	}
}

// ============================================================================
// Intersection / Union Tests
// ============================================================================

func TestBBoxIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b *BBox
		want string
	}{
		{"overlapping", MustBBox([]float64{0, 100}, []float64{0, 100}), MustBBox([]float64{50, 150}, []float64{50, 150}), "[[50,100],[50,100]]"},
		{"contained", MustBBox([]float64{0, 100}, []float64{0, 100}), MustBBox([]float64{10, 20}, []float64{30, 40}), "[[10,20],[30,40]]"},
		{"touching", MustBBox([]float64{0, 10}, []float64{0, 10}), MustBBox([]float64{10, 20}, []float64{0, 10}), "[[10,10],[0,10]]"},
		{"disjoint x", MustBBox([]float64{0, 10}, []float64{0, 10}), MustBBox([]float64{20, 30}, []float64{0, 10}), "None"},
		{"disjoint y", MustBBox([]float64{0, 10}, []float64{0, 10}), MustBBox([]float64{0, 10}, []float64{20, 30}), "None"},
		{"unset axis", MustBBox([]float64{0, 10}, nil), MustBBox([]float64{0, 10}, []float64{0, 10}), "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := tt.a.Intersect(tt.b)
			ba := tt.b.Intersect(tt.a)
			if ab.String() != tt.want {
				t.Errorf("a.Intersect(b) = %s, want %s", ab, tt.want)
			}
			if !ab.Equal(ba) {
				t.Errorf("intersection not symmetric: %s vs %s", ab, ba)
			}
		})
	}
}

func TestBBoxIntersectNilIffDisjoint(t *testing.T) {
	boxes := []*BBox{
		MustBBox([]float64{0, 10}, []float64{0, 10}),
		MustBBox([]float64{5, 15}, []float64{5, 15}),
		MustBBox([]float64{11, 20}, []float64{0, 10}),
		MustBBox([]float64{0, 10}, []float64{10, 30}),
		MustBBox([]float64{-5, 2}, []float64{-5, 2}),
	}

	for i, a := range boxes {
		for j, b := range boxes {
			xa, _ := a.Range(AxisX)
			ya, _ := a.Range(AxisY)
			xb, _ := b.Range(AxisX)
			yb, _ := b.Range(AxisY)
			disjoint := xa.Max < xb.Min || xb.Max < xa.Min || ya.Max < yb.Min || yb.Max < ya.Min
			if (a.Intersect(b) == nil) != disjoint {
				t.Errorf("boxes %d,%d: Intersect nil = %v, disjoint = %v", i, j, a.Intersect(b) == nil, disjoint)
			}
		}
	}
}

func TestBBoxUnion(t *testing.T) {
	a := MustBBox([]float64{0, 50}, []float64{0, 50})
	b := MustBBox([]float64{25, 100}, []float64{-10, 30})
	u := a.Union(b)

	if u.String() != "[[0,100],[-10,50]]" {
		t.Errorf("Union() = %s, want [[0,100],[-10,50]]", u)
	}
	if !u.ContainsGeomObject(a) || !u.ContainsGeomObject(b) {
		t.Error("union should contain both inputs")
	}
}

func TestBBoxUnionUnsetAxis(t *testing.T) {
	a := MustBBox([]float64{0, 10}, nil)
	b := MustBBox([]float64{5, 20}, []float64{3, 4})
	u := a.Union(b)

	if u.String() != "[[0,20],[3,4]]" {
		t.Errorf("Union() = %s, want [[0,20],[3,4]]", u)
	}
	if got := (*BBox)(nil).Union(b); !got.Equal(b) {
		t.Errorf("nil.Union(b) = %s", got)
	}
}

// ============================================================================
// Containment Tests
// ============================================================================

func TestBBoxContains(t *testing.T) {
	bbox := MustBBox([]float64{10, 110}, []float64{20, 70})

	tests := []struct {
		name string
		geom Geometry
		want bool
	}{
		{"inside point", Point{50, 50}, true},
		{"corner point", Point{10, 20}, true},
		{"outside point", Point{5, 50}, false},
		{"inner box", MustBBox([]float64{20, 30}, []float64{30, 40}), true},
		{"same box", bbox.Copy(), true},
		{"overhanging box", MustBBox([]float64{100, 120}, []float64{30, 40}), false},
		{"unset box", MustBBox([]float64{20, 30}, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.ContainsGeomObject(tt.geom); got != tt.want {
				t.Errorf("ContainsGeomObject() = %v, want %v", got, tt.want)
			}
		})
	}

	if !bbox.ContainsPoint(Point{110, 70}) {
		t.Error("ContainsPoint should be inclusive of the max corner")
	}
}

// ============================================================================
// Margin Tests
// ============================================================================

func TestBBoxExpandByMarginRoundTrip(t *testing.T) {
	for _, m := range []float64{-4, -1, 0, 1, 5, 20} {
		orig := MustBBox([]float64{100, 120}, []float64{50, 60})
		b := orig.Copy().ExpandByMargin(m)
		b.ChangeRange(AxisX, -m)
		b.ChangeRange(AxisY, -m)

		ow, _ := orig.Width()
		oh, _ := orig.Height()
		w, _ := b.Width()
		h, _ := b.Height()
		if w != ow || h != oh {
			t.Errorf("margin %v: round trip size %dx%d, want %dx%d", m, w, h, ow, oh)
		}
	}
}

func TestBBoxExpandByMarginInversion(t *testing.T) {
	// A shrink of at least half the extent collapses the range to one unit
	b := MustBBox([]float64{10, 20}, []float64{0, 100})
	b.ExpandByMargin(-5)

	x, _ := b.Range(AxisX)
	if x.Min != 14 || x.Max != 15 {
		t.Errorf("collapsed x range = %v, want {14 15}", x)
	}
	y, _ := b.Range(AxisY)
	if y.Min != 5 || y.Max != 95 {
		t.Errorf("y range = %v, want {5 95}", y)
	}

	b = MustBBox([]float64{10, 20}, []float64{0, 100})
	b.ExpandByMargins(-30, 0)
	if w, _ := b.Width(); w != 1 {
		t.Errorf("over-shrunk width = %d, want 1", w)
	}
}

func TestBBoxCopyIsIndependent(t *testing.T) {
	orig := MustBBox([]float64{0, 10}, []float64{0, 10})
	c := orig.Copy()
	c.ExpandByMargins(20, 0)

	if orig.String() != "[[0,10],[0,10]]" {
		t.Errorf("original mutated: %s", orig)
	}
	if c.String() != "[[-20,30],[0,10]]" {
		t.Errorf("copy = %s, want [[-20,30],[0,10]]", c)
	}
}

func TestBBoxRect(t *testing.T) {
	r := MustBBox([]float64{1, 5}, []float64{2, 8}).Rect()
	if r.X.Lo != 1 || r.X.Hi != 5 || r.Y.Lo != 2 || r.Y.Hi != 8 {
		t.Errorf("Rect() = %v", r)
	}
	if !MustBBox([]float64{1, 5}, nil).Rect().Y.IsEmpty() {
		t.Error("unset axis should convert to an empty interval")
	}
}

func TestBBoxCenterAndArea(t *testing.T) {
	b := MustBBox([]float64{0, 100}, []float64{0, 50})
	if c := b.Center(); c.X != 50 || c.Y != 25 {
		t.Errorf("Center() = %v, want {50 25}", c)
	}
	if a := b.Area(); a != 5000 {
		t.Errorf("Area() = %d, want 5000", a)
	}
}
