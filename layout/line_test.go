package layout

import (
	"testing"

	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/text"
)

// makeSpan creates a test span; the box is [[x0,x1],[y-size,y]]
func makeSpan(t *testing.T, content string, x0, x1, y, size float64) *text.TextSpan {
	t.Helper()
	span, err := text.NewTextSpan(x0, x1, y, &text.TextStyle{FontFamily: "Times", FontSize: size}, content)
	if err != nil {
		t.Fatalf("NewTextSpan(%q): %v", content, err)
	}
	return span
}

func TestLineDetector_EmptySpans(t *testing.T) {
	detector := NewLineDetector()
	layout := detector.Detect(nil)

	if layout == nil {
		t.Fatal("Expected non-nil layout")
	}
	if layout.LineCount() != 0 {
		t.Errorf("Expected 0 lines, got %d", layout.LineCount())
	}
}

func TestLineDetector_SingleSpan(t *testing.T) {
	detector := NewLineDetector()
	layout := detector.Detect([]*text.TextSpan{makeSpan(t, "Hello", 100, 130, 100, 12)})

	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}
	line := layout.GetLine(0)
	if line.Text() != "Hello" {
		t.Errorf("Expected 'Hello', got '%s'", line.Text())
	}
	if line.Index != 0 {
		t.Errorf("Expected index 0, got %d", line.Index)
	}
}

func TestLineDetector_MergesWithinXMargin(t *testing.T) {
	detector := NewLineDetector()
	spans := []*text.TextSpan{
		makeSpan(t, "Hello", 100, 130, 100, 12),
		makeSpan(t, " World", 145, 180, 100.5, 12), // gap 15 < 20
	}

	layout := detector.Detect(spans)

	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 line, got %d", layout.LineCount())
	}
	line := layout.GetLine(0)
	if line.Text() != "Hello World" {
		t.Errorf("Expected 'Hello World', got '%s'", line.Text())
	}
	if line.BBox.String() != "[[100,180],[88,100]]" {
		t.Errorf("line bbox = %s", line.BBox)
	}
}

func TestLineDetector_GapBeyondXMargin(t *testing.T) {
	detector := NewLineDetector()
	spans := []*text.TextSpan{
		makeSpan(t, "Left", 100, 130, 100, 12),
		makeSpan(t, "Right", 200, 240, 100, 12), // gap 70 > 20
	}

	layout := detector.Detect(spans)

	if layout.LineCount() != 2 {
		t.Errorf("Expected 2 lines, got %d", layout.LineCount())
	}
}

func TestLineDetector_CustomXMargin(t *testing.T) {
	detector := NewLineDetectorWithConfig(LineConfig{XMargin: 80, ScriptSizeRatio: 0.9})
	spans := []*text.TextSpan{
		makeSpan(t, "Left", 100, 130, 100, 12),
		makeSpan(t, "Right", 200, 240, 100, 12),
	}

	layout := detector.Detect(spans)

	if layout.LineCount() != 1 {
		t.Errorf("Expected 1 line with wide margin, got %d", layout.LineCount())
	}
	if layout.Config.XMargin != 80 {
		t.Errorf("Config not recorded: %+v", layout.Config)
	}
}

func TestLineDetector_MultipleLines(t *testing.T) {
	detector := NewLineDetector()
	spans := []*text.TextSpan{
		makeSpan(t, "Line one", 100, 160, 100, 12),
		makeSpan(t, "Line two", 100, 160, 115, 12),
		makeSpan(t, "Line three", 100, 170, 130, 12),
	}

	layout := detector.Detect(spans)

	if layout.LineCount() != 3 {
		t.Fatalf("Expected 3 lines, got %d", layout.LineCount())
	}
	expected := []string{"Line one", "Line two", "Line three"}
	for i, want := range expected {
		if got := layout.GetLine(i).Text(); got != want {
			t.Errorf("Line %d: expected '%s', got '%s'", i, want, got)
		}
		if layout.GetLine(i).Index != i {
			t.Errorf("Line %d has index %d", i, layout.GetLine(i).Index)
		}
	}
	if layout.GetText() != "Line one\nLine two\nLine three" {
		t.Errorf("GetText() = %q", layout.GetText())
	}
}

func TestLineDetector_SecondPassMerge(t *testing.T) {
	// "b" is far from "a" so it starts a new line, then "c" bridges the two
	// horizontally. The second pass must fold the lines back together.
	detector := NewLineDetector()
	spans := []*text.TextSpan{
		makeSpan(t, "a", 100, 110, 100, 12),
		makeSpan(t, "c", 300, 310, 100, 12),
		makeSpan(t, "b", 105, 305, 101, 12),
	}

	layout := detector.Detect(spans)

	if layout.LineCount() != 1 {
		t.Fatalf("Expected 1 merged line, got %d", layout.LineCount())
	}
	if got := layout.GetLine(0).Text(); got != "abc" {
		t.Errorf("spans should be re-sorted by X, got %q", got)
	}
	if layout.Passes < 2 {
		t.Errorf("expected at least 2 passes, got %d", layout.Passes)
	}
}

func TestMergeCompositeLines_FixedPoint(t *testing.T) {
	lines := []*CompositeLine{
		NewCompositeLine(makeSpan(t, "x", 0, 10, 100, 12)),
		NewCompositeLine(makeSpan(t, "y", 5, 15, 105, 12)),
		NewCompositeLine(makeSpan(t, "z", 12, 20, 110, 12)),
		NewCompositeLine(makeSpan(t, "far", 0, 10, 300, 12)),
	}

	merged, passes := MergeCompositeLines(lines)

	if len(merged) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(merged))
	}
	if merged[0].Text() != "xyz" {
		t.Errorf("first line = %q, want xyz", merged[0].Text())
	}
	if passes < 1 {
		t.Errorf("passes = %d", passes)
	}

	again, _ := MergeCompositeLines(merged)
	if len(again) != 2 {
		t.Errorf("merge should be idempotent, got %d lines", len(again))
	}
}

func TestLineDetector_SkipsInvalidSpans(t *testing.T) {
	detector := NewLineDetector()
	spans := []*text.TextSpan{
		nil,
		{Content: "no box", BBox: &model.BBox{}},
		makeSpan(t, "ok", 100, 110, 100, 12),
	}

	layout := detector.Detect(spans)
	if layout.LineCount() != 1 || layout.GetLine(0).Text() != "ok" {
		t.Errorf("expected only the valid span, got %q", layout.GetText())
	}
}

func TestLineLayout_FindLinesInRegion(t *testing.T) {
	detector := NewLineDetector()
	layout := detector.Detect([]*text.TextSpan{
		makeSpan(t, "top", 100, 160, 100, 12),
		makeSpan(t, "bottom", 100, 160, 400, 12),
	})

	region := model.MustBBox([]float64{0, 500}, []float64{350, 450})
	found := layout.FindLinesInRegion(region)
	if len(found) != 1 || found[0].Text() != "bottom" {
		t.Errorf("FindLinesInRegion() = %v", found)
	}
}

func TestLineLayout_NilSafety(t *testing.T) {
	var layout *LineLayout
	if layout.LineCount() != 0 {
		t.Error("nil layout should have 0 lines")
	}
	if layout.GetLine(0) != nil {
		t.Error("nil layout should return nil line")
	}
	if layout.GetText() != "" {
		t.Error("nil layout should return empty text")
	}
}
