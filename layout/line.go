package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/text"
)

// CompositeLine is a visual line built from one or more text spans
type CompositeLine struct {
	// BBox is the union of the member span boxes
	BBox *model.BBox

	// Spans are the member spans (sorted left to right after merging)
	Spans []*text.TextSpan

	// Index is the line's position on the page (0-based, reading order)
	Index int
}

// NewCompositeLine starts a line from a single span
func NewCompositeLine(span *text.TextSpan) *CompositeLine {
	return &CompositeLine{
		BBox:  span.BBox.Copy(),
		Spans: []*text.TextSpan{span},
	}
}

// Add appends a span and grows the line box to include it
func (l *CompositeLine) Add(span *text.TextSpan) {
	l.Spans = append(l.Spans, span)
	l.BBox = l.BBox.Union(span.BBox)
}

// Merge absorbs all spans of other and re-sorts the spans by start X
func (l *CompositeLine) Merge(other *CompositeLine) {
	l.Spans = append(l.Spans, other.Spans...)
	l.BBox = l.BBox.Union(other.BBox)
	l.SortSpans()
}

// SortSpans orders spans by StartX, keeping input order for ties
func (l *CompositeLine) SortSpans() {
	sort.SliceStable(l.Spans, func(i, j int) bool {
		return l.Spans[i].StartX < l.Spans[j].StartX
	})
}

// Text concatenates the content of the spans in order
func (l *CompositeLine) Text() string {
	if l == nil {
		return ""
	}
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// AverageFontSize returns the mean font size of the spans
func (l *CompositeLine) AverageFontSize() float64 {
	if l == nil || len(l.Spans) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range l.Spans {
		total += s.FontSize()
	}
	return total / float64(len(l.Spans))
}

// ScriptTypes classifies each span against its predecessor in the line.
// The first span is always ScriptNone.
func (l *CompositeLine) ScriptTypes(sizeRatio float64) []ScriptType {
	types := make([]ScriptType, len(l.Spans))
	for i := 1; i < len(l.Spans); i++ {
		types[i] = ScriptTypeWithRatio(l.Spans[i-1], l.Spans[i], sizeRatio)
	}
	return types
}

// Direction returns the dominant direction of the line's text
func (l *CompositeLine) Direction() text.Direction {
	return text.DetectDirection(l.Text())
}

// LineLayout holds the composite lines detected on a page
type LineLayout struct {
	// Lines are the composite lines in reading order
	Lines []*CompositeLine

	// Passes is the number of merge passes run before a fixed point was reached
	Passes int

	// Config is the configuration used for detection
	Config LineConfig
}

// LineConfig holds configuration for composite line detection
type LineConfig struct {
	// XMargin is how far (in pixels) a span's box is widened horizontally
	// when testing whether it continues the current line (default: 20)
	XMargin float64

	// ScriptSizeRatio is the font size ratio below which a span can be a
	// subscript or superscript of its predecessor (default: 0.9)
	ScriptSizeRatio float64
}

// DefaultLineConfig returns the default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		XMargin:         DefaultXMargin,
		ScriptSizeRatio: DefaultScriptSizeRatio,
	}
}

// DefaultXMargin is the horizontal merge margin in pixels
const DefaultXMargin = 20.0

// LineDetector groups text spans into composite lines
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Detect builds composite lines from spans that are already in reading order.
//
// A span joins the current line when its box, widened by XMargin, intersects
// the line box; otherwise it starts a new line. Adjacent lines whose boxes
// still intersect are then merged until no more merges happen.
func (d *LineDetector) Detect(spans []*text.TextSpan) *LineLayout {
	result := &LineLayout{Config: d.config}
	if len(spans) == 0 {
		return result
	}

	var lines []*CompositeLine
	var current *CompositeLine
	for _, span := range spans {
		if span == nil || !span.BBox.IsValid() {
			continue
		}
		if current == nil {
			current = NewCompositeLine(span)
			lines = append(lines, current)
			continue
		}

		expanded := span.BBox.Copy().ExpandByMargins(d.config.XMargin, 0)
		if expanded.Intersects(current.BBox) {
			current.Add(span)
		} else {
			current = NewCompositeLine(span)
			lines = append(lines, current)
		}
	}

	result.Lines, result.Passes = MergeCompositeLines(lines)
	for i, line := range result.Lines {
		line.Index = i
	}
	return result
}

// MergeCompositeLines merges adjacent lines whose boxes intersect, repeating
// until a full pass makes no change. It returns the merged lines and the
// number of passes. The input slice is reused.
func MergeCompositeLines(lines []*CompositeLine) ([]*CompositeLine, int) {
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for i := 0; i+1 < len(lines); {
			if lines[i].BBox.Intersects(lines[i+1].BBox) {
				lines[i].Merge(lines[i+1])
				lines = append(lines[:i+1], lines[i+2:]...)
				changed = true
				continue
			}
			i++
		}
	}
	return lines, passes
}

// LineLayout methods

// LineCount returns the number of detected lines
func (l *LineLayout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

// GetLine returns a specific line by index
func (l *LineLayout) GetLine(index int) *CompositeLine {
	if l == nil || index < 0 || index >= len(l.Lines) {
		return nil
	}
	return l.Lines[index]
}

// GetText returns the text of all lines, one per row
func (l *LineLayout) GetText() string {
	if l == nil {
		return ""
	}
	texts := make([]string, len(l.Lines))
	for i, line := range l.Lines {
		texts[i] = line.Text()
	}
	return strings.Join(texts, "\n")
}

// FindLinesInRegion returns lines whose boxes intersect a region
func (l *LineLayout) FindLinesInRegion(region *model.BBox) []*CompositeLine {
	if l == nil {
		return nil
	}
	var result []*CompositeLine
	for _, line := range l.Lines {
		if line.BBox.Intersects(region) {
			result = append(result, line)
		}
	}
	return result
}
