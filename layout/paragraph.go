package layout

import (
	"errors"
	"strings"

	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/text"
)

// ErrNoData is returned by Mode for an empty input
var ErrNoData = errors.New("no data for mode")

// Paragraph is a run of composite lines with regular spacing
type Paragraph struct {
	// BBox is the union of the line boxes
	BBox *model.BBox

	// Lines are the composite lines in reading order
	Lines []*CompositeLine

	// Index is the paragraph's position in reading order (0-based)
	Index int

	// SpacingBefore is the Y delta from the previous line (0 for the first paragraph)
	SpacingBefore int
}

// Text joins the line texts with single spaces. A line ending in a hyphen
// is joined without a space.
func (p *Paragraph) Text() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for i, line := range p.Lines {
		t := line.Text()
		sb.WriteString(t)
		if i < len(p.Lines)-1 && !strings.HasSuffix(t, "-") {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// Direction returns the dominant direction of the paragraph text
func (p *Paragraph) Direction() text.Direction {
	return text.DetectDirection(p.Text())
}

// ParagraphLayout represents the detected paragraph structure of a page
type ParagraphLayout struct {
	// Paragraphs are the detected paragraphs (in reading order)
	Paragraphs []*Paragraph

	// Deltas are the Y0 differences between consecutive lines
	Deltas []int

	// Mode is the most common delta (0 when fewer than two lines)
	Mode int

	// Threshold is Mode * SpacingThreshold; larger deltas break paragraphs
	Threshold float64

	// Config is the configuration used for detection
	Config ParagraphConfig
}

// ParagraphConfig holds configuration for paragraph detection
type ParagraphConfig struct {
	// SpacingThreshold is the multiplier applied to the modal line delta.
	// A delta larger than mode * SpacingThreshold starts a new paragraph.
	// Default: 1.5
	SpacingThreshold float64
}

// DefaultParagraphConfig returns the default configuration
func DefaultParagraphConfig() ParagraphConfig {
	return ParagraphConfig{
		SpacingThreshold: 1.5,
	}
}

// ParagraphDetector groups composite lines into paragraphs
type ParagraphDetector struct {
	config ParagraphConfig
}

// NewParagraphDetector creates a new paragraph detector with default configuration
func NewParagraphDetector() *ParagraphDetector {
	return &ParagraphDetector{
		config: DefaultParagraphConfig(),
	}
}

// NewParagraphDetectorWithConfig creates a paragraph detector with custom configuration
func NewParagraphDetectorWithConfig(config ParagraphConfig) *ParagraphDetector {
	return &ParagraphDetector{
		config: config,
	}
}

// Detect groups lines into paragraphs. With zero lines there are no
// paragraphs; with one line there is one. Otherwise the modal Y delta
// between consecutive lines sets the break threshold.
func (d *ParagraphDetector) Detect(lines []*CompositeLine) *ParagraphLayout {
	result := &ParagraphLayout{Config: d.config}
	if len(lines) == 0 {
		return result
	}
	if len(lines) == 1 {
		result.Paragraphs = []*Paragraph{buildParagraph(lines, 0, 0)}
		return result
	}

	result.Deltas = LineDeltas(lines)
	// Two or more lines always give at least one delta
	result.Mode, _ = Mode(result.Deltas)
	result.Threshold = float64(result.Mode) * d.config.SpacingThreshold

	start := 0
	spacing := 0
	for i := 1; i < len(lines); i++ {
		delta := result.Deltas[i-1]
		if float64(delta) > result.Threshold {
			result.Paragraphs = append(result.Paragraphs, buildParagraph(lines[start:i], len(result.Paragraphs), spacing))
			start = i
			spacing = delta
		}
	}
	result.Paragraphs = append(result.Paragraphs, buildParagraph(lines[start:], len(result.Paragraphs), spacing))

	return result
}

// LineDeltas returns line[i].Y0 - line[i-1].Y0 for each consecutive pair
func LineDeltas(lines []*CompositeLine) []int {
	if len(lines) < 2 {
		return nil
	}
	deltas := make([]int, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		deltas[i-1] = lines[i].BBox.Y0() - lines[i-1].BBox.Y0()
	}
	return deltas
}

// Mode returns the most common value. Ties go to the value encountered first.
func Mode(values []int) (int, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}

	counts := make(map[int]int, len(values))
	maxCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}

	for _, v := range values {
		if counts[v] == maxCount {
			return v, nil
		}
	}
	return values[0], nil
}

func buildParagraph(lines []*CompositeLine, index, spacing int) *Paragraph {
	para := &Paragraph{
		Lines:         append([]*CompositeLine(nil), lines...),
		Index:         index,
		SpacingBefore: spacing,
	}
	for _, line := range lines {
		para.BBox = para.BBox.Union(line.BBox)
	}
	return para
}

// ParagraphLayout methods

// ParagraphCount returns the number of detected paragraphs
func (l *ParagraphLayout) ParagraphCount() int {
	if l == nil {
		return 0
	}
	return len(l.Paragraphs)
}

// GetText returns paragraph texts separated by blank lines
func (l *ParagraphLayout) GetText() string {
	if l == nil {
		return ""
	}
	texts := make([]string, len(l.Paragraphs))
	for i, p := range l.Paragraphs {
		texts[i] = p.Text()
	}
	return strings.Join(texts, "\n\n")
}
