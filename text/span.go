package text

import (
	"fmt"

	"github.com/tsawler/reflow/model"
)

// TextSpan is one positioned run of text with a single style
type TextSpan struct {
	// StartX is the X coordinate of the first character
	StartX float64

	// EndX is the X coordinate just past the last character
	EndX float64

	// Y is the baseline (Y increases down the page)
	Y float64

	// Style is the font style shared by every character in the run
	Style *TextStyle

	// Content is the NFC-normalised text
	Content string

	// BBox is derived from StartX/EndX and the font size above the baseline
	BBox *model.BBox

	// Direction is the dominant writing direction of Content
	Direction Direction
}

// NewTextSpan creates a span and derives its bounding box as
// [[startX, endX], [y - fontSize, y]]
func NewTextSpan(startX, endX, y float64, style *TextStyle, content string) (*TextSpan, error) {
	if style == nil {
		style = &TextStyle{}
	}
	bbox, err := model.NewBBox([]float64{startX, endX}, []float64{y - style.FontSize, y})
	if err != nil {
		return nil, fmt.Errorf("span %q: %w", content, err)
	}
	return &TextSpan{
		StartX:    startX,
		EndX:      endX,
		Y:         y,
		Style:     style,
		Content:   content,
		BBox:      bbox,
		Direction: DetectDirection(content),
	}, nil
}

// FontSize returns the style's font size, or 0 if there is no style
func (s *TextSpan) FontSize() float64 {
	if s == nil || s.Style == nil {
		return 0
	}
	return s.Style.FontSize
}

// String returns a short debugging representation
func (s *TextSpan) String() string {
	return fmt.Sprintf("%q x=[%.1f,%.1f] y=%.1f size=%v", s.Content, s.StartX, s.EndX, s.Y, s.FontSize())
}
