package reflow

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/reflow/model"
)

// Converter provides a fluent interface for turning an SVG page into HTML.
// Each configuration method returns a new Converter, so partially
// configured converters can be shared and chained.
type Converter struct {
	filename string
	source   io.Reader

	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		source:   c.source,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// Config replaces the whole reconstruction configuration.
func (c *Converter) Config(config Config) *Converter {
	out := c.clone()
	out.options.config = config.clone()
	return out
}

// RotatedText keeps text elements that carry a rotateDegrees attribute.
//
// Example:
//
//	html, _, err := reflow.Open("page.svg").RotatedText().HTML()
func (c *Converter) RotatedText() *Converter {
	out := c.clone()
	out.options.config.RotatedText = true
	return out
}

// UseLines emits one <p> per composite line instead of one per paragraph.
func (c *Converter) UseLines() *Converter {
	out := c.clone()
	out.options.useLines = true
	return out
}

// ContentBox sets the clipping area. A nil box disables clipping.
func (c *Converter) ContentBox(box *model.BBox) *Converter {
	out := c.clone()
	if box != nil && !box.IsValid() {
		out.err = fmt.Errorf("content box %s: %w", box, model.ErrCorruptRange)
		return out
	}
	out.options.config.ContentBox = box.Copy()
	return out
}

// XMargin sets the horizontal slack used when growing spans into lines.
func (c *Converter) XMargin(margin float64) *Converter {
	out := c.clone()
	out.options.config.XMargin = margin
	return out
}

// ParagraphFactor sets the multiple of the modal line spacing that starts
// a new paragraph.
func (c *Converter) ParagraphFactor(factor float64) *Converter {
	out := c.clone()
	if factor <= 0 {
		out.err = fmt.Errorf("paragraph factor must be positive, got %v", factor)
		return out
	}
	out.options.config.ParagraphFactor = factor
	return out
}

// Logger sets the destination of diagnostics.
func (c *Converter) Logger(logger logrus.FieldLogger) *Converter {
	out := c.clone()
	out.options.config.Logger = logger
	return out
}

// Page reads the SVG and returns the configured Page.
func (c *Converter) Page() (*Page, error) {
	if c.err != nil {
		return nil, c.err
	}
	switch {
	case c.filename != "":
		return CreatePageFromSVG(c.filename, c.options.config)
	case c.source != nil:
		return CreatePageFromSVGReader(c.source, c.options.config)
	default:
		return nil, errors.New("no input specified")
	}
}

// HTML converts the page and returns the rendered document together with
// any warnings raised along the way.
func (c *Converter) HTML() (string, []Warning, error) {
	page, err := c.Page()
	if err != nil {
		return "", nil, err
	}
	out := page.CreateHTML(c.options.useLines).String()
	return out, page.Warnings(), nil
}

// WriteHTML converts the page and writes it to path.
func (c *Converter) WriteHTML(path string, pretty bool) ([]Warning, error) {
	page, err := c.Page()
	if err != nil {
		return nil, err
	}
	if err := page.WriteHTML(path, pretty, c.options.useLines); err != nil {
		return page.Warnings(), err
	}
	return page.Warnings(), nil
}

// Paragraphs returns the text of each detected paragraph.
func (c *Converter) Paragraphs() ([]string, []Warning, error) {
	page, err := c.Page()
	if err != nil {
		return nil, nil, err
	}
	paras := page.Paragraphs().Paragraphs
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text()
	}
	return out, page.Warnings(), nil
}

// Lines returns the text of each composite line.
func (c *Converter) Lines() ([]string, []Warning, error) {
	page, err := c.Page()
	if err != nil {
		return nil, nil, err
	}
	lines := page.CompositeLines().Lines
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out, page.Warnings(), nil
}
