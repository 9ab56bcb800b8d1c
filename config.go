package reflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
)

// Config holds the tunable constants of the page reconstruction.
type Config struct {
	// XMargin is the horizontal slack used when growing spans into lines
	XMargin float64

	// ParagraphFactor multiplies the modal line spacing; a larger gap
	// starts a new paragraph
	ParagraphFactor float64

	// ScriptSizeRatio is the font-size ratio below which a following span
	// may be a subscript or superscript
	ScriptSizeRatio float64

	// ContentBox is the page area that text must lie inside; nil disables clipping
	ContentBox *model.BBox

	// RotatedText keeps text elements carrying a rotateDegrees attribute
	RotatedText bool

	// Logger receives diagnostics; nil means logrus.StandardLogger()
	Logger logrus.FieldLogger
}

// DefaultContentBox returns the clipping area used by DefaultConfig,
// [[56,999],[45,780]].
func DefaultContentBox() *model.BBox {
	return model.MustBBox([]float64{56, 999}, []float64{45, 780})
}

// DefaultConfig returns the standard reconstruction settings.
func DefaultConfig() Config {
	return Config{
		XMargin:         layout.DefaultXMargin,
		ParagraphFactor: layout.DefaultParagraphConfig().SpacingThreshold,
		ScriptSizeRatio: layout.DefaultScriptSizeRatio,
		ContentBox:      DefaultContentBox(),
	}
}

// clone copies the config, including the content box.
func (c Config) clone() Config {
	out := c
	if c.ContentBox != nil {
		out.ContentBox = c.ContentBox.Copy()
	}
	return out
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

func (c Config) lineConfig() layout.LineConfig {
	return layout.LineConfig{XMargin: c.XMargin, ScriptSizeRatio: c.ScriptSizeRatio}
}

func (c Config) paragraphConfig() layout.ParagraphConfig {
	return layout.ParagraphConfig{SpacingThreshold: c.ParagraphFactor}
}

// ParseContentBox reads a box written either as "[[x0,x1],[y0,y1]]" or as
// four comma separated numbers "x0,x1,y0,y1". The string "none" yields nil.
func ParseContentBox(s string) (*model.BBox, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return nil, nil
	}

	cleaned := strings.NewReplacer("[", "", "]", "", " ", "").Replace(s)
	parts := strings.Split(cleaned, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("content box %q: want 4 numbers, got %d", s, len(parts))
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("content box %q: %w", s, err)
		}
		v[i] = f
	}

	box, err := model.NewBBox(v[0:2], v[2:4])
	if err != nil {
		return nil, fmt.Errorf("content box %q: %w", s, err)
	}
	return box, nil
}
