package svg

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/reflow/text"
)

// Attribute and style property names read from <text> elements
const (
	AttrX             = "x"
	AttrY             = "y"
	AttrStyle         = "style"
	AttrWidth         = "width"
	AttrRotateDegrees = "rotateDegrees"
	AttrFill          = "fill"
	AttrStroke        = "stroke"

	propFontFamily = "font-family"
	propFontSize   = "font-size"
	propFontWeight = "font-weight"
	propFontStyle  = "font-style"
	propFill       = "fill"
	propStroke     = "stroke"

	unitPx = "px"
)

// Text wraps one raw <text> element
type Text struct {
	// Index is the element's position among the document's <text> elements
	Index int

	attrs []xml.Attr
	raw   bytes.Buffer
	doc   *Document
}

// Attr returns the value of an attribute in no namespace
func (t *Text) Attr(local string) (string, bool) {
	return t.AttrNS("", local)
}

// AttrNS returns the value of a namespaced attribute
func (t *Text) AttrNS(space, local string) (string, bool) {
	for _, a := range t.attrs {
		if a.Name.Local == local && a.Name.Space == space {
			return a.Value, true
		}
	}
	return "", false
}

// IsRotated reports whether the converter marked the text as rotated.
// The marker is matched in any namespace.
func (t *Text) IsRotated() bool {
	for _, a := range t.attrs {
		if a.Name.Local == AttrRotateDegrees {
			return true
		}
	}
	return false
}

// Content returns the character data of the element, NFC-normalised
func (t *Text) Content() string {
	return norm.NFC.String(t.raw.String())
}

// XCoords returns the per-character X coordinates
func (t *Text) XCoords() ([]float64, error) {
	return t.floatList(AttrX, true)
}

// Y returns the baseline Y coordinate (the first value if a list is given)
func (t *Text) Y() (float64, error) {
	ys, err := t.floatList(AttrY, true)
	if err != nil {
		return 0, err
	}
	return ys[0], nil
}

// Widths returns the per-character widths from the svgx:width attribute,
// as fractions of the font size. A missing attribute yields nil, nil.
func (t *Text) Widths() ([]float64, error) {
	return t.floatListNS(SVGXNamespace, AttrWidth, false)
}

// LastWidth returns the width of the final character. Missing or unreadable
// widths are logged and treated as 0.
func (t *Text) LastWidth() float64 {
	widths, err := t.Widths()
	if err != nil || len(widths) == 0 {
		log := t.log()
		if err != nil {
			log = log.WithError(err)
		}
		log.Warn("text has no widths; using 0.0")
		return 0
	}
	return widths[len(widths)-1]
}

// FontSize parses the font-size style property, which must carry a px unit
func (t *Text) FontSize() (float64, error) {
	style, _ := t.Attr(AttrStyle)
	value, ok := text.ParseCSS(style)[propFontSize]
	if !ok {
		return 0, &ParseError{Index: t.Index, Attr: propFontSize, Reason: "not in style", Err: ErrMissingAttribute}
	}
	if !strings.HasSuffix(value, unitPx) {
		return 0, &ParseError{Index: t.Index, Attr: propFontSize, Value: value, Reason: "missing px unit"}
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, unitPx)), 64)
	if err != nil {
		return 0, &ParseError{Index: t.Index, Attr: propFontSize, Value: value, Reason: "not a number", Err: err}
	}
	return size, nil
}

// CreateTextStyle builds a TextStyle from the style attribute and normalises
// its family. Unrecognised families are logged once per document.
func (t *Text) CreateTextStyle() (*text.TextStyle, error) {
	size, err := t.FontSize()
	if err != nil {
		return nil, err
	}

	style, _ := t.Attr(AttrStyle)
	decls := text.ParseCSS(style)

	ts := &text.TextStyle{
		FontFamily: strings.Trim(decls[propFontFamily], `"'`),
		FontSize:   size,
		Fill:       decls[propFill],
		Stroke:     decls[propStroke],
	}
	if ts.Fill == "" {
		ts.Fill, _ = t.Attr(AttrFill)
	}
	if ts.Stroke == "" {
		ts.Stroke, _ = t.Attr(AttrStroke)
	}
	if isBoldWeight(decls[propFontWeight]) {
		ts.FontWeight = text.FontWeightBold
	}
	switch decls[propFontStyle] {
	case "italic", "oblique":
		ts.FontStyle = text.FontStyleItalic
	}

	family := ts.FontFamily
	if !ts.NormalizeFamilyWeight() && family != "" && t.doc.noteFamily(family) {
		t.log().WithField("family", family).Warn("unrecognised font family")
	}
	return ts, nil
}

// CreateTextSpan converts the element to a TextSpan. The span runs from the
// first X coordinate to the last X coordinate plus the last character's
// width scaled by the font size.
func (t *Text) CreateTextSpan() (*text.TextSpan, error) {
	style, err := t.CreateTextStyle()
	if err != nil {
		return nil, err
	}
	xs, err := t.XCoords()
	if err != nil {
		return nil, err
	}
	y, err := t.Y()
	if err != nil {
		return nil, err
	}

	startX := xs[0]
	endX := xs[len(xs)-1] + t.LastWidth()*style.FontSize
	return text.NewTextSpan(startX, endX, y, style, t.Content())
}

func (t *Text) log() logrus.FieldLogger {
	return t.doc.logger.WithField("text", t.Index)
}

func (t *Text) floatList(local string, required bool) ([]float64, error) {
	return t.floatListNS("", local, required)
}

func (t *Text) floatListNS(space, local string, required bool) ([]float64, error) {
	raw, ok := t.AttrNS(space, local)
	if !ok {
		if required {
			return nil, &ParseError{Index: t.Index, Attr: local, Reason: "required", Err: ErrMissingAttribute}
		}
		return nil, nil
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, &ParseError{Index: t.Index, Attr: local, Value: raw, Reason: "empty list"}
	}

	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &ParseError{Index: t.Index, Attr: local, Value: raw, Reason: "not a number list", Err: err}
		}
		values = append(values, v)
	}
	return values, nil
}

func isBoldWeight(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 700
}
