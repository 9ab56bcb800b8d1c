// Package svg reads the SVG pages produced by a PDF-to-SVG converter.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// SVGXNamespace is the namespace of the converter's per-character width attribute
const SVGXNamespace = "http://www.xml-cml.org/schema/svgx"

// Document is a parsed SVG page reduced to what text reconstruction needs:
// the page size and every <text> element in document order.
type Document struct {
	// Width and Height come from the root <svg> element (0 if absent)
	Width  float64
	Height float64

	// Texts are the <text> elements in document order
	Texts []*Text

	logger       logrus.FieldLogger
	seenFamilies map[string]bool
}

// Open opens and parses an SVG file
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	doc, err := OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

// OpenReader parses SVG from an io.Reader
func OpenReader(r io.Reader) (*Document, error) {
	doc := &Document{
		logger:       logrus.StandardLogger(),
		seenFamilies: make(map[string]bool),
	}

	dec := xml.NewDecoder(r)
	var current *Text
	depth := 0
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing SVG: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !sawRoot {
				sawRoot = true
				if t.Name.Local != "svg" {
					return nil, fmt.Errorf("parsing SVG: root element is <%s>, not <svg>", t.Name.Local)
				}
				doc.Width = lengthAttr(t.Attr, "width")
				doc.Height = lengthAttr(t.Attr, "height")
				continue
			}
			if current != nil {
				depth++
				continue
			}
			if t.Name.Local == "text" {
				current = &Text{
					Index: len(doc.Texts),
					attrs: append([]xml.Attr(nil), t.Attr...),
					doc:   doc,
				}
				depth = 0
			}
		case xml.CharData:
			if current != nil {
				current.raw.Write(t)
			}
		case xml.EndElement:
			if current == nil {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			doc.Texts = append(doc.Texts, current)
			current = nil
		}
	}

	if !sawRoot {
		return nil, errors.New("parsing SVG: empty document")
	}
	return doc, nil
}

// WithLogger sets the logger used for schema diagnostics and returns the document
func (d *Document) WithLogger(logger logrus.FieldLogger) *Document {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// Logger returns the document's logger
func (d *Document) Logger() logrus.FieldLogger {
	return d.logger
}

// noteFamily returns true the first time a family is seen
func (d *Document) noteFamily(family string) bool {
	if d.seenFamilies[family] {
		return false
	}
	d.seenFamilies[family] = true
	return true
}

// lengthAttr reads a numeric attribute with an optional px suffix
func lengthAttr(attrs []xml.Attr, local string) float64 {
	for _, a := range attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(a.Value), "px"), 64)
			if err == nil {
				return v
			}
		}
	}
	return 0
}
