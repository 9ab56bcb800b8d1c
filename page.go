package reflow

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/rtree"

	"github.com/tsawler/reflow/htmldoc"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/svg"
	"github.com/tsawler/reflow/text"
)

// indexedSpan is a parsed span with its document position
type indexedSpan struct {
	order int
	span  *text.TextSpan
	kept  bool
}

// Page is one SVG page moving through span extraction, line grouping and
// paragraph detection. Each stage is computed on first use and cached.
type Page struct {
	config Config
	source string
	doc    *svg.Document
	logger logrus.FieldLogger
	hook   *warningHook

	parsed     []*indexedSpan
	tree       rtree.RTreeG[*indexedSpan]
	spans      []*text.TextSpan
	spansBuilt bool

	bboxes     []*model.BBox
	lines      *layout.LineLayout
	paragraphs *layout.ParagraphLayout
}

// CreatePageFromSVG reads the SVG file at path
func CreatePageFromSVG(path string, config Config) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	page, err := newPage(f, path, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}

// CreatePageFromSVGReader reads an SVG page from r
func CreatePageFromSVGReader(r io.Reader, config Config) (*Page, error) {
	return newPage(r, "", config)
}

func newPage(r io.Reader, source string, config Config) (*Page, error) {
	doc, err := svg.OpenReader(r)
	if err != nil {
		return nil, err
	}

	logger, hook := newCapturingLogger(config.logger())
	var entry logrus.FieldLogger = logger
	if source != "" {
		entry = logger.WithField("file", source)
	}
	doc.WithLogger(entry)

	return &Page{
		config: config.clone(),
		source: source,
		doc:    doc,
		logger: entry,
		hook:   hook,
	}, nil
}

// Source returns the file the page was read from, or "" for a reader
func (p *Page) Source() string {
	return p.source
}

// Document returns the parsed SVG
func (p *Page) Document() *svg.Document {
	return p.doc
}

// Warnings returns the diagnostics logged so far for this page
func (p *Page) Warnings() []Warning {
	return p.hook.collected()
}

// TextSpans returns the page's spans in document order. Rotated text is
// dropped unless Config.RotatedText is set, and spans not fully inside
// Config.ContentBox are clipped. Elements that cannot be converted are
// skipped with a warning.
func (p *Page) TextSpans() []*text.TextSpan {
	if p.spansBuilt {
		return p.spans
	}
	p.spansBuilt = true

	for _, t := range p.doc.Texts {
		if t.IsRotated() && !p.config.RotatedText {
			p.logger.WithField("text", t.Index).Debug("skipping rotated text")
			continue
		}
		span, err := t.CreateTextSpan()
		if err != nil {
			p.logger.WithFields(logrus.Fields{"text": t.Index, "error": err}).Warn("skipping text")
			continue
		}
		is := &indexedSpan{order: len(p.parsed), span: span}
		p.parsed = append(p.parsed, is)
		p.tree.Insert(boxMin(span.BBox), boxMax(span.BBox), is)
	}

	p.clip()

	for _, is := range p.parsed {
		if is.kept {
			p.spans = append(p.spans, is.span)
		}
	}
	return p.spans
}

// clip marks the spans whose boxes lie entirely inside the content box
func (p *Page) clip() {
	box := p.config.ContentBox
	if box == nil {
		for _, is := range p.parsed {
			is.kept = true
		}
		return
	}

	p.tree.Search(boxMin(box), boxMax(box), func(_, _ [2]float64, is *indexedSpan) bool {
		if box.ContainsGeomObject(is.span.BBox) {
			is.kept = true
		}
		return true
	})

	dropped := 0
	for _, is := range p.parsed {
		if !is.kept {
			dropped++
		}
	}
	if dropped > 0 {
		p.logger.WithFields(logrus.Fields{"dropped": dropped, "box": box.String()}).Debug("clipped spans outside content box")
	}
}

// SpansInRegion returns the kept spans whose boxes touch region, in
// document order
func (p *Page) SpansInRegion(region *model.BBox) []*text.TextSpan {
	p.TextSpans()
	if region == nil || !region.IsValid() {
		return nil
	}

	var found []*indexedSpan
	p.tree.Search(boxMin(region), boxMax(region), func(_, _ [2]float64, is *indexedSpan) bool {
		if is.kept {
			found = append(found, is)
		}
		return true
	})
	sort.Slice(found, func(i, j int) bool { return found[i].order < found[j].order })

	out := make([]*text.TextSpan, len(found))
	for i, is := range found {
		out[i] = is.span
	}
	return out
}

// BBoxes returns the bounding box of every kept span
func (p *Page) BBoxes() []*model.BBox {
	if p.bboxes != nil {
		return p.bboxes
	}
	spans := p.TextSpans()
	p.bboxes = make([]*model.BBox, len(spans))
	for i, s := range spans {
		p.bboxes[i] = s.BBox
	}
	return p.bboxes
}

// CompositeLines groups the kept spans into lines
func (p *Page) CompositeLines() *layout.LineLayout {
	if p.lines == nil {
		p.lines = layout.NewLineDetectorWithConfig(p.config.lineConfig()).Detect(p.TextSpans())
		p.logger.WithFields(logrus.Fields{"lines": p.lines.LineCount(), "passes": p.lines.Passes}).Debug("built composite lines")
	}
	return p.lines
}

// Paragraphs groups the composite lines into paragraphs
func (p *Page) Paragraphs() *layout.ParagraphLayout {
	if p.paragraphs == nil {
		p.paragraphs = layout.NewParagraphDetectorWithConfig(p.config.paragraphConfig()).Detect(p.CompositeLines().Lines)
		p.logger.WithFields(logrus.Fields{"paragraphs": p.paragraphs.ParagraphCount(), "mode": p.paragraphs.Mode}).Debug("built paragraphs")
	}
	return p.paragraphs
}

// CreateHTML builds the page's HTML document. With useLines set each
// composite line becomes its own <p>; otherwise each paragraph does.
func (p *Page) CreateHTML(useLines bool) *htmldoc.Builder {
	b := htmldoc.NewBuilder()
	b.ScriptSizeRatio = p.config.ScriptSizeRatio

	if useLines {
		for _, line := range p.CompositeLines().Lines {
			b.AddBlock([]*layout.CompositeLine{line})
		}
		return b
	}
	for _, para := range p.Paragraphs().Paragraphs {
		b.AddBlock(para.Lines)
	}
	return b
}

// WriteHTML renders the page's HTML to path
func (p *Page) WriteHTML(path string, prettyPrint, useLines bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	if err := p.CreateHTML(useLines).Render(f, prettyPrint); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}

func boxMin(b *model.BBox) [2]float64 {
	return [2]float64{float64(b.X0()), float64(b.Y0())}
}

func boxMax(b *model.BBox) [2]float64 {
	return [2]float64{float64(b.X1()), float64(b.Y1())}
}
