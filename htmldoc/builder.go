package htmldoc

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/text"
)

// Builder assembles an HTML document one block of lines at a time
type Builder struct {
	doc  *html.Node
	body *html.Node

	// ScriptSizeRatio is passed to layout.CompositeLine.ScriptTypes
	ScriptSizeRatio float64
}

// NewBuilder creates an empty <html><head/><body/></html> document
func NewBuilder() *Builder {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "UTF-8"}}
	head.AppendChild(meta)
	body := element(atom.Body)

	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)

	return &Builder{
		doc:             doc,
		body:            body,
		ScriptSizeRatio: layout.DefaultScriptSizeRatio,
	}
}

// Document returns the document node
func (b *Builder) Document() *html.Node {
	return b.doc
}

// Body returns the <body> element
func (b *Builder) Body() *html.Node {
	return b.body
}

// AddBlock appends one <p> holding the given lines. Lines are separated by
// a space unless the previous line ends with a hyphen. The paragraph gets
// dir="rtl" when its text is predominantly right-to-left.
func (b *Builder) AddBlock(lines []*layout.CompositeLine) *html.Node {
	p := element(atom.P)

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 && !strings.HasSuffix(lines[i-1].Text(), "-") {
			p.AppendChild(textNode(" "))
		}
		b.appendLine(p, line)
		sb.WriteString(line.Text())
	}
	if text.DetectDirection(sb.String()) == text.RTL {
		p.Attr = append(p.Attr, html.Attribute{Key: "dir", Val: "rtl"})
	}

	b.body.AppendChild(p)
	return p
}

// appendLine emits the spans of a line, coalescing runs that share a style
// and have no script relation to their predecessor
func (b *Builder) appendLine(parent *html.Node, line *layout.CompositeLine) {
	scripts := line.ScriptTypes(b.ScriptSizeRatio)

	var run strings.Builder
	var runStyle *text.TextStyle
	runScript := layout.ScriptNone

	flush := func() {
		if runStyle == nil {
			return
		}
		parent.AppendChild(spanNode(runStyle, runScript, run.String()))
		run.Reset()
		runStyle = nil
	}

	for i, span := range line.Spans {
		if runStyle != nil && scripts[i] == layout.ScriptNone && runStyle.Equal(span.Style) {
			run.WriteString(span.Content)
			continue
		}
		flush()
		runStyle = span.Style
		runScript = scripts[i]
		run.WriteString(span.Content)
	}
	flush()
}

// spanNode builds sub/sup > b > i > span > text, omitting absent wrappers
func spanNode(style *text.TextStyle, script layout.ScriptType, content string) *html.Node {
	inner := element(atom.Span)
	if css := style.CSS(); css != "" {
		inner.Attr = []html.Attribute{{Key: "style", Val: css}}
	}
	inner.AppendChild(textNode(content))

	outer := inner
	if style.IsItalic() {
		outer = wrap(atom.I, outer)
	}
	if style.IsBold() {
		outer = wrap(atom.B, outer)
	}
	switch script {
	case layout.ScriptSub:
		outer = wrap(atom.Sub, outer)
	case layout.ScriptSuper:
		outer = wrap(atom.Sup, outer)
	}
	return outer
}

// Render writes the document; with pretty set, block elements are indented first
func (b *Builder) Render(w io.Writer, pretty bool) error {
	if pretty {
		Indent(b.doc)
	}
	return html.Render(w, b.doc)
}

// String renders the document without indentation
func (b *Builder) String() string {
	var sb strings.Builder
	_ = html.Render(&sb, b.doc)
	return sb.String()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func wrap(a atom.Atom, child *html.Node) *html.Node {
	n := element(a)
	n.AppendChild(child)
	return n
}
