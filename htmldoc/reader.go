package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Block is one <p> read back from a document
type Block struct {
	Text string
	Dir  string

	// Styles lists the style attribute of every <span>, in order
	Styles []string
	// Bold, Italic, Sub and Super count the wrapper elements seen
	Bold, Italic, Sub, Super int
}

// Reader provides access to the paragraphs of a rendered document.
type Reader struct {
	doc     *html.Node
	charset string
	blocks  []Block
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	reader.walk(doc)
	return reader, nil
}

// Charset returns the value of <meta charset>, if any
func (r *Reader) Charset() string {
	return r.charset
}

// Blocks returns every paragraph in document order
func (r *Reader) Blocks() []Block {
	return r.blocks
}

// Paragraphs returns the text of every paragraph
func (r *Reader) Paragraphs() []string {
	out := make([]string, len(r.blocks))
	for i, b := range r.blocks {
		out[i] = b.Text
	}
	return out
}

// Text returns all paragraphs separated by blank lines
func (r *Reader) Text() string {
	return strings.Join(r.Paragraphs(), "\n\n")
}

func (r *Reader) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Meta:
			if v := attr(n, "charset"); v != "" {
				r.charset = v
			}
		case atom.P:
			r.blocks = append(r.blocks, readBlock(n))
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

func readBlock(p *html.Node) Block {
	block := Block{Dir: attr(p, "dir")}
	var sb strings.Builder

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Span:
				block.Styles = append(block.Styles, attr(n, "style"))
			case atom.B:
				block.Bold++
			case atom.I:
				block.Italic++
			case atom.Sub:
				block.Sub++
			case atom.Sup:
				block.Super++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(p)

	block.Text = sb.String()
	return block
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
