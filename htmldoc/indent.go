package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indentUnit = "  "

// blockElements get their children placed on separate indented lines.
// Paragraph content is inline and is never reformatted.
var blockElements = map[atom.Atom]bool{
	atom.Html: true,
	atom.Head: true,
	atom.Body: true,
	atom.Div:  true,
}

// Indent inserts whitespace text nodes so that rendering n produces one
// block child per line. Calling it twice indents twice.
func Indent(n *html.Node) {
	indent(n, 0)
}

func indent(n *html.Node, depth int) {
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				indent(c, 0)
			}
		}
		return
	}
	if n.Type != html.ElementNode || !blockElements[n.DataAtom] || n.FirstChild == nil {
		return
	}

	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		n.InsertBefore(textNode("\n"+strings.Repeat(indentUnit, depth+1)), c)
		indent(c, depth+1)
	}
	n.AppendChild(textNode("\n" + strings.Repeat(indentUnit, depth)))
}
