// Package htmldoc builds, renders and reads the HTML produced from
// reconstructed page text.
//
// A [Builder] holds a golang.org/x/net/html node tree. Each call to
// [Builder.AddBlock] appends one <p>; spans sharing a style are merged and
// bold, italic and script runs get <b>, <i>, <sub> and <sup> wrappers.
// [Indent] adds whitespace for readable output and [Reader] parses a
// rendered document back into paragraph text.
package htmldoc
