// Package reflow rebuilds readable HTML from the positioned text of SVG
// pages produced by a PDF-to-SVG converter.
//
// Basic usage:
//
//	html, warnings, err := reflow.Open("page-1.svg").HTML()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", reflow.FormatWarnings(warnings))
//	}
//
// With options:
//
//	err := reflow.Open("page-1.svg").
//	    RotatedText().
//	    UseLines().
//	    WriteHTML("page-1.html", true)
//
// The Page type exposes each reconstruction stage for finer control.
package reflow

import (
	"io"
)

// Open returns a Converter for the SVG file at filename. Nothing is read
// until a terminal operation such as HTML() is called.
//
// Example:
//
//	html, warnings, err := reflow.Open("page-1.svg").HTML()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns a Converter that reads an SVG page from r.
// The reader is consumed by the first terminal operation.
func FromReader(r io.Reader) *Converter {
	return &Converter{
		source:  r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	page := reflow.Must(reflow.CreatePageFromSVG("page-1.svg", reflow.DefaultConfig()))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustHTML wraps a call to HTML() or Paragraphs() and panics if the error
// is non-nil. Warnings are discarded.
//
// Example:
//
//	html := reflow.MustHTML(reflow.Open("page-1.svg").HTML())
func MustHTML[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
