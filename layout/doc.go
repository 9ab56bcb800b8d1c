// Package layout groups text spans into lines and lines into paragraphs.
//
// # Lines
//
// The [LineDetector] grows each span's box horizontally by XMargin and
// adds spans whose grown boxes intersect the current line. Lines are
// then merged pairwise until nothing changes:
//
//	lines := layout.NewLineDetector().Detect(spans)
//	for _, line := range lines.Lines {
//	    fmt.Println(line.Text())
//	}
//
// # Paragraphs
//
// The [ParagraphDetector] takes the most common vertical step between
// consecutive lines. A step larger than SpacingThreshold times that value
// starts a new paragraph:
//
//	paras := layout.NewParagraphDetector().Detect(lines.Lines)
//
// # Scripts
//
// [ScriptTypeWithRatio] classifies a span relative to its predecessor as a
// subscript, a superscript or neither.
package layout
