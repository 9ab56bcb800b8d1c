// Package text defines styled, positioned runs of text.
//
// A [TextSpan] is one run on a single baseline with a [TextStyle] and an
// integer bounding box covering [StartX, EndX] by [Y-FontSize, Y].
//
// # Styles
//
// [TextStyle.NormalizeFamilyWeight] folds converter font names such as
// "TimesNewRomanPS-BoldItalicMT" into a family plus weight and style flags.
// [TextStyle.CSS] renders the style as an inline CSS declaration list.
//
// # Text Direction
//
// The package supports bidirectional text with the [Direction] type:
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - direction-neutral characters (numbers, punctuation)
//
// The [DetectDirection] function analyzes text to determine its direction.
package text
