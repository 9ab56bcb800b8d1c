package layout

import "github.com/tsawler/reflow/text"

// ScriptType is the vertical relation of a span to the span before it
type ScriptType int

const (
	ScriptNone ScriptType = iota
	ScriptSub
	ScriptSuper
)

// String returns a string representation of the script type
func (s ScriptType) String() string {
	switch s {
	case ScriptSub:
		return "sub"
	case ScriptSuper:
		return "sup"
	default:
		return "none"
	}
}

// DefaultScriptSizeRatio is the font size ratio below which a span can be a script
const DefaultScriptSizeRatio = 0.9

// IsSubscript reports whether b is a subscript of a: smaller font and a
// lower baseline (Y increases downward).
func IsSubscript(a, b *text.TextSpan) bool {
	return ScriptTypeOf(a, b) == ScriptSub
}

// IsSuperscript reports whether b is a superscript of a: smaller font and a
// higher baseline.
func IsSuperscript(a, b *text.TextSpan) bool {
	return ScriptTypeOf(a, b) == ScriptSuper
}

// ScriptTypeOf classifies b against its predecessor a with the default ratio
func ScriptTypeOf(a, b *text.TextSpan) ScriptType {
	return ScriptTypeWithRatio(a, b, DefaultScriptSizeRatio)
}

// ScriptTypeWithRatio classifies b against a. Only the single predecessor is
// considered; there is no lookahead.
func ScriptTypeWithRatio(a, b *text.TextSpan, ratio float64) ScriptType {
	if a == nil || b == nil {
		return ScriptNone
	}
	if ratio <= 0 {
		ratio = DefaultScriptSizeRatio
	}
	if b.FontSize() >= ratio*a.FontSize() {
		return ScriptNone
	}
	switch {
	case b.Y > a.Y:
		return ScriptSub
	case b.Y < a.Y:
		return ScriptSuper
	default:
		return ScriptNone
	}
}
