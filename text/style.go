package text

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Values used for TextStyle.FontStyle and TextStyle.FontWeight
const (
	FontStyleItalic  = "italic"
	FontWeightBold   = "bold"
	FamilyTimes      = "Times"
	FamilyCalibri    = "Calibri"
	defaultFontColor = "none"
)

// TextStyle holds the font attributes attached to a run of characters
type TextStyle struct {
	FontFamily string
	FontSize   float64 // pixels
	FontStyle  string  // "italic" or ""
	FontWeight string  // "bold" or ""
	Fill       string
	Stroke     string
}

// IsBold reports whether the style has a bold weight
func (s *TextStyle) IsBold() bool {
	return s != nil && s.FontWeight == FontWeightBold
}

// IsItalic reports whether the style is italic
func (s *TextStyle) IsItalic() bool {
	return s != nil && s.FontStyle == FontStyleItalic
}

// NormalizeFamilyWeight rewrites the family, style and weight in place when
// the raw family name encodes them (e.g. "TimesBoldItalic").
// It returns false when the family is not one it recognises; the style is
// still usable in that case.
func (s *TextStyle) NormalizeFamilyWeight() bool {
	if s.FontFamily == "" {
		return false
	}

	family := cases.Fold().String(s.FontFamily)
	if strings.Contains(family, "italic") || strings.Contains(family, "oblique") {
		s.FontStyle = FontStyleItalic
	}
	if strings.Contains(family, "bold") {
		s.FontWeight = FontWeightBold
	}

	switch {
	case strings.Contains(family, "times"):
		s.FontFamily = FamilyTimes
	case strings.Contains(family, "calibri"):
		s.FontFamily = FamilyCalibri
	default:
		return false
	}
	return true
}

// Equal reports whether two styles render identically
func (s *TextStyle) Equal(other *TextStyle) bool {
	if s == nil || other == nil {
		return s == other
	}
	return *s == *other
}

// Difference returns a human-readable summary of the attributes that differ,
// or "" if the styles are equal. It is meant for logging only.
func (s *TextStyle) Difference(other *TextStyle) string {
	if s == nil || other == nil {
		if s == other {
			return ""
		}
		return "one style is nil"
	}

	var diffs []string
	add := func(name, a, b string) {
		if a != b {
			diffs = append(diffs, fmt.Sprintf("%s: %q != %q", name, a, b))
		}
	}
	add("font-family", s.FontFamily, other.FontFamily)
	if s.FontSize != other.FontSize {
		diffs = append(diffs, fmt.Sprintf("font-size: %v != %v", s.FontSize, other.FontSize))
	}
	add("font-style", s.FontStyle, other.FontStyle)
	add("font-weight", s.FontWeight, other.FontWeight)
	add("fill", s.Fill, other.Fill)
	add("stroke", s.Stroke, other.Stroke)

	return strings.Join(diffs, "; ")
}

// CSS renders the style as an HTML inline style attribute value.
// Properties are emitted in a fixed order so output is stable.
func (s *TextStyle) CSS() string {
	if s == nil {
		return ""
	}

	var parts []string
	if s.FontFamily != "" {
		parts = append(parts, "font-family:"+s.FontFamily)
	}
	if s.FontSize > 0 {
		parts = append(parts, "font-size:"+strconv.FormatFloat(s.FontSize, 'f', -1, 64)+"px")
	}
	if s.FontWeight != "" {
		parts = append(parts, "font-weight:"+s.FontWeight)
	}
	if s.FontStyle != "" {
		parts = append(parts, "font-style:"+s.FontStyle)
	}
	if s.Fill != "" && s.Fill != defaultFontColor {
		parts = append(parts, "color:"+s.Fill)
	}
	return strings.Join(parts, ";")
}

// ParseCSS splits a "key:value;key:value" declaration list into a map.
// Keys are lower-cased and both keys and values are trimmed. Declarations
// without a colon are ignored.
func ParseCSS(css string) map[string]string {
	decls := make(map[string]string)
	for _, decl := range strings.Split(css, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		decls[key] = strings.TrimSpace(value)
	}
	return decls
}
