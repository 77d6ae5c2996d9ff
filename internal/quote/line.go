package quote

import (
	"regexp"
	"strings"
)

// LineKind is the billing category of a line.
type LineKind string

const (
	// KindWork is labor. ROT-avdrag only applies to work lines.
	KindWork LineKind = "work"
	// KindMaterial is goods.
	KindMaterial LineKind = "material"
)

// Valid reports whether k is one of the known kinds.
func (k LineKind) Valid() bool {
	return k == KindWork || k == KindMaterial
}

// Label returns the Swedish label shown on printed quotes.
func (k LineKind) Label() string {
	switch k {
	case KindWork:
		return "Arbete"
	case KindMaterial:
		return "Material"
	default:
		return string(k)
	}
}

// Toggle flips between work and material. Unknown kinds become work.
func (k LineKind) Toggle() LineKind {
	if k == KindWork {
		return KindMaterial
	}
	return KindWork
}

// Line is one editable quote line as entered by the user.
type Line struct {
	Kind        LineKind
	Description string
	Qty         string
	UnitPrice   string

	// Ref is an optional article reference passed through to the API.
	Ref string
}

// DefaultLine is the line appended by AddLine.
func DefaultLine() Line {
	return Line{Kind: KindWork, Qty: "1", UnitPrice: "0"}
}

// LinePatch carries the fields to replace in UpdateLine. Nil fields are left
// untouched.
type LinePatch struct {
	Kind        *LineKind
	Description *string
	Qty         *string
	UnitPrice   *string
	Ref         *string
}

func (l Line) apply(p LinePatch) Line {
	if p.Kind != nil {
		l.Kind = *p.Kind
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Qty != nil {
		l.Qty = *p.Qty
	}
	if p.UnitPrice != nil {
		l.UnitPrice = *p.UnitPrice
	}
	if p.Ref != nil {
		l.Ref = *p.Ref
	}
	return l
}

// Ptr returns a pointer to v. Handy for building a LinePatch.
func Ptr[T any](v T) *T {
	return &v
}

// plainNumber is decimal notation without exponent, hex or Inf forms.
var plainNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// normalizeNumber accepts both "12.5" and the Swedish "12,5". It reports
// false for anything that is not plain decimal notation, so "1e9" is
// rejected rather than expanded.
func normalizeNumber(raw string) (string, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return "", true
	}
	return s, plainNumber.MatchString(s)
}
