package units

import (
	"sort"
	"strings"
)

// baseDim is one independent axis of a Registry.
type baseDim struct {
	symbol string
	name   string
	order  int
}

type dimTerm struct {
	base *baseDim
	exp  Rat
}

// Dimension is an immutable exponent vector over base dimensions.
// Zero exponents are never stored, so the zero value is dimensionless.
type Dimension struct {
	terms []dimTerm
}

// Dimensionless is the empty exponent vector.
var Dimensionless = Dimension{}

func newDimension(terms []dimTerm) Dimension {
	out := make([]dimTerm, 0, len(terms))
	for _, t := range terms {
		if !t.exp.IsZero() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].base.order != out[j].base.order {
			return out[i].base.order < out[j].base.order
		}
		return out[i].base.symbol < out[j].base.symbol
	})
	if len(out) == 0 {
		return Dimension{}
	}
	return Dimension{terms: out}
}

func (d Dimension) combine(o Dimension, sign int64) Dimension {
	acc := make([]dimTerm, 0, len(d.terms)+len(o.terms))
	acc = append(acc, d.terms...)
	for _, t := range o.terms {
		exp := t.exp.Mul(Int(sign))
		merged := false
		for i := range acc {
			if acc[i].base == t.base {
				acc[i].exp = acc[i].exp.Add(exp)
				merged = true
				break
			}
		}
		if !merged {
			acc = append(acc, dimTerm{base: t.base, exp: exp})
		}
	}
	return newDimension(acc)
}

// Mul returns the entrywise sum of the exponent vectors.
func (d Dimension) Mul(o Dimension) Dimension { return d.combine(o, 1) }

// Div returns the entrywise difference of the exponent vectors.
func (d Dimension) Div(o Dimension) Dimension { return d.combine(o, -1) }

// Pow multiplies every exponent by e.
func (d Dimension) Pow(e Rat) Dimension {
	acc := make([]dimTerm, len(d.terms))
	for i, t := range d.terms {
		acc[i] = dimTerm{base: t.base, exp: t.exp.Mul(e)}
	}
	return newDimension(acc)
}

func (d Dimension) IsDimensionless() bool { return len(d.terms) == 0 }

func (d Dimension) Equal(o Dimension) bool {
	if len(d.terms) != len(o.terms) {
		return false
	}
	for i := range d.terms {
		if d.terms[i].base != o.terms[i].base || !d.terms[i].exp.Equal(o.terms[i].exp) {
			return false
		}
	}
	return true
}

// Exponent returns the exponent of the base with the given symbol, zero if absent.
func (d Dimension) Exponent(symbol string) Rat {
	for _, t := range d.terms {
		if t.base.symbol == symbol {
			return t.exp
		}
	}
	return Rat{}
}

// String renders the vector as e.g. "L³·M⁻¹" or "L^(1/2)"; "1" when dimensionless.
func (d Dimension) String() string {
	if d.IsDimensionless() {
		return "1"
	}
	parts := make([]string, len(d.terms))
	for i, t := range d.terms {
		parts[i] = t.base.symbol + exponentSuffix(t.exp)
	}
	return strings.Join(parts, "·")
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '-': '⁻',
}

func exponentSuffix(e Rat) string {
	if e.Equal(Int(1)) {
		return ""
	}
	if !e.IsInt() {
		return "^(" + e.String() + ")"
	}
	var b strings.Builder
	for _, c := range e.String() {
		b.WriteRune(superscripts[c])
	}
	return b.String()
}
