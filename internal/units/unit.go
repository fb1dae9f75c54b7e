package units

import (
	"math"
	"strings"
)

// named is a declared unit: an atomic term of every unit expression.
type named struct {
	symbol  string
	dim     Dimension
	ratio   float64 // scale relative to the coherent reference (or anchor)
	offset  float64 // affine offset, only honoured when the unit stands alone
	anchors []anchorTerm
}

// anchorTerm records a unit of a kind that carries no conversion rate to
// its siblings. Two units convert only when their anchors agree.
type anchorTerm struct {
	anchor *named
	exp    Rat
}

type unitTerm struct {
	n   *named
	exp Rat
}

// Unit is an immutable product of named units raised to rational powers.
// The zero value is the dimensionless unit One.
type Unit struct {
	terms []unitTerm
}

// One is the dimensionless unit.
var One = Unit{}

func unitOf(n *named) Unit { return Unit{terms: []unitTerm{{n: n, exp: Int(1)}}} }

func (u Unit) combine(o Unit, sign int64) Unit {
	acc := make([]unitTerm, 0, len(u.terms)+len(o.terms))
	acc = append(acc, u.terms...)
	for _, t := range o.terms {
		exp := t.exp.Mul(Int(sign))
		merged := false
		for i := range acc {
			if acc[i].n == t.n {
				acc[i].exp = acc[i].exp.Add(exp)
				merged = true
				break
			}
		}
		if !merged {
			acc = append(acc, unitTerm{n: t.n, exp: exp})
		}
	}
	return compact(acc)
}

func compact(terms []unitTerm) Unit {
	out := make([]unitTerm, 0, len(terms))
	for _, t := range terms {
		if !t.exp.IsZero() {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return One
	}
	return Unit{terms: out}
}

// Mul returns the product unit u·o.
func (u Unit) Mul(o Unit) Unit { return u.combine(o, 1) }

// Div returns the quotient unit u/o.
func (u Unit) Div(o Unit) Unit { return u.combine(o, -1) }

// Inverse returns 1/u.
func (u Unit) Inverse() Unit { return One.Div(u) }

// Pow raises every term of u to e.
func (u Unit) Pow(e Rat) Unit {
	acc := make([]unitTerm, len(u.terms))
	for i, t := range u.terms {
		acc[i] = unitTerm{n: t.n, exp: t.exp.Mul(e)}
	}
	return compact(acc)
}

func (u Unit) Sqrt() Unit { return u.Pow(R(1, 2)) }

// Of returns the quantity v u.
func (u Unit) Of(v float64) Quantity { return Quantity{value: v, unit: u} }

// Dimension is derived from the terms.
func (u Unit) Dimension() Dimension {
	d := Dimensionless
	for _, t := range u.terms {
		d = d.Mul(t.n.dim.Pow(t.exp))
	}
	return d
}

// Ratio is the scale of u relative to the coherent unit of its dimension.
func (u Unit) Ratio() float64 {
	r := 1.0
	for _, t := range u.terms {
		r *= powRat(t.n.ratio, t.exp)
	}
	return r
}

func (u Unit) offset() float64 {
	if len(u.terms) == 1 && u.terms[0].exp.Equal(Int(1)) {
		return u.terms[0].n.offset
	}
	return 0
}

func (u Unit) anchors() []anchorTerm {
	var acc []anchorTerm
	for _, t := range u.terms {
		for _, a := range t.n.anchors {
			exp := a.exp.Mul(t.exp)
			merged := false
			for i := range acc {
				if acc[i].anchor == a.anchor {
					acc[i].exp = acc[i].exp.Add(exp)
					merged = true
					break
				}
			}
			if !merged {
				acc = append(acc, anchorTerm{anchor: a.anchor, exp: exp})
			}
		}
	}
	out := acc[:0]
	for _, a := range acc {
		if !a.exp.IsZero() {
			out = append(out, a)
		}
	}
	return out
}

// Equal reports whether u and o are the same unit expression, regardless
// of term order.
func (u Unit) Equal(o Unit) bool {
	if len(u.terms) != len(o.terms) {
		return false
	}
	for _, t := range u.terms {
		found := false
		for _, s := range o.terms {
			if s.n == t.n && s.exp.Equal(t.exp) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsDimensionless reports whether u has the empty dimension.
func (u Unit) IsDimensionless() bool { return u.Dimension().IsDimensionless() }

// ConvertibleTo reports whether values in u can be expressed in o.
func (u Unit) ConvertibleTo(o Unit) bool {
	if !u.Dimension().Equal(o.Dimension()) {
		return false
	}
	a, b := u.anchors(), o.anchors()
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x.anchor == y.anchor && x.exp.Equal(y.exp) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Symbol renders the unit expression, e.g. "kg/m³", "kW·h", "J/(mol·K)".
// One renders as the empty string.
func (u Unit) Symbol() string {
	if len(u.terms) == 0 {
		return ""
	}
	var num, den []string
	for _, t := range u.terms {
		switch t.exp.Sign() {
		case 1:
			num = append(num, t.n.symbol+exponentSuffix(t.exp))
		case -1:
			den = append(den, t.n.symbol+exponentSuffix(t.exp.Neg()))
		}
	}
	s := strings.Join(num, "·")
	if len(num) == 0 {
		s = "1"
	}
	switch len(den) {
	case 0:
	case 1:
		s += "/" + den[0]
	default:
		s += "/(" + strings.Join(den, "·") + ")"
	}
	return s
}

func (u Unit) String() string { return symbolOrOne(u) }

// Convert expresses value, measured in from, in the unit to.
func Convert(value float64, from, to Unit) (float64, error) {
	if from.Equal(to) {
		return value, nil
	}
	if !from.ConvertibleTo(to) {
		return 0, mismatch("convert", from, to)
	}
	ref := value*from.Ratio() + from.offset()
	return (ref - to.offset()) / to.Ratio(), nil
}

// convertDelta converts a difference: offsets cancel.
func convertDelta(value float64, from, to Unit) (float64, error) {
	if from.Equal(to) {
		return value, nil
	}
	if !from.ConvertibleTo(to) {
		return 0, mismatch("convert", from, to)
	}
	return value * from.Ratio() / to.Ratio(), nil
}

func powRat(x float64, e Rat) float64 {
	if !e.IsInt() {
		return math.Pow(x, e.Float64())
	}
	n := e.Num()
	neg := n < 0
	if neg {
		n = -n
	}
	r := 1.0
	for i := int64(0); i < n; i++ {
		r *= x
	}
	if neg {
		return 1 / r
	}
	return r
}
