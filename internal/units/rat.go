package units

import "fmt"

// Rat is an exact rational exponent. The zero value is 0.
type Rat struct {
	num int64
	den int64
}

// R returns n/d in lowest terms. It panics when d is zero.
func R(n, d int64) Rat {
	if d == 0 {
		panic("units: zero denominator")
	}
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(abs64(n), d)
	if g == 0 {
		return Rat{0, 1}
	}
	return Rat{n / g, d / g}
}

// Int returns the integer n as a Rat.
func Int(n int64) Rat { return Rat{n, 1} }

func (r Rat) norm() Rat {
	if r.den == 0 {
		return Rat{r.num, 1}
	}
	return r
}

func (r Rat) Num() int64 { return r.norm().num }
func (r Rat) Den() int64 { return r.norm().den }

func (r Rat) Add(o Rat) Rat {
	r, o = r.norm(), o.norm()
	return R(r.num*o.den+o.num*r.den, r.den*o.den)
}

func (r Rat) Sub(o Rat) Rat { return r.Add(o.Neg()) }

func (r Rat) Mul(o Rat) Rat {
	r, o = r.norm(), o.norm()
	return R(r.num*o.num, r.den*o.den)
}

func (r Rat) Neg() Rat {
	r = r.norm()
	return Rat{-r.num, r.den}
}

func (r Rat) IsZero() bool { return r.num == 0 }

func (r Rat) IsInt() bool { return r.norm().den == 1 }

func (r Rat) Sign() int {
	switch {
	case r.num > 0:
		return 1
	case r.num < 0:
		return -1
	}
	return 0
}

func (r Rat) Equal(o Rat) bool {
	r, o = r.norm(), o.norm()
	return r.num == o.num && r.den == o.den
}

func (r Rat) Float64() float64 {
	r = r.norm()
	return float64(r.num) / float64(r.den)
}

func (r Rat) String() string {
	r = r.norm()
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
