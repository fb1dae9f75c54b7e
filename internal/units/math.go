package units

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Exp returns e^q for a dimensionless q.
func Exp(q Quantity) (Quantity, error) {
	v, err := dimensionlessValue("exp", q)
	if err != nil {
		return Quantity{}, err
	}
	return Scalar(math.Exp(v)), nil
}

// Log returns the natural logarithm of a dimensionless q.
func Log(q Quantity) (Quantity, error) {
	v, err := dimensionlessValue("log", q)
	if err != nil {
		return Quantity{}, err
	}
	return Scalar(math.Log(v)), nil
}

// PowQ raises base to a dimensionless, possibly non-rational exponent. The
// base must itself be dimensionless, since the resulting unit would not be
// expressible.
func PowQ(base, exponent Quantity) (Quantity, error) {
	b, err := dimensionlessValue("pow base", base)
	if err != nil {
		return Quantity{}, err
	}
	e, err := dimensionlessValue("pow exponent", exponent)
	if err != nil {
		return Quantity{}, err
	}
	return Scalar(math.Pow(b, e)), nil
}

// Sqrt returns the square root of q, halving its unit exponents.
func Sqrt(q Quantity) Quantity { return q.Sqrt() }

// Pow raises q to a rational power.
func Pow(q Quantity, e Rat) Quantity { return q.Pow(e) }

func dimensionlessValue(op string, q Quantity) (float64, error) {
	v, err := q.ValueIn(One)
	if err != nil {
		return 0, errors.Wrapf(ErrNotDimensionless, "%s of %s", op, symbolOrOne(q.unit))
	}
	return v, nil
}
