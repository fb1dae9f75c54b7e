package units

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrDimensionMismatch is returned when an operation needs two
	// convertible units and gets units of different dimension, or units of
	// one kind with no declared rate between them.
	ErrDimensionMismatch = errors.New("units: dimension mismatch")

	// ErrDuplicateSymbol is a declaration-time error: a base dimension or
	// named unit symbol was declared twice with different meaning.
	ErrDuplicateSymbol = errors.New("units: duplicate symbol")

	// ErrNotDimensionless is returned by functions such as Exp or Count
	// that only accept dimensionless arguments.
	ErrNotDimensionless = errors.Wrap(ErrDimensionMismatch, "argument is not dimensionless")

	// ErrNotCountable is returned by Count for NaN, infinite or out of
	// range ratios.
	ErrNotCountable = errors.New("units: value is not a countable number")
)

func mismatch(op string, from, to Unit) error {
	err := errors.Wrapf(ErrDimensionMismatch, "%s: %s [%s] vs %s [%s]",
		op, symbolOrOne(from), from.Dimension(), symbolOrOne(to), to.Dimension())
	if from.Dimension().Equal(to.Dimension()) {
		return errors.WithHintf(err, "%s and %s share a dimension but no conversion rate is declared between them",
			symbolOrOne(from), symbolOrOne(to))
	}
	return err
}

func symbolOrOne(u Unit) string {
	if s := u.Symbol(); s != "" {
		return s
	}
	return "one"
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
