package units

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Quantity is a magnitude paired with a unit. Quantities are values: every
// operation returns a new Quantity.
//
// Examples:
//   - units.New(5, units.Litre)
//   - units.Kilogram.Of(10).Div(units.CubicMetre.Of(2)) = 5 kg/m³
type Quantity struct {
	value float64
	unit  Unit
}

// New returns the quantity v u.
func New(v float64, u Unit) Quantity { return Quantity{value: v, unit: u} }

// Scalar returns a dimensionless quantity.
func Scalar(v float64) Quantity { return Quantity{value: v} }

func (q Quantity) Value() float64 { return q.value }
func (q Quantity) Unit() Unit { return q.unit }
func (q Quantity) Dimension() Dimension { return q.unit.Dimension() }
func (q Quantity) IsDimensionless() bool { return q.unit.IsDimensionless() }
func (q Quantity) IsZero() bool { return q.value == 0 }

// Arithmetic

// Add returns q+o in q's unit. o is converted as a difference first.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	v, err := convertDelta(o.value, o.unit, q.unit)
	if err != nil {
		return Quantity{}, mismatch("add", q.unit, o.unit)
	}
	return Quantity{value: q.value + v, unit: q.unit}, nil
}

// Sub returns q-o in q's unit.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	v, err := convertDelta(o.value, o.unit, q.unit)
	if err != nil {
		return Quantity{}, mismatch("subtract", q.unit, o.unit)
	}
	return Quantity{value: q.value - v, unit: q.unit}, nil
}

// Mul multiplies magnitudes and composes units.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{value: q.value * o.value, unit: q.unit.Mul(o.unit)}
}

// Div divides magnitudes and composes units. Division by a zero magnitude
// yields ±Inf or NaN.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{value: q.value / o.value, unit: q.unit.Div(o.unit)}
}

// Scale multiplies the magnitude by f, keeping the unit.
func (q Quantity) Scale(f float64) Quantity { return Quantity{value: q.value * f, unit: q.unit} }

// DivScalar divides the magnitude by f, keeping the unit.
func (q Quantity) DivScalar(f float64) Quantity { return Quantity{value: q.value / f, unit: q.unit} }

// Pow raises magnitude and unit to e.
func (q Quantity) Pow(e Rat) Quantity {
	return Quantity{value: powRat(q.value, e), unit: q.unit.Pow(e)}
}

func (q Quantity) Sqrt() Quantity {
	return Quantity{value: math.Sqrt(q.value), unit: q.unit.Sqrt()}
}

func (q Quantity) Neg() Quantity { return Quantity{value: -q.value, unit: q.unit} }

func (q Quantity) Abs() Quantity { return Quantity{value: math.Abs(q.value), unit: q.unit} }

// Conversion

// In expresses q in u. q.In(q.Unit()) returns q unchanged.
func (q Quantity) In(u Unit) (Quantity, error) {
	v, err := Convert(q.value, q.unit, u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: u}, nil
}

// MustIn is In for conversions known to be valid; it panics otherwise.
func (q Quantity) MustIn(u Unit) Quantity { return must(q.In(u)) }

// ValueIn returns the magnitude of q expressed in u.
func (q Quantity) ValueIn(u Unit) (float64, error) {
	return Convert(q.value, q.unit, u)
}

// Floor converts q to u and truncates toward zero.
func (q Quantity) Floor(u Unit) (Quantity, error) { return FloorTo(q, u) }

// FloorTo converts q to u and truncates the magnitude toward zero.
func FloorTo(q Quantity, u Unit) (Quantity, error) {
	c, err := q.In(u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: math.Trunc(c.value), unit: u}, nil
}

// Count returns a dimensionless q as a whole number, truncated toward zero.
// Ratios that do not fit an int fail with ErrNotCountable.
func (q Quantity) Count() (int, error) {
	c, err := FloorTo(q, One)
	if err != nil {
		return 0, ErrNotDimensionless
	}
	if math.IsNaN(c.value) || c.value >= math.MaxInt || c.value < math.MinInt {
		return 0, errors.Wrapf(ErrNotCountable, "count of %v", c.value)
	}
	return int(c.value), nil
}

// Comparison

// Compare returns -1, 0 or +1 comparing q with o converted to q's unit.
func (q Quantity) Compare(o Quantity) (int, error) {
	v, err := Convert(o.value, o.unit, q.unit)
	if err != nil {
		return 0, mismatch("compare", q.unit, o.unit)
	}
	switch {
	case q.value < v:
		return -1, nil
	case q.value > v:
		return 1, nil
	}
	return 0, nil
}

// Equal reports whether q and o have the same magnitude and unit expression.
func (q Quantity) Equal(o Quantity) bool {
	return q.value == o.value && q.unit.Equal(o.unit)
}

// Formatting

// FormatPrec renders "<number> <symbol>" with prec decimals; prec < 0 uses the
// shortest representation. Dimensionless quantities render the bare number.
func (q Quantity) FormatPrec(prec int) string {
	var num string
	if prec < 0 {
		num = strconv.FormatFloat(q.value, 'g', -1, 64)
	} else {
		num = strconv.FormatFloat(q.value, 'f', prec, 64)
	}
	if sym := q.unit.Symbol(); sym != "" {
		return num + " " + sym
	}
	return num
}

func (q Quantity) String() string { return q.FormatPrec(-1) }

// Format implements fmt.Formatter: %v and %s use the shortest number,
// %f/%e/%g honour width-free precision, e.g. %.3f prints "0.449 g".
func (q Quantity) Format(s fmt.State, verb rune) {
	var num string
	switch verb {
	case 'f', 'F', 'e', 'E', 'g', 'G':
		prec, ok := s.Precision()
		if !ok {
			prec = -1
		}
		if verb == 'F' {
			verb = 'f'
		}
		num = strconv.FormatFloat(q.value, byte(verb), prec, 64)
	case 'v', 's':
		num = strconv.FormatFloat(q.value, 'g', -1, 64)
	default:
		fmt.Fprintf(s, "%%!%c(units.Quantity=%s)", verb, q.String())
		return
	}
	if sym := q.unit.Symbol(); sym != "" {
		num += " " + sym
	}
	if w, ok := s.Width(); ok && len([]rune(num)) < w {
		pad := w - len([]rune(num))
		if s.Flag('-') {
			num += strings.Repeat(" ", pad)
		} else {
			num = strings.Repeat(" ", pad) + num
		}
	}
	fmt.Fprint(s, num)
}

// MarshalJSON implements json.Marshaler.
func (q Quantity) MarshalJSON() ([]byte, error) {
	v := q.value
	var value any = v
	if math.IsInf(v, 0) || math.IsNaN(v) {
		value = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return json.Marshal(struct {
		Value   any    `json:"value"`
		Unit    string `json:"unit"`
		Display string `json:"display"`
	}{
		Value:   value,
		Unit:    q.unit.Symbol(),
		Display: q.String(),
	})
}
