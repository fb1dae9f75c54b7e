// Package units attaches physical dimensions to numbers.
//
// A Dimension is an exponent vector over base dimensions (length, mass,
// time, ...). A Unit is a canonical product of named units, each declared
// once in a Registry with a ratio to the coherent unit of its dimension. A
// Quantity pairs a float64 magnitude with a Unit.
//
// Multiplication and division always succeed and compose units:
//
//	density := units.Kilogram.Div(units.CubicMetre).Of(0.08988)
//	mass := density.Mul(units.Litre.Of(5))   // 0.08988 kg·l/m³
//	g, _ := mass.In(units.Gram)              // 0.4494 g
//
// Addition, subtraction, comparison and conversion require convertible
// units and fail with ErrDimensionMismatch otherwise.
//
// Applications add their own base dimensions with DeclareKind. Units minted
// by a Kind share its dimension but are never converted into one another
// implicitly; see package finance for the currency kind.
package units
