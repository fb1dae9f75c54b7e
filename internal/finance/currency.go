// Package finance declares the currency kind and its units.
package finance

import "Estimator/internal/units"

// Currency is the "$" base dimension. Its units carry no exchange rate
// between each other.
var Currency = must(units.Default.DeclareKind("$", "currency"))

var (
	EUR = must(Currency.NewUnit("EUR"))
	USD = must(Currency.NewUnit("USD"))

	// Cent is a fixed-rate subdivision of EUR.
	Cent = must(Currency.ScaledUnit("ct", EUR, 0.01))
)

// PerKilogram returns the unit c/kg, e.g. a seed price.
func PerKilogram(c units.Unit) units.Unit { return c.Div(units.Kilogram) }

// PerKilowattHour returns the unit c/(kW·h), an energy tariff.
func PerKilowattHour(c units.Unit) units.Unit { return c.Div(units.KilowattHour) }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
