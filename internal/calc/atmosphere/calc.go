// Package atmosphere models the International Standard Atmosphere in the
// troposphere. Two barometric pressure formulations are provided and kept
// independent; they agree at sea level and drift apart with altitude.
package atmosphere

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"

	"Estimator/internal/calc"
	"Estimator/internal/calc/report"
	"Estimator/internal/units"
)

var (
	Bar        = must(units.Default.DefineUnit("bar", units.Pascal, 1e5))
	Atmosphere = must(units.Default.DefineUnit("atm", units.Pascal, 101325))

	KilogramPerCubicMetre = units.Kilogram.Div(units.CubicMetre)
)

var (
	SeaLevelTemperature = units.Kelvin.Of(288.15)
	SeaLevelPressure    = units.Pascal.Of(101325)
	TemperatureLapse    = units.Kelvin.Div(units.Metre).Of(0.0065)
	MolarMassAir        = units.Kilogram.Div(units.Mole).Of(0.0289644)

	// Tropopause is the upper bound of the lapse-rate model.
	Tropopause = units.Metre.Of(11000)
)

// Model selects the barometric pressure formula.
type Model string

const (
	// Exponential is the isothermal form P0·exp(−g·M·h/(R·T0)).
	Exponential Model = "exponential"
	// LapseRate is the power-law form P0·(1 − L·h/T0)^(g·M/(R·L)).
	LapseRate Model = "lapse-rate"
)

// Models lists every pressure model.
var Models = []Model{Exponential, LapseRate}

// TemperatureAt returns T0 − L·h.
func TemperatureAt(altitude units.Quantity) (units.Quantity, error) {
	return SeaLevelTemperature.Sub(TemperatureLapse.Mul(altitude))
}

// PressureAt returns the static pressure at altitude in Pa.
func PressureAt(altitude units.Quantity, model Model) (units.Quantity, error) {
	g := units.StandardGravity
	M := MolarMassAir
	R := units.UniversalGasConstant
	T0 := SeaLevelTemperature

	var factor units.Quantity
	var err error
	switch model {
	case Exponential:
		x := g.Mul(M).Mul(altitude).Div(R.Mul(T0))
		factor, err = units.Exp(x.Neg())
	case LapseRate:
		var base units.Quantity
		base, err = units.Scalar(1).Sub(TemperatureLapse.Mul(altitude).Div(T0))
		if err != nil {
			break
		}
		exponent := g.Mul(M).Div(R.Mul(TemperatureLapse))
		factor, err = units.PowQ(base, exponent)
	default:
		return units.Quantity{}, calc.Invalid("model", "unknown pressure model %q", model)
	}
	if err != nil {
		return units.Quantity{}, errors.Wrapf(err, "pressure at %s", altitude)
	}
	return SeaLevelPressure.Mul(factor).In(units.Pascal)
}

// DensityAt returns P·M/(R·T) in kg/m³.
func DensityAt(altitude units.Quantity, model Model) (units.Quantity, error) {
	p, err := PressureAt(altitude, model)
	if err != nil {
		return units.Quantity{}, err
	}
	t, err := TemperatureAt(altitude)
	if err != nil {
		return units.Quantity{}, err
	}
	return p.Mul(MolarMassAir).Div(units.UniversalGasConstant.Mul(t)).In(KilogramPerCubicMetre)
}

// SeaLevelDensity is DensityAt(0 m) for the given model.
func SeaLevelDensity(model Model) (units.Quantity, error) {
	return DensityAt(units.Metre.Of(0), model)
}

type Input struct {
	AltitudesM []float64 `json:"altitudes_m"`
	Model      Model     `json:"model"`
}

type Point struct {
	Altitude    units.Quantity `json:"altitude"`
	Temperature units.Quantity `json:"temperature"`
	Pressure    units.Quantity `json:"pressure"`
	Density     units.Quantity `json:"density"`
}

type Result struct {
	Model  Model   `json:"model"`
	Points []Point `json:"points"`
}

// DefaultInput is the altitude ladder of the flight reports.
func DefaultInput() Input {
	return Input{AltitudesM: []float64{0, 500, 1000, 1500}, Model: Exponential}
}

func Calculate(in Input) (Result, error) {
	if len(in.AltitudesM) == 0 {
		return Result{}, calc.Invalid("altitudes_m", "at least one altitude required")
	}
	if in.Model == "" {
		in.Model = Exponential
	}
	out := Result{Model: in.Model, Points: make([]Point, 0, len(in.AltitudesM))}
	for _, h := range in.AltitudesM {
		if h < 0 || h > Tropopause.Value() {
			return Result{}, calc.Invalid("altitudes_m", "%v m is outside the troposphere (0 to %v m)", h, Tropopause.Value())
		}
		alt := units.Metre.Of(h)
		t, err := TemperatureAt(alt)
		if err != nil {
			return Result{}, err
		}
		p, err := PressureAt(alt, in.Model)
		if err != nil {
			return Result{}, err
		}
		rho, err := DensityAt(alt, in.Model)
		if err != nil {
			return Result{}, err
		}
		out.Points = append(out.Points, Point{Altitude: alt, Temperature: t, Pressure: p, Density: rho})
	}
	return out, nil
}

func (r Result) Document() report.Document {
	doc := report.Document{Title: "Standard atmosphere"}
	for _, p := range r.Points {
		s := report.Section{Heading: fmt.Sprintf("Atmosphere at %.0f m (%s)", p.Altitude.Value(), r.Model)}
		s.Add("Altitude", "%.1f", p.Altitude)
		s.Add("Temperature", "%.2f (%.2f)", p.Temperature, p.Temperature.MustIn(units.DegreeCelsius))
		s.Add("Pressure", "%.1f", p.Pressure)
		s.Add("Pressure-bar", "%.4f", p.Pressure.MustIn(Bar))
		s.Add("Pressure-atm", "%.4f", p.Pressure.MustIn(Atmosphere))
		s.Add("Air-Density", "%.4f", p.Density)
		doc.Append(s)
	}
	return doc
}

// Report is the report.Source of this calculator.
func Report(raw json.RawMessage) (report.Document, error) {
	in, err := calc.DecodeInput(raw, DefaultInput())
	if err != nil {
		return report.Document{}, err
	}
	res, err := Calculate(in)
	if err != nil {
		return report.Document{}, err
	}
	return res.Document(), nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
