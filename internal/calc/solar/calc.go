// Package solar estimates photovoltaic panel output.
package solar

import (
	"encoding/json"

	"Estimator/internal/calc"
	"Estimator/internal/calc/report"
	"Estimator/internal/units"
)

var (
	WattPerSquareMetre = units.Watt.Div(units.SquareMetre)

	// PeakIrradiance is the standard test condition irradiance defining kWp.
	PeakIrradiance = units.Kilowatt.Div(units.SquareMetre).Of(1)
)

type Panel struct {
	Width      units.Quantity
	Height     units.Quantity
	Efficiency units.Quantity
}

type Location struct {
	Irradiance units.Quantity
	Daylight   units.Quantity
}

type Input struct {
	WidthCM       float64 `json:"width_cm"`
	HeightCM      float64 `json:"height_cm"`
	EfficiencyPct float64 `json:"efficiency_pct"`
	IrradianceWM2 float64 `json:"irradiance_w_m2"`
	DaylightH     float64 `json:"daylight_h"`
}

type Result struct {
	Width      units.Quantity `json:"width"`
	Height     units.Quantity `json:"height"`
	Area       units.Quantity `json:"area"`
	Efficiency units.Quantity `json:"efficiency"`
	PeakPower  units.Quantity `json:"peak_power"`
	Irradiance units.Quantity `json:"irradiance"`
	Daylight   units.Quantity `json:"daylight"`
	Output     units.Quantity `json:"output"`
	Energy     units.Quantity `json:"energy"`
}

func DefaultInput() Input {
	return Input{WidthCM: 500, HeightCM: 100, EfficiencyPct: 18, IrradianceWM2: 1000, DaylightH: 12}
}

// PowerOutput returns the panel's peak rating, its output under the local
// irradiance and the energy over the daylight hours.
func PowerOutput(p Panel, loc Location) (Result, error) {
	area, err := p.Width.Mul(p.Height).In(units.SquareMetre)
	if err != nil {
		return Result{}, err
	}
	kWp, err := area.Mul(PeakIrradiance).Mul(p.Efficiency).In(units.Kilowatt)
	if err != nil {
		return Result{}, err
	}
	output, err := area.Mul(loc.Irradiance).Mul(p.Efficiency).In(units.Kilowatt)
	if err != nil {
		return Result{}, err
	}
	energy, err := output.Mul(loc.Daylight).In(units.KilowattHour)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Width:      p.Width,
		Height:     p.Height,
		Area:       area,
		Efficiency: p.Efficiency,
		PeakPower:  kWp,
		Irradiance: loc.Irradiance,
		Daylight:   loc.Daylight,
		Output:     output,
		Energy:     energy,
	}, nil
}

func Calculate(in Input) (Result, error) {
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"width_cm", in.WidthCM},
		{"height_cm", in.HeightCM},
		{"irradiance_w_m2", in.IrradianceWM2},
		{"daylight_h", in.DaylightH},
	} {
		if err := calc.Positive(c.field, c.v); err != nil {
			return Result{}, err
		}
	}
	if err := calc.Fraction("efficiency_pct", in.EfficiencyPct); err != nil {
		return Result{}, err
	}
	panel := Panel{
		Width:      units.Centimetre.Of(in.WidthCM),
		Height:     units.Centimetre.Of(in.HeightCM),
		Efficiency: units.Percent.Of(in.EfficiencyPct),
	}
	loc := Location{
		Irradiance: WattPerSquareMetre.Of(in.IrradianceWM2),
		Daylight:   units.Hour.Of(in.DaylightH),
	}
	return PowerOutput(panel, loc)
}

func (r Result) Document() report.Document {
	s := report.Section{Heading: "Solar panel"}
	s.Add("Width", "%.3f", r.Width.MustIn(units.Centimetre))
	s.Add("Height", "%.3f", r.Height.MustIn(units.Centimetre))
	s.Add("Area", "%.3f", r.Area)
	s.Add("Efficiency", "%v", r.Efficiency)
	s.Add("kWp", "%.3f", r.PeakPower)

	l := report.Section{Heading: "Solar panel location"}
	l.Add("Irradiance", "%v", r.Irradiance)
	l.Add("Daylight", "%v", r.Daylight.MustIn(units.Hour))
	l.Add("Output", "%.3f", r.Output)
	l.Add("Energy", "%.3f", r.Energy)
	return report.Document{Title: "Solar panel", Sections: []report.Section{s, l}}
}

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
