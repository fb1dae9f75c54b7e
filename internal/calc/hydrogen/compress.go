package hydrogen

import (
	"encoding/json"

	"Estimator/internal/calc"
	"Estimator/internal/calc/atmosphere"
	"Estimator/internal/calc/report"
	"Estimator/internal/units"
)

// CompressInput describes an ideal-gas cylinder.
type CompressInput struct {
	PressureBar      float64 `json:"pressure_bar"`
	VolumeL          float64 `json:"volume_l"`
	TemperatureK     float64 `json:"temperature_k"`
	MolarMassGPerMol float64 `json:"molar_mass_g_mol"`
}

type CompressResult struct {
	Pressure    units.Quantity `json:"pressure"`
	Volume      units.Quantity `json:"volume"`
	GasConstant units.Quantity `json:"gas_constant"`
	Temperature units.Quantity `json:"temperature"`
	Moles       units.Quantity `json:"moles"`
	Mass        units.Quantity `json:"mass"`
}

// DefaultCompressInput is a 5 l cylinder at 200 bar and 25 °C.
func DefaultCompressInput() CompressInput {
	return CompressInput{PressureBar: 200, VolumeL: 5, TemperatureK: 298, MolarMassGPerMol: 2}
}

// CompressGas applies n = P·V/(R·T) and m = n·M.
func CompressGas(in CompressInput) (CompressResult, error) {
	for field, v := range map[string]float64{
		"pressure_bar":     in.PressureBar,
		"volume_l":         in.VolumeL,
		"temperature_k":    in.TemperatureK,
		"molar_mass_g_mol": in.MolarMassGPerMol,
	} {
		if err := calc.Positive(field, v); err != nil {
			return CompressResult{}, err
		}
	}
	p := atmosphere.Bar.Of(in.PressureBar)
	v := units.Litre.Of(in.VolumeL)
	t := units.Kelvin.Of(in.TemperatureK)
	r, err := units.UniversalGasConstant.In(units.Joule.Div(units.Mole.Mul(units.Kelvin)))
	if err != nil {
		return CompressResult{}, err
	}
	moles, err := p.Mul(v).Div(r.Mul(t)).In(units.Mole)
	if err != nil {
		return CompressResult{}, err
	}
	mass, err := moles.Mul(GramPerMole.Of(in.MolarMassGPerMol)).In(units.Gram)
	if err != nil {
		return CompressResult{}, err
	}
	return CompressResult{
		Pressure:    p.MustIn(units.Pascal),
		Volume:      v,
		GasConstant: r,
		Temperature: t,
		Moles:       moles,
		Mass:        mass,
	}, nil
}

func (r CompressResult) Document() report.Document {
	s := report.Section{Heading: "Compress gas"}
	s.Add("Pressure", "%.0f", r.Pressure)
	s.Add("Volume", "%v", r.Volume)
	s.Add("Gas Constant", "%.6f", r.GasConstant)
	s.Add("Temperature", "%v", r.Temperature)
	s.Add("Moles", "%.3f", r.Moles)
	s.Add("Mass", "%.3f", r.Mass)
	return report.Document{Title: "Compressed hydrogen", Sections: []report.Section{s}}
}

func CompressReport(raw json.RawMessage) (report.Document, error) {
	in, err := calc.DecodeInput(raw, DefaultCompressInput())
	if err != nil {
		return report.Document{}, err
	}
	res, err := CompressGas(in)
	if err != nil {
		return report.Document{}, err
	}
	return res.Document(), nil
}
