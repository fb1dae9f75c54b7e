// Package hydrogen estimates the chemical energy stored in hydrogen by
// volume, for gaseous and liquid storage, and the mass held by a
// compressed-gas cylinder.
package hydrogen

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"Estimator/internal/calc"
	"Estimator/internal/calc/atmosphere"
	"Estimator/internal/calc/report"
	"Estimator/internal/units"
)

var (
	// LowerHeatingValue of hydrogen.
	LowerHeatingValue = units.KilowattHour.Div(units.Kilogram).Of(33.3)

	GasDensity    = atmosphere.KilogramPerCubicMetre.Of(0.08988)
	LiquidDensity = atmosphere.KilogramPerCubicMetre.Of(70.85)

	GramPerMole = units.Gram.Div(units.Mole)
)

// Energy returns density·volume·LHV in kW·h.
func Energy(density, volume units.Quantity) (units.Quantity, error) {
	e, err := density.Mul(volume).Mul(LowerHeatingValue).In(units.KilowattHour)
	if err != nil {
		return units.Quantity{}, errors.Wrap(err, "hydrogen energy")
	}
	return e, nil
}

type Input struct {
	VolumesL []float64 `json:"volumes_l"`
}

// Storage compares gas and liquid storage of one volume.
type Storage struct {
	Volume       units.Quantity `json:"volume"`
	GasMass      units.Quantity `json:"gas_mass"`
	GasEnergy    units.Quantity `json:"gas_energy"`
	LiquidMass   units.Quantity `json:"liquid_mass"`
	LiquidEnergy units.Quantity `json:"liquid_energy"`
	Increase     units.Quantity `json:"increase"`
}

type Result struct {
	Storages []Storage `json:"storages"`
}

func DefaultInput() Input {
	return Input{VolumesL: []float64{5, 10, 25}}
}

func Calculate(in Input) (Result, error) {
	if len(in.VolumesL) == 0 {
		return Result{}, calc.Invalid("volumes_l", "at least one volume required")
	}
	out := Result{Storages: make([]Storage, 0, len(in.VolumesL))}
	for _, l := range in.VolumesL {
		if err := calc.Positive("volumes_l", l); err != nil {
			return Result{}, err
		}
		s, err := Compare(units.Litre.Of(l))
		if err != nil {
			return Result{}, err
		}
		out.Storages = append(out.Storages, s)
	}
	return out, nil
}

// Compare computes the gas/liquid storage comparison for a volume.
func Compare(volume units.Quantity) (Storage, error) {
	gasMass, err := GasDensity.Mul(volume).In(units.Gram)
	if err != nil {
		return Storage{}, err
	}
	liquidMass, err := LiquidDensity.Mul(volume).In(units.Gram)
	if err != nil {
		return Storage{}, err
	}
	gasEnergy, err := Energy(GasDensity, volume)
	if err != nil {
		return Storage{}, err
	}
	liquidEnergy, err := Energy(LiquidDensity, volume)
	if err != nil {
		return Storage{}, err
	}
	return Storage{
		Volume:       volume,
		GasMass:      gasMass,
		GasEnergy:    gasEnergy,
		LiquidMass:   liquidMass,
		LiquidEnergy: liquidEnergy,
		Increase:     liquidEnergy.Div(gasEnergy),
	}, nil
}

func (r Result) Document() report.Document {
	doc := report.Document{Title: "Hydrogen energy"}
	for _, s := range r.Storages {
		sec := report.Section{Heading: "Hydrogen energy per volume"}
		sec.Add("Volume", "%.3f", s.Volume)
		sec.Add("Density Gas", "%.3f", GasDensity)
		sec.Add("Mass Gas", "%.3f", s.GasMass)
		sec.Add("Energy Gas", "%.3f", s.GasEnergy)
		sec.Add("Density Liquid", "%.3f", LiquidDensity)
		sec.Add("Mass Liquid", "%.3f", s.LiquidMass)
		sec.Add("Energy Liquid", "%.3f", s.LiquidEnergy)
		sec.Add("Increase", "%.3fx", s.Increase)
		doc.Append(sec)
	}
	return doc
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
