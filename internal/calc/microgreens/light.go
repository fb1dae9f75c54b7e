package microgreens

import (
	"Estimator/internal/units"
)

var (
	// Air properties used for the cooling balance.
	SpecificHeatAir = units.Joule.Div(units.Kilogram.Mul(units.Kelvin)).Of(1005)
	DensityAir      = units.Kilogram.Div(units.CubicMetre).Of(1.225)

	KelvinPerSecond = units.Kelvin.Div(units.Second)
)

// GrowLight is one LED fixture.
type GrowLight struct {
	Power      units.Quantity
	Efficiency units.Quantity
}

// Waste is the share of the electrical power turned into heat.
func (l GrowLight) Waste() (units.Quantity, error) {
	loss, err := units.Scalar(1).Sub(l.Efficiency)
	if err != nil {
		return units.Quantity{}, err
	}
	return l.Power.Mul(loss).In(units.Watt)
}

// Heat is the warming rate the waste heat causes in an air volume v.
func (l GrowLight) Heat(v units.Quantity) (units.Quantity, error) {
	waste, err := l.Waste()
	if err != nil {
		return units.Quantity{}, err
	}
	return waste.Div(v.Mul(DensityAir).Mul(SpecificHeatAir)).In(KelvinPerSecond)
}

// AirConditionPower is the cooling power that removes c_p·ρ·V·ΔT of heat
// within the given time.
func AirConditionPower(v, deltaT, duration units.Quantity) (units.Quantity, error) {
	q := SpecificHeatAir.Mul(DensityAir).Mul(v).Mul(deltaT)
	return q.Div(duration).In(units.Watt)
}
