// Package quadcopter estimates the power and energy a multirotor needs for
// a cruise flight at a given altitude.
package quadcopter

import (
	"encoding/json"
	"fmt"

	"Estimator/internal/calc"
	"Estimator/internal/calc/atmosphere"
	"Estimator/internal/calc/report"
	"Estimator/internal/units"
)

var (
	// VerticalSpeed is the climb rate used for the vertical power term.
	VerticalSpeed = units.Metre.Div(units.Second).Of(10)
	// DragCoefficient of the airframe.
	DragCoefficient = units.Percent.Of(60)

	WattPerKilogram  = units.Watt.Div(units.Kilogram)
	KilometrePerHour = units.Kilometre.Div(units.Hour)
	MetrePerSecond   = units.Metre.Div(units.Second)
)

type QuadCopter struct {
	Weight                units.Quantity
	FrontalArea           units.Quantity
	ThrustEfficiency      units.Quantity
	AerodynamicEfficiency units.Quantity
}

type Flight struct {
	Distance units.Quantity
	Altitude units.Quantity
	Speed    units.Quantity
}

func (f Flight) WithDistance(d units.Quantity) Flight {
	f.Distance = d
	return f
}

func (f Flight) WithAltitude(a units.Quantity) Flight {
	f.Altitude = a
	return f
}

func (f Flight) WithSpeed(s units.Quantity) Flight {
	f.Speed = s
	return f
}

// Estimate is the power budget of one flight.
type Estimate struct {
	Weight          units.Quantity `json:"weight"`
	FrontalArea     units.Quantity `json:"frontal_area"`
	Thrust          units.Quantity `json:"thrust"`
	Distance        units.Quantity `json:"distance"`
	Altitude        units.Quantity `json:"altitude"`
	AirDensity      units.Quantity `json:"air_density"`
	VerticalSpeed   units.Quantity `json:"vertical_speed"`
	HorizontalSpeed units.Quantity `json:"horizontal_speed"`
	PowerVertical   units.Quantity `json:"power_vertical"`
	PowerHorizontal units.Quantity `json:"power_horizontal"`
	PowerTotal      units.Quantity `json:"power_total"`
	PowerRatio      units.Quantity `json:"power_ratio"`
	FlightTime      units.Quantity `json:"flight_time"`
	Energy          units.Quantity `json:"energy"`
}

// EstimatePower computes thrust T = W·g·η_t, vertical power T·v_v/η_p
// corrected by √(ρ0/ρ), and horizontal drag power ½·C_D·A_f·ρ·v_h³.
func EstimatePower(c QuadCopter, f Flight, model atmosphere.Model) (Estimate, error) {
	rho, err := atmosphere.DensityAt(f.Altitude, model)
	if err != nil {
		return Estimate{}, err
	}
	rho0, err := atmosphere.SeaLevelDensity(model)
	if err != nil {
		return Estimate{}, err
	}

	thrust, err := c.Weight.Mul(units.StandardGravity).Mul(c.ThrustEfficiency).In(units.Newton)
	if err != nil {
		return Estimate{}, err
	}

	pv0 := thrust.Mul(VerticalSpeed).Div(c.AerodynamicEfficiency)
	pv, err := pv0.Mul(rho0.Div(rho).Sqrt()).In(units.Watt)
	if err != nil {
		return Estimate{}, err
	}

	vh3 := f.Speed.Pow(units.Int(3))
	ph, err := DragCoefficient.Mul(c.FrontalArea).Mul(rho).Mul(vh3).Scale(0.5).In(units.Watt)
	if err != nil {
		return Estimate{}, err
	}

	total, err := ph.Add(pv)
	if err != nil {
		return Estimate{}, err
	}
	ratio, err := total.Div(c.Weight).In(WattPerKilogram)
	if err != nil {
		return Estimate{}, err
	}
	flightTime, err := f.Distance.Div(f.Speed).In(units.Hour)
	if err != nil {
		return Estimate{}, err
	}
	energy, err := total.Mul(flightTime).In(units.KilowattHour)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		Weight:          c.Weight,
		FrontalArea:     c.FrontalArea,
		Thrust:          thrust,
		Distance:        f.Distance,
		Altitude:        f.Altitude,
		AirDensity:      rho,
		VerticalSpeed:   VerticalSpeed,
		HorizontalSpeed: f.Speed,
		PowerVertical:   pv,
		PowerHorizontal: ph,
		PowerTotal:      total,
		PowerRatio:      ratio,
		FlightTime:      flightTime,
		Energy:          energy,
	}, nil
}

type Input struct {
	WeightKG                 float64          `json:"weight_kg"`
	FrontalAreaCM2           float64          `json:"frontal_area_cm2"`
	ThrustEfficiencyPct      float64          `json:"thrust_efficiency_pct"`
	AerodynamicEfficiencyPct float64          `json:"aerodynamic_efficiency_pct"`
	DistanceKM               float64          `json:"distance_km"`
	AltitudeM                float64          `json:"altitude_m"`
	SpeedKMH                 float64          `json:"speed_kmh"`
	Model                    atmosphere.Model `json:"model"`
}

// DefaultInput is a 10 kg airframe with a 30×30 cm frontal area on a
// 3000 km leg at 100 km/h.
func DefaultInput() Input {
	return Input{
		WeightKG:                 10,
		FrontalAreaCM2:           30 * 30,
		ThrustEfficiencyPct:      130,
		AerodynamicEfficiencyPct: 70,
		DistanceKM:               3000,
		AltitudeM:                1000,
		SpeedKMH:                 100,
		Model:                    atmosphere.Exponential,
	}
}

// Validate checks the fields and returns the copter and flight they describe.
func (in Input) Validate() (QuadCopter, Flight, error) {
	checks := []struct {
		field string
		v     float64
	}{
		{"weight_kg", in.WeightKG},
		{"frontal_area_cm2", in.FrontalAreaCM2},
		{"thrust_efficiency_pct", in.ThrustEfficiencyPct},
		{"aerodynamic_efficiency_pct", in.AerodynamicEfficiencyPct},
		{"distance_km", in.DistanceKM},
		{"speed_kmh", in.SpeedKMH},
	}
	for _, c := range checks {
		if err := calc.Positive(c.field, c.v); err != nil {
			return QuadCopter{}, Flight{}, err
		}
	}
	if in.AltitudeM < 0 || in.AltitudeM > atmosphere.Tropopause.Value() {
		return QuadCopter{}, Flight{}, calc.Invalid("altitude_m", "%v m is outside the troposphere", in.AltitudeM)
	}
	cm2 := units.Centimetre.Pow(units.Int(2))
	copter := QuadCopter{
		Weight:                units.Kilogram.Of(in.WeightKG),
		FrontalArea:           cm2.Of(in.FrontalAreaCM2),
		ThrustEfficiency:      units.Percent.Of(in.ThrustEfficiencyPct),
		AerodynamicEfficiency: units.Percent.Of(in.AerodynamicEfficiencyPct),
	}
	flight := Flight{
		Distance: units.Kilometre.Of(in.DistanceKM),
		Altitude: units.Metre.Of(in.AltitudeM),
		Speed:    KilometrePerHour.Of(in.SpeedKMH),
	}
	return copter, flight, nil
}

func Calculate(in Input) (Estimate, error) {
	copter, flight, err := in.Validate()
	if err != nil {
		return Estimate{}, err
	}
	if in.Model == "" {
		in.Model = atmosphere.Exponential
	}
	return EstimatePower(copter, flight, in.Model)
}

// Section renders one estimate in the layout of the flight report.
func (e Estimate) Section() report.Section {
	s := report.Section{Heading: fmt.Sprintf("Quad-Copter Flight at %.0f m", e.Altitude.MustIn(units.Metre).Value())}
	s.Add("Weight", "%.3f", e.Weight.MustIn(units.Gram))
	s.Add("Area_f", "%.3f", e.FrontalArea.MustIn(units.SquareMetre))
	s.Add("Thrust", "%.3f", e.Thrust)
	s.Add("Distance", "%.3f", e.Distance.MustIn(units.Kilometre))
	s.Add("Altitude", "%.3f", e.Altitude.MustIn(units.Metre))
	s.Add("Air-Density", "%.3f", e.AirDensity)
	s.Add("Speed_v", "%.3f", e.VerticalSpeed.MustIn(MetrePerSecond))
	s.Add("Speed_h", "%.3f", e.HorizontalSpeed.MustIn(KilometrePerHour))
	s.Add("Power_v", "%.3f", e.PowerVertical)
	s.Add("Power_h", "%.3f", e.PowerHorizontal)
	s.Add("Power_t", "%.3f", e.PowerTotal)
	s.Add("Power-Ratio", "%.3f", e.PowerRatio)
	s.Add("Time", "%.3f", e.FlightTime)
	s.Add("Energy", "%.3f", e.Energy)
	return s
}

func (e Estimate) Document() report.Document {
	return report.Document{Title: "Quad-copter flight", Sections: []report.Section{e.Section()}}
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
