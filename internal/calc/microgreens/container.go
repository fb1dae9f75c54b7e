package microgreens

import (
	"math"

	"Estimator/internal/calc"
	"Estimator/internal/calc/report"
	"Estimator/internal/finance"
	"Estimator/internal/units"
)

// IntermodalContainer is the shipping container the farm is built in.
type IntermodalContainer struct {
	Length units.Quantity
	Width  units.Quantity
	Height units.Quantity
}

func (c IntermodalContainer) Area() units.Quantity   { return c.Length.Mul(c.Width) }
func (c IntermodalContainer) Volume() units.Quantity { return c.Area().Mul(c.Height) }

// GrowRack is a shelving unit holding trays of width Tray side by side.
type GrowRack struct {
	Depth   units.Quantity
	Width   units.Quantity
	Height  units.Quantity
	Shelves int
	Tray    units.Quantity
}

type GrowContainer struct {
	Container      IntermodalContainer
	Rack           GrowRack
	Light          GrowLight
	Rows           int
	LightsPerShelf int
}

// Racks is how many racks fit along the container length, per row.
func (g GrowContainer) Racks() (int, error) {
	n, err := g.Container.Length.Div(g.Rack.Width).Count()
	if err != nil {
		return 0, err
	}
	return times("racks", n, g.Rows)
}

func (g GrowContainer) Shelves() (int, error) {
	racks, err := g.Racks()
	if err != nil {
		return 0, err
	}
	return times("shelves", g.Rack.Shelves, racks)
}

func (g GrowContainer) Trays() (int, error) {
	perShelf, err := g.Rack.Width.Div(g.Rack.Tray).Count()
	if err != nil {
		return 0, err
	}
	shelves, err := g.Shelves()
	if err != nil {
		return 0, err
	}
	return times("trays", perShelf, shelves)
}

func (g GrowContainer) TrayArea() (units.Quantity, error) {
	trays, err := g.Trays()
	if err != nil {
		return units.Quantity{}, err
	}
	return g.Rack.Tray.Mul(g.Rack.Depth).Scale(float64(trays)).In(units.SquareMetre)
}

func (g GrowContainer) Lights() (int, error) {
	shelves, err := g.Shelves()
	if err != nil {
		return 0, err
	}
	return times("lights", g.LightsPerShelf, shelves)
}

// times multiplies two non-negative counts, failing when the product
// overflows an int.
func times(field string, a, b int) (int, error) {
	if a != 0 && b > math.MaxInt/a {
		return 0, calc.Invalid(field, "count %d×%d overflows", a, b)
	}
	return a * b, nil
}

func (g GrowContainer) PowerLights() (units.Quantity, error) {
	n, err := g.Lights()
	if err != nil {
		return units.Quantity{}, err
	}
	return g.Light.Power.Scale(float64(n)).In(units.Watt)
}

func (g GrowContainer) PowerWaste() (units.Quantity, error) {
	n, err := g.Lights()
	if err != nil {
		return units.Quantity{}, err
	}
	w, err := g.Light.Waste()
	if err != nil {
		return units.Quantity{}, err
	}
	return w.Scale(float64(n)), nil
}

// Heat is the warming rate of the container air with every light on.
func (g GrowContainer) Heat() (units.Quantity, error) {
	n, err := g.Lights()
	if err != nil {
		return units.Quantity{}, err
	}
	h, err := g.Light.Heat(g.Container.Volume())
	if err != nil {
		return units.Quantity{}, err
	}
	return h.Scale(float64(n)), nil
}

type ContainerInput struct {
	LengthM            float64 `json:"length_m"`
	WidthM             float64 `json:"width_m"`
	HeightM            float64 `json:"height_m"`
	RackDepthM         float64 `json:"rack_depth_m"`
	RackWidthM         float64 `json:"rack_width_m"`
	RackHeightM        float64 `json:"rack_height_m"`
	Shelves            int     `json:"shelves"`
	TrayCM             float64 `json:"tray_cm"`
	LightPowerW        float64 `json:"light_power_w"`
	LightEfficiencyPct float64 `json:"light_efficiency_pct"`
	Rows               int     `json:"rows"`
	LightsPerShelf     int     `json:"lights_per_shelf"`
	LightHoursPerDay   float64 `json:"light_hours_per_day"`
	EnergyCostEURkWh   float64 `json:"energy_cost_eur_kwh"`
}

// DefaultContainerInput is a 40 ft high-cube container with two rows of
// five-shelf racks lit by 25 W fixtures.
func DefaultContainerInput() ContainerInput {
	return ContainerInput{
		LengthM:            12.032,
		WidthM:             2.352,
		HeightM:            2.385,
		RackDepthM:         0.5,
		RackWidthM:         1.0,
		RackHeightM:        2.0,
		Shelves:            5,
		TrayCM:             25,
		LightPowerW:        25,
		LightEfficiencyPct: 90,
		Rows:               2,
		LightsPerShelf:     2,
		LightHoursPerDay:   12,
		EnergyCostEURkWh:   0.31,
	}
}

// GrowContainer validates the input and builds the container it describes.
func (in ContainerInput) GrowContainer() (GrowContainer, error) {
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"length_m", in.LengthM},
		{"width_m", in.WidthM},
		{"height_m", in.HeightM},
		{"rack_depth_m", in.RackDepthM},
		{"rack_width_m", in.RackWidthM},
		{"rack_height_m", in.RackHeightM},
		{"tray_cm", in.TrayCM},
		{"light_power_w", in.LightPowerW},
		{"light_hours_per_day", in.LightHoursPerDay},
		{"energy_cost_eur_kwh", in.EnergyCostEURkWh},
		{"shelves", float64(in.Shelves)},
		{"rows", float64(in.Rows)},
		{"lights_per_shelf", float64(in.LightsPerShelf)},
	} {
		if err := calc.Positive(c.field, c.v); err != nil {
			return GrowContainer{}, err
		}
	}
	if err := calc.Fraction("light_efficiency_pct", in.LightEfficiencyPct); err != nil {
		return GrowContainer{}, err
	}
	if in.LightHoursPerDay > 24 {
		return GrowContainer{}, calc.Invalid("light_hours_per_day", "a day has 24 hours, got %v", in.LightHoursPerDay)
	}
	return GrowContainer{
		Container: IntermodalContainer{
			Length: units.Metre.Of(in.LengthM),
			Width:  units.Metre.Of(in.WidthM),
			Height: units.Metre.Of(in.HeightM),
		},
		Rack: GrowRack{
			Depth:   units.Metre.Of(in.RackDepthM),
			Width:   units.Metre.Of(in.RackWidthM),
			Height:  units.Metre.Of(in.RackHeightM),
			Shelves: in.Shelves,
			Tray:    units.Centimetre.Of(in.TrayCM),
		},
		Light: GrowLight{
			Power:      units.Watt.Of(in.LightPowerW),
			Efficiency: units.Percent.Of(in.LightEfficiencyPct),
		},
		Rows:           in.Rows,
		LightsPerShelf: in.LightsPerShelf,
	}, nil
}

type ContainerResult struct {
	Length          units.Quantity `json:"length"`
	Width           units.Quantity `json:"width"`
	Height          units.Quantity `json:"height"`
	Area            units.Quantity `json:"area"`
	Volume          units.Quantity `json:"volume"`
	Racks           int            `json:"racks"`
	Shelves         int            `json:"shelves"`
	Trays           int            `json:"trays"`
	TrayArea        units.Quantity `json:"tray_area"`
	Light           units.Quantity `json:"light"`
	LightEfficiency units.Quantity `json:"light_efficiency"`
	Lights          int            `json:"lights"`
	LightsPower     units.Quantity `json:"lights_power"`
	Waste           units.Quantity `json:"waste"`
	Heat            units.Quantity `json:"heat"`
	HeatOneHour     units.Quantity `json:"heat_1h"`
	CoolingOneHour  units.Quantity `json:"cooling_1h"`
	Power           units.Quantity `json:"power"`
	Energy          units.Quantity `json:"energy"`
	EnergyCost      units.Quantity `json:"energy_cost"`
}

var (
	KilowattHourPerDay = units.KilowattHour.Div(units.Day)
	EURPerDay          = finance.EUR.Div(units.Day)
)

// ContainerReport computes the power and cooling budget of gc. Lights run
// lightHours per day at the given tariff.
func ContainerReport(gc GrowContainer, lightHours, tariff units.Quantity) (ContainerResult, error) {
	var r ContainerResult
	var err error
	c := gc.Container
	r.Length, r.Width, r.Height = c.Length, c.Width, c.Height
	if r.Area, err = c.Area().In(units.SquareMetre); err != nil {
		return r, err
	}
	if r.Volume, err = c.Volume().In(units.CubicMetre); err != nil {
		return r, err
	}
	if r.Racks, err = gc.Racks(); err != nil {
		return r, err
	}
	if r.Shelves, err = gc.Shelves(); err != nil {
		return r, err
	}
	if r.Trays, err = gc.Trays(); err != nil {
		return r, err
	}
	if r.TrayArea, err = gc.TrayArea(); err != nil {
		return r, err
	}
	r.Light = gc.Light.Power
	r.LightEfficiency = gc.Light.Efficiency
	if r.Lights, err = gc.Lights(); err != nil {
		return r, err
	}
	if r.LightsPower, err = gc.PowerLights(); err != nil {
		return r, err
	}
	if r.Waste, err = gc.PowerWaste(); err != nil {
		return r, err
	}
	if r.Heat, err = gc.Heat(); err != nil {
		return r, err
	}

	lightTime := units.Hour.Of(1).MustIn(units.Second)
	if r.HeatOneHour, err = r.Heat.Mul(lightTime).In(units.Kelvin); err != nil {
		return r, err
	}
	if r.CoolingOneHour, err = AirConditionPower(r.Volume, r.HeatOneHour, lightTime); err != nil {
		return r, err
	}
	if r.Power, err = r.LightsPower.Add(r.CoolingOneHour); err != nil {
		return r, err
	}
	if r.Energy, err = r.Power.Mul(lightHours).In(KilowattHourPerDay); err != nil {
		return r, err
	}
	if r.EnergyCost, err = tariff.Mul(r.Energy).In(EURPerDay); err != nil {
		return r, err
	}
	return r, nil
}

// CalculateContainer is the container tool.
func CalculateContainer(in ContainerInput) (ContainerResult, error) {
	gc, err := in.GrowContainer()
	if err != nil {
		return ContainerResult{}, err
	}
	return ContainerReport(gc, HourPerDay.Of(in.LightHoursPerDay), finance.PerKilowattHour(finance.EUR).Of(in.EnergyCostEURkWh))
}

func (r ContainerResult) Section() report.Section {
	s := report.Section{Heading: "GrowContainer"}
	s.Add("Length", "%v", r.Length)
	s.Add("Width", "%v", r.Width)
	s.Add("Height", "%v", r.Height)
	s.Add("Area", "%.2f", r.Area)
	s.Add("Volume", "%.2f", r.Volume)
	s.Add("Racks", "%d", r.Racks)
	s.Add("Shelfs", "%d", r.Shelves)
	s.Add("Trays", "%d", r.Trays)
	s.Add("Tray-Area", "%.2f", r.TrayArea)
	s.Add("Light", "%v", r.Light)
	s.Add("Efficiency", "%v", r.LightEfficiency)
	s.Add("Lights", "%d", r.Lights)
	s.Add("Lights-Power", "%.0f", r.LightsPower)
	s.Add("Waste", "%.2f", r.Waste)
	s.Add("Heat", "%.5f", r.Heat)
	s.Add("Heat-1h", "%.3f", r.HeatOneHour)
	s.Add("Cooling-1h", "%.2f", r.CoolingOneHour)
	s.Add("Power", "%.2f", r.Power)
	s.Add("Energy", "%.2f", r.Energy)
	s.Add("Energy-Cost", "%.2f", r.EnergyCost)
	return s
}

func (r ContainerResult) Document() report.Document {
	return report.Document{Title: "Grow container", Sections: []report.Section{r.Section()}}
}
