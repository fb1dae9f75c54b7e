package microgreens

import (
	"Estimator/internal/calc/report"
	"Estimator/internal/finance"
	"Estimator/internal/units"
)

var (
	EURPerKilogram   = finance.PerKilogram(finance.EUR)
	LitrePerDay      = units.Litre.Div(units.Day)
	MillilitrePerDay = units.Millilitre.Div(units.Day)
	HourPerDay       = units.Hour.Div(units.Day)

	// Month is the accounting period for the container report.
	Month = units.Day.Of(30)
)

// Microgreen describes one crop grown in a 1020 tray.
type Microgreen struct {
	Name  string
	Price units.Quantity // seed price, currency per mass

	Seeds units.Quantity // per tray
	Water units.Quantity // per tray and day
	Light units.Quantity // hours per day

	Germination units.Quantity
	Grow        units.Quantity
	Rest        units.Quantity

	Yield units.Quantity // per tray
	MSRP  units.Quantity
}

// Batch is what a number of trays consumes and returns.
type Batch struct {
	Seeds      units.Quantity `json:"seeds"`
	Price      units.Quantity `json:"price"`
	WaterUsage units.Quantity `json:"water_usage"`
	Yield      units.Quantity `json:"yield"`
	Value      units.Quantity `json:"value"`
	Profit     units.Quantity `json:"profit"`
}

type PlantReport struct {
	Name        string         `json:"name"`
	Water       units.Quantity `json:"water"`
	Light       units.Quantity `json:"light"`
	Germination units.Quantity `json:"germination"`
	Grow        units.Quantity `json:"grow"`
	Rest        units.Quantity `json:"rest"`
	Cycle       units.Quantity `json:"cycle"`
	Cycles      units.Quantity `json:"cycles"`
	MSRP        units.Quantity `json:"msrp"`
	Trays       int            `json:"trays"`

	Tray  Batch `json:"tray"`
	Round Batch `json:"cycle_batch"`
	Month Batch `json:"month"`
}

// scaled multiplies every quantity of b by f and converts to the
// container units.
func (b Batch) scaled(f units.Quantity) (Batch, error) {
	var out Batch
	var err error
	if out.Seeds, err = b.Seeds.Mul(f).In(units.Kilogram); err != nil {
		return out, err
	}
	if out.Price, err = b.Price.Mul(f).In(finance.EUR); err != nil {
		return out, err
	}
	if out.WaterUsage, err = b.WaterUsage.Mul(f).In(units.Litre); err != nil {
		return out, err
	}
	if out.Yield, err = b.Yield.Mul(f).In(units.Kilogram); err != nil {
		return out, err
	}
	if out.Value, err = b.Value.Mul(f).In(finance.EUR); err != nil {
		return out, err
	}
	out.Profit, err = out.Value.Sub(out.Price)
	return out, err
}

// Plant reports one crop per tray, per container cycle and per month.
// Cycles per month count grow days only, so a zero grow phase yields +Inf.
func Plant(m Microgreen, gc GrowContainer) (PlantReport, error) {
	r := PlantReport{
		Name:        m.Name,
		Germination: m.Germination,
		Grow:        m.Grow,
		Rest:        m.Rest,
	}
	var err error
	if r.Water, err = m.Water.In(MillilitrePerDay); err != nil {
		return r, err
	}
	if r.Light, err = m.Light.In(HourPerDay); err != nil {
		return r, err
	}
	if r.MSRP, err = m.MSRP.In(EURPerKilogram); err != nil {
		return r, err
	}
	cycle, err := m.Germination.Add(m.Grow)
	if err != nil {
		return r, err
	}
	if r.Cycle, err = cycle.Add(m.Rest); err != nil {
		return r, err
	}
	if r.Cycle, err = r.Cycle.In(units.Day); err != nil {
		return r, err
	}
	if r.Cycles, err = Month.Div(m.Grow).In(units.One); err != nil {
		return r, err
	}
	if r.Trays, err = gc.Trays(); err != nil {
		return r, err
	}

	t := &r.Tray
	if t.Seeds, err = m.Seeds.In(units.Gram); err != nil {
		return r, err
	}
	if t.Price, err = m.Price.Mul(m.Seeds).In(finance.EUR); err != nil {
		return r, err
	}
	wet, err := m.Grow.Add(m.Rest)
	if err != nil {
		return r, err
	}
	if t.WaterUsage, err = m.Water.Mul(wet).In(units.Litre); err != nil {
		return r, err
	}
	if t.Yield, err = m.Yield.In(units.Gram); err != nil {
		return r, err
	}
	if t.Value, err = m.MSRP.Mul(m.Yield).In(finance.EUR); err != nil {
		return r, err
	}
	if t.Profit, err = t.Value.Sub(t.Price); err != nil {
		return r, err
	}

	trays := units.Scalar(float64(r.Trays))
	if r.Round, err = r.Tray.scaled(trays); err != nil {
		return r, err
	}
	if r.Month, err = r.Tray.scaled(trays.Mul(r.Cycles)); err != nil {
		return r, err
	}
	return r, nil
}

func (b Batch) lines(s *report.Section) {
	s.Add("Seeds", "%.2f", b.Seeds)
	s.Add("Price", "%.2f", b.Price)
	s.Add("Water-Usage", "%.2f", b.WaterUsage)
	s.Add("Yield", "%.2f", b.Yield)
	s.Add("Value", "%.2f", b.Value)
	s.Add("Profit", "%.2f", b.Profit)
}

func (r PlantReport) Sections() []report.Section {
	tray := report.Section{Heading: "Microgreens-Tray(1020) " + r.Name}
	tray.Add("Seeds", "%v", r.Tray.Seeds)
	tray.Add("Price", "%.2f", r.Tray.Price)
	tray.Add("Water", "%v", r.Water)
	tray.Add("Light", "%v", r.Light)
	tray.Add("Germination", "%v", r.Germination.MustIn(units.Day))
	tray.Add("Grow", "%v", r.Grow.MustIn(units.Day))
	tray.Add("Rest", "%v", r.Rest.MustIn(units.Day))
	tray.Add("Cycle", "%v", r.Cycle)
	tray.Add("Cycles", "%.2f", r.Cycles)
	tray.Add("Water-Usage", "%v", r.Tray.WaterUsage)
	tray.Add("Yield", "%.2f", r.Tray.Yield)
	tray.Add("MSRP", "%v", r.MSRP)
	tray.Add("Value", "%.2f", r.Tray.Value)
	tray.Add("Profit", "%.2f", r.Tray.Profit)

	round := report.Section{Heading: "Microgreens-Container(Cycle)"}
	round.Add("Trays", "%d", r.Trays)
	r.Round.lines(&round)

	month := report.Section{Heading: "Microgreens-Container(Month)"}
	r.Month.lines(&month)
	return []report.Section{tray, round, month}
}
