package microgreens

import (
	"encoding/json"

	"Estimator/internal/calc"
	"Estimator/internal/calc/report"
	"Estimator/internal/finance"
	"Estimator/internal/units"
)

// Harvest is a single tray from sowing to cut.
type Harvest struct {
	Seeds     units.Quantity
	Price     units.Quantity
	Light     units.Quantity
	GrowPhase units.Quantity
	RestPhase units.Quantity
	Harvest   units.Quantity
	MSRP      units.Quantity
}

type HarvestInput struct {
	SeedsG       float64 `json:"seeds_g"`
	PriceEURkg   float64 `json:"price_eur_kg"`
	LightHPerDay float64 `json:"light_h_per_day"`
	GrowPhaseD   float64 `json:"grow_phase_d"`
	RestPhaseD   float64 `json:"rest_phase_d"`
	HarvestG     float64 `json:"harvest_g"`
	MSRPEURkg    float64 `json:"msrp_eur_kg"`
}

func DefaultHarvestInput() HarvestInput {
	return HarvestInput{
		SeedsG:       13,
		PriceEURkg:   18,
		LightHPerDay: 8,
		GrowPhaseD:   10,
		RestPhaseD:   2,
		HarvestG:     325,
		MSRPEURkg:    13,
	}
}

type HarvestResult struct {
	Seeds         units.Quantity `json:"seeds"`
	SeedCost      units.Quantity `json:"seed_cost"`
	Light         units.Quantity `json:"light"`
	LightPerCycle units.Quantity `json:"light_per_cycle"`
	GrowPhase     units.Quantity `json:"grow_phase"`
	RestPhase     units.Quantity `json:"rest_phase"`
	Cycle         units.Quantity `json:"cycle"`
	Harvest       units.Quantity `json:"harvest"`
	Ratio         units.Quantity `json:"ratio"`
	MSRP          units.Quantity `json:"msrp"`
	Value         units.Quantity `json:"value"`
	Profit        units.Quantity `json:"profit"`
	Cycles        units.Quantity `json:"cycles"`
	MonthlyProfit units.Quantity `json:"monthly_profit"`
}

// HarvestReport values one tray and projects it over a month of back to
// back cycles.
func HarvestReport(h Harvest) (HarvestResult, error) {
	r := HarvestResult{Seeds: h.Seeds, Light: h.Light, GrowPhase: h.GrowPhase, RestPhase: h.RestPhase, Harvest: h.Harvest, MSRP: h.MSRP}
	var err error
	if r.SeedCost, err = h.Price.Mul(h.Seeds).In(finance.EUR); err != nil {
		return r, err
	}
	if r.LightPerCycle, err = h.Light.Mul(h.GrowPhase).In(units.Hour); err != nil {
		return r, err
	}
	if r.Cycle, err = h.GrowPhase.Add(h.RestPhase); err != nil {
		return r, err
	}
	if r.Ratio, err = h.Harvest.Div(h.Seeds).In(units.One); err != nil {
		return r, err
	}
	if r.Value, err = h.MSRP.Mul(h.Harvest).In(finance.EUR); err != nil {
		return r, err
	}
	if r.Profit, err = r.Value.Sub(r.SeedCost); err != nil {
		return r, err
	}
	if r.Cycles, err = Month.Div(r.Cycle).In(units.One); err != nil {
		return r, err
	}
	r.MonthlyProfit = r.Profit.Mul(r.Cycles)
	return r, nil
}

func CalculateHarvest(in HarvestInput) (HarvestResult, error) {
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"seeds_g", in.SeedsG},
		{"price_eur_kg", in.PriceEURkg},
		{"grow_phase_d", in.GrowPhaseD},
		{"harvest_g", in.HarvestG},
		{"msrp_eur_kg", in.MSRPEURkg},
	} {
		if err := calc.Positive(c.field, c.v); err != nil {
			return HarvestResult{}, err
		}
	}
	if in.RestPhaseD < 0 {
		return HarvestResult{}, calc.Invalid("rest_phase_d", "must not be negative, got %v", in.RestPhaseD)
	}
	if in.LightHPerDay < 0 || in.LightHPerDay > 24 {
		return HarvestResult{}, calc.Invalid("light_h_per_day", "must be within 0 to 24 h, got %v", in.LightHPerDay)
	}
	return HarvestReport(Harvest{
		Seeds:     units.Gram.Of(in.SeedsG),
		Price:     EURPerKilogram.Of(in.PriceEURkg),
		Light:     HourPerDay.Of(in.LightHPerDay),
		GrowPhase: units.Day.Of(in.GrowPhaseD),
		RestPhase: units.Day.Of(in.RestPhaseD),
		Harvest:   units.Gram.Of(in.HarvestG),
		MSRP:      EURPerKilogram.Of(in.MSRPEURkg),
	})
}

func (r HarvestResult) Document() report.Document {
	s := report.Section{Heading: "Harvest"}
	s.Add("Seeds", "%v", r.Seeds)
	s.Add("Seed-Cost", "%.3f", r.SeedCost)
	s.Add("Light", "%v", r.Light)
	s.Add("Light-Cycle", "%v", r.LightPerCycle)
	s.Add("Grow-Phase", "%v", r.GrowPhase)
	s.Add("Rest-Phase", "%v", r.RestPhase)
	s.Add("Cycle", "%v", r.Cycle)
	s.Add("Harvest", "%v", r.Harvest)
	s.Add("Ratio", "%.1f", r.Ratio)
	s.Add("MSRP", "%v", r.MSRP)
	s.Add("Value", "%.3f", r.Value)
	s.Add("Profit", "%.3f", r.Profit)
	s.Add("Cycles", "%.2f", r.Cycles)
	s.Add("Monthly-Profit", "%.2f", r.MonthlyProfit)
	return report.Document{Title: "Harvest", Sections: []report.Section{s}}
}

func HarvestDocument(raw json.RawMessage) (report.Document, error) {
	in, err := calc.DecodeInput(raw, DefaultHarvestInput())
	if err != nil {
		return report.Document{}, err
	}
	res, err := CalculateHarvest(in)
	if err != nil {
		return report.Document{}, err
	}
	return res.Document(), nil
}
