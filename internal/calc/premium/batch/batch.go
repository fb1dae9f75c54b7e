// Package batch runs a calculator over many inputs.
package batch

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"Estimator/internal/calc"
	"Estimator/internal/calc/microgreens"
	"Estimator/internal/calc/quadcopter"
	"Estimator/internal/calc/report"
)

// ErrNoItems is returned for an empty batch.
var ErrNoItems = errors.Wrap(calc.ErrInvalidInput, "no items")

// Run applies fn to every item in order and stops at the first failure.
func Run[I, R any](items []I, fn func(I) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	out := make([]R, 0, len(items))
	for i, item := range items {
		res, err := fn(item)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		out = append(out, res)
	}
	return out, nil
}

type QuadcopterBatchInput struct {
	Items []quadcopter.Input `json:"items"`
}

type QuadcopterBatchResult struct {
	Results []quadcopter.Estimate `json:"results"`
}

func CalculateQuadcopter(in QuadcopterBatchInput) (QuadcopterBatchResult, error) {
	res, err := Run(in.Items, quadcopter.Calculate)
	return QuadcopterBatchResult{Results: res}, err
}

// SweepInput flies the same copter and leg at each altitude.
type SweepInput struct {
	Base       quadcopter.Input `json:"base"`
	AltitudesM []float64        `json:"altitudes_m"`
}

func DefaultSweepInput() SweepInput {
	return SweepInput{Base: quadcopter.DefaultInput(), AltitudesM: []float64{500, 1000, 1500}}
}

// Items expands the sweep into one quadcopter input per altitude.
func (in SweepInput) Items() []quadcopter.Input {
	items := make([]quadcopter.Input, len(in.AltitudesM))
	for i, alt := range in.AltitudesM {
		items[i] = in.Base
		items[i].AltitudeM = alt
	}
	return items
}

func CalculateSweep(in SweepInput) (QuadcopterBatchResult, error) {
	return CalculateQuadcopter(QuadcopterBatchInput{Items: in.Items()})
}

func (r QuadcopterBatchResult) Document() report.Document {
	d := report.Document{Title: "Quad-copter altitude sweep"}
	for _, e := range r.Results {
		d.Append(e.Section())
	}
	return d
}

// SweepReport is the report source for the altitude sweep.
func SweepReport(raw json.RawMessage) (report.Document, error) {
	in, err := calc.DecodeInput(raw, DefaultSweepInput())
	if err != nil {
		return report.Document{}, err
	}
	res, err := CalculateSweep(in)
	if err != nil {
		return report.Document{}, err
	}
	return res.Document(), nil
}

type HarvestBatchInput struct {
	Items []microgreens.HarvestInput `json:"items"`
}

type HarvestBatchResult struct {
	Results []microgreens.HarvestResult `json:"results"`
}

func CalculateHarvest(in HarvestBatchInput) (HarvestBatchResult, error) {
	res, err := Run(in.Items, microgreens.CalculateHarvest)
	return HarvestBatchResult{Results: res}, err
}
