// Package microgreens sizes a container farm: racks, trays, lighting and the
// cooling it needs, and the yield of the crops grown in it.
package microgreens

import (
	"context"
	"encoding/json"

	"Estimator/internal/calc"
	"Estimator/internal/calc/report"
)

type Input struct {
	Container ContainerInput `json:"container"`
	Plants    []Entry        `json:"plants"`
}

type Result struct {
	Container ContainerResult `json:"container"`
	Plants    []PlantReport   `json:"plants"`
}

// Calculate reports the container and every plant grown in it.
func Calculate(in Input) (Result, error) {
	gc, err := in.Container.GrowContainer()
	if err != nil {
		return Result{}, err
	}
	cr, err := CalculateContainer(in.Container)
	if err != nil {
		return Result{}, err
	}
	res := Result{Container: cr, Plants: make([]PlantReport, 0, len(in.Plants))}
	for i, e := range in.Plants {
		if e.SeedsGPerTray < 0 || e.YieldOzPerTray < 0 || e.DaysPerTray < 0 || e.SeedPricePer25Lb < 0 {
			return Result{}, calc.Invalid("plants", "entry %d (%s) has a negative value", i, e.Name)
		}
		pr, err := Plant(e.Microgreen(), gc)
		if err != nil {
			return Result{}, err
		}
		res.Plants = append(res.Plants, pr)
	}
	return res, nil
}

func (r Result) Document() report.Document {
	d := report.Document{Title: "Microgreens", Sections: []report.Section{r.Container.Section()}}
	for _, p := range r.Plants {
		d.Append(p.Sections()...)
	}
	return d
}

// Sources

func (h *Handler) defaults() ContainerInput {
	if h.Defaults == (ContainerInput{}) {
		return DefaultContainerInput()
	}
	return h.Defaults
}

// input decodes raw over the handler defaults and loads the catalog when
// no plants are given.
func (h *Handler) input(ctx context.Context, raw json.RawMessage) (Input, error) {
	in, err := calc.DecodeInput(raw, Input{Container: h.defaults()})
	if err != nil {
		return in, err
	}
	if len(in.Plants) == 0 && h.Catalog != nil {
		if in.Plants, err = h.Catalog.List(ctx); err != nil {
			return in, err
		}
	}
	return in, nil
}

// ContainerDocument is the container report source.
func (h *Handler) ContainerDocument(raw json.RawMessage) (report.Document, error) {
	in, err := calc.DecodeInput(raw, h.defaults())
	if err != nil {
		return report.Document{}, err
	}
	res, err := CalculateContainer(in)
	if err != nil {
		return report.Document{}, err
	}
	return res.Document(), nil
}

// Document is the microgreens report source.
func (h *Handler) Document(raw json.RawMessage) (report.Document, error) {
	in, err := h.input(context.Background(), raw)
	if err != nil {
		return report.Document{}, err
	}
	res, err := Calculate(in)
	if err != nil {
		return report.Document{}, err
	}
	return res.Document(), nil
}
