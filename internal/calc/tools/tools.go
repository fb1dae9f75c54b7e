// Package tools wires the calculators into named report sources shared by
// the HTTP service, the CLI and the bot.
package tools

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"Estimator/internal/calc/atmosphere"
	"Estimator/internal/calc/hydrogen"
	"Estimator/internal/calc/microgreens"
	"Estimator/internal/calc/premium/batch"
	"Estimator/internal/calc/quadcopter"
	"Estimator/internal/calc/report"
	"Estimator/internal/calc/solar"
	"Estimator/internal/config"
)

// Overview lists the sources of the combined report, in print order.
var Overview = []string{"altitude-sweep", "hydrogen", "harvest", "solar", "container"}

// Microgreens builds the microgreens handler with the configured tariff and
// light hours as container defaults.
func Microgreens(cfg config.MicrogreensConfig, catalog microgreens.Catalog) *microgreens.Handler {
	d := microgreens.DefaultContainerInput()
	if cfg.EnergyCostEURkWh > 0 {
		d.EnergyCostEURkWh = cfg.EnergyCostEURkWh
	}
	if cfg.LightHoursPerDay > 0 {
		d.LightHoursPerDay = cfg.LightHoursPerDay
	}
	return &microgreens.Handler{Defaults: d, Catalog: catalog}
}

func Sources(mg *microgreens.Handler) map[string]report.Source {
	return map[string]report.Source{
		"atmosphere":     atmosphere.Report,
		"hydrogen":       hydrogen.Report,
		"compress":       hydrogen.CompressReport,
		"quadcopter":     quadcopter.Report,
		"altitude-sweep": batch.SweepReport,
		"solar":          solar.Report,
		"container":      mg.ContainerDocument,
		"microgreens":    mg.Document,
		"harvest":        microgreens.HarvestDocument,
	}
}

// Build runs one source with its default input.
func Build(sources map[string]report.Source, name string) (report.Document, error) {
	src, ok := sources[name]
	if !ok {
		return report.Document{}, errors.Newf("unknown tool %q", name)
	}
	doc, err := src(nil)
	return doc, errors.Wrapf(err, "%s report", name)
}

// All merges the Overview reports into one document.
func All(sources map[string]report.Source) (report.Document, error) {
	docs := make([]report.Document, 0, len(Overview))
	for _, name := range Overview {
		doc, err := Build(sources, name)
		if err != nil {
			return report.Document{}, err
		}
		docs = append(docs, doc)
	}
	return report.Merge("Estimator overview", docs...), nil
}

// ListInput turns numeric arguments into a source input holding them as a
// list under key. No arguments yield nil, the source defaults.
func ListInput(key string, args []string) (json.RawMessage, error) {
	if key == "" || len(args) == 0 {
		return nil, nil
	}
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, ","), 64)
		if err != nil {
			return nil, errors.Newf("%q is not a number", a)
		}
		values[i] = v
	}
	raw, err := json.Marshal(map[string][]float64{key: values})
	return raw, errors.Wrap(err, "encoding input")
}
