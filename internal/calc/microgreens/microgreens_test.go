package microgreens

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Estimator/internal/calc"
	"Estimator/internal/calc/report"
	"Estimator/internal/finance"
	"Estimator/internal/units"
)

const sampleCSV = `part number,name,seed g/tray,yield oz/tray,days/tray,seed price/25lb
PN-01,Broccoli,25,8,10,180
PN-02,Radish,30,10,8,95.5
`

var broccoli = Entry{PartNumber: "PN-01", Name: "Broccoli", SeedsGPerTray: 25, YieldOzPerTray: 8, DaysPerTray: 10, SeedPricePer25Lb: 180}

type staticCatalog []Entry

func (c staticCatalog) List(context.Context) ([]Entry, error) { return c, nil }

func defaultContainer(t *testing.T) GrowContainer {
	t.Helper()
	gc, err := DefaultContainerInput().GrowContainer()
	require.NoError(t, err)
	return gc
}

func TestGrowLight(t *testing.T) {
	l := GrowLight{Power: units.Watt.Of(25), Efficiency: units.Percent.Of(90)}
	waste, err := l.Waste()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, waste.Value(), 1e-9)
	assert.Equal(t, "W", waste.Unit().Symbol())

	heat, err := l.Heat(units.CubicMetre.Of(1))
	require.NoError(t, err)
	assert.InDelta(t, 2.5/(1.225*1005), heat.Value(), 1e-12)
	assert.True(t, heat.Unit().Equal(KelvinPerSecond))
}

func TestAirConditionPower(t *testing.T) {
	p, err := AirConditionPower(units.CubicMetre.Of(10), units.Kelvin.Of(2), units.Hour.Of(1))
	require.NoError(t, err)
	assert.InDelta(t, 1005*1.225*10*2/3600.0, p.Value(), 1e-9)

	_, err = AirConditionPower(units.SquareMetre.Of(10), units.Kelvin.Of(2), units.Hour.Of(1))
	assert.True(t, errors.Is(err, units.ErrDimensionMismatch))
}

func TestGrowContainerCounts(t *testing.T) {
	gc := defaultContainer(t)

	racks, err := gc.Racks()
	require.NoError(t, err)
	assert.Equal(t, 24, racks)

	shelves, err := gc.Shelves()
	require.NoError(t, err)
	assert.Equal(t, 120, shelves)

	trays, err := gc.Trays()
	require.NoError(t, err)
	assert.Equal(t, 480, trays)

	area, err := gc.TrayArea()
	require.NoError(t, err)
	assert.InDelta(t, 60, area.Value(), 1e-9)

	lights, err := gc.Lights()
	require.NoError(t, err)
	assert.Equal(t, 240, lights)
}

func TestTraysFloor(t *testing.T) {
	gc := defaultContainer(t)
	gc.Rack.Tray = units.Centimetre.Of(30)
	trays, err := gc.Trays()
	require.NoError(t, err)
	assert.Equal(t, 3*120, trays)
}

func TestContainerReport(t *testing.T) {
	res, err := CalculateContainer(DefaultContainerInput())
	require.NoError(t, err)
	assert.InDelta(t, 67.4937446, res.Volume.Value(), 1e-6)
	assert.InDelta(t, 6000, res.LightsPower.Value(), 1e-9)
	assert.InDelta(t, 600, res.Waste.Value(), 1e-9)
	assert.InDelta(t, 0.0072208043, res.Heat.Value(), 1e-9)
	assert.InDelta(t, 25.9948955, res.HeatOneHour.Value(), 1e-6)
	assert.InDelta(t, 600, res.CoolingOneHour.Value(), 1e-6)
	assert.InDelta(t, 6600, res.Power.Value(), 1e-6)
	assert.InDelta(t, 79.2, res.Energy.Value(), 1e-9)
	assert.InDelta(t, 24.552, res.EnergyCost.Value(), 1e-9)
	assert.True(t, res.EnergyCost.Unit().Equal(EURPerDay))

	text := report.Text(res.Document())
	assert.Contains(t, text, "Trays:        480\n")
	assert.Contains(t, text, "Heat-1h:      25.995 K\n")
	assert.Contains(t, text, "Energy:       79.20 kW·h/d\n")
	assert.Contains(t, text, "Energy-Cost:  24.55 EUR/d\n")
}

func TestContainerCountOverflow(t *testing.T) {
	in := DefaultContainerInput()
	in.RackWidthM = 1e-310
	_, err := CalculateContainer(in)
	assert.True(t, errors.Is(err, units.ErrNotCountable))
	assert.Equal(t, http.StatusBadRequest, calc.HTTPStatus(err))

	gc := defaultContainer(t)
	gc.Rack.Width = units.Metre.Of(1e-17)
	_, err = gc.Shelves()
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))

	_, err = gc.Trays()
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestContainerTariffInOtherCurrency(t *testing.T) {
	gc := defaultContainer(t)
	_, err := ContainerReport(gc, HourPerDay.Of(12), finance.PerKilowattHour(finance.USD).Of(0.31))
	assert.True(t, errors.Is(err, units.ErrDimensionMismatch))
}

func TestContainerValidate(t *testing.T) {
	in := DefaultContainerInput()
	in.LightHoursPerDay = 25
	_, err := CalculateContainer(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))

	in = DefaultContainerInput()
	in.Rows = 0
	_, err = CalculateContainer(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestPlant(t *testing.T) {
	r, err := Plant(broccoli.Microgreen(), defaultContainer(t))
	require.NoError(t, err)

	assert.InDelta(t, 0.39683207, r.Tray.Price.Value(), 1e-8)
	assert.InDelta(t, 226.796185, r.Tray.Yield.Value(), 1e-6)
	assert.InDelta(t, 2.9483504, r.Tray.Value.Value(), 1e-7)
	assert.InDelta(t, 2.5515183, r.Tray.Profit.Value(), 1e-7)
	assert.InDelta(t, 3, r.Tray.WaterUsage.Value(), 1e-9)
	assert.InDelta(t, 12, r.Cycle.Value(), 1e-12)
	assert.InDelta(t, 3, r.Cycles.Value(), 1e-12)

	assert.Equal(t, 480, r.Trays)
	assert.InDelta(t, 12, r.Round.Seeds.Value(), 1e-9)
	assert.InDelta(t, 36, r.Month.Seeds.Value(), 1e-9)
	assert.InDelta(t, 326.5865064, r.Month.Yield.Value(), 1e-6)
	assert.InDelta(t, 3674.1864, r.Month.Profit.Value(), 1e-3)
	assert.True(t, r.Month.Profit.Unit().Equal(finance.EUR))

	text := report.Text(report.Document{Sections: r.Sections()})
	assert.Contains(t, text, "Microgreens-Tray(1020) Broccoli:\n")
	assert.Contains(t, text, "Cycle:       12 d\n")
	assert.Contains(t, text, "Cycles:      3.00\n")
	assert.Contains(t, text, "Price:       0.40 EUR\n")
	assert.Contains(t, text, "Microgreens-Container(Month):\n")
}

func TestPlantZeroGrowPhase(t *testing.T) {
	e := broccoli
	e.DaysPerTray = 0
	r, err := Plant(e.Microgreen(), defaultContainer(t))
	require.NoError(t, err)
	assert.True(t, math.IsInf(r.Cycles.Value(), 1))
	assert.True(t, math.IsInf(r.Month.Seeds.Value(), 1))
	assert.Contains(t, report.Text(report.Document{Sections: r.Sections()}), "Cycles:      +Inf\n")
}

func TestHarvest(t *testing.T) {
	res, err := CalculateHarvest(DefaultHarvestInput())
	require.NoError(t, err)
	assert.InDelta(t, 0.234, res.SeedCost.Value(), 1e-12)
	assert.InDelta(t, 80, res.LightPerCycle.Value(), 1e-12)
	assert.InDelta(t, 12, res.Cycle.Value(), 1e-12)
	assert.InDelta(t, 25, res.Ratio.Value(), 1e-12)
	assert.InDelta(t, 4.225, res.Value.Value(), 1e-12)
	assert.InDelta(t, 3.991, res.Profit.Value(), 1e-12)
	assert.InDelta(t, 2.5, res.Cycles.Value(), 1e-12)
	assert.InDelta(t, 9.9775, res.MonthlyProfit.Value(), 1e-9)

	text := report.Text(res.Document())
	assert.Contains(t, text, "Seed-Cost:      0.234 EUR\n")
	assert.Contains(t, text, "Light-Cycle:    80 h\n")
	assert.Contains(t, text, "Monthly-Profit: 9.98 EUR\n")

	in := DefaultHarvestInput()
	in.GrowPhaseD = 0
	_, err = CalculateHarvest(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestReadCSV(t *testing.T) {
	entries, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, broccoli, entries[0])
	assert.Equal(t, "Radish", entries[1].Name)
	assert.InDelta(t, 95.5, entries[1].SeedPricePer25Lb, 1e-12)

	m := entries[0].Microgreen()
	assert.InDelta(t, 15.8732829, m.Price.Value(), 1e-6)
	assert.True(t, m.Price.Unit().Equal(EURPerKilogram))
	assert.InDelta(t, 0.25, m.Water.Value(), 1e-12)

	_, err = ReadCSV(strings.NewReader("a,b,c,d,e,f\nPN,Bad,x,1,1,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog line 2")

	_, err = ReadCSV(strings.NewReader("a,b,c,d,e,f\nPN-01,Broccoli,25,8,10,180\nPN-02,Short,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	e, err := ParseEntry([]string{" PN-09 ", " Pea ", "200", "12.5", "12", "60", "extra"})
	require.NoError(t, err)
	assert.Equal(t, Entry{PartNumber: "PN-09", Name: "Pea", SeedsGPerTray: 200, YieldOzPerTray: 12.5, DaysPerTray: 12, SeedPricePer25Lb: 60}, e)

	_, err = ParseEntry([]string{"PN-09", "Pea"})
	assert.ErrorContains(t, err, "expected 6 columns")

	entries, err = ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "microgreens.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	entries, err := FileCatalog{Path: path}.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = FileCatalog{Path: filepath.Join(t.TempDir(), "missing.csv")}.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = FileCatalog{Path: t.TempDir()}.List(context.Background())
	assert.Error(t, err)
}

func TestHandlerWithoutCatalogFile(t *testing.T) {
	h := &Handler{Catalog: FileCatalog{Path: filepath.Join(t.TempDir(), "microgreens.csv")}}
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/microgreens/calc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"plants":[]`)
}

type brokenCatalog struct{}

func (brokenCatalog) List(context.Context) ([]Entry, error) {
	return nil, errors.New("open /srv/data/microgreens.csv: permission denied")
}

func TestHandlerCatalogFailure(t *testing.T) {
	h := &Handler{Catalog: brokenCatalog{}}
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/microgreens/calc", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/srv/data")
}

func TestCalculateWithPlants(t *testing.T) {
	in := Input{Container: DefaultContainerInput(), Plants: []Entry{broccoli}}
	res, err := Calculate(in)
	require.NoError(t, err)
	require.Len(t, res.Plants, 1)
	assert.Len(t, res.Document().Sections, 4)

	in.Plants[0].DaysPerTray = -1
	_, err = Calculate(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestHandler(t *testing.T) {
	h := &Handler{Catalog: staticCatalog{broccoli}}

	rec := httptest.NewRecorder()
	h.Container(rec, httptest.NewRequest(http.MethodPost, "/api/tools/container/calc", strings.NewReader(`{"rows":1}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trays":240`)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/microgreens/calc", strings.NewReader(``)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Broccoli"`)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/microgreens/calc", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Harvest(rec, httptest.NewRequest(http.MethodPost, "/api/tools/harvest/calc", strings.NewReader(`{"rest_phase_d":-1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"part_number":"PN-01"`)

	rec = httptest.NewRecorder()
	(&Handler{}).List(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestDocumentSources(t *testing.T) {
	h := &Handler{Catalog: staticCatalog{broccoli}}
	doc, err := h.Document(nil)
	require.NoError(t, err)
	assert.Equal(t, "Microgreens", doc.Title)
	assert.Len(t, doc.Sections, 4)

	doc, err = h.ContainerDocument([]byte(`{"energy_cost_eur_kwh":0.5}`))
	require.NoError(t, err)
	assert.Contains(t, report.Text(doc), "Energy-Cost:  39.60 EUR/d\n")

	_, err = HarvestDocument([]byte(`{"seeds_g":0}`))
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}
