package hydrogen

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Estimator/internal/calc"
	"Estimator/internal/calc/report"
	"Estimator/internal/units"
)

func TestEnergy(t *testing.T) {
	e, err := Energy(GasDensity, units.Litre.Of(5))
	require.NoError(t, err)
	assert.InDelta(t, 0.01496502, e.Value(), 1e-9)
	assert.Equal(t, "kW·h", e.Unit().Symbol())

	_, err = Energy(GasDensity, units.Metre.Of(5))
	assert.True(t, errors.Is(err, units.ErrDimensionMismatch))
}

func TestCompare(t *testing.T) {
	s, err := Compare(units.Litre.Of(5))
	require.NoError(t, err)
	assert.InDelta(t, 0.4494, s.GasMass.Value(), 1e-12)
	assert.InDelta(t, 354.25, s.LiquidMass.Value(), 1e-9)
	assert.InDelta(t, 11.796525, s.LiquidEnergy.Value(), 1e-9)
	assert.InDelta(t, 788.273, s.Increase.Value(), 1e-3)
	assert.True(t, s.Increase.IsDimensionless())
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(DefaultInput())
	require.NoError(t, err)
	require.Len(t, res.Storages, 3)
	assert.InDelta(t, 58.982625, res.Storages[2].LiquidEnergy.Value(), 1e-9)

	text := report.Text(res.Document())
	assert.Contains(t, text, "Mass Gas:       0.449 g\n")
	assert.Contains(t, text, "Energy Gas:     0.015 kW·h\n")
	assert.Contains(t, text, "Increase:       788.273x\n")

	_, err = Calculate(Input{VolumesL: []float64{0}})
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
	_, err = Calculate(Input{})
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestCompressGas(t *testing.T) {
	res, err := CompressGas(DefaultCompressInput())
	require.NoError(t, err)
	assert.InDelta(t, 40.35985, res.Moles.Value(), 1e-5)
	assert.InDelta(t, 80.7197, res.Mass.Value(), 1e-4)
	assert.Equal(t, "g", res.Mass.Unit().Symbol())
	assert.Equal(t, 2e7, res.Pressure.Value())

	doc := res.Document()
	assert.Equal(t, "Gas Constant", doc.Sections[0].Lines[2].Label)
	assert.Equal(t, "8.314463 J/(mol·K)", doc.Sections[0].Lines[2].Value)
	assert.Equal(t, "20000000 Pa", doc.Sections[0].Lines[0].Value)

	in := DefaultCompressInput()
	in.TemperatureK = 0
	_, err = CompressGas(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestReports(t *testing.T) {
	doc, err := Report([]byte(`{"volumes_l":[1]}`))
	require.NoError(t, err)
	assert.Len(t, doc.Sections, 1)

	doc, err = CompressReport(nil)
	require.NoError(t, err)
	assert.Equal(t, "Compress gas", doc.Sections[0].Heading)
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/hydrogen/calc", strings.NewReader(`{"volumes_l":[5]}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gas_mass":{"value":0.4494`)

	rec = httptest.NewRecorder()
	h.Compress(rec, httptest.NewRequest(http.MethodPost, "/api/tools/compress/calc", strings.NewReader(`{"volume_l":-1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/hydrogen/calc", strings.NewReader(`nope`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
