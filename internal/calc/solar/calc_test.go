package solar

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

func TestCalculate(t *testing.T) {
	res, err := Calculate(DefaultInput())
	require.NoError(t, err)
	assert.InDelta(t, 5, res.Area.Value(), 1e-12)
	assert.InDelta(t, 0.9, res.PeakPower.Value(), 1e-12)
	assert.InDelta(t, 0.9, res.Output.Value(), 1e-12)
	assert.InDelta(t, 10.8, res.Energy.Value(), 1e-12)
	assert.True(t, res.Energy.Unit().Equal(units.KilowattHour))
}

func TestOutputScalesWithIrradiance(t *testing.T) {
	in := DefaultInput()
	in.IrradianceWM2 = 500
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, res.PeakPower.Value(), 1e-12)
	assert.InDelta(t, 0.45, res.Output.Value(), 1e-12)
}

func TestPowerOutputRejectsWrongUnits(t *testing.T) {
	p := Panel{Width: units.Metre.Of(1), Height: units.Second.Of(1), Efficiency: units.Percent.Of(20)}
	_, err := PowerOutput(p, Location{Irradiance: WattPerSquareMetre.Of(1000), Daylight: units.Hour.Of(1)})
	assert.True(t, errors.Is(err, units.ErrDimensionMismatch))
}

func TestValidate(t *testing.T) {
	in := DefaultInput()
	in.EfficiencyPct = 120
	_, err := Calculate(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))

	in = DefaultInput()
	in.DaylightH = -1
	_, err = Calculate(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestReport(t *testing.T) {
	doc, err := Report(nil)
	require.NoError(t, err)
	text := report.Text(doc)
	assert.Contains(t, text, "Width:      500.000 cm\n")
	assert.Contains(t, text, "Efficiency: 18 %\n")
	assert.Contains(t, text, "kWp:        0.900 kW\n")
	assert.Contains(t, text, "Irradiance: 1000 W/m²\n")
	assert.Contains(t, text, "Energy:     10.800 kW·h\n")
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/solar/calc", strings.NewReader(`{"daylight_h":6}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"energy":{"value":5.4`)
}
