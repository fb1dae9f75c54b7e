package quadcopter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Estimator/internal/calc"
	"Estimator/internal/calc/atmosphere"
	"Estimator/internal/calc/report"
	"Estimator/internal/units"
)

func TestEstimateAtDefaultAltitude(t *testing.T) {
	e, err := Calculate(DefaultInput())
	require.NoError(t, err)

	assert.InDelta(t, 127.48645, e.Thrust.Value(), 1e-9)
	assert.Equal(t, "N", e.Thrust.Unit().Symbol())
	assert.InDelta(t, 1.113135, e.AirDensity.Value(), 1e-6)
	assert.InDelta(t, 1910.540, e.PowerVertical.Value(), 1e-3)
	assert.InDelta(t, 644.175, e.PowerHorizontal.Value(), 1e-3)
	assert.InDelta(t, 2554.716, e.PowerTotal.Value(), 1e-3)
	assert.InDelta(t, 255.472, e.PowerRatio.Value(), 1e-3)
	assert.InDelta(t, 30, e.FlightTime.Value(), 1e-9)
	assert.InDelta(t, 76.641, e.Energy.Value(), 1e-3)
	assert.Equal(t, "kW·h", e.Energy.Unit().Symbol())
}

func TestVerticalPowerGrowsWithAltitude(t *testing.T) {
	in := DefaultInput()
	copter, flight, err := in.Validate()
	require.NoError(t, err)

	var prev units.Quantity
	for i, h := range []float64{500, 1000, 1500} {
		e, err := EstimatePower(copter, flight.WithAltitude(units.Metre.Of(h)), atmosphere.Exponential)
		require.NoError(t, err)
		if i > 0 {
			c, err := e.PowerVertical.Compare(prev)
			require.NoError(t, err)
			assert.Equal(t, 1, c)
		}
		prev = e.PowerVertical
	}
}

func TestFlightCopies(t *testing.T) {
	f := Flight{Distance: units.Kilometre.Of(1), Altitude: units.Metre.Of(0), Speed: KilometrePerHour.Of(50)}
	g := f.WithDistance(units.Kilometre.Of(2)).WithSpeed(KilometrePerHour.Of(80))
	assert.Equal(t, 1.0, f.Distance.Value())
	assert.Equal(t, 2.0, g.Distance.Value())
	assert.Equal(t, 80.0, g.Speed.Value())
}

func TestValidate(t *testing.T) {
	in := DefaultInput()
	in.WeightKG = 0
	_, err := Calculate(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))

	in = DefaultInput()
	in.AltitudeM = 20000
	_, err = Calculate(in)
	assert.True(t, errors.Is(err, calc.ErrInvalidInput))
}

func TestReport(t *testing.T) {
	doc, err := Report(nil)
	require.NoError(t, err)
	text := report.Text(doc)
	assert.Contains(t, text, "Quad-Copter Flight at 1000 m:\n")
	assert.Contains(t, text, "Weight:      10000.000 g\n")
	assert.Contains(t, text, "Area_f:      0.090 m²\n")
	assert.Contains(t, text, "Speed_h:     100.000 km/h\n")
	assert.Contains(t, text, "Time:        30.000 h\n")
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/quadcopter/calc", strings.NewReader(`{"altitude_m":500}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"power_total"`)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/quadcopter/calc", strings.NewReader(`{"speed_kmh":0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
