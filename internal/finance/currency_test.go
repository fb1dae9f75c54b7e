package finance

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Estimator/internal/units"
)

func TestCurrencyKind(t *testing.T) {
	assert.Equal(t, "currency", Currency.Name())
	assert.Equal(t, "$", Currency.Dimension().String())
	assert.True(t, Currency.Contains(EUR))
	assert.True(t, Currency.Contains(Cent))
	assert.False(t, EUR.ConvertibleTo(USD))
	assert.True(t, Cent.ConvertibleTo(EUR))
}

func TestTariff(t *testing.T) {
	tariff := PerKilowattHour(EUR).Of(0.31)
	energy := units.KilowattHour.Div(units.Day).Of(7.5)

	cost, err := tariff.Mul(energy).In(EUR.Div(units.Day))
	require.NoError(t, err)
	assert.InDelta(t, 2.325, cost.Value(), 1e-12)
	assert.Equal(t, "EUR/d", cost.Unit().Symbol())

	_, err = tariff.Mul(energy).In(USD.Div(units.Day))
	assert.True(t, errors.Is(err, units.ErrDimensionMismatch))
}

func TestSeedPricePerPound(t *testing.T) {
	// 45 EUR per 25 lb bag, expressed per kilogram.
	price := EUR.Of(45).Div(units.Pound.Of(25))
	perKg, err := price.In(PerKilogram(EUR))
	require.NoError(t, err)
	assert.InDelta(t, 3.9683207, perKg.Value(), 1e-6)
}
