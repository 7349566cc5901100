package commission

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRatesForTiers(t *testing.T) {
	cases := []struct {
		subtotal float64
		tier     string
		total    float64
		client   float64
	}{
		{20, "20-30", 11.0, 9.0},
		{25.5, "20-30", 11.0, 9.0},
		{30, "20-30", 11.0, 9.0},
		{31, "31-49", 8.0, 6.0},
		{49, "31-49", 8.0, 6.0},
		{50, "50-100", 5.8, 3.8},
		{99.99, "50-100", 5.8, 3.8},
		{150, "150+", 4.2, 2.2},
		{10000, "150+", 4.2, 2.2},
	}
	for _, tc := range cases {
		tier := RatesFor(tc.subtotal)
		assert.Equal(t, tc.tier, tier.Name, "subtotal %v", tc.subtotal)
		assert.Equal(t, tc.total, tier.Rates.XquisitoTotal, "subtotal %v", tc.subtotal)
		assert.Equal(t, tc.client, tier.Rates.ClientPays, "subtotal %v", tc.subtotal)
		assert.Equal(t, 2.0, tier.Rates.RestaurantPays, "subtotal %v", tc.subtotal)
	}
}

func TestRatesForGapsFallBack(t *testing.T) {
	for _, subtotal := range []float64{0, 5, 19.99, 30.5, 49.5, 100, 120, 149.99} {
		tier := RatesFor(subtotal)
		assert.Equal(t, "fallback", tier.Name, "subtotal %v", subtotal)
		assert.Equal(t, Rates{11.0, 9.0, 2.0}, tier.Rates, "subtotal %v", subtotal)
	}
}

func TestTierSharesAddUp(t *testing.T) {
	for _, tier := range append(Tiers(), fallback) {
		r := tier.Rates
		assert.InDelta(t, r.XquisitoTotal, r.ClientPays+r.RestaurantPays, eps, tier.Name)
	}
}

func TestTiersReturnsCopy(t *testing.T) {
	got := Tiers()
	got[0].Rates.XquisitoTotal = 99
	assert.Equal(t, 11.0, RatesFor(25).Rates.XquisitoTotal)
}

func TestCalculateCommissionsExample(t *testing.T) {
	b, err := CalculateCommissions(40, 10)
	require.NoError(t, err)

	assert.Equal(t, 50.0, b.SubtotalForCommission)
	assert.Equal(t, Rates{5.8, 3.8, 2.0}, b.Rates)
	assert.InDelta(t, 1.6, b.IVATip, eps)
	assert.InDelta(t, 2.9, b.XquisitoCommissionTotal, eps)
	assert.InDelta(t, 1.90, b.XquisitoCommissionClient, eps)
	assert.InDelta(t, 1.0, b.XquisitoCommissionRestaurant, eps)
	assert.InDelta(t, 0.304, b.IVAXquisitoClient, eps)
	assert.InDelta(t, 0.16, b.IVAXquisitoRestaurant, eps)
	assert.InDelta(t, 2.204, b.XquisitoClientCharge, eps)
	assert.InDelta(t, 1.16, b.XquisitoRestaurantCharge, eps)
	assert.InDelta(t, 52.204, b.TotalAmountCharged, eps)
	assert.InDelta(t, 48.84, b.RestaurantNetAmount, eps)
}

func TestCalculateCommissionsTopTier(t *testing.T) {
	b, err := CalculateCommissions(200, 0)
	require.NoError(t, err)
	assert.Equal(t, "150+", b.Tier)
	assert.Equal(t, 4.2, b.Rates.XquisitoTotal)
	assert.InDelta(t, 4.4, b.XquisitoCommissionClient, eps)
	assert.Zero(t, b.IVATip)
}

func TestCalculateCommissionsIdentities(t *testing.T) {
	amounts := [][2]float64{{0, 0}, {12.5, 3}, {22, 4.75}, {35, 10}, {88.8, 11.1}, {130, 0}, {1234.56, 100}}
	for _, a := range amounts {
		b, err := CalculateCommissions(a[0], a[1])
		require.NoError(t, err)
		assert.Equal(t, a[0]+a[1]+b.XquisitoClientCharge, b.TotalAmountCharged)
		assert.Equal(t, b.XquisitoCommissionClient*1.16, b.XquisitoClientCharge)
		assert.Equal(t, b.XquisitoCommissionRestaurant*1.16, b.XquisitoRestaurantCharge)
		assert.InDelta(t, b.XquisitoCommissionTotal, b.XquisitoCommissionClient+b.XquisitoCommissionRestaurant, eps)
	}
}

func TestCalculateCommissionsDeterministic(t *testing.T) {
	first, err := CalculateCommissions(77.7, 8.3)
	require.NoError(t, err)
	second, err := CalculateCommissions(77.7, 8.3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateCommissionsRejectsInvalidAmounts(t *testing.T) {
	bad := [][2]float64{
		{-1, 0},
		{0, -0.01},
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
	}
	for _, a := range bad {
		_, err := CalculateCommissions(a[0], a[1])
		assert.ErrorIs(t, err, ErrInvalidAmount, "inputs %v", a)
	}
}

func TestDisplayFormatsTwoDecimals(t *testing.T) {
	b, err := CalculateCommissions(40, 10)
	require.NoError(t, err)

	d := b.Display()
	assert.Equal(t, "40.00", d.BaseAmount)
	assert.Equal(t, "1.90", d.XquisitoCommissionClient)
	assert.Equal(t, "0.30", d.IVAXquisitoClient)
	assert.Equal(t, "2.20", d.XquisitoClientCharge)
	assert.Equal(t, "52.20", d.TotalAmountCharged)
}

func TestCalculateCommissionsRejectsOverflow(t *testing.T) {
	huge := [][2]float64{
		{1e308, 0},
		{1e308, 1e308},
		{0, math.MaxFloat64},
		{9e307, 0},
	}
	for _, a := range huge {
		b, err := CalculateCommissions(a[0], a[1])
		assert.ErrorIs(t, err, ErrInvalidAmount, "inputs %v", a)
		assert.Equal(t, Breakdown{}, b, "inputs %v", a)
	}
}

func TestCalculateCommissionsLargeFiniteAmount(t *testing.T) {
	b, err := CalculateCommissions(1e300, 0)
	require.NoError(t, err)
	assert.NotPanics(t, func() { _ = b.Display() })
}
