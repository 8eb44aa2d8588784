package services

import (
	"testing"
	"time"

	"travomine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pricingAsOf = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func standardRules() RuleSet {
	return RuleSet{
		Markups: map[models.ServiceType]float64{
			models.ServiceTypeHotel:  15,
			models.ServiceTypeFlight: 5,
		},
		Taxes: map[models.ServiceType]float64{
			models.ServiceTypeHotel:  12,
			models.ServiceTypeFlight: 7,
		},
	}
}

func activeDiscount(code string, pct float64) *models.Discount {
	return &models.Discount{
		Code:       code,
		Percentage: pct,
		ValidFrom:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestPriceSingleHotelLine(t *testing.T) {
	selections := []ServiceSelection{
		{ServiceType: models.ServiceTypeHotel, Description: "Deluxe, 4 nights", BaseCost: 10000},
	}

	breakdown, err := Price(selections, standardRules(), nil, pricingAsOf)
	require.NoError(t, err)

	require.Len(t, breakdown.Lines, 1)
	assert.InDelta(t, 11500, breakdown.Lines[0].MarkedUp, 1e-9)
	assert.InDelta(t, 12880, breakdown.Lines[0].Taxed, 1e-9)
	assert.InDelta(t, 11500, breakdown.Subtotal, 1e-9)
	assert.InDelta(t, 1380, breakdown.TaxTotal, 1e-9)
	assert.Equal(t, 0.0, breakdown.DiscountAmount)
	assert.Equal(t, 12880.00, breakdown.Total)
}

func TestPriceWithDiscount(t *testing.T) {
	selections := []ServiceSelection{
		{ServiceType: models.ServiceTypeHotel, BaseCost: 10000},
	}

	breakdown, err := Price(selections, standardRules(), activeDiscount("EARLY20", 20), pricingAsOf)
	require.NoError(t, err)

	// 20% off the pre-tax subtotal of 11500, never off the taxed figure.
	assert.InDelta(t, 2300, breakdown.DiscountAmount, 1e-9)
	assert.Equal(t, 10580.00, breakdown.Total)
}

func TestPriceMissingRuleMeansZeroPercent(t *testing.T) {
	selections := []ServiceSelection{
		{ServiceType: models.ServiceTypeMeal, BaseCost: 500},
	}

	breakdown, err := Price(selections, standardRules(), nil, pricingAsOf)
	require.NoError(t, err)

	assert.InDelta(t, 500, breakdown.Subtotal, 1e-9)
	assert.InDelta(t, 0, breakdown.TaxTotal, 1e-9)
	assert.Equal(t, 500.00, breakdown.Total)
}

func TestPriceMultipleLinesAccumulateUnrounded(t *testing.T) {
	selections := []ServiceSelection{
		{ServiceType: models.ServiceTypeHotel, BaseCost: 333.33},
		{ServiceType: models.ServiceTypeHotel, BaseCost: 333.33},
		{ServiceType: models.ServiceTypeHotel, BaseCost: 333.33},
	}

	breakdown, err := Price(selections, standardRules(), nil, pricingAsOf)
	require.NoError(t, err)

	// Intermediates keep full precision; only the final total is rounded.
	expectedSubtotal := 3 * (333.33 * 1.15)
	expectedTax := 3 * (333.33*1.15*1.12 - 333.33*1.15)
	assert.InDelta(t, expectedSubtotal, breakdown.Subtotal, 1e-9)
	assert.InDelta(t, expectedTax, breakdown.TaxTotal, 1e-9)
	assert.Equal(t, Round2(expectedSubtotal+expectedTax), breakdown.Total)
}

func TestPriceDeterministic(t *testing.T) {
	selections := []ServiceSelection{
		{ServiceType: models.ServiceTypeHotel, BaseCost: 1234.56},
		{ServiceType: models.ServiceTypeFlight, BaseCost: 789.01},
	}
	discount := activeDiscount("SUMMER10", 10)

	first, err := Price(selections, standardRules(), discount, pricingAsOf)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := Price(selections, standardRules(), discount, pricingAsOf)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPriceEmptySelections(t *testing.T) {
	breakdown, err := Price(nil, standardRules(), nil, pricingAsOf)
	require.NoError(t, err)

	assert.Empty(t, breakdown.Lines)
	assert.Equal(t, 0.00, breakdown.Total)
}

func TestPriceEmptySelectionsStillValidatesDiscount(t *testing.T) {
	expired := &models.Discount{
		Code:       "GONE",
		Percentage: 10,
		ValidFrom:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	_, err := Price(nil, standardRules(), expired, pricingAsOf)
	require.Error(t, err)

	var invalidDiscount *InvalidDiscountError
	require.ErrorAs(t, err, &invalidDiscount)
	assert.Equal(t, "GONE", invalidDiscount.Code)
}

func TestPriceDiscountWindowInclusive(t *testing.T) {
	discount := activeDiscount("EDGE", 10)

	for _, asOf := range []time.Time{discount.ValidFrom, discount.ValidTo} {
		_, err := Price([]ServiceSelection{{ServiceType: models.ServiceTypeHotel, BaseCost: 100}}, standardRules(), discount, asOf)
		assert.NoError(t, err, "boundary date %s should be inside the window", asOf)
	}

	_, err := Price([]ServiceSelection{{ServiceType: models.ServiceTypeHotel, BaseCost: 100}}, standardRules(), discount, discount.ValidTo.Add(time.Second))
	assert.Error(t, err)
}

func TestPriceNegativeBaseCost(t *testing.T) {
	_, err := Price([]ServiceSelection{{ServiceType: models.ServiceTypeHotel, BaseCost: -1}}, standardRules(), nil, pricingAsOf)

	var invalidInput *InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
	assert.Contains(t, invalidInput.Field, "base_cost")
}

func TestPriceUnknownServiceType(t *testing.T) {
	_, err := Price([]ServiceSelection{{ServiceType: "CRUISE", BaseCost: 100}}, standardRules(), nil, pricingAsOf)

	var invalidInput *InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
}

func TestPriceRejectsOutOfRangePercentages(t *testing.T) {
	rules := standardRules()
	rules.Markups[models.ServiceTypeHotel] = 101

	_, err := Price([]ServiceSelection{{ServiceType: models.ServiceTypeHotel, BaseCost: 100}}, rules, nil, pricingAsOf)
	var invalidInput *InvalidInputError
	require.ErrorAs(t, err, &invalidInput)

	rules = standardRules()
	rules.Taxes[models.ServiceTypeFlight] = -0.5
	_, err = Price([]ServiceSelection{{ServiceType: models.ServiceTypeFlight, BaseCost: 100}}, rules, nil, pricingAsOf)
	require.ErrorAs(t, err, &invalidInput)

	_, err = Price(nil, standardRules(), activeDiscount("BAD", 120), pricingAsOf)
	require.ErrorAs(t, err, &invalidInput)
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, 10580.00, Round2(10580.0))
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.01, Round2(0.005))
}
