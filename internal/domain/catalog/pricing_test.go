package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestQuoteFixed(t *testing.T) {
	svc := &models.Service{PricingModel: string(PricingFixed), BasePrice: 50}

	total, err := Quote(svc, QuoteInput{})
	require.NoError(t, err)
	assert.Equal(t, 50.0, total)
}

func TestQuoteHourly(t *testing.T) {
	svc := &models.Service{PricingModel: string(PricingHourly), BasePrice: 20, EstimatedDuration: 90}

	total, err := Quote(svc, QuoteInput{})
	require.NoError(t, err)
	assert.Equal(t, 30.0, total)

	total, err = Quote(svc, QuoteInput{DurationHours: ptr(2.5)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, total)

	total, err = Quote(svc, QuoteInput{DurationHours: ptr(0.25)})
	require.NoError(t, err)
	assert.Equal(t, 20.0, total)
}

func TestQuoteAreaBased(t *testing.T) {
	svc := &models.Service{
		PricingModel: string(PricingAreaBased),
		AreaPricingRules: []models.AreaPricingRule{
			{MinArea: ptr(0), MaxArea: ptr(50), PricePerUnit: 2, BaseFee: 10},
			{MinArea: ptr(50), PricePerUnit: 1.5, BaseFee: 20},
		},
	}

	total, err := Quote(svc, QuoteInput{Area: ptr(40)})
	require.NoError(t, err)
	assert.Equal(t, 90.0, total)

	total, err = Quote(svc, QuoteInput{Area: ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, 170.0, total)

	_, err = Quote(svc, QuoteInput{})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestQuoteAreaWithoutMatchingRule(t *testing.T) {
	svc := &models.Service{
		PricingModel:     string(PricingAreaBased),
		AreaPricingRules: []models.AreaPricingRule{{MinArea: ptr(10), MaxArea: ptr(20), PricePerUnit: 1}},
	}

	_, err := Quote(svc, QuoteInput{Area: ptr(5)})
	assert.True(t, httperr.IsBusiness(err, "no_area_pricing"))
}

func TestQuoteAddsActiveAddOnsAndRounds(t *testing.T) {
	svc := &models.Service{PricingModel: string(PricingFixed), BasePrice: 10.333}

	total, err := Quote(svc, QuoteInput{AddOns: []models.ServiceAddOn{
		{Price: 5.10, IsActive: true},
		{Price: 100, IsActive: false},
	}})
	require.NoError(t, err)
	assert.Equal(t, 15.43, total)
}

func TestValidateAvailability(t *testing.T) {
	ok := []models.ServiceAvailability{
		{DayOfWeek: 0, StartTime: "08:00", EndTime: "17:00"},
		{DayOfWeek: 6, StartTime: "10:00", EndTime: "12:00"},
	}
	assert.NoError(t, ValidateAvailability(ok))

	dup := append(ok, models.ServiceAvailability{DayOfWeek: 0, StartTime: "18:00", EndTime: "19:00"})
	assert.True(t, httperr.IsBusiness(ValidateAvailability(dup), "duplicate_day"))

	inverted := []models.ServiceAvailability{{DayOfWeek: 1, StartTime: "17:00", EndTime: "08:00"}}
	assert.True(t, httperr.IsBusiness(ValidateAvailability(inverted), "invalid_time_range"))

	badDay := []models.ServiceAvailability{{DayOfWeek: 7, StartTime: "08:00", EndTime: "09:00"}}
	assert.True(t, httperr.IsBusiness(ValidateAvailability(badDay), "invalid_day_of_week"))
}
