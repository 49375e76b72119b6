package catalog

import (
	"math"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// ===============================
// Pricing models
// ===============================

type PricingModel string

const (
	PricingFixed     PricingModel = "fixed"
	PricingHourly    PricingModel = "hourly"
	PricingAreaBased PricingModel = "area_based"
)

func ParsePricingModel(s string) (PricingModel, error) {
	switch PricingModel(s) {
	case PricingFixed, PricingHourly, PricingAreaBased:
		return PricingModel(s), nil
	}
	return "", httperr.Validation("invalid_pricing_model", "Pricing model must be fixed, hourly or area_based.")
}

type QuoteInput struct {
	DurationHours *float64
	Area          *float64
	AddOns        []models.ServiceAddOn
}

// Quote computes the total cost of one booking of svc, rounded to cents.
// Area rules are read from svc.AreaPricingRules in stored order.
func Quote(svc *models.Service, in QuoteInput) (float64, error) {
	var total float64

	switch PricingModel(svc.PricingModel) {
	case PricingFixed:
		total = svc.BasePrice

	case PricingHourly:
		hours := float64(svc.EstimatedDuration) / 60
		if in.DurationHours != nil {
			if *in.DurationHours <= 0 {
				return 0, httperr.Validation("invalid_duration", "Duration must be positive.")
			}
			hours = *in.DurationHours
		}
		if hours < 1 {
			hours = 1
		}
		total = svc.BasePrice * hours

	case PricingAreaBased:
		if in.Area == nil || *in.Area <= 0 {
			return 0, httperr.Validation("area_required", "Area is required for area-based services.")
		}
		rule := matchAreaRule(svc.AreaPricingRules, *in.Area)
		if rule == nil {
			return 0, httperr.Validation("no_area_pricing", "No pricing rule covers the requested area.")
		}
		total = rule.BaseFee + rule.PricePerUnit*(*in.Area)

	default:
		return 0, httperr.Validation("invalid_pricing_model", "Service has an unknown pricing model.")
	}

	for _, a := range in.AddOns {
		if a.IsActive {
			total += a.Price
		}
	}

	return RoundCents(total), nil
}

func matchAreaRule(rules []models.AreaPricingRule, area float64) *models.AreaPricingRule {
	for i := range rules {
		r := &rules[i]
		if r.MinArea != nil && area < *r.MinArea {
			continue
		}
		if r.MaxArea != nil && area > *r.MaxArea {
			continue
		}
		return r
	}
	return nil
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
