package catalog

import (
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

const clockLayout = "15:04"

// ValidateAvailability checks a full weekly schedule: days 0 (Monday) to 6,
// one window per day, start before end.
func ValidateAvailability(windows []models.ServiceAvailability) error {
	seen := make(map[int]bool, len(windows))

	for _, w := range windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return httperr.Validation("invalid_day_of_week", "Day of week must be between 0 and 6.")
		}
		if seen[w.DayOfWeek] {
			return httperr.Validation("duplicate_day", "Only one availability window per day is allowed.")
		}
		seen[w.DayOfWeek] = true

		start, err := time.Parse(clockLayout, w.StartTime)
		if err != nil {
			return httperr.Validation("invalid_time", "Times must use HH:MM.")
		}
		end, err := time.Parse(clockLayout, w.EndTime)
		if err != nil {
			return httperr.Validation("invalid_time", "Times must use HH:MM.")
		}
		if !start.Before(end) {
			return httperr.Validation("invalid_time_range", "Start time must be before end time.")
		}
	}
	return nil
}

func ValidateAreaRule(r *models.AreaPricingRule) error {
	if r.PricePerUnit < 0 || r.BaseFee < 0 {
		return httperr.Validation("invalid_area_rule", "Prices cannot be negative.")
	}
	if r.MinArea != nil && r.MaxArea != nil && *r.MinArea > *r.MaxArea {
		return httperr.Validation("invalid_area_rule", "Minimum area cannot exceed maximum area.")
	}
	return nil
}
