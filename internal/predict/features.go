package predict

import (
	"time"

	"salesdash/pkg/contracts/domain"
)

// BuildFeatures assembles the standard feature vector for a week starting on
// date. day_of_week runs 1 (Monday) to 7 (Sunday).
func BuildFeatures(date time.Time, holiday int, temperature, fuelPrice, cpi, unemployment float64) domain.FeatureVector {
	return domain.FeatureVector{
		domain.FeatureHolidayFlag:  float64(holiday),
		domain.FeatureTemperature:  temperature,
		domain.FeatureFuelPrice:    fuelPrice,
		domain.FeatureCPI:          cpi,
		domain.FeatureUnemployment: unemployment,
		domain.FeatureYear:         float64(date.Year()),
		domain.FeatureMonth:        float64(date.Month()),
		domain.FeatureDay:          float64(date.Day()),
		domain.FeatureDayOfWeek:    float64(isoWeekday(date)),
	}
}

func isoWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}
