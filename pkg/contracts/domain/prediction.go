package domain

import "sort"

// Feature names understood by the sales predictor.
const (
	FeatureHolidayFlag  = "holiday_flag"
	FeatureTemperature  = "temperature"
	FeatureFuelPrice    = "fuel_price"
	FeatureCPI          = "cpi"
	FeatureUnemployment = "unemployment"
	FeatureYear         = "year"
	FeatureMonth        = "month"
	FeatureDay          = "day"
	FeatureDayOfWeek    = "day_of_week"
)

// SalesFeatures lists the feature set the bundled model is trained on.
var SalesFeatures = []string{
	FeatureHolidayFlag,
	FeatureTemperature,
	FeatureFuelPrice,
	FeatureCPI,
	FeatureUnemployment,
	FeatureYear,
	FeatureMonth,
	FeatureDay,
	FeatureDayOfWeek,
}

// FeatureVector maps feature names to values. Order does not matter.
type FeatureVector map[string]float64

// Names returns the feature names present in the vector, sorted.
func (f FeatureVector) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prediction is a single sales estimate.
type Prediction struct {
	WeeklySales float64       `json:"weekly_sales"`
	Model       string        `json:"model"`
	Features    FeatureVector `json:"features"`
}
