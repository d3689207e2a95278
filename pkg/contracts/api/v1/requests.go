// Package api contains the v1 request and response bodies of the sales
// dashboard HTTP API.
package api

import (
	"salesdash/pkg/contracts/domain"
)

// RecordRequest is the body of record create and update calls. Dates accept
// DD-MM-YYYY or YYYY-MM-DD.
type RecordRequest struct {
	Store        int      `json:"store" validate:"required,min=1"`
	Date         string   `json:"date" validate:"required,salesdate"`
	WeeklySales  *float64 `json:"weekly_sales" validate:"required,gte=0"`
	HolidayFlag  *int     `json:"holiday_flag" validate:"required,oneof=0 1"`
	Temperature  *float64 `json:"temperature" validate:"required"`
	FuelPrice    *float64 `json:"fuel_price" validate:"required,gte=0"`
	CPI          *float64 `json:"cpi" validate:"required,gte=0"`
	Unemployment *float64 `json:"unemployment" validate:"required,gte=0"`
}

// ToRecord converts a validated request into a domain record.
func (r RecordRequest) ToRecord() (domain.SalesRecord, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.SalesRecord{}, err
	}
	return domain.NewSalesRecord(
		r.Store,
		date,
		*r.WeeklySales,
		*r.HolidayFlag,
		*r.Temperature,
		*r.FuelPrice,
		*r.CPI,
		*r.Unemployment,
	), nil
}

// PredictRequest carries a raw feature vector keyed by feature name.
type PredictRequest struct {
	Features map[string]float64 `json:"features" validate:"required"`
}

// PredictFromDateRequest lets the server derive the calendar features.
type PredictFromDateRequest struct {
	Date         string   `json:"date" validate:"required,salesdate"`
	HolidayFlag  *int     `json:"holiday_flag" validate:"required,oneof=0 1"`
	Temperature  *float64 `json:"temperature" validate:"required"`
	FuelPrice    *float64 `json:"fuel_price" validate:"required,gte=0"`
	CPI          *float64 `json:"cpi" validate:"required,gte=0"`
	Unemployment *float64 `json:"unemployment" validate:"required,gte=0"`
}
