package api

import (
	"math"

	"salesdash/pkg/contracts/domain"
)

// Response status values
const (
	StatusSuccess = "success"
)

// Envelope wraps every successful JSON body.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
	Count  *int        `json:"count,omitempty"`
	Notice string      `json:"notice,omitempty"`
}

// Success wraps data in the standard envelope.
func Success(data interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// List wraps a collection and reports its length.
func List(data interface{}, count int) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Count: &count}
}

// RecordResponse is one sheet row with its 1-based row index. Missing cells
// render as null; an unparsed holiday flag is echoed in holiday_raw.
type RecordResponse struct {
	Row          int      `json:"row"`
	Store        *int     `json:"store"`
	Date         string   `json:"date"`
	WeeklySales  *float64 `json:"weekly_sales"`
	HolidayFlag  *int     `json:"holiday_flag"`
	HolidayRaw   string   `json:"holiday_raw,omitempty"`
	Temperature  *float64 `json:"temperature"`
	FuelPrice    *float64 `json:"fuel_price"`
	CPI          *float64 `json:"cpi"`
	Unemployment *float64 `json:"unemployment"`
	Month        string   `json:"month"`
	Quarter      int      `json:"quarter"`
	Year         int      `json:"year"`
}

// NewRecordResponse flattens a stored row. Dates render as DD-MM-YYYY.
func NewRecordResponse(row domain.StoredRow) RecordResponse {
	r := row.Record
	resp := RecordResponse{
		Row:          row.Index,
		Date:         domain.FormatDate(r.Date),
		WeeklySales:  optionalFloat(r.WeeklySales),
		Temperature:  optionalFloat(r.Temperature),
		FuelPrice:    optionalFloat(r.FuelPrice),
		CPI:          optionalFloat(r.CPI),
		Unemployment: optionalFloat(r.Unemployment),
		Month:        r.Month.String(),
		Quarter:      r.Quarter,
		Year:         r.Year,
	}
	if r.Store != domain.StoreUnknown {
		store := r.Store
		resp.Store = &store
	}
	if r.HolidayKnown() {
		flag := r.HolidayFlag
		resp.HolidayFlag = &flag
	} else {
		resp.HolidayRaw = r.HolidayRaw
	}
	return resp
}

func optionalFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// MutationResponse acknowledges a write to the record store.
type MutationResponse struct {
	Operation string `json:"operation"`
	Row       int    `json:"row,omitempty"`
	Message   string `json:"message"`
}

// ModelResponse describes the loaded prediction model.
type ModelResponse struct {
	Model    string   `json:"model"`
	Features []string `json:"features"`
}
