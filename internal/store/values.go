package store

import (
	"fmt"
	"math"
	"strconv"

	"salesdash/pkg/contracts/domain"
)

// recordValues renders a record for a RAW write. Numbers stay numeric so the
// sheet can compute on them; the date is written day-first, the same form the
// loader reads. Missing values are written as empty strings, which clear the
// cell; a nil would leave the old value in place.
func recordValues(r domain.SalesRecord) []interface{} {
	var store, holiday interface{} = r.Store, r.HolidayFlag
	if r.Store == domain.StoreUnknown {
		store = ""
	}
	if !r.HolidayKnown() {
		holiday = r.HolidayRaw
	}
	return []interface{}{
		store,
		domain.FormatDate(r.Date),
		numberValue(r.WeeklySales),
		holiday,
		numberValue(r.Temperature),
		numberValue(r.FuelPrice),
		numberValue(r.CPI),
		numberValue(r.Unemployment),
	}
}

func numberValue(v float64) interface{} {
	if math.IsNaN(v) {
		return ""
	}
	return v
}

// toGrid converts API cell values into strings. Unformatted numbers arrive
// as float64 and are rendered in full, never in exponent form.
func toGrid(values [][]interface{}) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		grid[i] = cells
	}
	return grid
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
