package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day-first layout records are written with.
const DateLayout = "02-01-2006"

// isoDateLayout is accepted on read since a leading four-digit year is unambiguous.
const isoDateLayout = "2006-01-02"

var dayFirstLayouts = []string{
	"02-01-2006", "2-1-2006",
	"02/01/2006", "2/1/2006",
	"02.01.2006", "2.1.2006",
}

// ParseDate parses a day-first date such as "05-02-2010", "5/2/2010" or
// "05.02.2010", or an ISO date "2010-02-05". The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if len(s) >= 5 && s[4] == '-' {
		if t, err := time.Parse(isoDateLayout, s); err == nil {
			return t, nil
		}
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("date %q is not day-first DD-MM-YYYY", s)
}

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// RecordCells renders a record as one storage row in SalesHeader order.
// Missing values render as empty cells and an unknown holiday flag as its
// original text.
func RecordCells(r SalesRecord) []string {
	return []string{
		FormatStore(r.Store),
		FormatDate(r.Date),
		FormatFloat(r.WeeklySales),
		FormatHoliday(r),
		FormatFloat(r.Temperature),
		FormatFloat(r.FuelPrice),
		FormatFloat(r.CPI),
		FormatFloat(r.Unemployment),
	}
}

// FormatStore renders a store id, or "" for StoreUnknown.
func FormatStore(store int) string {
	if store == StoreUnknown {
		return ""
	}
	return strconv.Itoa(store)
}

// FormatHoliday renders the holiday flag, or the raw cell text when the flag
// did not parse.
func FormatHoliday(r SalesRecord) string {
	if !r.HolidayKnown() {
		return r.HolidayRaw
	}
	return strconv.Itoa(r.HolidayFlag)
}

// FormatFloat renders v without an exponent, or "" for NaN.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
