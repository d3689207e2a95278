package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column names of the sales record store, in storage order.
const (
	ColumnStore        = "Store"
	ColumnDate         = "Date"
	ColumnWeeklySales  = "Weekly_Sales"
	ColumnHolidayFlag  = "Holiday_Flag"
	ColumnTemperature  = "Temperature"
	ColumnFuelPrice    = "Fuel_Price"
	ColumnCPI          = "CPI"
	ColumnUnemployment = "Unemployment"
)

// SalesHeader is the header row every record store is expected to carry.
var SalesHeader = []string{
	ColumnStore,
	ColumnDate,
	ColumnWeeklySales,
	ColumnHolidayFlag,
	ColumnTemperature,
	ColumnFuelPrice,
	ColumnCPI,
	ColumnUnemployment,
}

// Holiday flag values the dashboard labels. HolidayFlagUnknown marks a cell
// that is blank or not an integer; the cell text is kept in HolidayRaw.
const (
	HolidayFlagUnknown = -1
	HolidayFlagNo      = 0
	HolidayFlagYes     = 1
)

// StoreUnknown marks a blank or unparseable store cell. Real store ids start at 1.
const StoreUnknown = 0

// SalesRecord is one weekly sales row plus the calendar fields derived from its date.
// A blank or unparseable measurement loads as NaN.
type SalesRecord struct {
	Store        int       `json:"store"`
	Date         time.Time `json:"date"`
	WeeklySales  float64   `json:"weekly_sales"`
	HolidayFlag  int       `json:"holiday_flag"`
	Temperature  float64   `json:"temperature"`
	FuelPrice    float64   `json:"fuel_price"`
	CPI          float64   `json:"cpi"`
	Unemployment float64   `json:"unemployment"`
	HolidayRaw   string    `json:"holiday_raw,omitempty"`

	// Derived, never written back to the store
	Month   Month `json:"month"`
	Quarter int   `json:"quarter"`
	Year    int   `json:"year"`
}

// NewSalesRecord builds a record and fills in the derived calendar fields.
func NewSalesRecord(store int, date time.Time, weeklySales float64, holidayFlag int, temperature, fuelPrice, cpi, unemployment float64) SalesRecord {
	r := SalesRecord{
		Store:        store,
		Date:         date,
		WeeklySales:  weeklySales,
		HolidayFlag:  holidayFlag,
		Temperature:  temperature,
		FuelPrice:    fuelPrice,
		CPI:          cpi,
		Unemployment: unemployment,
	}
	r.Derive()
	return r
}

// Derive recomputes Month, Quarter and Year from Date.
func (r *SalesRecord) Derive() {
	r.Month = Month(r.Date.Month())
	r.Quarter = QuarterOf(r.Date.Month())
	r.Year = r.Date.Year()
}

// HolidayKnown reports whether the holiday flag parsed as an integer.
func (r *SalesRecord) HolidayKnown() bool {
	return r.HolidayFlag != HolidayFlagUnknown
}

// QuarterOf returns the calendar quarter (1..4) a month falls in.
func QuarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// StoredRow is a record together with its 1-based row number in the store.
// Row 1 holds the header, so data rows start at 2.
type StoredRow struct {
	Index  int         `json:"index"`
	Record SalesRecord `json:"record"`
}

// FirstDataRow is the lowest row index that holds data.
const FirstDataRow = 2

// Month is a calendar month that serialises as its English name.
type Month int

// AllMonths lists the months in calendar order.
var AllMonths = []Month{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

// String returns the English month name.
func (m Month) String() string {
	if m < 1 || m > 12 {
		return "Month(" + strconv.Itoa(int(m)) + ")"
	}
	return time.Month(m).String()
}

// Valid reports whether m is one of the twelve calendar months.
func (m Month) Valid() bool {
	return m >= 1 && m <= 12
}

// MarshalJSON encodes the month as its name.
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a month name, a three letter abbreviation or a number.
func (m *Month) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("month must be a name or a number: %w", err)
		}
		name = strconv.Itoa(n)
	}
	parsed, err := ParseMonth(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMonth parses "March", "mar" or "3".
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if m := Month(n); m.Valid() {
			return m, nil
		}
		return 0, fmt.Errorf("invalid month %q", s)
	}
	for _, m := range AllMonths {
		name := m.String()
		if strings.EqualFold(s, name) || (len(s) == 3 && strings.EqualFold(s, name[:3])) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}
