package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// columnMap holds, for each SalesHeader column, the cell index it is read from.
type columnMap []int

// positionalColumns maps schema columns onto cells in storage order.
func positionalColumns() columnMap {
	cols := make(columnMap, len(domain.SalesHeader))
	for i := range cols {
		cols[i] = i
	}
	return cols
}

// headerColumns maps schema columns by name. ok is false unless the row
// names every schema column.
func headerColumns(header []string) (cols columnMap, ok bool) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	cols = make(columnMap, len(domain.SalesHeader))
	for i, name := range domain.SalesHeader {
		pos, found := index[strings.ToLower(name)]
		if !found {
			return nil, false
		}
		cols[i] = pos
	}
	return cols, true
}

// cell returns the trimmed cell for schema column i, or "" past the row end.
func (c columnMap) cell(cells []string, i int) string {
	pos := c[i]
	if pos >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[pos])
}

// DecodeRecord coerces one positional storage row into a record. row is the
// 1-based store row number used in the error.
func DecodeRecord(cells []string, row int) (domain.SalesRecord, error) {
	return decodeRow(cells, positionalColumns(), row)
}

// decodeRow fails only when the date does not parse. Other cells that are
// blank or malformed load as missing values: NaN for measurements,
// StoreUnknown for the store and HolidayFlagUnknown plus the raw text for the
// holiday flag.
func decodeRow(cells []string, cols columnMap, row int) (domain.SalesRecord, error) {
	var (
		r   domain.SalesRecord
		err error
	)

	if r.Date, err = domain.ParseDate(cols.cell(cells, 1)); err != nil {
		return r, apperrors.NewDataParseError(row, domain.ColumnDate, err)
	}

	if r.Store, err = parseInt(cols.cell(cells, 0)); err != nil || r.Store < 1 {
		r.Store = domain.StoreUnknown
	}

	flag := cols.cell(cells, 3)
	if r.HolidayFlag, err = parseInt(flag); err != nil || r.HolidayFlag == domain.HolidayFlagUnknown {
		r.HolidayFlag = domain.HolidayFlagUnknown
		r.HolidayRaw = flag
	}

	r.WeeklySales = measurement(cols.cell(cells, 2))
	r.Temperature = measurement(cols.cell(cells, 4))
	r.FuelPrice = measurement(cols.cell(cells, 5))
	r.CPI = measurement(cols.cell(cells, 6))
	r.Unemployment = measurement(cols.cell(cells, 7))

	r.Derive()
	return r, nil
}

// measurement parses a numeric cell, or returns NaN when it is blank or not
// a finite number.
func measurement(s string) float64 {
	v, err := parseFloat(s)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseFloat accepts thousands separators and surrounding whitespace.
func parseFloat(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// parseInt accepts integral float spellings such as "1.0".
func parseInt(s string) (int, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(v), nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
