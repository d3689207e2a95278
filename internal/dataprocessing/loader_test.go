package dataprocessing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salesdash/internal/errors"
	"salesdash/internal/shared/testutil"
	"salesdash/pkg/contracts/domain"
)

type gridReader struct {
	grid [][]string
	err  error
}

func (g gridReader) ReadRows(context.Context) ([][]string, error) {
	return g.grid, g.err
}

var header = []string{"Store", "Date", "Weekly_Sales", "Holiday_Flag", "Temperature", "Fuel_Price", "CPI", "Unemployment"}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name        string
		grid        [][]string
		wantRows    int
		wantDropped int
		wantIndexes []int
		check       func(t *testing.T, table *Table)
	}{
		{
			name:     "empty grid",
			grid:     nil,
			wantRows: 0,
		},
		{
			name:     "header only",
			grid:     [][]string{header},
			wantRows: 0,
		},
		{
			name: "well formed rows",
			grid: [][]string{
				header,
				{"1", "05-02-2010", "1643690.9", "0", "42.31", "2.572", "211.0963582", "8.106"},
				{"1", "12-02-2010", "1641957.44", "1", "38.51", "2.548", "211.2421698", "8.106"},
			},
			wantRows:    2,
			wantIndexes: []int{2, 3},
			check: func(t *testing.T, table *Table) {
				r := table.at(1)
				assert.Equal(t, 1, r.Store)
				assert.Equal(t, testutil.Date(2010, 2, 12), r.Date)
				assert.Equal(t, 1641957.44, r.WeeklySales)
				assert.Equal(t, 1, r.HolidayFlag)
				assert.Equal(t, domain.Month(2), r.Month)
				assert.Equal(t, 1, r.Quarter)
				assert.Equal(t, 2010, r.Year)
			},
		},
		{
			name: "header columns in a different order are mapped by name",
			grid: [][]string{
				{"date", "STORE", "CPI", "Unemployment", "Weekly_Sales", "Holiday_Flag", "Temperature", "Fuel_Price"},
				{"05-02-2010", "7", "211.1", "8.1", "1000", "0", "42", "2.5"},
			},
			wantRows: 1,
			check: func(t *testing.T, table *Table) {
				r := table.at(0)
				assert.Equal(t, 7, r.Store)
				assert.Equal(t, 1000.0, r.WeeklySales)
				assert.Equal(t, 211.1, r.CPI)
				assert.Equal(t, 8.1, r.Unemployment)
			},
		},
		{
			name: "only rows with an unparseable date are dropped and counted",
			grid: [][]string{
				header,
				{"1", "2010-31-12", "100", "0", "40", "2.5", "211", "8"},
				{"1", "05-02-2010", "n/a", "0", "40", "2.5", "211", "8"},
				{"1", "05-02-2010", "100", "0", "40", "2.5", "211"},
				{"2", "05-02-2010", "200", "0", "40", "2.5", "211", "8"},
				{"3", "", "300", "0", "40", "2.5", "211", "8"},
			},
			wantRows:    3,
			wantDropped: 2,
			wantIndexes: []int{3, 4, 5},
			check: func(t *testing.T, table *Table) {
				assert.True(t, math.IsNaN(table.at(0).WeeklySales))
				assert.Equal(t, 211.0, table.at(1).CPI)
				assert.True(t, math.IsNaN(table.at(1).Unemployment))
			},
		},
		{
			name: "valid date with trailing fields missing is kept",
			grid: [][]string{
				header,
				{"1", "05-02-2010", "1500", "0", "40", "2.5", "211", "8"},
				{"1", "12-02-2010", "2200", "1", "38", "2.5"},
				{"2", "19-02-2010", "900", "", "39", "2.6", "212", "8.1"},
			},
			wantRows:    3,
			wantIndexes: []int{2, 3, 4},
			check: func(t *testing.T, table *Table) {
				r := table.at(1)
				assert.Equal(t, 2200.0, r.WeeklySales)
				assert.Equal(t, 2.5, r.FuelPrice)
				assert.True(t, math.IsNaN(r.CPI))
				assert.True(t, math.IsNaN(r.Unemployment))

				totals := Totals(table)
				assert.Equal(t, 4600.0, totals.TotalSales)
				assert.Equal(t, 3, totals.Rows)
			},
		},
		{
			name: "blank holiday flag is kept as its own group",
			grid: [][]string{
				header,
				{"1", "05-02-2010", "1500", "0", "40", "2.5", "211", "8"},
				{"2", "19-02-2010", "900", "", "39", "2.6", "212", "8.1"},
			},
			wantRows: 2,
			check: func(t *testing.T, table *Table) {
				r := table.at(1)
				assert.False(t, r.HolidayKnown())
				assert.Equal(t, "", r.HolidayRaw)

				assert.Equal(t, []domain.HolidayMedian{
					{Flag: 0, Label: "False", Median: 1500, Count: 1},
					{Flag: domain.HolidayFlagUnknown, Label: "Unknown", Median: 900, Count: 1},
				}, HolidayMedian(table))
			},
		},
		{
			name: "non numeric holiday flag keeps its text",
			grid: [][]string{
				header,
				{"1", "05-02-2010", "1500", "Yes", "40", "2.5", "211", "8"},
			},
			wantRows: 1,
			check: func(t *testing.T, table *Table) {
				r := table.at(0)
				assert.Equal(t, domain.HolidayFlagUnknown, r.HolidayFlag)
				assert.Equal(t, "Yes", r.HolidayRaw)
				assert.Equal(t, "Yes", HolidayMedian(table)[0].Label)
			},
		},
		{
			name: "blank rows are skipped silently",
			grid: [][]string{
				header,
				{"1", "05-02-2010", "100", "0", "40", "2.5", "211", "8"},
				{},
				{"", " ", ""},
				{"2", "05-02-2010", "200", "0", "40", "2.5", "211", "8"},
			},
			wantRows:    2,
			wantIndexes: []int{2, 5},
		},
		{
			name: "lenient number spellings",
			grid: [][]string{
				header,
				{" 3 ", "5/2/2010", "1,643,690.90", "1.0", "42.31", "2.572", "211.09", "8.106", "extra"},
			},
			wantRows: 1,
			check: func(t *testing.T, table *Table) {
				r := table.at(0)
				assert.Equal(t, 3, r.Store)
				assert.Equal(t, 1643690.90, r.WeeklySales)
				assert.Equal(t, 1, r.HolidayFlag)
			},
		},
		{
			name: "fractional store id loads as an unknown store",
			grid: [][]string{
				header,
				{"1.5", "05-02-2010", "100", "0", "40", "2.5", "211", "8"},
			},
			wantRows: 1,
			check: func(t *testing.T, table *Table) {
				assert.Equal(t, domain.StoreUnknown, table.at(0).Store)
				assert.Empty(t, StoreMedian(table))
			},
		},
		{
			name: "unusual holiday flags are kept",
			grid: [][]string{
				header,
				{"1", "05-02-2010", "100", "2", "40", "2.5", "211", "8"},
			},
			wantRows: 1,
			check: func(t *testing.T, table *Table) {
				assert.Equal(t, 2, table.at(0).HolidayFlag)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			loader := NewLoader("test", gridReader{grid: tt.grid}, logger, nil)

			table, err := loader.Load(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantRows, table.Len())
			assert.Equal(t, tt.wantDropped, table.Dropped())
			if tt.wantIndexes != nil {
				var got []int
				for _, row := range table.Rows() {
					got = append(got, row.Index)
				}
				assert.Equal(t, tt.wantIndexes, got)
			}
			if tt.check != nil {
				tt.check(t, table)
			}
		})
	}
}

func TestLoader_PositionalFallbackWarns(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	grid := [][]string{
		{"a", "b", "c"},
		{"4", "05-02-2010", "100", "0", "40", "2.5", "211", "8"},
	}

	table, err := NewLoader("test", gridReader{grid: grid}, logger, nil).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, 4, table.at(0).Store)
	assert.True(t, logs.ContainsMessage("header row does not match schema"))
}

func TestLoader_ReadErrorIsReturnedUnchanged(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	readErr := apperrors.NewStoreAccessError("read rows", errors.New("googleapi: Error 403"))

	table, err := NewLoader("test", gridReader{err: readErr}, logger, nil).Load(context.Background())

	assert.Nil(t, table)
	assert.Same(t, readErr, err)
}

func TestLoader_ReloadsEveryCall(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	reader := &countingReader{grid: testutil.SampleGrid()}
	loader := NewLoader("test", reader, logger, nil)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	second, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, reader.calls)
	assert.Equal(t, first.Records(), second.Records())
	assert.Equal(t, testutil.SampleRecords(), first.Records())
}

type countingReader struct {
	grid  [][]string
	calls int
}

func (c *countingReader) ReadRows(context.Context) ([][]string, error) {
	c.calls++
	return c.grid, nil
}

func TestDecodeRecord(t *testing.T) {
	r, err := DecodeRecord([]string{"45", "26-10-2012", "760281.43", "0", "58.85", "3.882", "192.3088989", "8.667"}, 6436)
	require.NoError(t, err)
	assert.Equal(t, 45, r.Store)
	assert.Equal(t, domain.Month(10), r.Month)
	assert.Equal(t, 4, r.Quarter)

	r, err = DecodeRecord([]string{"45", "26-10-2012"}, 10)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r.WeeklySales))
	assert.Equal(t, domain.HolidayFlagUnknown, r.HolidayFlag)

	_, err = DecodeRecord([]string{"45", "bad"}, 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDataParse))
	assert.Contains(t, err.Error(), "row 9: invalid Date")
}

func TestTable_AccessorsReturnCopies(t *testing.T) {
	table := NewTable(testutil.SampleRecords())

	records := table.Records()
	records[0].WeeklySales = -1
	rows := table.Rows()
	rows[0].Record.Store = 999

	assert.Equal(t, 1643690.90, table.at(0).WeeklySales)
	assert.Equal(t, 1, table.at(0).Store)
	assert.Equal(t, domain.FirstDataRow, table.Rows()[0].Index)
}
