package testutil

import (
	"time"

	"salesdash/pkg/contracts/domain"
)

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IntPtr returns a pointer to v, for FilterSpec fields.
func IntPtr(v int) *int {
	return &v
}

// SampleRecords returns a small multi-store, multi-year dataset covering both
// holiday flags and several fuel prices.
func SampleRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		domain.NewSalesRecord(1, Date(2010, 2, 5), 1643690.90, 0, 42.31, 2.572, 211.0963582, 8.106),
		domain.NewSalesRecord(1, Date(2010, 2, 12), 1641957.44, 1, 38.51, 2.548, 211.2421698, 8.106),
		domain.NewSalesRecord(1, Date(2010, 3, 5), 1554806.68, 0, 46.50, 2.625, 211.3501429, 8.106),
		domain.NewSalesRecord(2, Date(2010, 2, 5), 2136989.46, 0, 40.19, 2.572, 210.7526053, 8.324),
		domain.NewSalesRecord(2, Date(2011, 7, 8), 1861802.70, 0, 87.41, 3.651, 215.9745399, 7.852),
		domain.NewSalesRecord(3, Date(2011, 9, 9), 384253.80, 1, 84.25, 3.546, 217.2703839, 7.567),
		domain.NewSalesRecord(3, Date(2012, 12, 28), 406988.63, 1, 50.19, 3.150, 226.2342370, 6.034),
		domain.NewSalesRecord(3, Date(2012, 3, 30), 460945.10, 0, 64.83, 3.845, 225.3097760, 6.664),
	}
}

// SampleGrid renders SampleRecords as a raw sheet grid, header first, with
// dates written day-first.
func SampleGrid() [][]string {
	grid := [][]string{append([]string(nil), domain.SalesHeader...)}
	for _, r := range SampleRecords() {
		grid = append(grid, domain.RecordCells(r))
	}
	return grid
}
