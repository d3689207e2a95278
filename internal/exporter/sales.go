package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"salesdash/pkg/contracts/domain"
)

// Export-only column names.
const (
	ColumnRow          = "Row"
	ColumnHolidayLabel = "Holiday"
)

// SalesExporter renders dashboard data as CSV.
type SalesExporter struct {
	bom    bool
	logger *slog.Logger
}

// NewSalesExporter creates an exporter. With bom set every file starts with
// a UTF-8 byte order mark.
func NewSalesExporter(bom bool, logger *slog.Logger) *SalesExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalesExporter{
		bom:    bom,
		logger: logger.With(slog.String("component", "exporter")),
	}
}

// WriteRecords writes rows in sheet column order, prefixed by their row
// index. Dates are day-first so the file loads back through the file source.
func (e *SalesExporter) WriteRecords(w io.Writer, rows []domain.StoredRow) error {
	headers := append([]string{ColumnRow}, domain.SalesHeader...)
	sw, err := NewStreamWriter(w, WriteOptions{Headers: headers, BOMPrefix: e.bom})
	if err != nil {
		return err
	}

	for _, row := range rows {
		cells := append([]string{strconv.Itoa(row.Index)}, domain.RecordCells(row.Record)...)
		if err := sw.WriteRecord(cells); err != nil {
			return err
		}
	}

	if err := sw.Close(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}

	e.logger.Debug("records exported", slog.Int("rows", sw.Rows()))
	return nil
}

// WriteSummary writes the totals and the tabular aggregates as consecutive
// sections, each introduced by a one-cell title row and separated by a blank
// line.
func (e *SalesExporter) WriteSummary(w io.Writer, summary domain.DashboardSummary) error {
	sw, err := NewStreamWriter(w, WriteOptions{BOMPrefix: e.bom})
	if err != nil {
		return err
	}

	sections := []struct {
		title   string
		headers []string
		rows    [][]string
	}{
		{"Totals", []string{"Total_Sales", "Average_Sales", "Rows"}, [][]string{{
			num(summary.Totals.TotalSales),
			num(summary.Totals.AverageSales),
			strconv.Itoa(summary.Totals.Rows),
		}}},
		{"Holiday_Medians", []string{ColumnHolidayLabel, "Median_Weekly_Sales", "Count"}, holidayRows(summary.HolidayMedians)},
		{"Store_Medians", []string{domain.ColumnStore, "Median_Weekly_Sales", "Count"}, storeRows(summary.StoreMedians)},
		{"Monthly_Averages", []string{"Month", "Mean_Weekly_Sales"}, monthlyRows(summary.MonthlyAverages)},
		{"Fuel_Price_Pivot", pivotHeaders(summary.FuelPricePivot), pivotRows(summary.FuelPricePivot)},
	}

	for i, s := range sections {
		if i > 0 {
			if err := sw.WriteRecord([]string{""}); err != nil {
				return err
			}
		}
		for _, row := range append([][]string{{s.title}, s.headers}, s.rows...) {
			if err := sw.WriteRecord(row); err != nil {
				return err
			}
		}
	}

	if err := sw.Close(); err != nil {
		return fmt.Errorf("failed to flush summary: %w", err)
	}
	return nil
}

func holidayRows(medians []domain.HolidayMedian) [][]string {
	rows := make([][]string, 0, len(medians))
	for _, m := range medians {
		rows = append(rows, []string{m.Label, num(m.Median), strconv.Itoa(m.Count)})
	}
	return rows
}

func storeRows(medians []domain.StoreMedian) [][]string {
	rows := make([][]string, 0, len(medians))
	for _, m := range medians {
		rows = append(rows, []string{strconv.Itoa(m.Store), num(m.Median), strconv.Itoa(m.Count)})
	}
	return rows
}

func monthlyRows(avgs []domain.MonthlyAverage) [][]string {
	rows := make([][]string, 0, len(avgs))
	for _, a := range avgs {
		rows = append(rows, []string{a.Month.String(), num(a.Mean)})
	}
	return rows
}

// pivotHeaders puts one column per distinct fuel price after the month.
func pivotHeaders(p domain.FuelPricePivot) []string {
	headers := make([]string, 0, len(p.FuelPrices)+1)
	headers = append(headers, "Month")
	for _, fp := range p.FuelPrices {
		headers = append(headers, num(fp))
	}
	return headers
}

// pivotRows leaves a cell empty where the month has no week at that price.
func pivotRows(p domain.FuelPricePivot) [][]string {
	col := make(map[float64]int, len(p.FuelPrices))
	for i, fp := range p.FuelPrices {
		col[fp] = i + 1
	}

	rows := make([][]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		row := make([]string, len(p.FuelPrices)+1)
		row[0] = r.Month.String()
		for _, c := range r.Cells {
			if i, ok := col[c.FuelPrice]; ok {
				row[i] = num(c.Mean)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func num(v float64) string {
	return domain.FormatFloat(v)
}
