package dataprocessing

import (
	"math"
	"sort"
	"strconv"

	apperrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// Summarize computes the headline totals and the six chart tables. An empty
// table yields a single EmptyResultError and no partial summary.
func Summarize(t *Table) (domain.DashboardSummary, error) {
	if t.Len() == 0 {
		return domain.DashboardSummary{}, apperrors.NewEmptyResultError()
	}

	return domain.DashboardSummary{
		Totals:          Totals(t),
		HolidayMedians:  HolidayMedian(t),
		Scatter:         ScatterSource(t),
		StoreMedians:    StoreMedian(t),
		FuelPricePivot:  FuelPricePivot(t),
		CPIUnemployment: CPIUnemploymentMean(t),
		MonthlyAverages: MonthlyAverage(t),
	}, nil
}

// Totals returns the sum and mean of the recorded weekly sales. Rows counts
// every row, including those without a sales figure.
func Totals(t *Table) domain.SalesTotals {
	sales := make([]float64, t.Len())
	for i := range sales {
		sales[i] = t.rows[i].Record.WeeklySales
	}
	return domain.SalesTotals{
		TotalSales:   sum(sales),
		AverageSales: mean(sales),
		Rows:         len(sales),
	}
}

// HolidayLabel names a holiday flag group: "False" for 0, "True" for 1 and
// the raw value otherwise.
func HolidayLabel(flag int) string {
	switch flag {
	case domain.HolidayFlagNo:
		return "False"
	case domain.HolidayFlagYes:
		return "True"
	default:
		return strconv.Itoa(flag)
	}
}

// blankHolidayLabel names the group of rows whose holiday cell is empty.
const blankHolidayLabel = "Unknown"

// recordHolidayLabel labels a record's holiday group. A flag that did not
// parse is labelled with its cell text.
func recordHolidayLabel(r *domain.SalesRecord) string {
	if r.HolidayKnown() {
		return HolidayLabel(r.HolidayFlag)
	}
	if r.HolidayRaw == "" {
		return blankHolidayLabel
	}
	return r.HolidayRaw
}

type holidayGroup struct {
	flag  int
	label string
	sales []float64
}

// HolidayMedian groups by holiday flag and takes the median weekly sales.
// Integer flags come first in flag order, followed by unparsed flags ordered
// by label.
func HolidayMedian(t *Table) []domain.HolidayMedian {
	groups := map[string]*holidayGroup{}
	for i := 0; i < t.Len(); i++ {
		r := &t.rows[i].Record
		if math.IsNaN(r.WeeklySales) {
			continue
		}
		label := recordHolidayLabel(r)
		g, ok := groups[label]
		if !ok {
			g = &holidayGroup{flag: r.HolidayFlag, label: label}
			groups[label] = g
		}
		g.sales = append(g.sales, r.WeeklySales)
	}

	ordered := make([]*holidayGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		aKnown, bKnown := a.flag != domain.HolidayFlagUnknown, b.flag != domain.HolidayFlagUnknown
		if aKnown != bKnown {
			return aKnown
		}
		if aKnown {
			return a.flag < b.flag
		}
		return a.label < b.label
	})

	out := make([]domain.HolidayMedian, 0, len(ordered))
	for _, g := range ordered {
		out = append(out, domain.HolidayMedian{
			Flag:   g.flag,
			Label:  g.label,
			Median: median(g.sales),
			Count:  len(g.sales),
		})
	}
	return out
}

// ScatterSource passes every row with both a temperature and a sales figure
// through as a point.
func ScatterSource(t *Table) []domain.ScatterPoint {
	out := make([]domain.ScatterPoint, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := t.at(i)
		if math.IsNaN(r.Temperature) || math.IsNaN(r.WeeklySales) {
			continue
		}
		out = append(out, domain.ScatterPoint{
			Temperature: r.Temperature,
			WeeklySales: r.WeeklySales,
			Quarter:     r.Quarter,
		})
	}
	return out
}

// StoreMedian groups by store and takes the median weekly sales, ordered by
// store id. Rows without a store are left out.
func StoreMedian(t *Table) []domain.StoreMedian {
	groups := groupSales(t, func(r *domain.SalesRecord) int { return r.Store })
	delete(groups, domain.StoreUnknown)

	out := make([]domain.StoreMedian, 0, len(groups))
	for _, store := range sortedGroupKeys(groups) {
		sales := groups[store]
		out = append(out, domain.StoreMedian{
			Store:  store,
			Median: median(sales),
			Count:  len(sales),
		})
	}
	return out
}

type pivotKey struct {
	month     domain.Month
	fuelPrice float64
}

// FuelPricePivot cross-tabulates mean weekly sales with months as rows and
// fuel prices as columns. Only observed cells are present; a month/price
// pair with no rows has no cell rather than a zero. Rows missing either the
// fuel price or the sales figure are left out.
func FuelPricePivot(t *Table) domain.FuelPricePivot {
	cells := map[pivotKey][]float64{}
	prices := map[float64]struct{}{}
	months := map[domain.Month][]float64{}

	for i := 0; i < t.Len(); i++ {
		r := &t.rows[i].Record
		if math.IsNaN(r.FuelPrice) || math.IsNaN(r.WeeklySales) {
			continue
		}
		key := pivotKey{month: r.Month, fuelPrice: r.FuelPrice}
		if _, seen := cells[key]; !seen {
			months[r.Month] = append(months[r.Month], r.FuelPrice)
		}
		cells[key] = append(cells[key], r.WeeklySales)
		prices[r.FuelPrice] = struct{}{}
	}

	pivot := domain.FuelPricePivot{
		FuelPrices: make([]float64, 0, len(prices)),
	}
	for p := range prices {
		pivot.FuelPrices = append(pivot.FuelPrices, p)
	}
	sort.Float64s(pivot.FuelPrices)

	for _, m := range domain.AllMonths {
		monthPrices, ok := months[m]
		if !ok {
			continue
		}
		sort.Float64s(monthPrices)

		row := domain.PivotRow{Month: m, Cells: make([]domain.PivotCell, 0, len(monthPrices))}
		for _, p := range monthPrices {
			row.Cells = append(row.Cells, domain.PivotCell{
				FuelPrice: p,
				Mean:      mean(cells[pivotKey{month: m, fuelPrice: p}]),
			})
		}
		pivot.Rows = append(pivot.Rows, row)
	}

	return pivot
}

// CPIUnemploymentMean groups by CPI value and takes the mean unemployment,
// ordered by CPI. Rows missing either value are left out.
func CPIUnemploymentMean(t *Table) []domain.CPIUnemployment {
	groups := map[float64][]float64{}
	for i := 0; i < t.Len(); i++ {
		r := &t.rows[i].Record
		if math.IsNaN(r.CPI) || math.IsNaN(r.Unemployment) {
			continue
		}
		groups[r.CPI] = append(groups[r.CPI], r.Unemployment)
	}

	keys := make([]float64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	out := make([]domain.CPIUnemployment, 0, len(keys))
	for _, cpi := range keys {
		out = append(out, domain.CPIUnemployment{CPI: cpi, Unemployment: mean(groups[cpi])})
	}
	return out
}

// MonthlyAverage groups by month and takes the mean weekly sales, January to
// December. Months with no rows are left out.
func MonthlyAverage(t *Table) []domain.MonthlyAverage {
	groups := groupSales(t, func(r *domain.SalesRecord) int { return int(r.Month) })

	out := make([]domain.MonthlyAverage, 0, len(groups))
	for _, m := range domain.AllMonths {
		sales, ok := groups[int(m)]
		if !ok {
			continue
		}
		out = append(out, domain.MonthlyAverage{Month: m, Mean: mean(sales)})
	}
	return out
}

// groupSales collects the recorded weekly sales per integer key. A key whose
// rows all lack a sales figure gets no group.
func groupSales(t *Table, key func(r *domain.SalesRecord) int) map[int][]float64 {
	groups := map[int][]float64{}
	for i := 0; i < t.Len(); i++ {
		r := &t.rows[i].Record
		if math.IsNaN(r.WeeklySales) {
			continue
		}
		k := key(r)
		groups[k] = append(groups[k], r.WeeklySales)
	}
	return groups
}

func sortedGroupKeys(groups map[int][]float64) []int {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
