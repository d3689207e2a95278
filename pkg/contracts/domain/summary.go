package domain

// EmptyResultNotice is shown instead of charts when a filter matches nothing.
const EmptyResultNotice = "No data available for the selected filters."

// SalesTotals are the headline figures over a filtered table.
type SalesTotals struct {
	TotalSales   float64 `json:"total_sales"`
	AverageSales float64 `json:"average_sales"`
	Rows         int     `json:"rows"`
}

// HolidayMedian is the median weekly sales of one holiday flag group.
type HolidayMedian struct {
	Flag   int     `json:"flag"`
	Label  string  `json:"label"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// ScatterPoint is one temperature/sales point coloured by quarter.
type ScatterPoint struct {
	Temperature float64 `json:"temperature"`
	WeeklySales float64 `json:"weekly_sales"`
	Quarter     int     `json:"quarter"`
}

// StoreMedian is the median weekly sales of one store.
type StoreMedian struct {
	Store  int     `json:"store"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// PivotCell is the mean weekly sales at one fuel price within a month.
type PivotCell struct {
	FuelPrice float64 `json:"fuel_price"`
	Mean      float64 `json:"mean"`
}

// PivotRow holds the observed cells of one month. Fuel prices with no
// observation in that month have no cell.
type PivotRow struct {
	Month Month       `json:"month"`
	Cells []PivotCell `json:"cells"`
}

// FuelPricePivot cross-tabulates mean weekly sales by month and fuel price.
type FuelPricePivot struct {
	FuelPrices []float64  `json:"fuel_prices"`
	Rows       []PivotRow `json:"rows"`
}

// CPIUnemployment is the mean unemployment observed at one CPI value.
type CPIUnemployment struct {
	CPI          float64 `json:"cpi"`
	Unemployment float64 `json:"unemployment"`
}

// MonthlyAverage is the mean weekly sales of one month.
type MonthlyAverage struct {
	Month Month   `json:"month"`
	Mean  float64 `json:"mean"`
}

// DashboardSummary bundles the totals and the six chart tables.
type DashboardSummary struct {
	Totals          SalesTotals       `json:"totals"`
	HolidayMedians  []HolidayMedian   `json:"holiday_medians"`
	Scatter         []ScatterPoint    `json:"scatter"`
	StoreMedians    []StoreMedian     `json:"store_medians"`
	FuelPricePivot  FuelPricePivot    `json:"fuel_price_pivot"`
	CPIUnemployment []CPIUnemployment `json:"cpi_unemployment"`
	MonthlyAverages []MonthlyAverage  `json:"monthly_averages"`
}

// DashboardView is what one dashboard run returns.
type DashboardView struct {
	Filter      FilterSpec       `json:"filter"`
	LoadedRows  int              `json:"loaded_rows"`
	DroppedRows int              `json:"dropped_rows"`
	Summary     DashboardSummary `json:"summary"`
}
