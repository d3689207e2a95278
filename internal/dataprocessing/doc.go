// Package dataprocessing implements the dashboard pipeline: load, filter and
// aggregate weekly sales records.
//
// # Architecture
//
// The package is organized into three stages:
//
// 1. Loader: reads a raw cell grid from any RowReader, coerces it against the
// sales header schema and derives month, quarter and year
// 2. Filter: Apply narrows a Table with a FilterSpec, keeping row order
// 3. Aggregator: Summarize computes totals and the six chart tables
//
// # Usage
//
//	loader := dataprocessing.NewLoader("sheets", sheetsStore, logger, metrics)
//	table, err := loader.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	view := dataprocessing.Apply(table, spec)
//	summary, err := dataprocessing.Summarize(view)
//
// # Data Flow
//
//	RowReader → Loader → Table → Apply → Table → Summarize → DashboardSummary
//
// # Error Handling
//
// Rows that fail coercion are skipped and counted in Table.Dropped. Read
// failures from the RowReader are returned unchanged. Summarize returns an
// EmptyResultError for an empty table instead of empty chart tables.
//
// Tables are immutable. Every stage returns new values and can be called from
// concurrent requests.
package dataprocessing
