// Package exporter renders dashboard data as CSV downloads.
//
// StreamWriter is the low-level row writer with optional UTF-8 BOM for Excel
// compatibility. SalesExporter builds on it to write the filtered dataset in
// the same column order the file source reads, and the dashboard summary as
// titled sections.
package exporter
