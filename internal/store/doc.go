// Package store provides the record store adapters the dashboard loads from.
//
// SheetsStore talks to a Google Sheets spreadsheet and supports the full set
// of row operations. FileSource reads a local CSV or XLSX export and is
// read-only. Both implement dataprocessing.RowReader, so the same Loader
// serves either backend.
//
// Row indices are 1-based sheet rows. Row 1 holds the header, so the first
// record is row 2. Every remote failure is returned as a StoreAccessError
// naming the operation, and nothing is retried.
package store
