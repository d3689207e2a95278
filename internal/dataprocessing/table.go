package dataprocessing

import (
	"salesdash/pkg/contracts/domain"
)

// Table is an immutable, ordered set of sales rows. Accessors hand out copies
// so callers cannot change a loaded table.
type Table struct {
	rows    []domain.StoredRow
	dropped int
}

// NewTable builds a table from records, numbering them as consecutive data
// rows starting at FirstDataRow.
func NewTable(records []domain.SalesRecord) *Table {
	rows := make([]domain.StoredRow, len(records))
	for i, r := range records {
		rows[i] = domain.StoredRow{Index: domain.FirstDataRow + i, Record: r}
	}
	return &Table{rows: rows}
}

func newTableFromRows(rows []domain.StoredRow, dropped int) *Table {
	return &Table{rows: rows, dropped: dropped}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Dropped returns how many source rows were skipped at load because their
// date did not parse.
func (t *Table) Dropped() int {
	if t == nil {
		return 0
	}
	return t.dropped
}

// at returns the record at position i.
func (t *Table) at(i int) domain.SalesRecord {
	return t.rows[i].Record
}

// Records returns a copy of the records in source order.
func (t *Table) Records() []domain.SalesRecord {
	out := make([]domain.SalesRecord, t.Len())
	for i := range out {
		out[i] = t.rows[i].Record
	}
	return out
}

// Rows returns a copy of the records together with their store row numbers.
func (t *Table) Rows() []domain.StoredRow {
	out := make([]domain.StoredRow, t.Len())
	copy(out, t.rows)
	return out
}
