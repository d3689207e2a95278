package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"salesdash/internal/infrastructure"
	"salesdash/pkg/contracts/domain"
)

// RowReader returns the raw cell grid of a record store, header row first.
type RowReader interface {
	ReadRows(ctx context.Context) ([][]string, error)
}

// RecordSource produces a freshly loaded table on every call.
type RecordSource interface {
	Load(ctx context.Context) (*Table, error)
}

// Loader turns a RowReader's grid into a Table. It keeps no state between
// loads.
type Loader struct {
	source  string
	reader  RowReader
	logger  *slog.Logger
	metrics *infrastructure.SalesMetrics
}

// NewLoader creates a loader over reader. source names the backend in logs
// and metrics.
func NewLoader(source string, reader RowReader, logger *slog.Logger, metrics *infrastructure.SalesMetrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source:  source,
		reader:  reader,
		logger:  logger.With(slog.String("component", "loader"), slog.String("source", source)),
		metrics: metrics,
	}
}

// Load reads every row, coerces it against the header schema and derives the
// calendar fields. Rows whose date does not parse are skipped and counted;
// other malformed cells load as missing values. Read failures are returned
// unchanged.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	grid, err := l.reader.ReadRows(ctx)
	if err != nil {
		return nil, err
	}

	table := l.decode(ctx, grid)

	l.metrics.RecordLoad(ctx, l.source, table.Len(), table.Dropped())
	l.logger.DebugContext(ctx, "table loaded",
		slog.Int("rows", table.Len()),
		slog.Int("dropped", table.Dropped()))

	return table, nil
}

func (l *Loader) decode(ctx context.Context, grid [][]string) *Table {
	if len(grid) == 0 {
		return newTableFromRows(nil, 0)
	}

	cols, ok := headerColumns(grid[0])
	if !ok {
		cols = positionalColumns()
		l.logger.WarnContext(ctx, "header row does not match schema, mapping columns by position",
			slog.String("header", strings.Join(grid[0], ",")))
	}

	rows := make([]domain.StoredRow, 0, len(grid)-1)
	dropped := 0
	for i, cells := range grid[1:] {
		rowNum := i + domain.FirstDataRow
		if isBlank(cells) {
			continue
		}

		record, err := decodeRow(cells, cols, rowNum)
		if err != nil {
			dropped++
			l.logger.DebugContext(ctx, "skipping row with unparseable date", slog.String("error", err.Error()))
			continue
		}
		rows = append(rows, domain.StoredRow{Index: rowNum, Record: record})
	}

	if dropped > 0 {
		l.logger.WarnContext(ctx, "skipped rows with unparseable dates", slog.Int("dropped", dropped))
	}

	return newTableFromRows(rows, dropped)
}
