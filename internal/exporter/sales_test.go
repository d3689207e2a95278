package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/dataprocessing"
	"salesdash/internal/shared/testutil"
	"salesdash/pkg/contracts/domain"
)

func storedSample() []domain.StoredRow {
	records := testutil.SampleRecords()
	rows := make([]domain.StoredRow, len(records))
	for i, r := range records {
		rows[i] = domain.StoredRow{Index: i + domain.FirstDataRow, Record: r}
	}
	return rows
}

func TestStreamWriter(t *testing.T) {
	tests := []struct {
		name    string
		options WriteOptions
		want    string
	}{
		{"headers and bom", WriteOptions{Headers: []string{"a", "b"}, BOMPrefix: true}, "\xEF\xBB\xBFa,b\n1,\"x,y\"\n"},
		{"no headers", WriteOptions{}, "1,\"x,y\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sw, err := NewStreamWriter(&buf, tt.options)
			require.NoError(t, err)

			require.NoError(t, sw.WriteRecord([]string{"1", "x,y"}))
			require.NoError(t, sw.Close())

			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, 1, sw.Rows())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamWriter_WriteFailure(t *testing.T) {
	_, err := NewStreamWriter(failingWriter{}, WriteOptions{BOMPrefix: true})
	assert.ErrorContains(t, err, "failed to write BOM")

	sw, err := NewStreamWriter(failingWriter{}, WriteOptions{Headers: []string{"a"}})
	require.NoError(t, err)
	assert.Error(t, sw.Close())
}

func TestSalesExporter_WriteRecords(t *testing.T) {
	var buf bytes.Buffer
	rows := storedSample()

	require.NoError(t, NewSalesExporter(false, nil).WriteRecords(&buf, rows))

	got, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, len(rows)+1)

	assert.Equal(t, append([]string{"Row"}, domain.SalesHeader...), got[0])
	assert.Equal(t, []string{"2", "1", "05-02-2010", "1643690.9", "0", "42.31", "2.572", "211.0963582", "8.106"}, got[1])
	assert.Equal(t, "9", got[len(got)-1][0])
}

func TestSalesExporter_RecordsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSalesExporter(true, nil).WriteRecords(&buf, storedSample()))

	text := strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")
	grid, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	require.NoError(t, err)

	// Dropping the row column leaves a grid the loader accepts.
	for i := range grid {
		grid[i] = grid[i][1:]
	}
	for i, cells := range grid[1:] {
		rec, err := dataprocessing.DecodeRecord(cells, i+domain.FirstDataRow)
		require.NoError(t, err)
		assert.Equal(t, testutil.SampleRecords()[i], rec)
	}
}

func TestSalesExporter_WriteSummary(t *testing.T) {
	summary, err := dataprocessing.Summarize(dataprocessing.NewTable(testutil.SampleRecords()))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewSalesExporter(false, nil).WriteSummary(&buf, summary))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	lines, err := r.ReadAll()
	require.NoError(t, err)

	titles := map[string]int{}
	for i, l := range lines {
		if len(l) == 1 && l[0] != "" {
			titles[l[0]] = i
		}
	}
	for _, title := range []string{"Totals", "Holiday_Medians", "Store_Medians", "Monthly_Averages", "Fuel_Price_Pivot"} {
		assert.Contains(t, titles, title)
	}

	totals := lines[titles["Totals"]+2]
	assert.Equal(t, "8", totals[2])

	holiday := lines[titles["Holiday_Medians"]+2]
	assert.Equal(t, "False", holiday[0])

	pivotHeader := lines[titles["Fuel_Price_Pivot"]+1]
	assert.Equal(t, "Month", pivotHeader[0])
	assert.Len(t, pivotHeader, len(summary.FuelPricePivot.FuelPrices)+1)
}

func TestPivotRows_LeavesMissingCellsEmpty(t *testing.T) {
	p := domain.FuelPricePivot{
		FuelPrices: []float64{2.5, 3.1},
		Rows: []domain.PivotRow{
			{Month: 2, Cells: []domain.PivotCell{{FuelPrice: 3.1, Mean: 100}}},
		},
	}

	assert.Equal(t, [][]string{{"February", "", "100"}}, pivotRows(p))
	assert.Equal(t, []string{"Month", "2.5", "3.1"}, pivotHeaders(p))
}
