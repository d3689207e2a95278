package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/shared/testutil"
	"salesdash/pkg/contracts/domain"
)

func sampleTable() *Table {
	return NewTable(testutil.SampleRecords())
}

func TestApply_WildcardsAreIdentity(t *testing.T) {
	table := sampleTable()

	specs := map[string]domain.FilterSpec{
		"zero spec": {},
		"explicit empty sets": {
			Months:   []domain.Month{},
			Quarters: []int{},
			Years:    []int{},
		},
		"default spec": DefaultFilterSpec(table),
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			got := Apply(table, spec)
			assert.Equal(t, table.Rows(), got.Rows())
		})
	}
}

func TestApply_SingleValuePartitions(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name  string
		spec  domain.FilterSpec
		holds func(r domain.SalesRecord) bool
		want  int
	}{
		{
			name:  "store",
			spec:  domain.FilterSpec{Store: testutil.IntPtr(3)},
			holds: func(r domain.SalesRecord) bool { return r.Store == 3 },
			want:  3,
		},
		{
			name:  "holiday",
			spec:  domain.FilterSpec{Holiday: testutil.IntPtr(1)},
			holds: func(r domain.SalesRecord) bool { return r.HolidayFlag == 1 },
			want:  3,
		},
		{
			name:  "non holiday",
			spec:  domain.FilterSpec{Holiday: testutil.IntPtr(0)},
			holds: func(r domain.SalesRecord) bool { return r.HolidayFlag == 0 },
			want:  5,
		},
		{
			name: "date range inclusive on both ends",
			spec: domain.FilterSpec{DateRange: domain.DateRange{
				Start: testutil.Date(2010, 2, 12),
				End:   testutil.Date(2011, 7, 8),
			}},
			holds: func(r domain.SalesRecord) bool {
				return !r.Date.Before(testutil.Date(2010, 2, 12)) && !r.Date.After(testutil.Date(2011, 7, 8))
			},
			want: 3,
		},
		{
			name:  "open ended date range",
			spec:  domain.FilterSpec{DateRange: domain.DateRange{Start: testutil.Date(2011, 1, 1)}},
			holds: func(r domain.SalesRecord) bool { return r.Year >= 2011 },
			want:  4,
		},
		{
			name:  "month",
			spec:  domain.FilterSpec{Months: []domain.Month{2}},
			holds: func(r domain.SalesRecord) bool { return r.Month == 2 },
			want:  3,
		},
		{
			name:  "quarter",
			spec:  domain.FilterSpec{Quarters: []int{3}},
			holds: func(r domain.SalesRecord) bool { return r.Quarter == 3 },
			want:  2,
		},
		{
			name:  "year",
			spec:  domain.FilterSpec{Years: []int{2012}},
			holds: func(r domain.SalesRecord) bool { return r.Year == 2012 },
			want:  2,
		},
		{
			name:  "multi month selection",
			spec:  domain.FilterSpec{Months: []domain.Month{3, 12}},
			holds: func(r domain.SalesRecord) bool { return r.Month == 3 || r.Month == 12 },
			want:  3,
		},
		{
			name: "conjunction",
			spec: domain.FilterSpec{Store: testutil.IntPtr(1), Holiday: testutil.IntPtr(0), Quarters: []int{1}},
			holds: func(r domain.SalesRecord) bool {
				return r.Store == 1 && r.HolidayFlag == 0 && r.Quarter == 1
			},
			want: 2,
		},
		{
			name:  "no match",
			spec:  domain.FilterSpec{Store: testutil.IntPtr(99)},
			holds: func(r domain.SalesRecord) bool { return false },
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(table, tt.spec)
			require.Equal(t, tt.want, got.Len())

			kept := map[int]bool{}
			for _, row := range got.Rows() {
				assert.True(t, tt.holds(row.Record), "row %d should not pass", row.Index)
				kept[row.Index] = true
			}
			for _, row := range table.Rows() {
				if !kept[row.Index] {
					assert.False(t, tt.holds(row.Record), "row %d was wrongly excluded", row.Index)
				}
			}
		})
	}
}

func TestApply_IsIdempotent(t *testing.T) {
	table := sampleTable()
	spec := domain.FilterSpec{Holiday: testutil.IntPtr(0), Years: []int{2010, 2012}}

	once := Apply(table, spec)
	twice := Apply(once, spec)

	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestApply_PreservesOrder(t *testing.T) {
	table := sampleTable()

	got := Apply(table, domain.FilterSpec{Months: []domain.Month{2, 3, 9}})

	rows := got.Rows()
	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].Index, rows[i].Index)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	table := sampleTable()
	before := table.Rows()

	_ = Apply(table, domain.FilterSpec{Store: testutil.IntPtr(2)})

	assert.Equal(t, before, table.Rows())
}

func TestApply_KeepsDroppedCount(t *testing.T) {
	table := newTableFromRows(sampleTable().Rows(), 4)

	assert.Equal(t, 4, Apply(table, domain.FilterSpec{Store: testutil.IntPtr(1)}).Dropped())
}

func TestApply_WorkedExample(t *testing.T) {
	table := NewTable([]domain.SalesRecord{
		domain.NewSalesRecord(1, testutil.Date(2012, 1, 6), 1500, 0, 40, 3.1, 220, 7.5),
		domain.NewSalesRecord(1, testutil.Date(2012, 12, 28), 2200, 1, 38, 3.2, 221, 7.4),
	})

	got := Apply(table, domain.FilterSpec{Store: testutil.IntPtr(1), Months: []domain.Month{}, Quarters: []int{}, Years: []int{}})

	require.Equal(t, 2, got.Len())
	totals := Totals(got)
	assert.Equal(t, 3700.0, totals.TotalSales)
	assert.Equal(t, 1850.0, totals.AverageSales)
}

func TestOptions(t *testing.T) {
	opts := Options(sampleTable())

	assert.Equal(t, []int{1, 2, 3}, opts.Stores)
	assert.Equal(t, []int{0, 1}, opts.HolidayFlags)
	assert.Equal(t, []domain.Month{2, 3, 7, 9, 12}, opts.Months)
	assert.Equal(t, []int{1, 3, 4}, opts.Quarters)
	assert.Equal(t, []int{2010, 2011, 2012}, opts.Years)
	assert.Equal(t, testutil.Date(2010, 2, 5), opts.MinDate)
	assert.Equal(t, testutil.Date(2012, 12, 28), opts.MaxDate)
	assert.Equal(t, domain.FilterSpec{
		DateRange: domain.DateRange{Start: opts.MinDate, End: opts.MaxDate},
	}, opts.Default)
}

func TestOptions_SkipsMissingStoreAndHoliday(t *testing.T) {
	known := rec(4, 3, 1, 100, 3)
	unknown := rec(4, 5, 0, 200, 3)
	unknown.Store = domain.StoreUnknown
	unknown.HolidayFlag = domain.HolidayFlagUnknown
	unknown.HolidayRaw = "yes"

	opts := Options(NewTable([]domain.SalesRecord{known, unknown}))

	assert.Equal(t, []int{4}, opts.Stores)
	assert.Equal(t, []int{1}, opts.HolidayFlags)
	assert.Equal(t, []domain.Month{3, 5}, opts.Months)
}

func TestOptions_EmptyTable(t *testing.T) {
	opts := Options(NewTable(nil))

	assert.Empty(t, opts.Stores)
	assert.Empty(t, opts.Months)
	assert.True(t, opts.MinDate.IsZero())

	spec := DefaultFilterSpec(NewTable(nil))
	assert.True(t, spec.DateRange.IsZero())
}
