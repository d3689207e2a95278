package dataprocessing

import (
	"sort"

	"salesdash/pkg/contracts/domain"
)

// predicate reports whether a record passes one filter dimension.
type predicate func(r *domain.SalesRecord) bool

// Apply returns the rows of t matching every active dimension of spec, in
// their original order. Predicates run in the order store, holiday, date
// range, month, quarter, year and stop at the first miss. Wildcards and empty
// selections are skipped.
func Apply(t *Table, spec domain.FilterSpec) *Table {
	preds := predicates(spec)

	rows := make([]domain.StoredRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.rows[i]
		if matchesAll(&row.Record, preds) {
			rows = append(rows, row)
		}
	}

	return newTableFromRows(rows, t.Dropped())
}

func matchesAll(r *domain.SalesRecord, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func predicates(spec domain.FilterSpec) []predicate {
	var preds []predicate

	if spec.Store != nil {
		store := *spec.Store
		preds = append(preds, func(r *domain.SalesRecord) bool { return r.Store == store })
	}

	if spec.Holiday != nil {
		holiday := *spec.Holiday
		preds = append(preds, func(r *domain.SalesRecord) bool { return r.HolidayFlag == holiday })
	}

	if !spec.DateRange.IsZero() {
		dr := spec.DateRange
		preds = append(preds, func(r *domain.SalesRecord) bool { return dr.Contains(r.Date) })
	}

	if len(spec.Months) > 0 {
		months := make(map[domain.Month]struct{}, len(spec.Months))
		for _, m := range spec.Months {
			months[m] = struct{}{}
		}
		preds = append(preds, func(r *domain.SalesRecord) bool {
			_, ok := months[r.Month]
			return ok
		})
	}

	if len(spec.Quarters) > 0 {
		quarters := intSet(spec.Quarters)
		preds = append(preds, func(r *domain.SalesRecord) bool {
			_, ok := quarters[r.Quarter]
			return ok
		})
	}

	if len(spec.Years) > 0 {
		years := intSet(spec.Years)
		preds = append(preds, func(r *domain.SalesRecord) bool {
			_, ok := years[r.Year]
			return ok
		})
	}

	return preds
}

func intSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// DefaultFilterSpec spans the whole observed domain of t: every store and
// holiday flag, the full date range and no month, quarter or year restriction.
func DefaultFilterSpec(t *Table) domain.FilterSpec {
	return Options(t).Default
}

func defaultSpec(opts domain.FilterOptions) domain.FilterSpec {
	return domain.FilterSpec{
		DateRange: domain.DateRange{Start: opts.MinDate, End: opts.MaxDate},
	}
}

// Options lists the distinct values observed in every filter dimension,
// each sorted ascending (months in calendar order), together with the
// selection a fresh dashboard starts from. Missing stores and unparsed
// holiday flags are not selectable.
func Options(t *Table) domain.FilterOptions {
	stores := map[int]struct{}{}
	flags := map[int]struct{}{}
	months := map[domain.Month]struct{}{}
	quarters := map[int]struct{}{}
	years := map[int]struct{}{}

	var opts domain.FilterOptions
	for i := 0; i < t.Len(); i++ {
		r := t.rows[i].Record
		if r.Store != domain.StoreUnknown {
			stores[r.Store] = struct{}{}
		}
		if r.HolidayKnown() {
			flags[r.HolidayFlag] = struct{}{}
		}
		months[r.Month] = struct{}{}
		quarters[r.Quarter] = struct{}{}
		years[r.Year] = struct{}{}

		if opts.MinDate.IsZero() || r.Date.Before(opts.MinDate) {
			opts.MinDate = r.Date
		}
		if r.Date.After(opts.MaxDate) {
			opts.MaxDate = r.Date
		}
	}

	opts.Stores = sortedKeys(stores)
	opts.HolidayFlags = sortedKeys(flags)
	opts.Quarters = sortedKeys(quarters)
	opts.Years = sortedKeys(years)
	opts.Months = make([]domain.Month, 0, len(months))
	for _, m := range domain.AllMonths {
		if _, ok := months[m]; ok {
			opts.Months = append(opts.Months, m)
		}
	}
	opts.Default = defaultSpec(opts)

	return opts
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
