package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	apierrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// Filter query parameter names.
const (
	paramStore   = "store"
	paramHoliday = "holiday"
	paramStart   = "start"
	paramEnd     = "end"
	paramMonth   = "month"
	paramQuarter = "quarter"
	paramYear    = "year"
)

// parseFilter builds a FilterSpec from the query string. Missing parameters
// and the value "All" leave a dimension unconstrained. month, quarter and
// year may repeat or carry comma separated values.
func parseFilter(q url.Values) (domain.FilterSpec, error) {
	var (
		spec domain.FilterSpec
		err  error
	)

	if spec.Store, err = optionalInt(q, paramStore); err != nil {
		return spec, err
	}
	if spec.Holiday, err = optionalInt(q, paramHoliday); err != nil {
		return spec, err
	}
	if spec.Holiday != nil && *spec.Holiday != domain.HolidayFlagNo && *spec.Holiday != domain.HolidayFlagYes {
		return spec, apierrors.ErrValidation(paramHoliday, "holiday must be All, 0 or 1")
	}

	if spec.DateRange.Start, err = optionalDate(q, paramStart); err != nil {
		return spec, err
	}
	if spec.DateRange.End, err = optionalDate(q, paramEnd); err != nil {
		return spec, err
	}
	if !spec.DateRange.Start.IsZero() && !spec.DateRange.End.IsZero() && spec.DateRange.End.Before(spec.DateRange.Start) {
		return spec, apierrors.ErrValidation(paramEnd, "end must not be before start")
	}

	for _, v := range listValues(q, paramMonth) {
		m, err := domain.ParseMonth(v)
		if err != nil {
			return spec, apierrors.ErrValidation(paramMonth, err.Error())
		}
		spec.Months = append(spec.Months, m)
	}

	if spec.Quarters, err = intList(q, paramQuarter, 1, 4); err != nil {
		return spec, err
	}
	if spec.Years, err = intList(q, paramYear, 1, 9999); err != nil {
		return spec, err
	}

	return spec, nil
}

func isWildcard(v string) bool {
	return v == "" || strings.EqualFold(v, domain.FilterAll)
}

func optionalInt(q url.Values, name string) (*int, error) {
	v := strings.TrimSpace(q.Get(name))
	if isWildcard(v) {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, apierrors.ErrValidation(name, fmt.Sprintf("%s must be All or an integer", name))
	}
	return &n, nil
}

func optionalDate(q url.Values, name string) (time.Time, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return time.Time{}, nil
	}
	parsed, err := domain.ParseDate(v)
	if err != nil {
		return time.Time{}, apierrors.ErrValidation(name, fmt.Sprintf("%s must be a date in YYYY-MM-DD or DD-MM-YYYY form", name))
	}
	return parsed, nil
}

// listValues flattens repeated and comma separated values. A lone "All"
// yields nothing.
func listValues(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if isWildcard(v) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

func intList(q url.Values, name string, min, max int) ([]int, error) {
	var out []int
	for _, v := range listValues(q, name) {
		n, err := strconv.Atoi(v)
		if err != nil || n < min || n > max {
			return nil, apierrors.ErrValidation(name, fmt.Sprintf("%s values must be integers between %d and %d", name, min, max))
		}
		out = append(out, n)
	}
	return out, nil
}
