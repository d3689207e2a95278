package domain

import (
	"time"
)

// FilterAll is the wildcard value for the single-choice selectors.
const FilterAll = "All"

// DateRange is an inclusive date interval. A zero bound leaves that side open.
type DateRange struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// IsZero reports whether neither bound is set.
func (d DateRange) IsZero() bool {
	return d.Start.IsZero() && d.End.IsZero()
}

// Contains reports whether t lies within the range, both ends inclusive.
func (d DateRange) Contains(t time.Time) bool {
	if !d.Start.IsZero() && t.Before(d.Start) {
		return false
	}
	if !d.End.IsZero() && t.After(d.End) {
		return false
	}
	return true
}

// FilterSpec is the user's current selection. Nil pointers mean "All" and
// empty sets mean no restriction on that dimension.
type FilterSpec struct {
	Store     *int      `json:"store,omitempty"`
	Holiday   *int      `json:"holiday,omitempty"`
	DateRange DateRange `json:"date_range"`
	Months    []Month   `json:"months,omitempty"`
	Quarters  []int     `json:"quarters,omitempty"`
	Years     []int     `json:"years,omitempty"`
}

// FilterOptions describes the observed domain of every filter dimension.
type FilterOptions struct {
	Stores       []int     `json:"stores"`
	HolidayFlags []int     `json:"holiday_flags"`
	Months       []Month   `json:"months"`
	Quarters     []int     `json:"quarters"`
	Years        []int     `json:"years"`
	MinDate      time.Time `json:"min_date"`
	MaxDate      time.Time `json:"max_date"`

	// Default is the selection a fresh dashboard starts from.
	Default FilterSpec `json:"default"`
}
