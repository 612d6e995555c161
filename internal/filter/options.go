// Package filter derives the visible subset and order of offer search results from the user's filter options.
package filter

import (
	"time"

	"github.com/pkg/errors"
)

// company selection modes
const (
	AllCompanies    = "allCompanies"
	SelectedCompany = "selectedCompany"
)

// bounds
const (
	MaxETAOffset       = 182 // days after the first ETA date the window may end at
	DefaultMaxTEUPrice = 1000
	DefaultMaxFEUPrice = 1600
)

// errors
var (
	ErrInvalidETAValues = errors.New("filter: ETA values must satisfy 0 <= start <= end <= 182")
	ErrInvalidSelection = errors.New("filter: unknown company selection mode")
)

// Options represents the filter options of an offer search
type Options struct {
	MinTEUPrice float64 // lowest TEU price of the result set, shown only
	MaxTEUPrice float64
	MinFEUPrice float64 // lowest FEU price of the result set, shown only
	MaxFEUPrice float64

	ShowSale         bool
	ShowSlotSwap     bool
	ShowWithoutPrice bool

	SelectedCompanies  []string
	EmptiesWantToCarry string // AllCompanies or SelectedCompany

	// ETAValues are day offsets from ETADates[0] bounding the ETA window
	ETADates  [2]time.Time
	ETAValues [2]int
	DaysRange int // calendar days between the earliest and the latest ETA of the result set
}

// Default returns the options in effect before any result set is loaded
func Default(now time.Time) Options {
	return Options{
		MaxTEUPrice:        DefaultMaxTEUPrice,
		MaxFEUPrice:        DefaultMaxFEUPrice,
		ShowSale:           true,
		ShowSlotSwap:       true,
		ShowWithoutPrice:   true,
		EmptiesWantToCarry: AllCompanies,
		ETADates:           [2]time.Time{now, now.AddDate(0, 0, MaxETAOffset)},
		ETAValues:          [2]int{0, MaxETAOffset},
		DaysRange:          1,
	}
}

// Validate checks the options' invariants
func (o Options) Validate() error {
	if o.ETAValues[0] < 0 || o.ETAValues[0] > o.ETAValues[1] || o.ETAValues[1] > MaxETAOffset {
		return ErrInvalidETAValues
	}
	if o.EmptiesWantToCarry != "" && o.EmptiesWantToCarry != AllCompanies && o.EmptiesWantToCarry != SelectedCompany {
		return ErrInvalidSelection
	}
	return nil
}

// ETAWindow returns the bounds of the ETA window: the start of the day ETAValues[0] days after ETADates[0],
// and the end of the day ETAValues[1] days after it
func (o Options) ETAWindow() (start, end time.Time) {
	return startOfDay(o.ETADates[0].AddDate(0, 0, o.ETAValues[0])),
		endOfDay(o.ETADates[0].AddDate(0, 0, o.ETAValues[1]))
}

// Clone returns a deep copy of the options
func (o Options) Clone() Options {
	c := o
	if o.SelectedCompanies != nil {
		c.SelectedCompanies = append([]string(nil), o.SelectedCompanies...)
	}
	return c
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// calendarDays returns the number of calendar days from a to b, ignoring the time of day
func calendarDays(b, a time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
