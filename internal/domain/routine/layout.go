package routine

import (
	"strings"

	"github.com/alem-hub/school-core/internal/domain/shared"
)

const (
	// DefaultPeriods is the number of periods in a school day.
	DefaultPeriods = 6

	// DefaultBreakAfter is the number of periods taught before the lunch break.
	DefaultBreakAfter = 3
)

// DefaultDays are the five teaching days of the week, Sunday to Thursday.
var DefaultDays = []string{"রবিবার", "সোমবার", "মঙ্গলবার", "বুধবার", "বৃহস্পতিবার"}

// PeriodPair is two period indexes checked together for teacher overlap.
type PeriodPair [2]int

// Layout describes the shape of a teaching week.
type Layout struct {
	// Days in display order. Timetable days outside this list are ignored.
	Days []string

	// Periods per day.
	Periods int

	// BreakAfter is the number of periods before the break. The break sits
	// between period index BreakAfter-1 and BreakAfter.
	BreakAfter int
}

// DefaultLayout returns the five day, six period week with the break after
// the third period.
func DefaultLayout() Layout {
	days := make([]string, len(DefaultDays))
	copy(days, DefaultDays)
	return Layout{
		Days:       days,
		Periods:    DefaultPeriods,
		BreakAfter: DefaultBreakAfter,
	}
}

// Validate checks the layout for structural errors.
func (l Layout) Validate() error {
	if len(l.Days) == 0 {
		return shared.ErrNoDays
	}
	seen := make(map[string]struct{}, len(l.Days))
	for _, d := range l.Days {
		d = strings.TrimSpace(d)
		if d == "" {
			return shared.WrapError("routine", "Validate", shared.ErrInvalidLayout, "empty day name", shared.ErrEmptyValue)
		}
		if _, dup := seen[d]; dup {
			return shared.ErrDuplicateDayName
		}
		seen[d] = struct{}{}
	}
	if l.Periods <= 0 {
		return shared.WrapError("routine", "Validate", shared.ErrInvalidLayout, "periods must be positive", shared.ErrValueOutOfRange)
	}
	if l.BreakAfter < 0 || l.BreakAfter > l.Periods {
		return shared.ErrBreakOutOfRange
	}
	return nil
}

// LastPeriod returns the index of the final period of the day.
func (l Layout) LastPeriod() int {
	return l.Periods - 1
}

// BeforeBreak reports whether the period index falls before the break.
func (l Layout) BeforeBreak(period int) bool {
	return period < l.BreakAfter
}

// HasBreak reports whether the break actually splits the day.
func (l Layout) HasBreak() bool {
	return l.BreakAfter > 0 && l.BreakAfter < l.Periods
}

// ConsecutivePairs returns adjacent period pairs, skipping the pair that
// straddles the break.
func (l Layout) ConsecutivePairs() []PeriodPair {
	pairs := make([]PeriodPair, 0, l.Periods)
	for p := 0; p+1 < l.Periods; p++ {
		if l.HasBreak() && p+1 == l.BreakAfter {
			continue
		}
		pairs = append(pairs, PeriodPair{p, p + 1})
	}
	return pairs
}

// BreakPair returns the last period before the break and the first after it.
func (l Layout) BreakPair() (PeriodPair, bool) {
	if !l.HasBreak() {
		return PeriodPair{}, false
	}
	return PeriodPair{l.BreakAfter - 1, l.BreakAfter}, true
}
