package calendar

import (
	"time"
)

// RollConvention decides how a date landing on a non-business day is moved.
type RollConvention string

const (
	Following         RollConvention = "Following"
	Preceding         RollConvention = "Preceding"
	ModifiedFollowing RollConvention = "ModifiedFollowing"
)

// Calendar is a business-day calendar: weekends plus a holiday set.
// The zero value is weekends-only.
type Calendar struct {
	Name     string
	holidays map[string]struct{}
}

const dateLayout = "2006-01-02"

// New builds a calendar from a list of yyyy-mm-dd holiday strings.
func New(name string, holidays []string) Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h] = struct{}{}
	}
	return Calendar{Name: name, holidays: set}
}

func (c Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	_, holiday := c.holidays[t.Format(dateLayout)]
	return !holiday
}

func (c Calendar) nextBusinessDay(t time.Time) time.Time {
	d := t.AddDate(0, 0, 1)
	for !c.IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func (c Calendar) priorBusinessDay(t time.Time) time.Time {
	d := t.AddDate(0, 0, -1)
	for !c.IsBusinessDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// Adjust moves t to a business day under the given roll convention.
func (c Calendar) Adjust(t time.Time, roll RollConvention) time.Time {
	if c.IsBusinessDay(t) {
		return t
	}
	switch roll {
	case Preceding:
		return c.priorBusinessDay(t)
	case Following:
		return c.nextBusinessDay(t)
	default:
		adjusted := c.nextBusinessDay(t)
		if adjusted.Month() != t.Month() {
			return c.priorBusinessDay(t)
		}
		return adjusted
	}
}

// AddBusinessDays advances (or rewinds, for negative n) by whole business days.
func (c Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	d := t
	for i := 0; i < n; i++ {
		d = c.nextBusinessDay(d)
	}
	for i := 0; i > n; i-- {
		d = c.priorBusinessDay(d)
	}
	return d
}
