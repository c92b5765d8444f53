package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayCount is an accrual day-count convention. Year fractions are the only
// place calendar days become numbers, so the switch lives here and nowhere else.
type DayCount string

const (
	DayCountAct365    DayCount = "ACT/365F"
	DayCountAct360    DayCount = "ACT/360"
	DayCountThirty360 DayCount = "30/360"
)

// ParseDayCount accepts the reference-data labels ("Act365", "30/360") as
// well as the canonical names.
func ParseDayCount(s string) (DayCount, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACT365", "ACT/365", "ACT/365F":
		return DayCountAct365, nil
	case "ACT360", "ACT/360":
		return DayCountAct360, nil
	case "30/360", "30E/360", "THIRTY360":
		return DayCountThirty360, nil
	}
	return "", fmt.Errorf("unsupported day count %q", s)
}

// YearFraction computes the accrual fraction between two dates.
func (dc DayCount) YearFraction(start, end time.Time) float64 {
	switch dc {
	case DayCountAct360:
		return end.Sub(start).Hours() / 24.0 / 360.0
	case DayCountThirty360:
		d1, d2 := start.Day(), end.Day()
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		days := 360*(end.Year()-start.Year()) +
			30*(int(end.Month())-int(start.Month())) +
			(d2 - d1)
		return float64(days) / 360.0
	default:
		return end.Sub(start).Hours() / 24.0 / 365.0
	}
}

// Frequency is a coupon payment frequency.
type Frequency int

const (
	FrequencyAnnual     Frequency = 12
	FrequencySemiannual Frequency = 6
	FrequencyQuarterly  Frequency = 3
)

func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual":
		return FrequencyAnnual, nil
	case "semiannual":
		return FrequencySemiannual, nil
	case "quarterly":
		return FrequencyQuarterly, nil
	}
	return 0, fmt.Errorf("unsupported frequency %q", s)
}

// Months returns the period length in months.
func (f Frequency) Months() int {
	return int(f)
}

func (f Frequency) String() string {
	switch f {
	case FrequencyAnnual:
		return "Annual"
	case FrequencySemiannual:
		return "Semiannual"
	case FrequencyQuarterly:
		return "Quarterly"
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}
