package domain

import (
	"time"
)

// MarketQuote is one calibrating input to the bootstrapper. Rate is a plain
// decimal (0.008 = 0.8%); percent exists only at the wire and API boundaries.
type MarketQuote struct {
	Tenor Tenor
	Rate  float64
}

// RateInstrumentSpec describes a fixed-vs-floating exchange priced against an
// already-built curve. Distinct from MarketQuote: quotes calibrate the curve,
// specs are priced off it.
type RateInstrumentSpec struct {
	StartDate      time.Time
	MaturityDate   time.Time
	FixedFrequency Frequency
	FixedDayCount  DayCount
	FloatingSpread float64
}

// SchedulePeriod is one accrual period with its payment date.
type SchedulePeriod struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	Payment      time.Time
}

// PaymentSchedule is an ordered accrual-period sequence, earliest first.
// Schedules generated from identical inputs are value-equal.
type PaymentSchedule []SchedulePeriod

func (s PaymentSchedule) Start() time.Time {
	return s[0].AccrualStart
}

func (s PaymentSchedule) Maturity() time.Time {
	return s[len(s)-1].AccrualEnd
}

// Observation is one (maturity, value) point for a trade date, e.g. a bond's
// remaining maturity in years and its compound yield in decimal.
type Observation struct {
	InstrumentID string
	Name         string
	Maturity     float64
	Value        float64
}
