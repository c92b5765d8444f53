package curve

import (
	"math"
	"testing"
	"time"

	"curvelab/internal/calendar"
	"curvelab/internal/domain"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tenor(s string) domain.Tenor {
	t, err := domain.ParseTenor(s)
	if err != nil {
		panic(err)
	}
	return t
}

var referenceQuotes = []domain.MarketQuote{
	{Tenor: tenor("1Y"), Rate: 0.0010},
	{Tenor: tenor("5Y"), Rate: 0.0030},
	{Tenor: tenor("10Y"), Rate: 0.0080},
	{Tenor: tenor("30Y"), Rate: 0.0140},
}

func buildReferenceCurve(t *testing.T) *DiscountCurve {
	t.Helper()
	c, err := Build(date(2024, time.January, 4), 2, referenceQuotes, domain.DayCountAct365, calendar.Japan())
	require.NoError(t, err)
	return c
}

func TestBuild(t *testing.T) {
	t.Run("spot is reference plus two business days", func(t *testing.T) {
		c := buildReferenceCurve(t)
		require.Equal(t, date(2024, time.January, 4), c.ReferenceDate())
		// Jan 5 is Friday, Jan 8 is a holiday
		require.Equal(t, date(2024, time.January, 9), c.Spot())
	})

	t.Run("discount factor is 1 at and before spot", func(t *testing.T) {
		c := buildReferenceCurve(t)
		require.Equal(t, 1.0, c.DiscountFactor(c.Spot()))
		require.Equal(t, 1.0, c.DiscountFactor(c.ReferenceDate()))
		require.Equal(t, 1.0, c.DiscountFactor(date(2020, time.June, 1)))
	})

	t.Run("discount factors strictly decreasing", func(t *testing.T) {
		c := buildReferenceCurve(t)
		nodes := c.Nodes()
		require.Len(t, nodes, 4)
		prev := 1.0
		for _, n := range nodes {
			require.Less(t, n.DiscountFactor, prev, "node %s", n.Tenor)
			require.Greater(t, n.DiscountFactor, 0.0)
			prev = n.DiscountFactor
		}
	})

	t.Run("nodes sorted by maturity regardless of quote order", func(t *testing.T) {
		shuffled := []domain.MarketQuote{
			referenceQuotes[2], referenceQuotes[0], referenceQuotes[3], referenceQuotes[1],
		}
		c, err := Build(date(2024, time.January, 4), 2, shuffled, domain.DayCountAct365, calendar.Japan())
		require.NoError(t, err)
		nodes := c.Nodes()
		for i := 1; i < len(nodes); i++ {
			require.True(t, nodes[i].Date.After(nodes[i-1].Date))
		}
	})

	t.Run("duplicate tenor rejected", func(t *testing.T) {
		quotes := append([]domain.MarketQuote{}, referenceQuotes...)
		quotes = append(quotes, domain.MarketQuote{Tenor: tenor("5Y"), Rate: 0.0031})
		_, err := Build(date(2024, time.January, 4), 2, quotes, domain.DayCountAct365, calendar.Japan())
		require.ErrorContains(t, err, "duplicate tenor")
	})

	t.Run("single quote rejected", func(t *testing.T) {
		_, err := Build(date(2024, time.January, 4), 2, referenceQuotes[:1], domain.DayCountAct365, calendar.Japan())
		require.ErrorIs(t, err, ErrInsufficientQuotes)
	})

	t.Run("no quotes rejected", func(t *testing.T) {
		_, err := Build(date(2024, time.January, 4), 2, nil, domain.DayCountAct365, calendar.Japan())
		require.ErrorIs(t, err, ErrInsufficientQuotes)
	})
}

// Every input quote must reprice to par off the finished curve.
func TestQuoteRoundTrip(t *testing.T) {
	c := buildReferenceCurve(t)

	for _, q := range referenceQuotes {
		t.Run(q.Tenor.String(), func(t *testing.T) {
			maturity := c.Calendar().Adjust(q.Tenor.AddTo(c.Spot()), calendar.ModifiedFollowing)
			rate, err := SolveParRate(c, domain.RateInstrumentSpec{
				StartDate:      c.Spot(),
				MaturityDate:   maturity,
				FixedFrequency: domain.FrequencyAnnual,
				FixedDayCount:  domain.DayCountAct365,
			})
			require.NoError(t, err)
			// round trip through the published spline, expect a few bp
			require.InDelta(t, q.Rate, rate, 0.0003)
		})
	}
}

func TestSolveParRate(t *testing.T) {
	c := buildReferenceCurve(t)

	t.Run("ten year par near its quote", func(t *testing.T) {
		rate, err := SolveParRate(c, domain.RateInstrumentSpec{
			StartDate:      c.Spot(),
			MaturityDate:   date(2034, time.January, 9),
			FixedFrequency: domain.FrequencyAnnual,
			FixedDayCount:  domain.DayCountAct365,
		})
		require.NoError(t, err)
		require.InDelta(t, 0.0080, rate, 0.0003)
	})

	t.Run("expired instrument returns zero without error", func(t *testing.T) {
		rate, err := SolveParRate(c, domain.RateInstrumentSpec{
			StartDate:      c.Spot(),
			MaturityDate:   c.Spot(),
			FixedFrequency: domain.FrequencyAnnual,
			FixedDayCount:  domain.DayCountAct365,
		})
		require.NoError(t, err)
		require.Zero(t, rate)

		rate, err = SolveParRate(c, domain.RateInstrumentSpec{
			StartDate:      c.Spot(),
			MaturityDate:   date(2023, time.June, 1),
			FixedFrequency: domain.FrequencyAnnual,
			FixedDayCount:  domain.DayCountAct365,
		})
		require.NoError(t, err)
		require.Zero(t, rate)
	})

	t.Run("positive spread raises the par rate", func(t *testing.T) {
		base, err := SolveParRate(c, domain.RateInstrumentSpec{
			StartDate:      c.Spot(),
			MaturityDate:   date(2029, time.January, 9),
			FixedFrequency: domain.FrequencyAnnual,
			FixedDayCount:  domain.DayCountAct365,
		})
		require.NoError(t, err)

		spread, err := SolveParRate(c, domain.RateInstrumentSpec{
			StartDate:      c.Spot(),
			MaturityDate:   date(2029, time.January, 9),
			FixedFrequency: domain.FrequencyAnnual,
			FixedDayCount:  domain.DayCountAct365,
			FloatingSpread: 0.0005,
		})
		require.NoError(t, err)
		require.InDelta(t, base+0.0005, spread, 0.00005)
	})

	t.Run("bad schedule surfaces as pricing error", func(t *testing.T) {
		_, err := SolveParRate(c, domain.RateInstrumentSpec{
			StartDate:      c.Spot(),
			MaturityDate:   date(2029, time.January, 9),
			FixedFrequency: domain.Frequency(0),
			FixedDayCount:  domain.DayCountAct365,
		})
		var pricingErr *PricingError
		require.ErrorAs(t, err, &pricingErr)
		var scheduleErr *calendar.InvalidScheduleError
		require.ErrorAs(t, err, &scheduleErr)
	})
}

func TestZeroRate(t *testing.T) {
	c := buildReferenceCurve(t)

	t.Run("consistent with discount factor", func(t *testing.T) {
		d := date(2031, time.January, 9)
		tt := domain.DayCountAct365.YearFraction(c.Spot(), d)
		z := c.ZeroRate(d)
		require.InEpsilon(t, c.DiscountFactor(d), math.Exp(-z*tt), 1e-12)
	})

	t.Run("zero at spot", func(t *testing.T) {
		require.Zero(t, c.ZeroRate(c.Spot()))
	})
}

func TestExtrapolation(t *testing.T) {
	c := buildReferenceCurve(t)

	t.Run("flat forward past last node", func(t *testing.T) {
		last := c.Nodes()[3].Date
		df1 := c.DiscountFactor(last.AddDate(1, 0, 0))
		df2 := c.DiscountFactor(last.AddDate(2, 0, 0))
		df3 := c.DiscountFactor(last.AddDate(3, 0, 0))
		require.Less(t, df2, df1)
		require.Less(t, df3, df2)

		// equal spacing under flat forward means equal df ratios
		require.InEpsilon(t, df1/df2, df2/df3, 1e-3)
	})
}
