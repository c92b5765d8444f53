package curve

import (
	"math"
	"testing"

	"curvelab/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestForwardCurve(t *testing.T) {
	c := buildReferenceCurve(t)

	t.Run("grid prices every start off one curve", func(t *testing.T) {
		starts := []domain.Tenor{tenor("1Y"), tenor("2Y"), tenor("5Y"), tenor("10Y")}
		points := ForwardCurve(c, starts, tenor("1Y"))
		require.Len(t, points, 4)
		for i, p := range points {
			require.Equal(t, starts[i], p.Start)
			require.NotNil(t, p.Rate, "start %s", p.Start)
		}
	})

	t.Run("forwards rise on an upward sloping curve", func(t *testing.T) {
		points := ForwardCurve(c, []domain.Tenor{tenor("1Y"), tenor("5Y"), tenor("10Y")}, tenor("1Y"))
		require.NotNil(t, points[0].Rate)
		require.NotNil(t, points[2].Rate)
		require.Greater(t, *points[2].Rate, *points[0].Rate)
	})

	t.Run("zero start matches spot par rate", func(t *testing.T) {
		points := ForwardCurve(c, []domain.Tenor{tenor("0D")}, tenor("10Y"))
		require.Len(t, points, 1)
		require.NotNil(t, points[0].Rate)
		require.InDelta(t, 0.0080, *points[0].Rate, 0.0003)
	})
}

func TestSpotZeroCurve(t *testing.T) {
	c := buildReferenceCurve(t)

	t.Run("consistent with discount factors", func(t *testing.T) {
		maturities := []domain.Tenor{tenor("1Y"), tenor("5Y"), tenor("10Y"), tenor("30Y")}
		points := SpotZeroCurve(c, maturities)
		require.Len(t, points, 4)

		for _, p := range points {
			d := c.Calendar().Adjust(p.Maturity.AddTo(c.Spot()), "ModifiedFollowing")
			tt := c.DayCount().YearFraction(c.Spot(), d)
			require.InEpsilon(t, c.DiscountFactor(d), math.Exp(-p.Rate*tt), 1e-12)
		}
	})

	t.Run("increasing on an upward sloping curve", func(t *testing.T) {
		points := SpotZeroCurve(c, []domain.Tenor{tenor("1Y"), tenor("10Y"), tenor("30Y")})
		require.Less(t, points[0].Rate, points[1].Rate)
		require.Less(t, points[1].Rate, points[2].Rate)
	})
}
