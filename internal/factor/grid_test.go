package factor

import (
	"testing"
	"time"

	"curvelab/internal/domain"

	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC)
}

func obsAt(maturities []float64, f func(m float64) float64) []domain.Observation {
	out := make([]domain.Observation, 0, len(maturities))
	for _, m := range maturities {
		out = append(out, domain.Observation{Maturity: m, Value: f(m)})
	}
	return out
}

func TestNormalizeGrid(t *testing.T) {
	grid := []float64{1, 2, 3, 5, 10}

	t.Run("observations on grid points pass through", func(t *testing.T) {
		f := func(m float64) float64 { return 0.01 + 0.001*m }
		daily := map[time.Time][]domain.Observation{
			day(1): obsAt(grid, f),
			day(4): obsAt(grid, f),
			day(5): obsAt(grid, f),
		}

		gm, err := NormalizeGrid(daily, grid)
		require.NoError(t, err)

		rows, cols := gm.Data.Dims()
		require.Equal(t, 3, rows)
		require.Equal(t, len(grid), cols)
		for i := 0; i < rows; i++ {
			for j, m := range grid {
				require.InDelta(t, f(m), gm.Data.At(i, j), 1e-12)
			}
		}
	})

	t.Run("rows chronological regardless of map order", func(t *testing.T) {
		f := func(m float64) float64 { return 0.02 }
		daily := map[time.Time][]domain.Observation{
			day(7): obsAt(grid, f),
			day(1): obsAt(grid, f),
			day(4): obsAt(grid, f),
		}

		gm, err := NormalizeGrid(daily, grid)
		require.NoError(t, err)
		require.Equal(t, []time.Time{day(1), day(4), day(7)}, gm.Dates)
	})

	t.Run("interpolates between observed maturities", func(t *testing.T) {
		// observe at 1, 4 and 10 only; the 2, 3 and 5 points come off the spline
		f := func(m float64) float64 { return 0.005 * m }
		daily := map[time.Time][]domain.Observation{
			day(1): obsAt([]float64{1, 4, 10}, f),
		}

		gm, err := NormalizeGrid(daily, grid)
		require.NoError(t, err)
		// a linear function is reproduced exactly by a natural cubic spline
		for j, m := range grid {
			require.InDelta(t, f(m), gm.Data.At(0, j), 1e-10)
		}
	})

	t.Run("too few distinct maturities drops the date", func(t *testing.T) {
		f := func(m float64) float64 { return 0.01 }
		daily := map[time.Time][]domain.Observation{
			day(1): obsAt(grid, f),
			// two distinct maturities, even with a repeat
			day(2): {
				{Maturity: 1, Value: 0.01},
				{Maturity: 1, Value: 0.02},
				{Maturity: 10, Value: 0.03},
			},
		}

		gm, err := NormalizeGrid(daily, grid)
		require.NoError(t, err)
		require.Equal(t, []time.Time{day(1)}, gm.Dates)
	})

	t.Run("low grid coverage drops the date", func(t *testing.T) {
		f := func(m float64) float64 { return 0.01 }
		daily := map[time.Time][]domain.Observation{
			day(1): obsAt(grid, f),
			// covers only [1, 2] of the grid: 2 of 5 points
			day(2): obsAt([]float64{1, 1.5, 2}, f),
		}

		gm, err := NormalizeGrid(daily, grid)
		require.NoError(t, err)
		require.Equal(t, []time.Time{day(1)}, gm.Dates)
	})

	t.Run("unsupported cells take the column mean", func(t *testing.T) {
		daily := map[time.Time][]domain.Observation{
			day(1): obsAt(grid, func(m float64) float64 { return 0.010 }),
			day(2): obsAt(grid, func(m float64) float64 { return 0.020 }),
			// covers 1..5 but not 10: 4 of 5 points
			day(3): obsAt([]float64{1, 2, 3, 5}, func(m float64) float64 { return 0.030 }),
		}

		gm, err := NormalizeGrid(daily, grid)
		require.NoError(t, err)
		rows, _ := gm.Data.Dims()
		require.Equal(t, 3, rows)

		// the 10Y cell for day 3 is the mean of the dates that support it
		require.InDelta(t, 0.015, gm.Data.At(2, 4), 1e-12)
		// supported cells keep their own values
		require.InDelta(t, 0.030, gm.Data.At(2, 0), 1e-12)
	})

	t.Run("duplicate maturities averaged", func(t *testing.T) {
		daily := map[time.Time][]domain.Observation{
			day(1): {
				{Maturity: 1, Value: 0.010},
				{Maturity: 1, Value: 0.030},
				{Maturity: 5, Value: 0.020},
				{Maturity: 10, Value: 0.020},
			},
		}

		gm, err := NormalizeGrid(daily, []float64{1, 5, 10})
		require.NoError(t, err)
		require.InDelta(t, 0.020, gm.Data.At(0, 0), 1e-12)
	})

	t.Run("no surviving date is an error", func(t *testing.T) {
		daily := map[time.Time][]domain.Observation{
			day(1): {{Maturity: 1, Value: 0.01}, {Maturity: 2, Value: 0.01}},
		}
		_, err := NormalizeGrid(daily, grid)
		require.ErrorContains(t, err, "no trade date passed")
	})

	t.Run("non-increasing grid is an error", func(t *testing.T) {
		_, err := NormalizeGrid(map[time.Time][]domain.Observation{}, []float64{1, 3, 2})
		require.ErrorContains(t, err, "strictly increasing")
	})

	t.Run("stricter coverage keeps no more rows", func(t *testing.T) {
		daily := map[time.Time][]domain.Observation{
			day(1): obsAt(grid, func(m float64) float64 { return 0.01 }),
			day(2): obsAt([]float64{1, 2, 3, 5}, func(m float64) float64 { return 0.01 }),
			day(3): obsAt([]float64{1, 2, 3}, func(m float64) float64 { return 0.01 }),
		}

		loose, err := NormalizeGridWithThresholds(daily, grid, 3, 0.5)
		require.NoError(t, err)
		strict, err := NormalizeGridWithThresholds(daily, grid, 3, 0.8)
		require.NoError(t, err)
		require.LessOrEqual(t, len(strict.Dates), len(loose.Dates))
		require.Len(t, loose.Dates, 3)
		require.Len(t, strict.Dates, 2)
	})
}
