package factor

import (
	"testing"

	"curvelab/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestReconstruct(t *testing.T) {
	gm := levelSlopeMatrix(t)

	t.Run("full component set reproduces the fitted row", func(t *testing.T) {
		// the matrix is rank two, so two components reconstruct it exactly
		model, err := Fit(gm, 2)
		require.NoError(t, err)

		for i := range model.Dates {
			rec, err := Reconstruct(model, i, 2, nil)
			require.NoError(t, err)
			for j := range model.Grid {
				require.InDelta(t, gm.Data.At(i, j), rec.GridValues[j], 1e-10)
			}
		}
	})

	t.Run("zero components degenerate to the mean curve", func(t *testing.T) {
		model, err := Fit(gm, 2)
		require.NoError(t, err)

		rec, err := Reconstruct(model, 0, 0, nil)
		require.NoError(t, err)
		require.Equal(t, model.Mean, rec.GridValues)
	})

	t.Run("partial reconstruction moves toward the original", func(t *testing.T) {
		model, err := Fit(gm, 2)
		require.NoError(t, err)

		dateIndex := 3
		err0 := reconstructionError(t, gm, model, dateIndex, 0)
		err1 := reconstructionError(t, gm, model, dateIndex, 1)
		err2 := reconstructionError(t, gm, model, dateIndex, 2)
		require.LessOrEqual(t, err1, err0)
		require.LessOrEqual(t, err2, err1)
	})

	t.Run("residuals against nearest grid point", func(t *testing.T) {
		model, err := Fit(gm, 2)
		require.NoError(t, err)

		rec, err := Reconstruct(model, 1, 2, []domain.Observation{
			// maturity 2.2 maps to the 2y grid point
			{InstrumentID: "a", Name: "bond a", Maturity: 2.2, Value: gm.Data.At(1, 1) + 0.0010},
			// maturity 6.1 maps to the 7y grid point
			{InstrumentID: "b", Name: "bond b", Maturity: 6.1, Value: gm.Data.At(1, 4) - 0.0004},
		})
		require.NoError(t, err)
		require.Len(t, rec.Instruments, 2)

		require.Equal(t, "a", rec.Instruments[0].InstrumentID)
		require.InDelta(t, 0.0010, rec.Instruments[0].Residual, 1e-9)
		require.InDelta(t, -0.0004, rec.Instruments[1].Residual, 1e-9)

		require.InDelta(t, 0.0003, rec.Stats.Mean, 1e-9)
		require.InDelta(t, 0.0007, rec.Stats.MAE, 1e-9)
		require.InDelta(t, 0.0010, rec.Stats.Max, 1e-9)
		require.InDelta(t, -0.0004, rec.Stats.Min, 1e-9)
	})

	t.Run("empty observations give empty stats", func(t *testing.T) {
		model, err := Fit(gm, 2)
		require.NoError(t, err)

		rec, err := Reconstruct(model, 0, 1, nil)
		require.NoError(t, err)
		require.Empty(t, rec.Instruments)
		require.Equal(t, ResidualStats{}, rec.Stats)
	})

	t.Run("bounds", func(t *testing.T) {
		model, err := Fit(gm, 2)
		require.NoError(t, err)

		_, err = Reconstruct(model, -1, 1, nil)
		require.Error(t, err)
		_, err = Reconstruct(model, len(model.Dates), 1, nil)
		require.Error(t, err)
		_, err = Reconstruct(model, 0, 3, nil)
		require.Error(t, err)
		_, err = Reconstruct(model, 0, -1, nil)
		require.Error(t, err)
	})
}

func reconstructionError(t *testing.T, gm *GridMatrix, model *ModelResult, dateIndex, nUsed int) float64 {
	t.Helper()
	rec, err := Reconstruct(model, dateIndex, nUsed, nil)
	require.NoError(t, err)

	var sum float64
	for j := range model.Grid {
		d := gm.Data.At(dateIndex, j) - rec.GridValues[j]
		sum += d * d
	}
	return sum
}

func TestNearestGridIndex(t *testing.T) {
	grid := []float64{1, 5, 10}
	require.Equal(t, 0, nearestGridIndex(grid, 0.5))
	require.Equal(t, 0, nearestGridIndex(grid, 2.9))
	require.Equal(t, 1, nearestGridIndex(grid, 6))
	require.Equal(t, 2, nearestGridIndex(grid, 8))
	require.Equal(t, 2, nearestGridIndex(grid, 40))
}
