package service

import (
	"context"
	"testing"
	"time"

	"curvelab/internal/domain"
	"curvelab/internal/factor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testFittedModel(t *testing.T) *FittedModel {
	t.Helper()

	grid := []float64{1, 2, 5, 10}
	levels := []float64{-0.0010, 0.0000, 0.0010, 0.0020, -0.0005}
	dates := make([]time.Time, len(levels))
	daily := map[time.Time][]domain.Observation{}
	data := mat.NewDense(len(levels), len(grid), nil)
	for i, level := range levels {
		dates[i] = time.Date(2024, time.April, i+1, 0, 0, 0, 0, time.UTC)
		obs := make([]domain.Observation, len(grid))
		for j, m := range grid {
			v := 0.01 + 0.0004*m + level
			data.Set(i, j, v)
			obs[j] = domain.Observation{InstrumentID: "x", Maturity: m, Value: v}
		}
		daily[dates[i]] = obs
	}

	result, err := factor.Fit(&factor.GridMatrix{Dates: dates, Grid: grid, Data: data}, 2)
	require.NoError(t, err)
	return &FittedModel{Result: result, Daily: daily}
}

func testFactorHandler(t *testing.T) (*factorServiceHandler, uuid.UUID, *FittedModel) {
	t.Helper()
	h := &factorServiceHandler{
		registry: map[uuid.UUID]*FittedModel{},
	}
	fitted := testFittedModel(t)
	id := uuid.New()
	h.registry[id] = fitted
	return h, id, fitted
}

func TestFactorService_GetModel(t *testing.T) {
	h, id, fitted := testFactorHandler(t)

	got, err := h.GetModel(id)
	require.NoError(t, err)
	require.Same(t, fitted, got)

	_, err = h.GetModel(uuid.New())
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestFactorService_FitModelValidation(t *testing.T) {
	h := &factorServiceHandler{registry: map[uuid.UUID]*FittedModel{}}

	_, err := h.FitModel(context.Background(), FitModelInput{
		EndDate:      time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
		LookbackDays: 0,
		NComponents:  2,
	})
	require.ErrorContains(t, err, "lookback")
}

func TestFactorService_Reconstruct(t *testing.T) {
	ctx := context.Background()

	t.Run("fitted date", func(t *testing.T) {
		h, id, fitted := testFactorHandler(t)

		rec, err := h.Reconstruct(ctx, id, fitted.Result.Dates[2], 2)
		require.NoError(t, err)
		require.Equal(t, fitted.Result.Dates[2], rec.Date)
		require.Len(t, rec.Instruments, len(fitted.Result.Grid))

		// observations sit on grid points, so full reconstruction leaves
		// near-zero residuals
		require.InDelta(t, 0, rec.Stats.MAE, 1e-9)
	})

	t.Run("date outside the fit", func(t *testing.T) {
		h, id, _ := testFactorHandler(t)

		_, err := h.Reconstruct(ctx, id, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), 1)
		require.ErrorContains(t, err, "not in fitted model")
	})

	t.Run("unknown model id", func(t *testing.T) {
		h, _, fitted := testFactorHandler(t)

		_, err := h.Reconstruct(ctx, uuid.New(), fitted.Result.Dates[0], 1)
		require.ErrorIs(t, err, ErrUnknownHandle)
	})

	t.Run("latest picks the last fitted date", func(t *testing.T) {
		h, id, fitted := testFactorHandler(t)

		rec, err := h.ReconstructLatest(ctx, id, 1)
		require.NoError(t, err)
		require.Equal(t, fitted.Result.Dates[len(fitted.Result.Dates)-1], rec.Date)
	})

	t.Run("report covers every fitted date", func(t *testing.T) {
		h, id, fitted := testFactorHandler(t)

		recs, err := h.ReconstructAll(ctx, id, 1)
		require.NoError(t, err)
		require.Len(t, recs, len(fitted.Result.Dates))
		for i, rec := range recs {
			require.Equal(t, fitted.Result.Dates[i], rec.Date)
		}
	})
}
