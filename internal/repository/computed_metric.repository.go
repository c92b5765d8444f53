package repository

import (
	"curvelab/internal/db/models/postgres/public/model"
	. "curvelab/internal/db/models/postgres/public/table"
	"database/sql"
	"fmt"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
)

type ComputedMetricRepository interface {
	Add(*sql.Tx, []model.ComputedMetric) error
	List(tx *sql.Tx, tradeDate time.Time) ([]model.ComputedMetric, error)
}

func NewComputedMetricRepository() ComputedMetricRepository {
	return &ComputedMetricRepositoryHandler{}
}

type ComputedMetricRepositoryHandler struct{}

// Add upserts, so re-running a backfill over the same dates is safe.
func (h ComputedMetricRepositoryHandler) Add(tx *sql.Tx, metrics []model.ComputedMetric) error {
	query := ComputedMetric.
		INSERT(ComputedMetric.TradeDate, ComputedMetric.InstrumentID, ComputedMetric.Metric, ComputedMetric.Value).
		MODELS(metrics).
		ON_CONFLICT(
			ComputedMetric.TradeDate, ComputedMetric.InstrumentID, ComputedMetric.Metric,
		).DO_UPDATE(
		SET(
			ComputedMetric.Value.SET(ComputedMetric.EXCLUDED.Value),
			ComputedMetric.UpdatedAt.SET(TimestampT(time.Now().UTC())),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add computed metrics to db: %w", err)
	}

	return nil
}

func (h ComputedMetricRepositoryHandler) List(tx *sql.Tx, tradeDate time.Time) ([]model.ComputedMetric, error) {
	query := ComputedMetric.
		SELECT(ComputedMetric.AllColumns).
		WHERE(ComputedMetric.TradeDate.EQ(DateT(tradeDate))).
		ORDER_BY(ComputedMetric.InstrumentID.ASC(), ComputedMetric.Metric.ASC())

	result := []model.ComputedMetric{}
	err := query.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list computed metrics on %v: %w", tradeDate, err)
	}

	return result, nil
}
