package repository

import (
	"curvelab/internal/db/models/postgres/public/model"
	. "curvelab/internal/db/models/postgres/public/table"
	"curvelab/internal/domain"
	"database/sql"
	"fmt"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
)

type BondYieldRepository interface {
	Add(*sql.Tx, []model.BondYield) error
	ListObservations(tx *sql.Tx, tradeDate time.Time) ([]domain.Observation, error)
	ListTradeDates(tx *sql.Tx, start, end time.Time) ([]time.Time, error)
}

func NewBondYieldRepository() BondYieldRepository {
	return &BondYieldRepositoryHandler{}
}

type BondYieldRepositoryHandler struct{}

func (h BondYieldRepositoryHandler) Add(tx *sql.Tx, yields []model.BondYield) error {
	query := BondYield.
		INSERT(BondYield.AllColumns).
		MODELS(yields).
		ON_CONFLICT(
			BondYield.TradeDate, BondYield.InstrumentID,
		).DO_UPDATE(
		SET(
			BondYield.YieldPct.SET(BondYield.EXCLUDED.YieldPct),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add bond yields to db: %w", err)
	}

	return nil
}

// ListObservations joins yields with the bond reference so each observation
// carries its remaining maturity in years as of the trade date, with yields
// converted from stored percent to decimal.
func (h BondYieldRepositoryHandler) ListObservations(tx *sql.Tx, tradeDate time.Time) ([]domain.Observation, error) {
	query := BondYield.
		INNER_JOIN(BondReference, BondReference.InstrumentID.EQ(BondYield.InstrumentID)).
		SELECT(BondYield.AllColumns, BondReference.AllColumns).
		WHERE(BondYield.TradeDate.EQ(DateT(tradeDate))).
		ORDER_BY(BondReference.MaturityDate.ASC())

	result := []struct {
		model.BondYield
		model.BondReference
	}{}
	err := query.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list bond observations on %v: %w", tradeDate, err)
	}

	out := []domain.Observation{}
	for _, r := range result {
		out = append(out, domain.Observation{
			InstrumentID: r.BondYield.InstrumentID,
			Name:         r.BondReference.Name,
			Maturity:     domain.DayCountAct365.YearFraction(tradeDate, r.BondReference.MaturityDate),
			Value:        r.BondYield.YieldPct.InexactFloat64() / 100,
		})
	}

	return out, nil
}

func (h BondYieldRepositoryHandler) ListTradeDates(tx *sql.Tx, start, end time.Time) ([]time.Time, error) {
	query := BondYield.
		SELECT(BondYield.TradeDate).
		WHERE(BondYield.TradeDate.BETWEEN(DateT(start), DateT(end))).
		GROUP_BY(BondYield.TradeDate).
		ORDER_BY(BondYield.TradeDate.ASC())

	q, args := query.Sql()

	rows, err := tx.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list yield trade dates: %w", err)
	}
	defer rows.Close()

	out := []time.Time{}
	for rows.Next() {
		var d time.Time
		err := rows.Scan(&d)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, d)
	}

	return out, nil
}
