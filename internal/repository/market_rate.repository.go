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

type MarketRateRepository interface {
	Add(*sql.Tx, []model.MarketRate) error
	List(tx *sql.Tx, productType string, tradeDate time.Time) ([]domain.MarketQuote, error)
	ListTradeDates(tx *sql.Tx, productType string, start, end time.Time) ([]time.Time, error)
}

func NewMarketRateRepository() MarketRateRepository {
	return &MarketRateRepositoryHandler{}
}

type MarketRateRepositoryHandler struct{}

func (h MarketRateRepositoryHandler) Add(tx *sql.Tx, rates []model.MarketRate) error {
	query := MarketRate.
		INSERT(MarketRate.TradeDate, MarketRate.ProductType, MarketRate.Tenor, MarketRate.RatePct).
		MODELS(rates).
		ON_CONFLICT(
			MarketRate.TradeDate, MarketRate.ProductType, MarketRate.Tenor,
		).DO_UPDATE(
		SET(
			MarketRate.RatePct.SET(MarketRate.EXCLUDED.RatePct),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add market rates to db: %w", err)
	}

	return nil
}

// List returns the quotes for one product on one trade date, rates
// converted from stored percent to decimal.
func (h MarketRateRepositoryHandler) List(tx *sql.Tx, productType string, tradeDate time.Time) ([]domain.MarketQuote, error) {
	query := MarketRate.
		SELECT(MarketRate.AllColumns).
		WHERE(
			AND(
				MarketRate.ProductType.EQ(String(productType)),
				MarketRate.TradeDate.EQ(DateT(tradeDate)),
			),
		)

	result := []model.MarketRate{}
	err := query.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s rates on %v: %w", productType, tradeDate, err)
	}

	out := []domain.MarketQuote{}
	for _, r := range result {
		tenor, err := domain.ParseTenor(r.Tenor)
		if err != nil {
			return nil, fmt.Errorf("bad tenor %q in market_rate row: %w", r.Tenor, err)
		}
		out = append(out, domain.MarketQuote{
			Tenor: tenor,
			Rate:  r.RatePct.InexactFloat64() / 100,
		})
	}

	return out, nil
}

func (h MarketRateRepositoryHandler) ListTradeDates(tx *sql.Tx, productType string, start, end time.Time) ([]time.Time, error) {
	query := MarketRate.
		SELECT(MarketRate.TradeDate).
		WHERE(
			AND(
				MarketRate.ProductType.EQ(String(productType)),
				MarketRate.TradeDate.BETWEEN(DateT(start), DateT(end)),
			),
		).
		GROUP_BY(MarketRate.TradeDate).
		ORDER_BY(MarketRate.TradeDate.ASC())

	q, args := query.Sql()

	rows, err := tx.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade dates: %w", err)
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
