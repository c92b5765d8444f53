// Package quotefile loads percent-valued market rate CSVs into db model rows,
// for seeding a cold database before a backfill.
package quotefile

import (
	"curvelab/internal/db/models/postgres/public/model"
	"curvelab/internal/domain"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type rateRow struct {
	TradeDate   string `csv:"trade_date"`
	ProductType string `csv:"product_type"`
	Tenor       string `csv:"tenor"`
	RatePct     string `csv:"rate_pct"`
}

type yieldRow struct {
	TradeDate    string `csv:"trade_date"`
	InstrumentID string `csv:"instrument_id"`
	YieldPct     string `csv:"yield_pct"`
}

// LoadMarketRates parses rows like
//
//	trade_date,product_type,tenor,rate_pct
//	2024-01-04,OIS,10Y,0.80
func LoadMarketRates(r io.Reader) ([]model.MarketRate, error) {
	rows := []rateRow{}
	err := gocsv.Unmarshal(r, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse market rate csv: %w", err)
	}

	out := []model.MarketRate{}
	for i, row := range rows {
		date, err := time.Parse(time.DateOnly, row.TradeDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad trade date %q: %w", i+1, row.TradeDate, err)
		}
		// validate the tenor here so bad rows fail at ingestion, not
		// at curve build
		_, err = domain.ParseTenor(row.Tenor)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rate, err := decimal.NewFromString(row.RatePct)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad rate %q: %w", i+1, row.RatePct, err)
		}
		out = append(out, model.MarketRate{
			TradeDate:   date,
			ProductType: row.ProductType,
			Tenor:       row.Tenor,
			RatePct:     rate,
		})
	}

	return out, nil
}

// LoadBondYields parses rows like
//
//	trade_date,instrument_id,yield_pct
//	2024-01-04,JP1051231,1.25
func LoadBondYields(r io.Reader) ([]model.BondYield, error) {
	rows := []yieldRow{}
	err := gocsv.Unmarshal(r, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bond yield csv: %w", err)
	}

	out := []model.BondYield{}
	for i, row := range rows {
		date, err := time.Parse(time.DateOnly, row.TradeDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad trade date %q: %w", i+1, row.TradeDate, err)
		}
		if row.InstrumentID == "" {
			return nil, fmt.Errorf("row %d: missing instrument id", i+1)
		}
		yield, err := decimal.NewFromString(row.YieldPct)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad yield %q: %w", i+1, row.YieldPct, err)
		}
		out = append(out, model.BondYield{
			TradeDate:    date,
			InstrumentID: row.InstrumentID,
			YieldPct:     yield,
		})
	}

	return out, nil
}
