package repository

import (
	"curvelab/internal/db/models/postgres/public/model"
	. "curvelab/internal/db/models/postgres/public/table"
	"database/sql"
	"fmt"

	. "github.com/go-jet/jet/v2/postgres"
)

type BondReferenceRepository interface {
	Add(*sql.Tx, []model.BondReference) error
	Get(tx *sql.Tx, instrumentID string) (*model.BondReference, error)
	List(tx *sql.Tx) ([]model.BondReference, error)
}

func NewBondReferenceRepository() BondReferenceRepository {
	return &BondReferenceRepositoryHandler{}
}

type BondReferenceRepositoryHandler struct{}

func (h BondReferenceRepositoryHandler) Add(tx *sql.Tx, bonds []model.BondReference) error {
	query := BondReference.
		INSERT(BondReference.AllColumns).
		MODELS(bonds).
		ON_CONFLICT(
			BondReference.InstrumentID,
		).DO_UPDATE(
		SET(
			BondReference.Name.SET(BondReference.EXCLUDED.Name),
			BondReference.MaturityDate.SET(BondReference.EXCLUDED.MaturityDate),
			BondReference.CouponFrequency.SET(BondReference.EXCLUDED.CouponFrequency),
			BondReference.DayCount.SET(BondReference.EXCLUDED.DayCount),
		),
	)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to add bond reference rows to db: %w", err)
	}

	return nil
}

func (h BondReferenceRepositoryHandler) Get(tx *sql.Tx, instrumentID string) (*model.BondReference, error) {
	query := BondReference.
		SELECT(BondReference.AllColumns).
		WHERE(BondReference.InstrumentID.EQ(String(instrumentID)))

	result := model.BondReference{}
	err := query.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to get bond %s: %w", instrumentID, err)
	}

	return &result, nil
}

func (h BondReferenceRepositoryHandler) List(tx *sql.Tx) ([]model.BondReference, error) {
	query := BondReference.
		SELECT(BondReference.AllColumns).
		ORDER_BY(BondReference.MaturityDate.ASC())

	result := []model.BondReference{}
	err := query.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list bond reference rows: %w", err)
	}

	return result, nil
}
