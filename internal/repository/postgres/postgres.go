package postgres

import (
	"database/sql"

	"toolrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ToolLotRepository
	repository.LoanRepository
	repository.KardexRepository
	repository.PricingConfigRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		ToolLotRepository:       NewToolLotRepository(db),
		LoanRepository:          NewLoanRepository(db),
		KardexRepository:        NewKardexRepository(db),
		PricingConfigRepository: NewPricingConfigRepository(db),
	}
}
