package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type pricingConfigRepository struct {
	db *sql.DB
}

func NewPricingConfigRepository(db *sql.DB) repository.PricingConfigRepository {
	return &pricingConfigRepository{db: db}
}

func (r *pricingConfigRepository) Get(ctx context.Context) (*domain.PricingConfig, error) {
	cfg := &domain.PricingConfig{}
	query := `SELECT id, rental_fee_daily_cents, late_fee_daily_cents
	          FROM pricing_config ORDER BY id ASC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).
		Scan(&cfg.ID, &cfg.RentalFeeDailyCents, &cfg.LateFeeDailyCents)
	if errors.Is(err, sql.ErrNoRows) {
		insert := `INSERT INTO pricing_config (rental_fee_daily_cents, late_fee_daily_cents)
		           VALUES (0, 0) RETURNING id`
		if err := r.db.QueryRowContext(ctx, insert).Scan(&cfg.ID); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *pricingConfigRepository) Update(ctx context.Context, cfg *domain.PricingConfig) error {
	query := `UPDATE pricing_config SET rental_fee_daily_cents = $1, late_fee_daily_cents = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, cfg.RentalFeeDailyCents, cfg.LateFeeDailyCents, cfg.ID)
	return err
}
