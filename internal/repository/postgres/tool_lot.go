package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type toolLotRepository struct {
	db *sql.DB
}

func NewToolLotRepository(db *sql.DB) repository.ToolLotRepository {
	return &toolLotRepository{db: db}
}

func (r *toolLotRepository) Create(ctx context.Context, lot *domain.ToolLot) error {
	query := `INSERT INTO tool_lots (name, category, replacement_value_cents, state, quantity)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		lot.Name, lot.Category, lot.ReplacementValueCents, lot.State, lot.Quantity).Scan(&lot.ID)
}

func (r *toolLotRepository) GetByID(ctx context.Context, id int32) (*domain.ToolLot, error) {
	query := `SELECT id, name, category, replacement_value_cents, state, quantity
	          FROM tool_lots WHERE id = $1`
	lot := &domain.ToolLot{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&lot.ID, &lot.Name, &lot.Category, &lot.ReplacementValueCents, &lot.State, &lot.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lot, nil
}

func (r *toolLotRepository) Update(ctx context.Context, lot *domain.ToolLot) error {
	query := `UPDATE tool_lots
	          SET name = $1, category = $2, replacement_value_cents = $3, state = $4, quantity = $5
	          WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query,
		lot.Name, lot.Category, lot.ReplacementValueCents, lot.State, lot.Quantity, lot.ID)
	return err
}

func (r *toolLotRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tool_lots WHERE id = $1`, id)
	return err
}

func (r *toolLotRepository) SearchByName(ctx context.Context, name string) ([]domain.ToolLot, error) {
	query := `SELECT id, name, category, replacement_value_cents, state, quantity
	          FROM tool_lots WHERE name = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []domain.ToolLot
	for rows.Next() {
		var lot domain.ToolLot
		if err := rows.Scan(&lot.ID, &lot.Name, &lot.Category, &lot.ReplacementValueCents, &lot.State, &lot.Quantity); err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

func (r *toolLotRepository) FindByIdentityAndState(ctx context.Context, name, category string, replacementValueCents int64, state domain.LotState) (*domain.ToolLot, error) {
	query := `SELECT id, name, category, replacement_value_cents, state, quantity
	          FROM tool_lots
	          WHERE name = $1 AND category = $2 AND replacement_value_cents = $3 AND state = $4
	          ORDER BY id ASC LIMIT 1`
	lot := &domain.ToolLot{}
	err := r.db.QueryRowContext(ctx, query, name, category, replacementValueCents, state).
		Scan(&lot.ID, &lot.Name, &lot.Category, &lot.ReplacementValueCents, &lot.State, &lot.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lot, nil
}
