package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"
)

type kardexRepository struct {
	db *sql.DB
}

func NewKardexRepository(db *sql.DB) repository.KardexRepository {
	return &kardexRepository{db: db}
}

const kardexColumns = `id, customer_id, movement_type, movement_date, tool_name, quantity, created_on`

func (r *kardexRepository) Append(ctx context.Context, movement *domain.KardexMovement) error {
	query := `INSERT INTO kardex_movements (id, customer_id, movement_type, movement_date, tool_name, quantity, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	movement.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		movement.ID, movement.CustomerID, movement.MovementType,
		movement.MovementDate, movement.ToolName, movement.Quantity, movement.CreatedOn)
	return err
}

func (r *kardexRepository) ListAll(ctx context.Context) ([]domain.KardexMovement, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *kardexRepository) ListByTool(ctx context.Context, toolName string) ([]domain.KardexMovement, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements WHERE tool_name = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, toolName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *kardexRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.KardexMovement, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements WHERE customer_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *kardexRepository) ListByDateRangeAndType(ctx context.Context, from, to time.Time, movementType domain.MovementType) ([]domain.KardexMovement, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_movements
	          WHERE movement_type = $1 AND movement_date BETWEEN $2 AND $3 ORDER BY movement_date ASC`
	rows, err := r.db.QueryContext(ctx, query, movementType, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *kardexRepository) TopLoanedTools(ctx context.Context, from, to *time.Time, limit int32) ([]domain.ToolMovementCount, error) {
	var rows *sql.Rows
	var err error
	if from != nil && to != nil {
		query := `SELECT tool_name, SUM(quantity) AS total
		          FROM kardex_movements
		          WHERE movement_type = $1 AND movement_date BETWEEN $2 AND $3
		          GROUP BY tool_name ORDER BY total DESC LIMIT $4`
		rows, err = r.db.QueryContext(ctx, query, domain.MovementTypeLoan, *from, *to, limit)
	} else {
		query := `SELECT tool_name, SUM(quantity) AS total
		          FROM kardex_movements
		          WHERE movement_type = $1
		          GROUP BY tool_name ORDER BY total DESC LIMIT $2`
		rows, err = r.db.QueryContext(ctx, query, domain.MovementTypeLoan, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.ToolMovementCount
	for rows.Next() {
		var c domain.ToolMovementCount
		if err := rows.Scan(&c.ToolName, &c.TotalQuantity); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func scanMovements(rows *sql.Rows) ([]domain.KardexMovement, error) {
	var movements []domain.KardexMovement
	for rows.Next() {
		var m domain.KardexMovement
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.MovementType, &m.MovementDate, &m.ToolName, &m.Quantity, &m.CreatedOn); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
