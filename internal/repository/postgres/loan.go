package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/repository"

	"github.com/lib/pq"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, customer_id, tool_names, start_date, due_date, end_date,
	rental_fee_cents, fine_cents, paid, damaged_tools, discarded_tools, created_on, updated_on`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `INSERT INTO loans (customer_id, tool_names, start_date, due_date, end_date,
	              rental_fee_cents, fine_cents, paid, damaged_tools, discarded_tools, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING id`
	now := time.Now()
	loan.CreatedOn = now
	loan.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		loan.CustomerID, pq.Array(loan.ToolNames), loan.StartDate, loan.DueDate, loan.EndDate,
		loan.RentalFeeCents, loan.FineCents, loan.Paid,
		pq.Array(loan.DamagedTools), pq.Array(loan.DiscardedTools), now).Scan(&loan.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `UPDATE loans
	          SET end_date = $1, rental_fee_cents = $2, fine_cents = $3, paid = $4,
	              damaged_tools = $5, discarded_tools = $6, updated_on = $7
	          WHERE id = $8`
	loan.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		loan.EndDate, loan.RentalFeeCents, loan.FineCents, loan.Paid,
		pq.Array(loan.DamagedTools), pq.Array(loan.DiscardedTools), loan.UpdatedOn, loan.ID)
	return err
}

func (r *loanRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (r *loanRepository) ListOpen(ctx context.Context, from, to *time.Time) ([]domain.Loan, error) {
	var rows *sql.Rows
	var err error
	if from != nil && to != nil {
		query := `SELECT ` + loanColumns + ` FROM loans
		          WHERE end_date IS NULL AND start_date BETWEEN $1 AND $2 ORDER BY id ASC`
		rows, err = r.db.QueryContext(ctx, query, *from, *to)
	} else {
		query := `SELECT ` + loanColumns + ` FROM loans WHERE end_date IS NULL ORDER BY id ASC`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (r *loanRepository) ListClosedUnpaid(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
	          WHERE end_date IS NOT NULL AND paid = FALSE ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (r *loanRepository) HasOpenPastDue(ctx context.Context, customerID string, asOf time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE customer_id = $1 AND end_date IS NULL AND due_date < $2)`
	err := r.db.QueryRowContext(ctx, query, customerID, asOf).Scan(&exists)
	return exists, err
}

func (r *loanRepository) HasClosedUnpaid(ctx context.Context, customerID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM loans WHERE customer_id = $1 AND end_date IS NOT NULL AND paid = FALSE)`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	loan := &domain.Loan{}
	var endDate sql.NullTime
	err := row.Scan(&loan.ID, &loan.CustomerID, pq.Array(&loan.ToolNames),
		&loan.StartDate, &loan.DueDate, &endDate,
		&loan.RentalFeeCents, &loan.FineCents, &loan.Paid,
		pq.Array(&loan.DamagedTools), pq.Array(&loan.DiscardedTools),
		&loan.CreatedOn, &loan.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		loan.EndDate = &endDate.Time
	}
	return loan, nil
}

func scanLoans(rows *sql.Rows) ([]domain.Loan, error) {
	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}
