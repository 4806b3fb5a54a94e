package domain

import "time"

// Loan is one rental transaction covering one or more tool units. ToolNames
// holds one entry per unit; duplicates are allowed and each entry maps 1:1
// to a unit reserved from an Available lot at creation time.
type Loan struct {
	ID             int32      `json:"id"`
	CustomerID     string     `json:"customer_id"`
	ToolNames      []string   `json:"tool_names"`
	StartDate      time.Time  `json:"start_date"`
	DueDate        time.Time  `json:"due_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	RentalFeeCents int64      `json:"rental_fee_cents"`
	FineCents      int64      `json:"fine_cents"`
	Paid           bool       `json:"paid"`
	DamagedTools   []string   `json:"damaged_tools"`
	DiscardedTools []string   `json:"discarded_tools"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
}

// Open reports whether the loan has not been returned yet. EndDate is nil
// iff the loan is open.
func (l *Loan) Open() bool {
	return l.EndDate == nil
}

// OverdueAt reports whether the loan is open and past due at the given time.
func (l *Loan) OverdueAt(t time.Time) bool {
	return l.Open() && l.DueDate.Before(truncateToDay(t))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
