package jobs

import (
	"context"

	"toolrent-backend/internal/logger"
)

// SendOverdueReminders emails every customer holding an open loan past
// its due date.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.services.Loan.ListOverdueActiveLoans(ctx, nil, nil)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		sent := 0
		for i := range overdue {
			loan := &overdue[i]
			if err := jr.services.Email.SendOverdueReminder(loan.CustomerID, loan); err != nil {
				logger.Error("Failed to send overdue reminder",
					"loan_id", loan.ID, "customer_id", loan.CustomerID, "error", err)
				continue
			}
			sent++
			logger.Debug("Sent overdue reminder",
				"loan_id", loan.ID, "customer_id", loan.CustomerID, "due_date", loan.DueDate)
		}
		logger.Info("Overdue reminders sent", "count", sent, "overdue_loans", len(overdue))
	})
}

// SendUnpaidNotices emails every customer with a returned loan whose
// balance has not been settled.
func (jr *JobRunner) SendUnpaidNotices() {
	jr.runWithRecovery("SendUnpaidNotices", func() {
		ctx := context.Background()

		unpaid, err := jr.store.LoanRepository.ListClosedUnpaid(ctx)
		if err != nil {
			logger.Error("Failed to list unpaid loans", "error", err)
			return
		}

		sent := 0
		for i := range unpaid {
			loan := &unpaid[i]
			if err := jr.services.Email.SendUnpaidNotice(loan.CustomerID, loan); err != nil {
				logger.Error("Failed to send unpaid notice",
					"loan_id", loan.ID, "customer_id", loan.CustomerID, "error", err)
				continue
			}
			sent++
			logger.Debug("Sent unpaid notice",
				"loan_id", loan.ID, "customer_id", loan.CustomerID,
				"balance_cents", loan.RentalFeeCents+loan.FineCents)
		}
		logger.Info("Unpaid notices sent", "count", sent, "unpaid_loans", len(unpaid))
	})
}
