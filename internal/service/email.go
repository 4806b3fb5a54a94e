package service

import (
	"fmt"

	"toolrent-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends loan notifications. The recipient address is the
// customer's contact address as recorded on the loan.
type EmailService interface {
	SendOverdueReminder(to string, loan *domain.Loan) error
	SendUnpaidNotice(to string, loan *domain.Loan) error
}

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendOverdueReminder(to string, loan *domain.Loan) error {
	subject := fmt.Sprintf("Loan #%d is past due", loan.ID)
	plainText := fmt.Sprintf(
		"Your loan #%d was due on %s and has not been returned yet. Late fees accrue daily until the tools are returned.",
		loan.ID, loan.DueDate.Format("2006-01-02"))
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Loan Past Due</h2>
				<p>Your loan <strong>#%d</strong> was due on <strong>%s</strong> and has not been returned yet.</p>
				<p>Late fees accrue daily until the tools are returned.</p>
			</body>
		</html>
	`, loan.ID, loan.DueDate.Format("2006-01-02"))

	return s.send(to, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendUnpaidNotice(to string, loan *domain.Loan) error {
	total := loan.RentalFeeCents + loan.FineCents
	subject := fmt.Sprintf("Outstanding balance on loan #%d", loan.ID)
	plainText := fmt.Sprintf(
		"Your returned loan #%d has an outstanding balance of %d cents (rental %d, fines %d). New loans are blocked until it is settled.",
		loan.ID, total, loan.RentalFeeCents, loan.FineCents)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Outstanding Balance</h2>
				<p>Your returned loan <strong>#%d</strong> has an outstanding balance of <strong>%d</strong> cents
				(rental %d, fines %d).</p>
				<p>New loans are blocked until it is settled.</p>
			</body>
		</html>
	`, loan.ID, total, loan.RentalFeeCents, loan.FineCents)

	return s.send(to, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) send(to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
