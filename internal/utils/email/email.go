package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/installment-service/internal/config"
	"github.com/Dan9191/installment-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// sendFunc delivers a composed message; replaced in tests
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Sender handles sending alert emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   sendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

var subjects = map[models.NotificationType]string{
	models.NotificationOverdue:  "Overdue Installment",
	models.NotificationUpcoming: "Upcoming Installment",
	models.NotificationLowStock: "Low Stock",
}

// buildAlert composes the message for a notification. Installment alerts are addressed to the
// customer with ALERT_RECIPIENT in copy; anything else goes to ALERT_RECIPIENT alone. It returns
// nil when nobody can receive the alert.
func (s *Sender) buildAlert(n models.Notification, customer *models.Customer) *email.Email {
	subject, ok := subjects[n.Type]
	if !ok {
		subject = "Notification"
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.Subject = fmt.Sprintf("[%s] %s", n.Key, subject)

	var body string
	if customer != nil && customer.Email != "" {
		e.To = []string{customer.Email}
		if s.cfg.AlertRecipient != "" {
			e.Cc = []string{s.cfg.AlertRecipient}
		}
		body = fmt.Sprintf("Dear %s,\n\n", customer.Name)
	} else if s.cfg.AlertRecipient != "" {
		e.To = []string{s.cfg.AlertRecipient}
	} else {
		return nil
	}

	body += fmt.Sprintf("%s\n\nRaised at: %s\n", n.Message, n.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if n.Type == models.NotificationOverdue {
		body += "Please make the payment as soon as possible to avoid further late fees.\n"
	}
	body += "\nBest regards,\nInstallment Service"
	e.Text = []byte(body)
	return e
}

// SendAlert mails a created notification
func (s *Sender) SendAlert(n models.Notification, customer *models.Customer) error {
	e := s.buildAlert(n, customer)
	if e == nil {
		s.logger.Debugf("No recipient for alert %s, e-mail skipped", n.Key)
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert %s to %v: %v", n.Key, e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
