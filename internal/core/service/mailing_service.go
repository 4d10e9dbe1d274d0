package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/api/metrics"
	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

// MailingService runs the contact-form notification and the bulk campaign
// tool. Per-recipient transport failures are counted, never retried.
type MailingService struct {
	accounts     ports.AccountRepository
	mailer       ports.Mailer
	siteName     string
	contactEmail string
	logger       zerolog.Logger
}

func NewMailingService(accounts ports.AccountRepository, mailer ports.Mailer, siteName, contactEmail string, logger zerolog.Logger) *MailingService {
	return &MailingService{
		accounts:     accounts,
		mailer:       mailer,
		siteName:     siteName,
		contactEmail: contactEmail,
		logger:       logger,
	}
}

// SendContactMessage forwards a contact-form submission to the configured
// notification address, with the visitor's address as Reply-To.
func (s *MailingService) SendContactMessage(ctx context.Context, input ports.ContactInput) (bool, error) {
	fields := []string{input.LastName, input.FirstName, input.Phone, input.Email, input.Company, input.Message}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
		if fields[i] == "" {
			return false, domain.ErrMissingFields
		}
	}
	lastName, firstName, phone, email, company, message := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	subject := fmt.Sprintf("New message from %s %s", lastName, firstName)
	textBody := fmt.Sprintf(
		"Name: %s\nFirst name: %s\nPhone: %s\nEmail: %s\nCompany: %s\nMessage: %s\n",
		lastName, firstName, phone, email, company, message,
	)
	htmlBody := fmt.Sprintf(
		"<h2>New contact message</h2>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>First name:</strong> %s</p>"+
			"<p><strong>Phone:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Company:</strong> %s</p>"+
			"<p><strong>Message:</strong><br>%s</p>",
		lastName, firstName, phone, email, company, message,
	)

	ok := s.mailer.Send(s.contactEmail, subject, textBody, htmlBody, email)
	metrics.MailSendsTotal.WithLabelValues("contact", sendLabel(ok)).Inc()
	return ok, nil
}

// SendCampaign mails every active account with an email address, ascending
// id order, and aggregates the outcomes.
func (s *MailingService) SendCampaign(ctx context.Context, subject, message string) (*ports.CampaignStats, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, domain.ErrMissingFields
	}

	recipients, err := s.accounts.ListMailable(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.CampaignStats{Total: len(recipients)}
	for _, recipient := range recipients {
		htmlBody := fmt.Sprintf(
			"<html><body><p>Hello %s,</p><p>%s</p><p>Kind regards,<br>%s</p></body></html>",
			recipient.FullName, strings.ReplaceAll(message, "\n", "<br>"), s.siteName,
		)
		textBody := fmt.Sprintf("Hello %s,\n\n%s\n\nKind regards,\n%s", recipient.FullName, message, s.siteName)
		if s.mailer.Send(recipient.Email, subject, textBody, htmlBody, "") {
			stats.Sent++
			metrics.MailSendsTotal.WithLabelValues("campaign", "sent").Inc()
		} else {
			stats.Failed++
			metrics.MailSendsTotal.WithLabelValues("campaign", "failed").Inc()
		}
	}

	s.logger.Info().
		Int("total", stats.Total).
		Int("sent", stats.Sent).
		Int("failed", stats.Failed).
		Msg("mail campaign finished")
	return stats, nil
}

func sendLabel(ok bool) string {
	if ok {
		return "sent"
	}
	return "failed"
}
