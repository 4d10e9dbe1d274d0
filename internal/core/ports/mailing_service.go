package ports

import "context"

type ContactInput struct {
	LastName  string
	FirstName string
	Phone     string
	Email     string
	Company   string
	Message   string
}

// CampaignStats aggregates per-recipient outcomes of a bulk send.
type CampaignStats struct {
	Total  int
	Sent   int
	Failed int
}

// MailingService runs the contact-form notification and the bulk campaign
// tool. Transport failures degrade to counts, never errors.
type MailingService interface {
	SendContactMessage(ctx context.Context, input ContactInput) (bool, error)
	SendCampaign(ctx context.Context, subject, message string) (*CampaignStats, error)
}
