package interfaces

import "context"

// EmailMessage is a single HTML email.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// IEmailSender delivers email through a transactional provider and returns
// the provider's message id.
type IEmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (providerID string, err error)
}
