// Package email talks to the transactional email provider over its REST API.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tallerpro/internal/usecase/interfaces"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrMissingAPIKey = errors.New("missing EMAIL_API_KEY")

const sendTimeout = 10 * time.Second

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type providerError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ResendSender posts messages to a Resend-compatible /emails endpoint.
type ResendSender struct {
	client *resty.Client
	from   string
	log    *zap.Logger
}

var _ interfaces.IEmailSender = (*ResendSender)(nil)

func NewResendSender(baseURL, apiKey, from string, log *zap.Logger) (*ResendSender, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetTimeout(sendTimeout).
		SetHeader("Content-Type", "application/json")
	return &ResendSender{client: client, from: from, log: log}, nil
}

func (s *ResendSender) Send(ctx context.Context, msg interfaces.EmailMessage) (string, error) {
	var (
		out     sendResponse
		failure providerError
	)
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(sendRequest{From: s.from, To: []string{msg.To}, Subject: msg.Subject, HTML: msg.HTML}).
		SetResult(&out).
		SetError(&failure).
		Post("/emails")
	if err != nil {
		s.log.Warn("[email][client] request failed", zap.Error(err))
		return "", err
	}
	if resp.IsError() {
		s.log.Warn("[email][client] provider rejected message",
			zap.Int("status", resp.StatusCode()),
			zap.String("provider_error", failure.Message),
		)
		return "", fmt.Errorf("email provider status %d: %s", resp.StatusCode(), failure.Message)
	}

	s.log.Info("[email][client] sent", zap.String("provider_id", out.ID))
	return out.ID, nil
}
