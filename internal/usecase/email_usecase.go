package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"tallerpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidEmail        = errors.New("invalid email")
	ErrEmailNotConfigured  = errors.New("email sender not configured")
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
)

// IEmailUseCase relays ad-hoc emails (quotes, pickup notices) composed by staff.
type IEmailUseCase interface {
	Send(ctx context.Context, msg interfaces.EmailMessage, actor string) (string, error)
}

type EmailUseCase struct {
	sender interfaces.IEmailSender
	log    *zap.Logger
}

var _ IEmailUseCase = (*EmailUseCase)(nil)

func NewEmailUseCase(sender interfaces.IEmailSender, log *zap.Logger) *EmailUseCase {
	return &EmailUseCase{sender: sender, log: nopIfNil(log)}
}

func (u *EmailUseCase) Send(ctx context.Context, msg interfaces.EmailMessage, actor string) (string, error) {
	msg.To = strings.TrimSpace(msg.To)
	msg.Subject = strings.TrimSpace(msg.Subject)
	if msg.To == "" || msg.Subject == "" || strings.TrimSpace(msg.HTML) == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return "", ErrInvalidEmail
	}
	if u.sender == nil {
		return "", ErrEmailNotConfigured
	}

	id, err := u.sender.Send(ctx, msg)
	if err != nil {
		u.log.Error("[email][usecase] send failed", zap.String("to", msg.To), zap.String("actor", actorOrDefault(actor)), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrEmailDeliveryFailed, err)
	}
	u.log.Info("[email][usecase] sent", zap.String("to", msg.To), zap.String("provider_id", id), zap.String("actor", actorOrDefault(actor)))
	return id, nil
}
