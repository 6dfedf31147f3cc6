package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"
	mock_interfaces "tallerpro/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestEmailUseCase_Send(t *testing.T) {
	msg := interfaces.EmailMessage{To: "ana@example.com", Subject: "Cotización", HTML: "<p>Hola</p>"}

	t.Run("invalid message", func(t *testing.T) {
		uc := NewEmailUseCase(nil, nil)
		for _, bad := range []interfaces.EmailMessage{
			{Subject: "x", HTML: "y"},
			{To: "ana@example.com", HTML: "y"},
			{To: "ana@example.com", Subject: "x", HTML: "  "},
			{To: "nope", Subject: "x", HTML: "y"},
		} {
			if _, err := uc.Send(context.Background(), bad, "Luis"); !errors.Is(err, ErrInvalidEmail) {
				t.Fatalf("expected ErrInvalidEmail for %+v, got %v", bad, err)
			}
		}
	})

	t.Run("not configured", func(t *testing.T) {
		uc := NewEmailUseCase(nil, nil)
		if _, err := uc.Send(context.Background(), msg, "Luis"); !errors.Is(err, ErrEmailNotConfigured) {
			t.Fatalf("expected ErrEmailNotConfigured, got %v", err)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := mock_interfaces.NewMockIEmailSender(ctrl)
		uc := NewEmailUseCase(sender, nil)
		sender.EXPECT().Send(gomock.Any(), msg).Return("", errors.New("401"))

		if _, err := uc.Send(context.Background(), msg, "Luis"); !errors.Is(err, ErrEmailDeliveryFailed) {
			t.Fatalf("expected ErrEmailDeliveryFailed, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := mock_interfaces.NewMockIEmailSender(ctrl)
		uc := NewEmailUseCase(sender, nil)
		sender.EXPECT().Send(gomock.Any(), msg).Return("re_123", nil)

		id, err := uc.Send(context.Background(), msg, "")
		if err != nil || id != "re_123" {
			t.Fatalf("unexpected result %q, err %v", id, err)
		}
	})
}

func TestRenderReceipt(t *testing.T) {
	o := sampleOrder()
	o.AmountPaid = 50
	o.BalanceDue = 61.5
	sale := entities.Sale{SaleNumber: "REC-WO-20240310-ABC123-0011223344", Subtotal: 44.84, TaxAmount: 5.16, Total: 50, PaymentMethod: entities.PaymentMethodATHMovil}

	r, err := RenderReceipt("Taller Prueba", o, sale, 0.115, time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Subject != "Recibo de pago REC-WO-20240310-ABC123-0011223344 - Orden WO-20240310-ABC123" {
		t.Fatalf("unexpected subject %q", r.Subject)
	}
	for _, want := range []string{"Taller Prueba", "Ana Rivera", "ATH Móvil", "$50.00", "$111.50", "$61.50", "10/03/2024 14:05", "data:image/png;base64,"} {
		if !strings.Contains(r.HTML, want) {
			t.Fatalf("receipt missing %q", want)
		}
	}
}
