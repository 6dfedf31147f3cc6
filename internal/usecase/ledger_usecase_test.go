package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"
	mock_interfaces "tallerpro/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type ledgerFixture struct {
	orders  *mock_interfaces.MockIOrderRepository
	ledger  *mock_interfaces.MockILedgerRepository
	email   *mock_interfaces.MockIEmailSender
	gateway *mock_interfaces.MockIPaymentGateway
	uc      *LedgerUseCase
}

func newLedgerFixture(t *testing.T) ledgerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := ledgerFixture{
		orders:  mock_interfaces.NewMockIOrderRepository(ctrl),
		ledger:  mock_interfaces.NewMockILedgerRepository(ctrl),
		email:   mock_interfaces.NewMockIEmailSender(ctrl),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	f.uc = NewLedgerUseCase(f.orders, f.ledger, f.email, f.gateway, LedgerSettings{TaxRate: 0.115, ShopName: "Taller Prueba"}, nil)
	f.uc.now = func() time.Time { return time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC) }
	return f
}

// applyTo simulates a store that commits the write on top of base.
func applyTo(base entities.Order, captured *interfaces.DepositWrite) func(context.Context, interfaces.DepositWrite) (entities.Order, error) {
	return func(_ context.Context, w interfaces.DepositWrite) (entities.Order, error) {
		if captured != nil {
			*captured = w
		}
		o := base
		o.AmountPaid = w.AmountPaid
		o.DepositAmount = w.DepositAmount
		o.BalanceDue = w.BalanceDue
		o.Version = w.ExpectedVersion + 1
		return o, nil
	}
}

func sampleOrder() entities.Order {
	return entities.Order{
		ID:           "ord-1",
		OrderNumber:  "WO-20240310-ABC123",
		Status:       "intake",
		CostEstimate: 100,
		BalanceDue:   111.5,
		CustomerName: "Ana Rivera",
		Version:      1,
	}
}

func TestLedgerUseCase_RecordDeposit_Validations(t *testing.T) {
	cases := []struct {
		name    string
		orderID string
		in      DepositInput
		want    error
	}{
		{"empty order id", " ", DepositInput{Amount: 10, PaymentMethod: "cash"}, ErrInvalidOrderID},
		{"zero amount", "ord-1", DepositInput{Amount: 0, PaymentMethod: "cash"}, ErrInvalidAmount},
		{"negative amount", "ord-1", DepositInput{Amount: -5, PaymentMethod: "cash"}, ErrInvalidAmount},
		{"nan amount", "ord-1", DepositInput{Amount: math.NaN(), PaymentMethod: "cash"}, ErrInvalidAmount},
		{"infinite amount", "ord-1", DepositInput{Amount: math.Inf(1), PaymentMethod: "cash"}, ErrInvalidAmount},
		{"rounds to zero", "ord-1", DepositInput{Amount: 0.001, PaymentMethod: "cash"}, ErrInvalidAmount},
		{"unknown method", "ord-1", DepositInput{Amount: 10, PaymentMethod: "bitcoin"}, ErrInvalidPaymentMethod},
		{"empty method", "ord-1", DepositInput{Amount: 10}, ErrInvalidPaymentMethod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// No expectations: any repository call fails the test.
			f := newLedgerFixture(t)
			_, err := f.uc.RecordDeposit(context.Background(), tc.orderID, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("ledger repository not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := NewLedgerUseCase(mock_interfaces.NewMockIOrderRepository(ctrl), nil, nil, nil, LedgerSettings{}, nil)
		_, err := uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 10, PaymentMethod: "cash"})
		if !errors.Is(err, ErrLedgerRepositoryNotAvailable) {
			t.Fatalf("expected ErrLedgerRepositoryNotAvailable, got %v", err)
		}
	})
}

func TestLedgerUseCase_RecordDeposit_OrderLookup(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, nil)

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 10, PaymentMethod: "cash"})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, errors.New("db"))

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 10, PaymentMethod: "cash"})
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestLedgerUseCase_RecordDeposit_PartialThenFull(t *testing.T) {
	f := newLedgerFixture(t)
	order := sampleOrder()

	var first interfaces.DepositWrite
	f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil)
	f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, &first))
	f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash", Actor: "Luis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BalanceDue != 61.5 {
		t.Fatalf("expected balance 61.5, got %v", res.BalanceDue)
	}
	if first.AmountPaid != 50 || first.DepositAmount != 50 || first.ExpectedVersion != 1 {
		t.Fatalf("unexpected write: %+v", first)
	}
	if res.EmailSent {
		t.Fatalf("no email expected without customer email")
	}

	// Transaction and Sale share the receipt number.
	if first.Sale.SaleNumber != res.ReceiptNumber || first.Transaction.Reference != res.ReceiptNumber {
		t.Fatalf("receipt mismatch: sale=%s tx=%s res=%s", first.Sale.SaleNumber, first.Transaction.Reference, res.ReceiptNumber)
	}
	if !strings.HasPrefix(res.ReceiptNumber, "REC-WO-20240310-ABC123-") {
		t.Fatalf("unexpected receipt number %s", res.ReceiptNumber)
	}
	if first.Transaction.Type != entities.TransactionTypeRevenue || first.Transaction.Category != entities.TransactionCategoryRepairPaid {
		t.Fatalf("unexpected transaction classification: %+v", first.Transaction)
	}
	if first.Transaction.Amount != 50 || first.Transaction.RecordedBy != "Luis" {
		t.Fatalf("unexpected transaction: %+v", first.Transaction)
	}
	if first.Sale.Total != 50 || first.Sale.DepositCredit != 50 || first.Sale.AmountDue != 0 {
		t.Fatalf("unexpected sale totals: %+v", first.Sale)
	}
	if first.Sale.Subtotal != 44.84 || first.Sale.TaxAmount != 5.16 {
		t.Fatalf("unexpected sale tax split: subtotal=%v tax=%v", first.Sale.Subtotal, first.Sale.TaxAmount)
	}
	if first.Event.EventType != entities.EventTypePayment || first.Event.OrderID != "ord-1" {
		t.Fatalf("unexpected event: %+v", first.Event)
	}

	// Second deposit settles the tax-inclusive total.
	settled := res.Order
	var second interfaces.DepositWrite
	f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(settled, nil)
	f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(settled, &second))
	f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

	res2, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 61.5, PaymentMethod: "ath_movil"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res2.BalanceDue != 0 {
		t.Fatalf("expected balance 0, got %v", res2.BalanceDue)
	}
	if second.AmountPaid != 111.5 || second.ExpectedVersion != 2 {
		t.Fatalf("unexpected second write: %+v", second)
	}
	if res2.ReceiptNumber == res.ReceiptNumber {
		t.Fatalf("receipt numbers must differ")
	}
}

func TestLedgerUseCase_RecordDeposit_OverpaymentClampsBalance(t *testing.T) {
	f := newLedgerFixture(t)
	order := sampleOrder()

	var w interfaces.DepositWrite
	f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil)
	f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, &w))
	f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 200, PaymentMethod: "efectivo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BalanceDue != 0 || w.AmountPaid != 200 {
		t.Fatalf("expected clamped balance and full amount paid, got balance=%v paid=%v", res.BalanceDue, w.AmountPaid)
	}
	if w.Transaction.PaymentMethod != entities.PaymentMethodCash {
		t.Fatalf("expected alias to resolve to cash, got %s", w.Transaction.PaymentMethod)
	}
}

func TestLedgerUseCase_RecordDeposit_Email(t *testing.T) {
	t.Run("sends receipt and records it", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()
		order.CustomerEmail = "ana@example.com"

		var w interfaces.DepositWrite
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, &w))
		f.email.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg interfaces.EmailMessage) (string, error) {
			if msg.To != "ana@example.com" {
				t.Fatalf("unexpected recipient %s", msg.To)
			}
			if !strings.Contains(msg.Subject, w.Sale.SaleNumber) || !strings.Contains(msg.HTML, w.Sale.SaleNumber) {
				t.Fatalf("receipt number missing from email")
			}
			if !strings.Contains(msg.HTML, "$61.50") {
				t.Fatalf("balance missing from email")
			}
			return "msg-1", nil
		})
		f.ledger.EXPECT().CreateEmailLog(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l entities.EmailLog) error {
			if l.ProviderID != "msg-1" || l.OrderID != "ord-1" {
				t.Fatalf("unexpected email log: %+v", l)
			}
			return nil
		})
		f.ledger.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.WorkOrderEvent) error {
			if e.EventType != entities.EventTypeEmailSent {
				t.Fatalf("expected email_sent event, got %s", e.EventType)
			}
			return nil
		})
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.EmailSent {
			t.Fatalf("expected email sent")
		}
	})

	t.Run("provider failure keeps the deposit", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()
		order.CustomerEmail = "ana@example.com"

		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, nil))
		f.email.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("smtp down"))
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.EmailSent || res.BalanceDue != 61.5 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("audit failure keeps the deposit", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()

		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, nil))
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a entities.AuditLog) error {
			if a.Action != "deposit_work_order_WO-20240310-ABC123" {
				t.Fatalf("unexpected audit action %s", a.Action)
			}
			return errors.New("audit down")
		})

		if _, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestLedgerUseCase_RecordDeposit_VersionConflicts(t *testing.T) {
	t.Run("retries on a fresh copy", func(t *testing.T) {
		f := newLedgerFixture(t)
		stale := sampleOrder()
		fresh := stale
		fresh.AmountPaid = 20
		fresh.DepositAmount = 20
		fresh.BalanceDue = 91.5
		fresh.Version = 2

		var w interfaces.DepositWrite
		gomock.InOrder(
			f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(stale, nil),
			f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrVersionConflict),
			f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(fresh, nil),
			f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(fresh, &w)),
		)
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.ExpectedVersion != 2 || w.AmountPaid != 70 {
			t.Fatalf("expected write on top of fresh copy, got %+v", w)
		}
		if res.BalanceDue != 41.5 {
			t.Fatalf("expected balance 41.5, got %v", res.BalanceDue)
		}
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()

		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil).Times(maxWriteAttempts)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrVersionConflict).Times(maxWriteAttempts)

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"})
		if !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})

	t.Run("receipt number collision retries with a new number", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()

		var first, second interfaces.DepositWrite
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil).Times(1)
		gomock.InOrder(
			f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w interfaces.DepositWrite) (entities.Order, error) {
				first = w
				return entities.Order{}, interfaces.ErrDuplicate
			}),
			f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, &second)),
		)
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Sale.SaleNumber == second.Sale.SaleNumber {
			t.Fatalf("expected a fresh receipt number after a collision")
		}
		if res.ReceiptNumber != second.Sale.SaleNumber || second.ExpectedVersion != order.Version {
			t.Fatalf("unexpected retry write %+v", second)
		}
	})

	t.Run("receipt collisions exhaust the retries", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrDuplicate).Times(maxWriteAttempts)

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"})
		if !errors.Is(err, interfaces.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("store error is returned as is", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("tx failed"))

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "cash"})
		if err == nil || err.Error() != "tx failed" {
			t.Fatalf("expected tx failed, got %v", err)
		}
	})
}

func TestLedgerUseCase_RecordDeposit_Card(t *testing.T) {
	payload := json.RawMessage(`{"token":"tok","payment_method_id":"visa","installments":1,"payer":{"email":"ana@example.com"}}`)

	t.Run("approved charge is referenced by the transaction", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()

		var w interfaces.DepositWrite
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, body json.RawMessage) (string, string, json.RawMessage, error) {
			var got map[string]any
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("invalid gateway body: %v", err)
			}
			if got["transaction_amount"] != 50.0 || got["external_reference"] != "WO-20240310-ABC123" {
				t.Fatalf("unexpected gateway body: %v", got)
			}
			return "mp-99", "approved", json.RawMessage(`{"id":99}`), nil
		})
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, &w))
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "card", CardPayload: payload})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Transaction.Reference != "mp-99" {
			t.Fatalf("expected provider reference, got %s", w.Transaction.Reference)
		}
		if w.Sale.SaleNumber != res.ReceiptNumber {
			t.Fatalf("sale number must stay the receipt number")
		}
	})

	t.Run("declined charge writes nothing", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-1", "rejected", nil, nil)

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "card", CardPayload: payload})
		if !errors.Is(err, ErrPaymentDeclined) {
			t.Fatalf("expected ErrPaymentDeclined, got %v", err)
		}
	})

	t.Run("gateway error", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("timeout"))

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "card", CardPayload: payload})
		if !errors.Is(err, ErrPaymentGatewayFailed) {
			t.Fatalf("expected ErrPaymentGatewayFailed, got %v", err)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "card", CardPayload: json.RawMessage(`[1,2]`)})
		if !errors.Is(err, ErrInvalidCardPayload) {
			t.Fatalf("expected ErrInvalidCardPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewLedgerUseCase(orders, mock_interfaces.NewMockILedgerRepository(ctrl), nil, nil, LedgerSettings{}, nil)
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)

		_, err := uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "card", CardPayload: payload})
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("charge approved but version conflicts persist", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()

		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil).Times(maxWriteAttempts)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-42", "approved", nil, nil).Times(1)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrVersionConflict).Times(maxWriteAttempts)
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a entities.AuditLog) error {
			if a.Action != "unrecorded_card_charge_WO-20240310-ABC123" {
				t.Fatalf("unexpected audit action %s", a.Action)
			}
			if a.Changes["provider_payment_id"] != "mp-42" || a.Changes["amount"] != 50.0 {
				t.Fatalf("unexpected audit changes %v", a.Changes)
			}
			return nil
		})

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "card", CardPayload: payload})
		var unrecorded *UnrecordedChargeError
		if !errors.As(err, &unrecorded) {
			t.Fatalf("expected UnrecordedChargeError, got %v", err)
		}
		if unrecorded.ProviderPaymentID != "mp-42" {
			t.Fatalf("expected provider payment mp-42, got %s", unrecorded.ProviderPaymentID)
		}
		if !errors.Is(err, ErrChargeNotRecorded) || !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected both causes in the chain, got %v", err)
		}
	})

	t.Run("charge approved but store fails", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-43", "approved", nil, nil)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("tx failed"))
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(errors.New("audit down"))

		_, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "card", CardPayload: payload})
		if !errors.Is(err, ErrChargeNotRecorded) {
			t.Fatalf("expected ErrChargeNotRecorded, got %v", err)
		}
		if !strings.Contains(err.Error(), "mp-43") {
			t.Fatalf("error must name the provider payment, got %v", err)
		}
	})

	t.Run("card without payload is recorded manually", func(t *testing.T) {
		f := newLedgerFixture(t)
		order := sampleOrder()
		f.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(order, nil)
		f.ledger.EXPECT().ApplyDeposit(gomock.Any(), gomock.Any()).DoAndReturn(applyTo(order, nil))
		f.ledger.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := f.uc.RecordDeposit(context.Background(), "ord-1", DepositInput{Amount: 50, PaymentMethod: "tarjeta"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestLedgerUseCase_Lists(t *testing.T) {
	f := newLedgerFixture(t)

	if _, err := f.uc.ListEvents(context.Background(), ""); !errors.Is(err, ErrInvalidOrderID) {
		t.Fatalf("expected ErrInvalidOrderID, got %v", err)
	}
	if _, err := f.uc.ListTransactions(context.Background(), " "); !errors.Is(err, ErrInvalidOrderID) {
		t.Fatalf("expected ErrInvalidOrderID, got %v", err)
	}

	f.ledger.EXPECT().ListEventsByOrderID(gomock.Any(), "ord-1").Return([]entities.WorkOrderEvent{{ID: "ev-1"}}, nil)
	f.ledger.EXPECT().ListTransactionsByOrderID(gomock.Any(), "ord-1").Return([]entities.Transaction{{ID: "tx-1"}, {ID: "tx-2"}}, nil)

	events, err := f.uc.ListEvents(context.Background(), "ord-1")
	if err != nil || len(events) != 1 {
		t.Fatalf("unexpected events %v, err %v", events, err)
	}
	txs, err := f.uc.ListTransactions(context.Background(), "ord-1")
	if err != nil || len(txs) != 2 {
		t.Fatalf("unexpected transactions %v, err %v", txs, err)
	}
}
