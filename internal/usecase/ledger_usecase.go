package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount                = errors.New("invalid amount")
	ErrInvalidPaymentMethod         = errors.New("invalid payment method")
	ErrPaymentGatewayNotConfigured  = errors.New("payment gateway not configured")
	ErrPaymentGatewayFailed         = errors.New("payment gateway failed")
	ErrPaymentDeclined              = errors.New("payment declined")
	ErrInvalidCardPayload           = errors.New("invalid card payload")
	ErrLedgerRepositoryNotAvailable = errors.New("ledger repository not configured")
	ErrChargeNotRecorded            = errors.New("card charged but deposit not recorded")
)

// UnrecordedChargeError is returned when the card processor approved a charge
// but the deposit could not be written. The charge must be reconciled by hand
// using ProviderPaymentID; repeating the deposit would charge the card again.
type UnrecordedChargeError struct {
	ProviderPaymentID string
	Err               error
}

func (e *UnrecordedChargeError) Error() string {
	return fmt.Sprintf("%v (provider payment %s): %v", ErrChargeNotRecorded, e.ProviderPaymentID, e.Err)
}

func (e *UnrecordedChargeError) Unwrap() []error { return []error{ErrChargeNotRecorded, e.Err} }

// DepositInput is a deposit as entered at the counter. CardPayload, when set
// on a card deposit, is forwarded to the card processor before anything is
// recorded.
type DepositInput struct {
	Amount        float64
	PaymentMethod string
	Notes         string
	Actor         string
	CardPayload   json.RawMessage
}

// DepositResult is what the counter needs to display and print the receipt.
type DepositResult struct {
	Order         entities.Order
	BalanceDue    float64
	ReceiptNumber string
	TransactionID string
	SaleID        string
	EmailSent     bool
}

// ILedgerUseCase records money received against orders.
//
// RecordDeposit is not idempotent: submitting the same deposit twice counts it
// twice. Callers must guard against double submission.
type ILedgerUseCase interface {
	RecordDeposit(ctx context.Context, orderID string, in DepositInput) (DepositResult, error)
	ListEvents(ctx context.Context, orderID string) ([]entities.WorkOrderEvent, error)
	ListTransactions(ctx context.Context, orderID string) ([]entities.Transaction, error)
}

// LedgerSettings are the shop-level knobs of the ledger.
type LedgerSettings struct {
	TaxRate  float64
	ShopName string
}

type LedgerUseCase struct {
	orders   interfaces.IOrderRepository
	ledger   interfaces.ILedgerRepository
	email    interfaces.IEmailSender
	gateway  interfaces.IPaymentGateway
	taxRate  float64
	shopName string
	now      func() time.Time
	log      *zap.Logger
}

var _ ILedgerUseCase = (*LedgerUseCase)(nil)

func NewLedgerUseCase(
	orders interfaces.IOrderRepository,
	ledger interfaces.ILedgerRepository,
	email interfaces.IEmailSender,
	gateway interfaces.IPaymentGateway,
	settings LedgerSettings,
	log *zap.Logger,
) *LedgerUseCase {
	taxRate := settings.TaxRate
	if taxRate <= 0 {
		taxRate = entities.DefaultTaxRate
	}
	shop := strings.TrimSpace(settings.ShopName)
	if shop == "" {
		shop = "Taller de Reparaciones"
	}
	return &LedgerUseCase{
		orders:   orders,
		ledger:   ledger,
		email:    email,
		gateway:  gateway,
		taxRate:  taxRate,
		shopName: shop,
		now:      time.Now,
		log:      nopIfNil(log),
	}
}

func (u *LedgerUseCase) RecordDeposit(ctx context.Context, orderID string, in DepositInput) (DepositResult, error) {
	orderID = strings.TrimSpace(orderID)
	u.log.Info("[deposit][usecase] record start", zap.String("order_id", orderID), zap.Float64("amount", in.Amount), zap.String("payment_method", in.PaymentMethod))
	if orderID == "" {
		return DepositResult{}, ErrInvalidOrderID
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || !(in.Amount > 0) {
		return DepositResult{}, ErrInvalidAmount
	}
	amount := entities.RoundCents(in.Amount)
	if amount <= 0 {
		return DepositResult{}, ErrInvalidAmount
	}
	method, ok := entities.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return DepositResult{}, ErrInvalidPaymentMethod
	}
	if u.ledger == nil {
		return DepositResult{}, ErrLedgerRepositoryNotAvailable
	}
	actor := actorOrDefault(in.Actor)

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		u.log.Error("[deposit][usecase] failed loading order", zap.String("order_id", orderID), zap.Error(err))
		return DepositResult{}, err
	}
	if order.ID == "" {
		return DepositResult{}, ErrOrderNotFound
	}

	providerRef := ""
	if method == entities.PaymentMethodCard && len(in.CardPayload) > 0 {
		providerRef, err = u.chargeCard(ctx, order, amount, in.CardPayload)
		if err != nil {
			return DepositResult{}, err
		}
	}

	receipt := newReceiptNumber(order.OrderNumber)
	var (
		write   interfaces.DepositWrite
		applied entities.Order
		before  = order
	)
	for attempt := 1; ; attempt++ {
		write = u.buildDeposit(order, amount, method, receipt, providerRef, strings.TrimSpace(in.Notes), actor)
		applied, err = u.ledger.ApplyDeposit(ctx, write)
		if err == nil {
			break
		}
		conflict := errors.Is(err, interfaces.ErrVersionConflict)
		duplicate := errors.Is(err, interfaces.ErrDuplicate)
		if !conflict && !duplicate {
			u.log.Error("[deposit][usecase] apply failed", zap.String("order_id", orderID), zap.String("provider_ref", providerRef), zap.Error(err))
			return DepositResult{}, u.unrecordedCharge(ctx, order, amount, providerRef, actor, err)
		}
		if attempt == maxWriteAttempts {
			u.log.Error("[deposit][usecase] gave up after retries", zap.String("order_id", orderID), zap.String("provider_ref", providerRef), zap.Error(err))
			if conflict {
				err = ErrConcurrentUpdate
			}
			return DepositResult{}, u.unrecordedCharge(ctx, order, amount, providerRef, actor, err)
		}
		if duplicate {
			u.log.Warn("[deposit][usecase] receipt number taken, regenerating", zap.String("order_id", orderID), zap.String("receipt_number", receipt))
			receipt = newReceiptNumber(order.OrderNumber)
			continue
		}
		u.log.Warn("[deposit][usecase] version conflict, reloading", zap.String("order_id", orderID), zap.Int("attempt", attempt))
		var reloaded entities.Order
		reloaded, err = u.orders.GetByID(ctx, orderID)
		if err != nil {
			return DepositResult{}, u.unrecordedCharge(ctx, order, amount, providerRef, actor, err)
		}
		if reloaded.ID == "" {
			return DepositResult{}, u.unrecordedCharge(ctx, order, amount, providerRef, actor, ErrOrderNotFound)
		}
		order = reloaded
		before = order
	}
	if applied.ID == "" {
		return DepositResult{}, u.unrecordedCharge(ctx, order, amount, providerRef, actor, ErrOrderNotFound)
	}
	u.log.Info("[deposit][usecase] recorded",
		zap.String("order_id", applied.ID),
		zap.String("receipt_number", receipt),
		zap.Float64("amount_paid", applied.AmountPaid),
		zap.Float64("balance_due", applied.BalanceDue),
	)

	res := DepositResult{
		Order:         applied,
		BalanceDue:    applied.BalanceDue,
		ReceiptNumber: receipt,
		TransactionID: write.Transaction.ID,
		SaleID:        write.Sale.ID,
	}
	if strings.TrimSpace(applied.CustomerEmail) != "" {
		res.EmailSent = u.sendReceipt(ctx, applied, write.Sale, actor)
	}
	u.audit(ctx, before, applied, write, actor)
	return res, nil
}

func (u *LedgerUseCase) buildDeposit(o entities.Order, amount float64, method entities.PaymentMethod, receipt, providerRef, notes, actor string) interfaces.DepositWrite {
	now := u.now().UTC()
	paid := entities.RoundCents(o.AmountPaid + amount)
	deposits := entities.RoundCents(o.DepositAmount + amount)
	balance := entities.ComputeBalanceDue(o.CostEstimate, paid, u.taxRate)
	subtotal := entities.RoundCents(amount / (1 + u.taxRate))
	tax := entities.RoundCents(amount - subtotal)

	description := fmt.Sprintf("Depósito orden %s", o.OrderNumber)
	return interfaces.DepositWrite{
		OrderID:         o.ID,
		ExpectedVersion: o.Version,
		AmountPaid:      paid,
		DepositAmount:   deposits,
		BalanceDue:      balance,
		Transaction: entities.Transaction{
			ID:            uuid.NewString(),
			OrderID:       o.ID,
			OrderNumber:   o.OrderNumber,
			Type:          entities.TransactionTypeRevenue,
			Category:      entities.TransactionCategoryRepairPaid,
			Amount:        amount,
			PaymentMethod: method,
			Description:   description,
			Reference:     firstNonEmpty(providerRef, receipt),
			RecordedBy:    actor,
			CreatedAt:     now,
		},
		Sale: entities.Sale{
			ID:            uuid.NewString(),
			SaleNumber:    receipt,
			OrderID:       o.ID,
			OrderNumber:   o.OrderNumber,
			CustomerID:    o.CustomerID,
			CustomerName:  o.CustomerName,
			Subtotal:      subtotal,
			TaxRate:       u.taxRate,
			TaxAmount:     tax,
			Total:         amount,
			DepositCredit: amount,
			AmountDue:     0,
			PaymentMethod: method,
			Notes:         notes,
			CreatedBy:     actor,
			CreatedAt:     now,
		},
		Event: entities.WorkOrderEvent{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			EventType:   entities.EventTypePayment,
			Description: fmt.Sprintf("Depósito de $%.2f (%s)", amount, method.Label()),
			UserName:    actor,
			Metadata: map[string]any{
				"amount":         amount,
				"payment_method": string(method),
				"receipt_number": receipt,
				"balance_due":    balance,
				"amount_paid":    paid,
			},
			CreatedAt: now,
		},
	}
}

func (u *LedgerUseCase) chargeCard(ctx context.Context, o entities.Order, amount float64, payload json.RawMessage) (string, error) {
	if u.gateway == nil {
		return "", ErrPaymentGatewayNotConfigured
	}
	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil || req == nil {
		return "", ErrInvalidCardPayload
	}
	// The order is the source of truth for what is being paid.
	req["transaction_amount"] = amount
	req["external_reference"] = o.OrderNumber
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Orden %s", o.OrderNumber)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	id, providerStatus, _, err := u.gateway.CreatePayment(ctx, body)
	if err != nil {
		u.log.Error("[deposit][usecase] card charge failed", zap.String("order_id", o.ID), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}
	if providerStatus != "approved" {
		u.log.Warn("[deposit][usecase] card charge not approved", zap.String("order_id", o.ID), zap.String("provider_status", providerStatus))
		return "", ErrPaymentDeclined
	}
	u.log.Info("[deposit][usecase] card charge approved", zap.String("order_id", o.ID), zap.String("provider_payment_id", id))
	return id, nil
}

// sendReceipt emails the receipt and records it. Failures are logged and
// never undo the deposit.
func (u *LedgerUseCase) sendReceipt(ctx context.Context, o entities.Order, sale entities.Sale, actor string) bool {
	if u.email == nil {
		u.log.Warn("[deposit][usecase] email sender not configured; receipt not sent", zap.String("order_id", o.ID))
		return false
	}
	now := u.now().UTC()
	msg, err := RenderReceipt(u.shopName, o, sale, u.taxRate, now)
	if err != nil {
		u.log.Warn("[deposit][usecase] receipt render failed", zap.String("order_id", o.ID), zap.Error(err))
		return false
	}

	providerID, err := u.email.Send(ctx, interfaces.EmailMessage{To: o.CustomerEmail, Subject: msg.Subject, HTML: msg.HTML})
	if err != nil {
		u.log.Warn("[deposit][usecase] receipt email failed", zap.String("order_id", o.ID), zap.String("to", o.CustomerEmail), zap.Error(err))
		return false
	}

	logEntry := entities.EmailLog{
		ID:         uuid.NewString(),
		OrderID:    o.ID,
		To:         o.CustomerEmail,
		Subject:    msg.Subject,
		ProviderID: providerID,
		Status:     "sent",
		SentBy:     actor,
		CreatedAt:  now,
	}
	if err := u.ledger.CreateEmailLog(ctx, logEntry); err != nil {
		u.log.Warn("[deposit][usecase] email log write failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	ev := entities.WorkOrderEvent{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		EventType:   entities.EventTypeEmailSent,
		Description: fmt.Sprintf("Recibo %s enviado a %s", sale.SaleNumber, o.CustomerEmail),
		UserName:    actor,
		Metadata:    map[string]any{"receipt_number": sale.SaleNumber, "email_log_id": logEntry.ID},
		CreatedAt:   now,
	}
	if err := u.ledger.CreateEvent(ctx, ev); err != nil {
		u.log.Warn("[deposit][usecase] email event write failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	return true
}

func (u *LedgerUseCase) audit(ctx context.Context, before, after entities.Order, w interfaces.DepositWrite, actor string) {
	entry := entities.AuditLog{
		ID:         uuid.NewString(),
		Action:     "deposit_work_order_" + after.OrderNumber,
		EntityType: "order",
		EntityID:   after.ID,
		UserName:   actor,
		Changes: map[string]any{
			"before": map[string]any{
				"amount_paid":    before.AmountPaid,
				"deposit_amount": before.DepositAmount,
				"balance_due":    before.BalanceDue,
			},
			"after": map[string]any{
				"amount_paid":    after.AmountPaid,
				"deposit_amount": after.DepositAmount,
				"balance_due":    after.BalanceDue,
			},
			"amount":         w.Transaction.Amount,
			"payment_method": string(w.Transaction.PaymentMethod),
			"receipt_number": w.Sale.SaleNumber,
			"transaction_id": w.Transaction.ID,
			"sale_id":        w.Sale.ID,
		},
		CreatedAt: u.now().UTC(),
	}
	if err := u.ledger.CreateAuditLog(ctx, entry); err != nil {
		u.log.Warn("[deposit][usecase] audit log write failed", zap.String("order_id", after.ID), zap.Error(err))
	}
}

// unrecordedCharge leaves an audit trail for an approved card charge whose
// deposit was not written and wraps cause so callers do not retry it. Without
// a charge, cause is returned untouched.
func (u *LedgerUseCase) unrecordedCharge(ctx context.Context, o entities.Order, amount float64, providerRef, actor string, cause error) error {
	if providerRef == "" {
		return cause
	}
	u.log.Error("[deposit][usecase] card charged but deposit not recorded",
		zap.String("order_id", o.ID),
		zap.String("provider_payment_id", providerRef),
		zap.Float64("amount", amount),
		zap.Error(cause),
	)
	entry := entities.AuditLog{
		ID:         uuid.NewString(),
		Action:     "unrecorded_card_charge_" + o.OrderNumber,
		EntityType: "order",
		EntityID:   o.ID,
		UserName:   actor,
		Changes: map[string]any{
			"provider_payment_id": providerRef,
			"amount":              amount,
			"payment_method":      string(entities.PaymentMethodCard),
			"error":               cause.Error(),
		},
		CreatedAt: u.now().UTC(),
	}
	if err := u.ledger.CreateAuditLog(context.WithoutCancel(ctx), entry); err != nil {
		u.log.Error("[deposit][usecase] audit log for unrecorded charge failed", zap.String("order_id", o.ID), zap.String("provider_payment_id", providerRef), zap.Error(err))
	}
	return &UnrecordedChargeError{ProviderPaymentID: providerRef, Err: cause}
}

func (u *LedgerUseCase) ListEvents(ctx context.Context, orderID string) ([]entities.WorkOrderEvent, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	return u.ledger.ListEventsByOrderID(ctx, orderID)
}

func (u *LedgerUseCase) ListTransactions(ctx context.Context, orderID string) ([]entities.Transaction, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	return u.ledger.ListTransactionsByOrderID(ctx, orderID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
