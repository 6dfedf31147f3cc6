package entities

import (
	"strings"
	"time"
)

// PaymentMethod is how money was received against an order.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodATHMovil     PaymentMethod = "ath_movil"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// ParsePaymentMethod resolves a payment method string. "transfer" is the
// legacy name of ATH Móvil.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash", "efectivo":
		return PaymentMethodCash, true
	case "card", "tarjeta":
		return PaymentMethodCard, true
	case "ath_movil", "ath-movil", "athmovil", "transfer":
		return PaymentMethodATHMovil, true
	case "check", "cheque":
		return PaymentMethodCheck, true
	case "bank_transfer", "bank-transfer", "transferencia":
		return PaymentMethodBankTransfer, true
	}
	return "", false
}

// Label returns the Spanish display name used on receipts.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Efectivo"
	case PaymentMethodCard:
		return "Tarjeta"
	case PaymentMethodATHMovil:
		return "ATH Móvil"
	case PaymentMethodCheck:
		return "Cheque"
	case PaymentMethodBankTransfer:
		return "Transferencia bancaria"
	}
	return string(m)
}

const (
	TransactionTypeRevenue        = "revenue"
	TransactionCategoryRepairPaid = "repair_payment"
)

// Transaction is the accounting row produced by a deposit.
type Transaction struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"order_id"`
	OrderNumber   string        `json:"order_number"`
	Type          string        `json:"type"`
	Category      string        `json:"category"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Description   string        `json:"description"`
	Reference     string        `json:"reference,omitempty"`
	RecordedBy    string        `json:"recorded_by"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Sale is the POS record of a deposit. SaleNumber doubles as the receipt number.
type Sale struct {
	ID            string        `json:"id"`
	SaleNumber    string        `json:"sale_number"`
	OrderID       string        `json:"order_id"`
	OrderNumber   string        `json:"order_number"`
	CustomerID    string        `json:"customer_id,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	Subtotal      float64       `json:"subtotal"`
	TaxRate       float64       `json:"tax_rate"`
	TaxAmount     float64       `json:"tax_amount"`
	Total         float64       `json:"total"`
	DepositCredit float64       `json:"deposit_credit"`
	AmountDue     float64       `json:"amount_due"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes,omitempty"`
	CreatedBy     string        `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
}

// WorkOrderEventType classifies timeline entries of an order.
type WorkOrderEventType string

const (
	EventTypeStatusChange    WorkOrderEventType = "status_change"
	EventTypePayment         WorkOrderEventType = "payment"
	EventTypeEmailSent       WorkOrderEventType = "email_sent"
	EventTypeEstimateUpdated WorkOrderEventType = "estimate_updated"
	EventTypeCreated         WorkOrderEventType = "created"
)

// WorkOrderEvent is one timeline entry of an order.
type WorkOrderEvent struct {
	ID          string             `json:"id"`
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	EventType   WorkOrderEventType `json:"event_type"`
	Description string             `json:"description"`
	UserName    string             `json:"user_name"`
	Metadata    map[string]any     `json:"metadata,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// EmailLog records an email that the provider accepted.
type EmailLog struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	ProviderID string    `json:"provider_id,omitempty"`
	Status     string    `json:"status"`
	SentBy     string    `json:"sent_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditLog captures a privileged change and its full change set.
type AuditLog struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	UserName   string         `json:"user_name"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
