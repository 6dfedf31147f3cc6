package interfaces

import (
	"context"
	"tallerpro/internal/domain/entities"
)

// DepositWrite is the financial part of a deposit. It is committed as one
// unit: the order's money fields, the Transaction, the Sale and the payment
// WorkOrderEvent either all land or none do.
type DepositWrite struct {
	OrderID         string
	ExpectedVersion int64
	AmountPaid      float64
	DepositAmount   float64
	BalanceDue      float64
	Transaction     entities.Transaction
	Sale            entities.Sale
	Event           entities.WorkOrderEvent
}

// ILedgerRepository persists the payment ledger and the order timeline.

type ILedgerRepository interface {
	ApplyDeposit(ctx context.Context, d DepositWrite) (entities.Order, error)
	CreateEvent(ctx context.Context, e entities.WorkOrderEvent) error
	CreateEmailLog(ctx context.Context, l entities.EmailLog) error
	CreateAuditLog(ctx context.Context, a entities.AuditLog) error
	ListEventsByOrderID(ctx context.Context, orderID string) ([]entities.WorkOrderEvent, error)
	ListTransactionsByOrderID(ctx context.Context, orderID string) ([]entities.Transaction, error)
}
