package interfaces

import (
	"context"
	"tallerpro/internal/domain/entities"
)

// OrderFilter narrows List results. Empty fields match everything.
type OrderFilter struct {
	Status     string
	CompanyID  string
	CustomerID string
	Limit      int
}

// IOrderRepository abstracts persistence for work orders.
//
// Lookups return a zero Order (empty ID) and no error when the order does not
// exist. Writes that take expectedVersion return ErrVersionConflict when the
// stored version moved on.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]entities.Order, error)
	AppendStatus(ctx context.Context, id string, entry entities.StatusHistoryEntry, expectedVersion int64) (entities.Order, error)
	UpdateCostEstimate(ctx context.Context, id string, costEstimate, balanceDue float64, expectedVersion int64) (entities.Order, error)
}
