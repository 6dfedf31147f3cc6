package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/domain/status"
	"tallerpro/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderID      = errors.New("invalid order id")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidOrderInput   = errors.New("invalid order input")
	ErrInvalidCostEstimate = errors.New("invalid cost estimate")
	ErrConcurrentUpdate    = errors.New("order was modified concurrently")
)

// CreateOrderInput is what the intake wizard collects.
type CreateOrderInput struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CompanyID     string

	DeviceType     string
	DeviceBrand    string
	DeviceModel    string
	DeviceSerial   string
	InitialProblem string

	CostEstimate float64
	Status       string
	Actor        string
}

// IOrderUseCase exposes the order lifecycle:
//   - intake => CreateOrder()
//   - status changes (mark ready, picked up, ...) => Transition()
//   - re-pricing after diagnosis => UpdateCostEstimate()

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error)
	Transition(ctx context.Context, orderID, rawStatus, actor string) (entities.Order, error)
	UpdateCostEstimate(ctx context.Context, orderID string, costEstimate float64, actor string) (entities.Order, error)
}

// OrderSettings are the shop-level knobs of the order lifecycle.
type OrderSettings struct {
	TaxRate       float64
	DefaultStatus string
}

type OrderUseCase struct {
	repo          interfaces.IOrderRepository
	ledger        interfaces.ILedgerRepository
	statuses      *status.Registry
	taxRate       float64
	defaultStatus status.ID
	now           func() time.Time
	log           *zap.Logger
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, ledger interfaces.ILedgerRepository, settings OrderSettings, log *zap.Logger) *OrderUseCase {
	statuses := status.Default()
	taxRate := settings.TaxRate
	if taxRate <= 0 {
		taxRate = entities.DefaultTaxRate
	}
	return &OrderUseCase{
		repo:          repo,
		ledger:        ledger,
		statuses:      statuses,
		taxRate:       taxRate,
		defaultStatus: statuses.Normalize(settings.DefaultStatus),
		now:           time.Now,
		log:           nopIfNil(log),
	}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.InitialProblem = strings.TrimSpace(in.InitialProblem)
	if in.CustomerName == "" || in.InitialProblem == "" {
		return entities.Order{}, ErrInvalidOrderInput
	}
	if strings.TrimSpace(in.DeviceType+in.DeviceBrand+in.DeviceModel) == "" {
		return entities.Order{}, ErrInvalidOrderInput
	}
	if in.CostEstimate < 0 || math.IsNaN(in.CostEstimate) || math.IsInf(in.CostEstimate, 0) {
		return entities.Order{}, ErrInvalidCostEstimate
	}

	initial := u.defaultStatus
	if strings.TrimSpace(in.Status) != "" {
		d, ok := u.statuses.Lookup(in.Status)
		if !ok {
			return entities.Order{}, ErrInvalidStatus
		}
		initial = d.ID
	}

	now := u.now().UTC()
	cost := entities.RoundCents(in.CostEstimate)
	o := entities.Order{
		ID:             uuid.NewString(),
		OrderNumber:    newOrderNumber(now),
		Status:         string(initial),
		StatusHistory:  []entities.StatusHistoryEntry{},
		CostEstimate:   cost,
		BalanceDue:     entities.ComputeBalanceDue(cost, 0, u.taxRate),
		CustomerID:     strings.TrimSpace(in.CustomerID),
		CustomerName:   in.CustomerName,
		CustomerEmail:  strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
		CompanyID:      strings.TrimSpace(in.CompanyID),
		DeviceType:     strings.TrimSpace(in.DeviceType),
		DeviceBrand:    strings.TrimSpace(in.DeviceBrand),
		DeviceModel:    strings.TrimSpace(in.DeviceModel),
		DeviceSerial:   strings.TrimSpace(in.DeviceSerial),
		InitialProblem: in.InitialProblem,
		CreatedBy:      actorOrDefault(in.Actor),
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		u.log.Error("[order][usecase] create failed", zap.String("order_number", o.OrderNumber), zap.Error(err))
		return entities.Order{}, err
	}
	u.log.Info("[order][usecase] created", zap.String("order_id", created.ID), zap.String("order_number", created.OrderNumber), zap.String("status", created.Status))

	u.emitEvent(ctx, created, entities.EventTypeCreated, fmt.Sprintf("Orden %s creada", created.OrderNumber), created.CreatedBy, map[string]any{
		"status": created.Status,
	})
	return created, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error) {
	if s := strings.TrimSpace(filter.Status); s != "" {
		d, ok := u.statuses.Lookup(s)
		if !ok {
			return nil, ErrInvalidStatus
		}
		filter.Status = string(d.ID)
	}
	return u.repo.List(ctx, filter)
}

// Transition moves the order to rawStatus and appends a history entry. Any
// status may follow any other; the linear flow is a presentation concern.
func (u *OrderUseCase) Transition(ctx context.Context, orderID, rawStatus, actor string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	target, ok := u.statuses.Lookup(rawStatus)
	if !ok {
		u.log.Info("[order][usecase] transition rejected", zap.String("order_id", orderID), zap.String("raw_status", rawStatus))
		return entities.Order{}, ErrInvalidStatus
	}
	actor = actorOrDefault(actor)

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		current, err := u.GetByID(ctx, orderID)
		if err != nil {
			return entities.Order{}, err
		}

		entry := entities.StatusHistoryEntry{
			Status:    string(target.ID),
			Timestamp: u.now().UTC(),
			ChangedBy: actor,
		}
		updated, err := u.repo.AppendStatus(ctx, orderID, entry, current.Version)
		if errors.Is(err, interfaces.ErrVersionConflict) {
			u.log.Warn("[order][usecase] transition version conflict", zap.String("order_id", orderID), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			u.log.Error("[order][usecase] transition failed", zap.String("order_id", orderID), zap.Error(err))
			return entities.Order{}, err
		}
		if updated.ID == "" {
			return entities.Order{}, ErrOrderNotFound
		}

		u.log.Info("[order][usecase] transition success",
			zap.String("order_id", orderID),
			zap.String("from", current.Status),
			zap.String("to", updated.Status),
			zap.String("actor", actor),
		)
		from := u.statuses.Config(current.Status)
		u.emitEvent(ctx, updated, entities.EventTypeStatusChange,
			fmt.Sprintf("Estado cambiado de %s a %s", from.Label, target.Label), actor,
			map[string]any{"from": current.Status, "to": string(target.ID)},
		)
		return updated, nil
	}
	return entities.Order{}, ErrConcurrentUpdate
}

// UpdateCostEstimate re-prices the order. BalanceDue is recomputed from the
// amount already paid.
func (u *OrderUseCase) UpdateCostEstimate(ctx context.Context, orderID string, costEstimate float64, actor string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	if costEstimate < 0 || math.IsNaN(costEstimate) || math.IsInf(costEstimate, 0) {
		return entities.Order{}, ErrInvalidCostEstimate
	}
	cost := entities.RoundCents(costEstimate)
	actor = actorOrDefault(actor)

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		current, err := u.GetByID(ctx, orderID)
		if err != nil {
			return entities.Order{}, err
		}

		balance := entities.ComputeBalanceDue(cost, current.AmountPaid, u.taxRate)
		updated, err := u.repo.UpdateCostEstimate(ctx, orderID, cost, balance, current.Version)
		if errors.Is(err, interfaces.ErrVersionConflict) {
			u.log.Warn("[order][usecase] estimate version conflict", zap.String("order_id", orderID), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return entities.Order{}, err
		}
		if updated.ID == "" {
			return entities.Order{}, ErrOrderNotFound
		}

		u.emitEvent(ctx, updated, entities.EventTypeEstimateUpdated,
			fmt.Sprintf("Estimado actualizado a $%.2f", cost), actor,
			map[string]any{"previous": current.CostEstimate, "cost_estimate": cost, "balance_due": balance},
		)
		return updated, nil
	}
	return entities.Order{}, ErrConcurrentUpdate
}

// emitEvent writes a timeline entry. The order change it describes is
// already committed, so a failure here is only logged.
func (u *OrderUseCase) emitEvent(ctx context.Context, o entities.Order, typ entities.WorkOrderEventType, description, actor string, metadata map[string]any) {
	if u.ledger == nil {
		return
	}
	ev := entities.WorkOrderEvent{
		ID:          uuid.NewString(),
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		EventType:   typ,
		Description: description,
		UserName:    actor,
		Metadata:    metadata,
		CreatedAt:   u.now().UTC(),
	}
	if err := u.ledger.CreateEvent(ctx, ev); err != nil {
		u.log.Warn("[order][usecase] event write failed",
			zap.String("order_id", o.ID),
			zap.String("event_type", string(typ)),
			zap.Error(err),
		)
	}
}
