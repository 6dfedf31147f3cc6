package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/infrastructure/database"
	"tallerpro/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, order_number, status, status_history, cost_estimate, amount_paid,
	deposit_amount, balance_due, customer_id, customer_name, customer_email, customer_phone,
	company_id, device_type, device_brand, device_model, device_serial, initial_problem,
	created_by, created_at, updated_at, version`

// OrderPostgresRepository persists work orders in PostgreSQL.
type OrderPostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderPostgresRepository)(nil)

func NewOrderPostgresRepository(pool *pgxpool.Pool) *OrderPostgresRepository {
	return &OrderPostgresRepository{pool: pool, now: time.Now}
}

func (r *OrderPostgresRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	if o.Version == 0 {
		o.Version = 1
	}
	history, err := json.Marshal(historyOrEmpty(o.StatusHistory))
	if err != nil {
		return entities.Order{}, err
	}

	err = database.WithRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO work_orders (`+orderColumns+`)
			 VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
			o.ID, o.OrderNumber, o.Status, history, o.CostEstimate, o.AmountPaid,
			o.DepositAmount, o.BalanceDue, o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
			o.CompanyID, o.DeviceType, o.DeviceBrand, o.DeviceModel, o.DeviceSerial, o.InitialProblem,
			o.CreatedBy, o.CreatedAt.UTC(), o.UpdatedAt.UTC(), o.Version,
		)
		return err
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return entities.Order{}, fmt.Errorf("%w: order %s", interfaces.ErrDuplicate, o.OrderNumber)
		}
		return entities.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

func (r *OrderPostgresRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM work_orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Order{}, nil
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderPostgresRepository) List(ctx context.Context, filter interfaces.OrderFilter) ([]entities.Order, error) {
	var (
		where []string
		args  []any
	)
	add := func(col, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, col+" = $"+strconv.Itoa(len(args)))
	}
	add("status", filter.Status)
	add("company_id", filter.CompanyID)
	add("customer_id", filter.CustomerID)

	query := `SELECT ` + orderColumns + ` FROM work_orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []entities.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return orders, nil
}

func (r *OrderPostgresRepository) AppendStatus(ctx context.Context, id string, entry entities.StatusHistoryEntry, expectedVersion int64) (entities.Order, error) {
	raw, err := json.Marshal([]entities.StatusHistoryEntry{entry})
	if err != nil {
		return entities.Order{}, err
	}
	return r.update(ctx, id, expectedVersion,
		`status = $3, status_history = status_history || $4::jsonb`,
		entry.Status, raw,
	)
}

func (r *OrderPostgresRepository) UpdateCostEstimate(ctx context.Context, id string, costEstimate, balanceDue float64, expectedVersion int64) (entities.Order, error) {
	return r.update(ctx, id, expectedVersion,
		`cost_estimate = $3, balance_due = $4`,
		costEstimate, balanceDue,
	)
}

// update runs "UPDATE ... SET <set>" guarded by the version. $1 is the id, $2
// the expected version and the extra args start at $3.
func (r *OrderPostgresRepository) update(ctx context.Context, id string, expectedVersion int64, set string, extra ...any) (entities.Order, error) {
	args := append([]any{id, expectedVersion}, extra...)
	args = append(args, r.now().UTC())
	query := `UPDATE work_orders SET ` + set + `, version = version + 1, updated_at = $` + strconv.Itoa(len(args)) +
		` WHERE id = $1 AND version = $2 RETURNING ` + orderColumns

	var o entities.Order
	err := database.WithRetry(ctx, func() error {
		var err error
		o, err = scanOrder(r.pool.QueryRow(ctx, query, args...))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Order{}, missingOrStale(ctx, r.pool, id)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// missingOrStale explains why a version-guarded UPDATE touched no rows: nil
// when the order does not exist, ErrVersionConflict otherwise.
func missingOrStale(ctx context.Context, q querier, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM work_orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	return versionConflictOr(exists)
}

func scanOrder(row pgx.Row) (entities.Order, error) {
	var (
		o       entities.Order
		history []byte
	)
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Status, &history, &o.CostEstimate, &o.AmountPaid,
		&o.DepositAmount, &o.BalanceDue, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.CompanyID, &o.DeviceType, &o.DeviceBrand, &o.DeviceModel, &o.DeviceSerial, &o.InitialProblem,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.Version,
	)
	if err != nil {
		return entities.Order{}, err
	}
	if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
		return entities.Order{}, fmt.Errorf("decode status history: %w", err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}

func historyOrEmpty(h []entities.StatusHistoryEntry) []entities.StatusHistoryEntry {
	if h == nil {
		return []entities.StatusHistoryEntry{}
	}
	return h
}
