package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/infrastructure/database"
	"tallerpro/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerPostgresRepository persists the ledger rows in PostgreSQL.
type LedgerPostgresRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.ILedgerRepository = (*LedgerPostgresRepository)(nil)

func NewLedgerPostgresRepository(pool *pgxpool.Pool) *LedgerPostgresRepository {
	return &LedgerPostgresRepository{pool: pool}
}

func (r *LedgerPostgresRepository) ApplyDeposit(ctx context.Context, d interfaces.DepositWrite) (entities.Order, error) {
	metadata, err := jsonOrNil(d.Event.Metadata)
	if err != nil {
		return entities.Order{}, err
	}

	var applied entities.Order
	err = database.WithRetry(ctx, func() error {
		var err error
		applied, err = r.applyDeposit(ctx, d, metadata)
		return err
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return entities.Order{}, fmt.Errorf("%w: %v", interfaces.ErrDuplicate, err)
		}
		return entities.Order{}, err
	}
	return applied, nil
}

func (r *LedgerPostgresRepository) applyDeposit(ctx context.Context, d interfaces.DepositWrite, metadata []byte) (entities.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return entities.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	o, err := scanOrder(tx.QueryRow(ctx,
		`UPDATE work_orders
		 SET amount_paid = $3, deposit_amount = $4, balance_due = $5, version = version + 1, updated_at = $6
		 WHERE id = $1 AND version = $2
		 RETURNING `+orderColumns,
		d.OrderID, d.ExpectedVersion, d.AmountPaid, d.DepositAmount, d.BalanceDue, d.Transaction.CreatedAt.UTC(),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Order{}, missingOrStale(ctx, tx, d.OrderID)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("update order: %w", err)
	}

	t := d.Transaction
	if _, err := tx.Exec(ctx,
		`INSERT INTO transactions (id, order_id, order_number, type, category, amount, payment_method, description, reference, recorded_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.OrderID, t.OrderNumber, t.Type, t.Category, t.Amount, string(t.PaymentMethod), t.Description, t.Reference, t.RecordedBy, t.CreatedAt.UTC(),
	); err != nil {
		return entities.Order{}, fmt.Errorf("insert transaction: %w", err)
	}

	s := d.Sale
	if _, err := tx.Exec(ctx,
		`INSERT INTO sales (id, sale_number, order_id, order_number, customer_id, customer_name, subtotal, tax_rate, tax_amount,
		                    total, deposit_credit, amount_due, payment_method, notes, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.SaleNumber, s.OrderID, s.OrderNumber, s.CustomerID, s.CustomerName, s.Subtotal, s.TaxRate, s.TaxAmount,
		s.Total, s.DepositCredit, s.AmountDue, string(s.PaymentMethod), s.Notes, s.CreatedBy, s.CreatedAt.UTC(),
	); err != nil {
		return entities.Order{}, fmt.Errorf("insert sale: %w", err)
	}

	if err := insertEvent(ctx, tx, d.Event, metadata); err != nil {
		return entities.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return entities.Order{}, fmt.Errorf("commit tx: %w", err)
	}
	return o, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertEvent(ctx context.Context, db execer, e entities.WorkOrderEvent, metadata []byte) error {
	_, err := db.Exec(ctx,
		`INSERT INTO work_order_events (id, order_id, order_number, event_type, description, user_name, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)`,
		e.ID, e.OrderID, e.OrderNumber, string(e.EventType), e.Description, e.UserName, metadata, e.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *LedgerPostgresRepository) CreateEvent(ctx context.Context, e entities.WorkOrderEvent) error {
	metadata, err := jsonOrNil(e.Metadata)
	if err != nil {
		return err
	}
	return insertEvent(ctx, r.pool, e, metadata)
}

func (r *LedgerPostgresRepository) CreateEmailLog(ctx context.Context, l entities.EmailLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO email_logs (id, order_id, recipient, subject, provider_id, status, sent_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.OrderID, l.To, l.Subject, l.ProviderID, l.Status, l.SentBy, l.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

func (r *LedgerPostgresRepository) CreateAuditLog(ctx context.Context, a entities.AuditLog) error {
	changes, err := jsonOrNil(a.Changes)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, action, entity_type, entity_id, user_name, changes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`,
		a.ID, a.Action, a.EntityType, a.EntityID, a.UserName, changes, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *LedgerPostgresRepository) ListEventsByOrderID(ctx context.Context, orderID string) ([]entities.WorkOrderEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, order_number, event_type, description, user_name, metadata, created_at
		 FROM work_order_events
		 WHERE order_id = $1
		 ORDER BY created_at`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	events := []entities.WorkOrderEvent{}
	for rows.Next() {
		var (
			e         entities.WorkOrderEvent
			eventType string
			metadata  []byte
		)
		if err := rows.Scan(&e.ID, &e.OrderID, &e.OrderNumber, &eventType, &e.Description, &e.UserName, &metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.EventType = entities.WorkOrderEventType(eventType)
		e.CreatedAt = e.CreatedAt.UTC()
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("decode event metadata: %w", err)
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return events, nil
}

func (r *LedgerPostgresRepository) ListTransactionsByOrderID(ctx context.Context, orderID string) ([]entities.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, order_number, type, category, amount, payment_method, description, reference, recorded_by, created_at
		 FROM transactions
		 WHERE order_id = $1
		 ORDER BY created_at`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	txs := []entities.Transaction{}
	for rows.Next() {
		var (
			t      entities.Transaction
			method string
		)
		if err := rows.Scan(&t.ID, &t.OrderID, &t.OrderNumber, &t.Type, &t.Category, &t.Amount, &method, &t.Description, &t.Reference, &t.RecordedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.PaymentMethod = entities.PaymentMethod(method)
		t.CreatedAt = t.CreatedAt.UTC()
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return txs, nil
}

func jsonOrNil(v map[string]any) ([]byte, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}
