package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/infrastructure/database"
	"tallerpro/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, full_name, email, role, COALESCE(employee_code, ''), pin_hash, pin_index, active, permissions, hourly_rate, created_at, updated_at`

// UserPostgresRepository persists staff users in PostgreSQL.
type UserPostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ interfaces.IUserRepository = (*UserPostgresRepository)(nil)

func NewUserPostgresRepository(pool *pgxpool.Pool) *UserPostgresRepository {
	return &UserPostgresRepository{pool: pool, now: time.Now}
}

func (r *UserPostgresRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	perms, err := json.Marshal(permissionsOrEmpty(u.Permissions))
	if err != nil {
		return entities.User{}, err
	}
	var code *string
	if u.EmployeeCode != "" {
		code = &u.EmployeeCode
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO users (id, full_name, email, role, employee_code, pin_hash, pin_index, active, permissions, hourly_rate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11, $12)`,
		u.ID, u.FullName, u.Email, string(u.Role), code, u.PINHash, u.PINIndex, u.Active, perms, u.HourlyRate, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return entities.User{}, fmt.Errorf("%w: %s", interfaces.ErrDuplicate, u.Email)
		}
		return entities.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserPostgresRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.User{}, nil
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserPostgresRepository) List(ctx context.Context) ([]entities.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name`)
}

func (r *UserPostgresRepository) ListActive(ctx context.Context) ([]entities.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users WHERE active ORDER BY full_name`)
}

func (r *UserPostgresRepository) query(ctx context.Context, sql string) ([]entities.User, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []entities.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}

func (r *UserPostgresRepository) SetActive(ctx context.Context, id string, active bool) (entities.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET active = $2, updated_at = $3 WHERE id = $1 RETURNING `+userColumns,
		id, active, r.now().UTC(),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.User{}, nil
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("set user active: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (entities.User, error) {
	var (
		u     entities.User
		role  string
		perms []byte
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &role, &u.EmployeeCode, &u.PINHash, &u.PINIndex, &u.Active, &perms, &u.HourlyRate, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return entities.User{}, err
	}
	u.Role = entities.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &u.Permissions); err != nil {
			return entities.User{}, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return u, nil
}

func permissionsOrEmpty(p map[string]bool) map[string]bool {
	if p == nil {
		return map[string]bool{}
	}
	return p
}
