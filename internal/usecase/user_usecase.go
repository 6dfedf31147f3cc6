package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidUserInput  = errors.New("invalid user input")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrInvalidRole       = errors.New("invalid role")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrPINInUse          = errors.New("pin already assigned to an active user")
)

// CreateUserInput is the staff form. Permissions override the role defaults
// key by key.
type CreateUserInput struct {
	FullName     string
	Email        string
	Role         string
	EmployeeCode string
	PIN          string
	Permissions  map[string]bool
	HourlyRate   float64
}

type IUserUseCase interface {
	CreateUser(ctx context.Context, in CreateUserInput) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	SetActive(ctx context.Context, id string, active bool) (entities.User, error)
}

type UserUseCase struct {
	repo    interfaces.IUserRepository
	pins    PINIndexer
	pinCost int
	now     func() time.Time
	log     *zap.Logger
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(repo interfaces.IUserRepository, pins PINIndexer, log *zap.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, pins: pins, pinCost: bcrypt.DefaultCost, now: time.Now, log: nopIfNil(log)}
}

func (u *UserUseCase) CreateUser(ctx context.Context, in CreateUserInput) (entities.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.PIN = strings.TrimSpace(in.PIN)
	if in.FullName == "" || in.Email == "" || in.HourlyRate < 0 {
		return entities.User{}, ErrInvalidUserInput
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return entities.User{}, ErrInvalidUserInput
	}
	role, ok := entities.ParseRole(strings.ToLower(strings.TrimSpace(in.Role)))
	if !ok {
		return entities.User{}, ErrInvalidRole
	}
	if in.PIN == "" {
		return entities.User{}, ErrPINRequired
	}
	if !isValidPIN(in.PIN) {
		return entities.User{}, ErrInvalidPINFormat
	}

	if err := u.ensurePINFree(ctx, in.PIN); err != nil {
		return entities.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.PIN), u.pinCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("hash pin: %w", err)
	}

	perms := entities.DefaultPermissions(role)
	for k, v := range in.Permissions {
		perms[k] = v
	}

	now := u.now().UTC()
	usr := entities.User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		Role:         role,
		EmployeeCode: strings.TrimSpace(in.EmployeeCode),
		PINHash:      string(hash),
		PINIndex:     u.pins.Index(in.PIN),
		Active:       true,
		Permissions:  perms,
		HourlyRate:   entities.RoundCents(in.HourlyRate),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := u.repo.Create(ctx, usr)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return entities.User{}, ErrUserAlreadyExists
		}
		u.log.Error("[user][usecase] create failed", zap.String("email", usr.Email), zap.Error(err))
		return entities.User{}, err
	}
	u.log.Info("[user][usecase] created", zap.String("user_id", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

// ensurePINFree rejects a PIN that already opens another active account;
// login takes the first match, so a shared PIN would be ambiguous.
func (u *UserUseCase) ensurePINFree(ctx context.Context, pin string) error {
	active, err := u.repo.ListActive(ctx)
	if err != nil {
		return err
	}
	idx := u.pins.Index(pin)
	for _, usr := range active {
		if usr.PINHash == "" || !u.pins.Candidate(usr.PINIndex, idx) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(usr.PINHash), []byte(pin)) == nil {
			return ErrPINInUse
		}
	}
	return nil
}

func (u *UserUseCase) GetByID(ctx context.Context, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidUserID
	}
	usr, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if usr.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return usr, nil
}

func (u *UserUseCase) List(ctx context.Context) ([]entities.User, error) {
	return u.repo.List(ctx)
}

func (u *UserUseCase) SetActive(ctx context.Context, id string, active bool) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrInvalidUserID
	}
	updated, err := u.repo.SetActive(ctx, id, active)
	if err != nil {
		return entities.User{}, err
	}
	if updated.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	u.log.Info("[user][usecase] active flag changed", zap.String("user_id", id), zap.Bool("active", active))
	return updated, nil
}
