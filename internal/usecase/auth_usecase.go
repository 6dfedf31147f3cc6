package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPINRequired        = errors.New("pin required")
	ErrInvalidPINFormat   = errors.New("pin must be 4 digits")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("invalid session")
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 12 * time.Hour

// IAuthUseCase is the PIN access gate.
//
// Login never says whether the PIN was wrong or the user inactive.
// ValidateSession re-checks the user on every call, so deactivating a user
// revokes the sessions already issued to them.
type IAuthUseCase interface {
	Login(ctx context.Context, pin string) (entities.Session, error)
	ValidateSession(ctx context.Context, token string) (entities.Session, error)
}

type AuthUseCase struct {
	users  interfaces.IUserRepository
	issuer interfaces.ISessionIssuer
	pins   PINIndexer
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(users interfaces.IUserRepository, issuer interfaces.ISessionIssuer, pins PINIndexer, ttl time.Duration, log *zap.Logger) *AuthUseCase {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthUseCase{users: users, issuer: issuer, pins: pins, ttl: ttl, now: time.Now, log: nopIfNil(log)}
}

func (u *AuthUseCase) Login(ctx context.Context, pin string) (entities.Session, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return entities.Session{}, ErrPINRequired
	}
	if !isValidPIN(pin) {
		return entities.Session{}, ErrInvalidPINFormat
	}

	users, err := u.users.ListActive(ctx)
	if err != nil {
		u.log.Error("[auth][usecase] listing active users failed", zap.Error(err))
		return entities.Session{}, err
	}

	idx := u.pins.Index(pin)
	var match *entities.User
	compared := false
	for i := range users {
		usr := &users[i]
		if !usr.Active || usr.PINHash == "" || !u.pins.Candidate(usr.PINIndex, idx) {
			continue
		}
		compared = true
		if bcrypt.CompareHashAndPassword([]byte(usr.PINHash), []byte(pin)) == nil {
			match = usr
			break
		}
	}
	if match == nil {
		if !compared {
			burnPINCompare(pin)
		}
		u.log.Info("[auth][usecase] failed pin login")
		return entities.Session{}, ErrInvalidCredentials
	}

	now := u.now().UTC()
	s := entities.Session{
		ID:        uuid.NewString(),
		UserID:    match.ID,
		Name:      match.FullName,
		Email:     match.Email,
		Role:      match.Role,
		LoginTime: now,
		ExpiresAt: now.Add(u.ttl),
	}
	token, err := u.issuer.Issue(s)
	if err != nil {
		return entities.Session{}, fmt.Errorf("issue session: %w", err)
	}
	s.Token = token

	u.log.Info("[auth][usecase] pin login", zap.String("user_id", match.ID), zap.String("role", string(match.Role)), zap.String("session_id", s.ID))
	return s, nil
}

func (u *AuthUseCase) ValidateSession(ctx context.Context, token string) (entities.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Session{}, ErrSessionInvalid
	}
	s, err := u.issuer.Parse(token)
	if err != nil {
		return entities.Session{}, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	if s.Expired(u.now()) {
		return entities.Session{}, ErrSessionInvalid
	}

	usr, err := u.users.GetByID(ctx, s.UserID)
	if err != nil {
		return entities.Session{}, err
	}
	if usr.ID == "" || !usr.Active {
		u.log.Info("[auth][usecase] session for missing or inactive user", zap.String("user_id", s.UserID))
		return entities.Session{}, ErrSessionInvalid
	}

	s.Name = usr.FullName
	s.Email = usr.Email
	s.Role = usr.Role
	s.Token = token
	return s, nil
}
