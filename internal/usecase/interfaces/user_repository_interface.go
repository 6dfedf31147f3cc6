package interfaces

import (
	"context"
	"tallerpro/internal/domain/entities"
)

// IUserRepository abstracts persistence for staff users.
//
// Create returns ErrDuplicate when the email or employee code is taken.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	ListActive(ctx context.Context) ([]entities.User, error)
	SetActive(ctx context.Context, id string, active bool) (entities.User, error)
}
