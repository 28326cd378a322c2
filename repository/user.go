package repository

import (
	"context"

	"github.com/fastygo/users/domain"
)

// UserFilter selects a page of users ordered by ascending id.
type UserFilter struct {
	Offset int
	Limit  int
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// UpdatePassword replaces the password only when oldPassword matches the stored one.
	UpdatePassword(ctx context.Context, id int64, oldPassword, newPassword string) error
}
