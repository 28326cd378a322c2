package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/pkg/logger"
	"github.com/fastygo/users/repository"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// ListPolicy bounds list pages. Limit falls back to Default when not given
// and is clamped to Max.
type ListPolicy struct {
	Default int
	Max     int
}

func (p ListPolicy) normalize() ListPolicy {
	if p.Default <= 0 {
		p.Default = DefaultListLimit
	}
	if p.Max <= 0 {
		p.Max = MaxListLimit
	}
	if p.Max < p.Default {
		p.Max = p.Default
	}
	return p
}

// Filter resolves raw skip/limit into a repository filter. Nil means "not given".
func (p ListPolicy) Filter(skip, limit *int) (repository.UserFilter, error) {
	p = p.normalize()
	filter := repository.UserFilter{Limit: p.Default}
	if skip != nil {
		if *skip < 0 {
			return filter, domain.ErrInvalidPagination
		}
		filter.Offset = *skip
	}
	if limit != nil {
		if *limit < 0 {
			return filter, domain.ErrInvalidPagination
		}
		filter.Limit = min(*limit, p.Max)
	}
	return filter, nil
}

type UseCase struct {
	users  repository.UserRepository
	policy ListPolicy
	logger *zap.Logger
}

func New(users repository.UserRepository, policy ListPolicy, log *zap.Logger) *UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		policy: policy.normalize(),
		logger: log,
	}
}

// NewUser is the input of CreateUser. IsActive nil means active.
type NewUser struct {
	Username string
	Password string
	Email    *string
	IsActive *bool
}

func (uc *UseCase) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	created, err := uc.users.Create(ctx, &domain.User{
		Username: in.Username,
		Password: in.Password,
		Email:    in.Email,
		IsActive: active,
	})
	if err != nil {
		return nil, uc.fail(ctx, "create user", err)
	}

	logger.WithRequestID(ctx, uc.logger).Debug("user created", zap.Int64("user_id", created.ID))
	return created, nil
}

func (uc *UseCase) ListUsers(ctx context.Context, skip, limit *int) ([]domain.User, error) {
	filter, err := uc.policy.Filter(skip, limit)
	if err != nil {
		return nil, err
	}
	if filter.Limit == 0 {
		return []domain.User{}, nil
	}

	users, err := uc.users.List(ctx, filter)
	if err != nil {
		return nil, uc.fail(ctx, "list users", err)
	}
	return users, nil
}

func (uc *UseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, uc.fail(ctx, "get user", err)
	}
	return u, nil
}

func (uc *UseCase) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	u, err := uc.users.Update(ctx, id, patch)
	if err != nil {
		return nil, uc.fail(ctx, "update user", err)
	}
	return u, nil
}

func (uc *UseCase) DeleteUser(ctx context.Context, id int64) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		return uc.fail(ctx, "delete user", err)
	}
	logger.WithRequestID(ctx, uc.logger).Debug("user deleted", zap.Int64("user_id", id))
	return nil
}

// fail logs storage faults; domain errors are expected outcomes and pass through silently.
func (uc *UseCase) fail(ctx context.Context, op string, err error) error {
	if domain.CodeOf(err) == domain.ErrCodeInternal {
		logger.WithRequestID(ctx, uc.logger).Error(op+" failed", zap.Error(err))
	}
	return err
}
