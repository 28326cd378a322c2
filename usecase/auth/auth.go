package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/pkg/logger"
	"github.com/fastygo/users/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, log *zap.Logger) *UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: log,
	}
}

// Login checks plaintext credentials. Wrong credentials are an outcome, not an
// error; the error return is reserved for storage faults.
func (uc *UseCase) Login(ctx context.Context, username, password string) (domain.LoginOutcome, error) {
	log := logger.WithRequestID(ctx, uc.logger)

	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		log.Error("login lookup failed", zap.Error(err))
		return "", err
	}

	outcome := domain.Evaluate(u, password)
	log.Debug("login attempt", zap.String("username", username), zap.String("outcome", string(outcome)))
	return outcome, nil
}

// ChangePassword stores newPassword when oldPassword matches the stored value.
func (uc *UseCase) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	if err := uc.users.UpdatePassword(ctx, id, oldPassword, newPassword); err != nil {
		if domain.CodeOf(err) == domain.ErrCodeInternal {
			logger.WithRequestID(ctx, uc.logger).Error("change password failed", zap.Int64("user_id", id), zap.Error(err))
		}
		return err
	}
	logger.WithRequestID(ctx, uc.logger).Info("password changed", zap.Int64("user_id", id))
	return nil
}
