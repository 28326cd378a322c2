package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/repository"
)

const userColumns = `id, username, password, email, is_active`

type userRepository struct {
	opener Opener
}

// NewUserRepository instantiates a SQLite-backed user repository.
// Every call opens its own handle through opener and closes it before returning.
func NewUserRepository(opener Opener) repository.UserRepository {
	return &userRepository{opener: opener}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		user   domain.User
		email  sql.NullString
		active bool
	)
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &email, &active); err != nil {
		return nil, err
	}
	user.Email = stringPtr(email)
	user.IsActive = active
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}

	db, err := r.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	const query = `
		INSERT INTO users (username, password, email, is_active)
		VALUES (?, ?, ?, ?)
		RETURNING ` + userColumns

	created, err := scanUser(db.QueryRowContext(ctx, query,
		user.Username,
		user.Password,
		nullString(user.Email),
		boolToInt(user.IsActive),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user[%s]: %w", user.Username, err)
	}
	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db, err := r.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	const query = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user[%d]: %w", id, err)
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db, err := r.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	const query = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	user, err := scanUser(db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user[%s]: %w", username, err)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	db, err := r.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`

	rows, err := db.QueryContext(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, nil
}

// Update applies the patch in one statement; the WHERE clause is the existence check.
func (r *userRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	db, err := r.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	const query = `
		UPDATE users
		SET username = COALESCE(?, username),
			email = COALESCE(?, email),
			is_active = COALESCE(?, is_active)
		WHERE id = ?
		RETURNING ` + userColumns

	user, err := scanUser(db.QueryRowContext(ctx, query,
		nullString(patch.Username),
		nullString(patch.Email),
		nullBool(patch.IsActive),
		id,
	))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.ErrUserNotFound
		case isUniqueViolation(err):
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user[%d]: %w", id, err)
	}
	return user, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.opener.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user[%d]: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user[%d]: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword writes only when the stored password equals oldPassword.
// When nothing was written, a follow-up existence check tells a missing user from a mismatch.
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	db, err := r.opener.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx,
		`UPDATE users SET password = ? WHERE id = ? AND password = ?`,
		newPassword, id, oldPassword,
	)
	if err != nil {
		return fmt.Errorf("failed to update password for user[%d]: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password for user[%d]: %w", id, err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user[%d]: %w", id, err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return domain.ErrPasswordMismatch
}
