package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/internal/infrastructure/sqlite/sqlitetest"
	"github.com/fastygo/users/repository"
)

func setupRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	return NewUserRepository(sqlitetest.NewConnector(t))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func mustCreate(t *testing.T, r repository.UserRepository, username string) *domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), &domain.User{Username: username, Password: "pw-" + username, IsActive: true})
	require.NoError(t, err)
	return u
}

func TestCreate_AssignsIDAndReturnsRecord(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	u, err := r.Create(ctx, &domain.User{Username: "ana", Password: "s3cret", Email: strPtr("ana@example.com"), IsActive: true})
	require.NoError(t, err)

	assert.Positive(t, u.ID)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, "s3cret", u.Password)
	require.NotNil(t, u.Email)
	assert.Equal(t, "ana@example.com", *u.Email)
	assert.True(t, u.IsActive)
}

func TestCreate_NilEmailStoredAsNull(t *testing.T) {
	r := setupRepo(t)

	u, err := r.Create(context.Background(), &domain.User{Username: "bob", Password: "pw", IsActive: false})
	require.NoError(t, err)
	assert.Nil(t, u.Email)
	assert.False(t, u.IsActive)
}

func TestCreate_DuplicateUsernameIsConflict(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	first := mustCreate(t, r, "ana")

	_, err := r.Create(ctx, &domain.User{Username: "ana", Password: "other", IsActive: false})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	got, err := r.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestGetByID_NotFound(t *testing.T) {
	r := setupRepo(t)

	_, err := r.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByUsername(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	created := mustCreate(t, r, "ana")

	got, err := r.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = r.GetByUsername(ctx, "ANA")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList_OrderedByIDWithOffsetAndLimit(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		ids = append(ids, mustCreate(t, r, name).ID)
	}

	page, err := r.List(ctx, repository.UserFilter{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)

	all, err := r.List(ctx, repository.UserFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	empty, err := r.List(ctx, repository.UserFilter{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUpdate_PartialKeepsOmittedFields(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	created := mustCreate(t, r, "ana")

	updated, err := r.Update(ctx, created.ID, domain.UserPatch{Email: strPtr("new@x.com")})
	require.NoError(t, err)

	assert.Equal(t, "ana", updated.Username)
	assert.True(t, updated.IsActive)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "new@x.com", *updated.Email)
	assert.Equal(t, created.Password, updated.Password)

	updated, err = r.Update(ctx, created.ID, domain.UserPatch{Username: strPtr("ana2"), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "ana2", updated.Username)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "new@x.com", *updated.Email)
}

func TestUpdate_EmptyPatchReturnsCurrentRecord(t *testing.T) {
	r := setupRepo(t)
	created := mustCreate(t, r, "ana")

	got, err := r.Update(context.Background(), created.ID, domain.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUpdate_NotFound(t *testing.T) {
	r := setupRepo(t)

	_, err := r.Update(context.Background(), 99, domain.UserPatch{Username: strPtr("x")})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_UsernameCollisionIsConflict(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	mustCreate(t, r, "ana")
	bob := mustCreate(t, r, "bob")

	_, err := r.Update(ctx, bob.ID, domain.UserPatch{Username: strPtr("ana")})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	// renaming to its own username is not a collision
	got, err := r.Update(ctx, bob.ID, domain.UserPatch{Username: strPtr("bob")})
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}

func TestDelete_RemovesRowAndIDIsNotReused(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	mustCreate(t, r, "ana")
	bob := mustCreate(t, r, "bob")

	require.NoError(t, r.Delete(ctx, bob.ID))
	_, err := r.GetByID(ctx, bob.ID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	require.ErrorIs(t, r.Delete(ctx, bob.ID), domain.ErrUserNotFound)

	carl := mustCreate(t, r, "carl")
	assert.Greater(t, carl.ID, bob.ID)
}

func TestUpdatePassword(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	ana := mustCreate(t, r, "ana")

	err := r.UpdatePassword(ctx, ana.ID, "wrong", "next")
	require.ErrorIs(t, err, domain.ErrPasswordMismatch)

	got, err := r.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "pw-ana", got.Password)

	require.NoError(t, r.UpdatePassword(ctx, ana.ID, "pw-ana", "next"))
	got, err = r.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "next", got.Password)

	require.ErrorIs(t, r.UpdatePassword(ctx, 404, "a", "b"), domain.ErrUserNotFound)
}
