package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"triviagame/models"
	"triviagame/repositories"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.Username]; ok {
		return repositories.ErrUsernameConflict
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	user, ok := r.users[username]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, not the password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo, discardLogger())

		user, err := svc.Register(ctx, "alice", "correct horse battery")
		require.NoError(t, err)

		assert.Equal(t, 1, user.ID)
		stored := repo.users["alice"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse battery")))
	})

	t.Run("requires a username", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), discardLogger())

		_, err := svc.Register(ctx, "", "correct horse battery")
		require.ErrorIs(t, err, ErrUsernameRequired)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), discardLogger())

		_, err := svc.Register(ctx, "alice", "short")
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo, discardLogger())

		_, err := svc.Register(ctx, "alice", "correct horse battery")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "another password")
		require.ErrorIs(t, err, ErrUsernameConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, discardLogger())

	_, err := svc.Register(ctx, "alice", "correct horse battery")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "alice", "correct horse battery")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Empty(t, user.PasswordHash, "hash must not leave the service")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob", "correct horse battery")
		require.ErrorIs(t, err, ErrInvalidCredentials, "unknown users are indistinguishable from bad passwords")
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, discardLogger())

	_, err := svc.Register(ctx, "alice", "correct horse battery")
	require.NoError(t, err)

	t.Run("rejects short replacement", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "alice", "correct horse battery", "short")
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "alice", "wrong password", "brand new password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "bob", "whatever", "brand new password")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("old password stops working after change", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, "alice", "correct horse battery", "brand new password"))

		_, err := svc.Login(ctx, "alice", "correct horse battery")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "alice", "brand new password")
		require.NoError(t, err)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, discardLogger())

	_, err := svc.Register(ctx, "alice", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice"))

	err = svc.Delete(ctx, "alice")
	require.ErrorIs(t, err, ErrUserNotFound)
}
