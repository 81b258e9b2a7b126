package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/fjod/go_foodcart/internal/repository"
	"github.com/fjod/go_foodcart/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, logger.Discard()).WithCost(bcrypt.MinCost)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	sut := newUserService(repo)

	user, err := sut.Register(context.Background(), "Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
	assert.NotEmpty(t, user.ID)

	stored := repo.users["asha@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestRegister_MissingFields(t *testing.T) {
	sut := newUserService(newMockUserRepo())

	tests := []struct{ name, email, password string }{
		{"", "a@b.c", "pw"},
		{"A", " ", "pw"},
		{"A", "a@b.c", ""},
	}
	for _, tt := range tests {
		_, err := sut.Register(context.Background(), tt.name, tt.email, tt.password)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	sut := newUserService(newMockUserRepo())

	_, err := sut.Register(context.Background(), "A", "a@b.c", "pw")
	require.NoError(t, err)
	_, err = sut.Register(context.Background(), "B", "a@b.c", "pw2")

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestLogin_Success(t *testing.T) {
	sut := newUserService(newMockUserRepo())
	registered, err := sut.Register(context.Background(), "Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	user, err := sut.Login(context.Background(), "asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, *registered, *user)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	sut := newUserService(newMockUserRepo())
	_, err := sut.Register(context.Background(), "Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	_, err = sut.Login(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = sut.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	sut := newUserService(newMockUserRepo())

	_, err := sut.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestLogin_RepoError(t *testing.T) {
	repo := newMockUserRepo()
	repo.err = fmt.Errorf("database error")
	sut := newUserService(repo)

	_, err := sut.Login(context.Background(), "a@b.c", "pw")
	require.ErrorContains(t, err, "database error")
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
