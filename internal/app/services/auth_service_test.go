package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvir/noteshare/internal/app/models"
	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
	"github.com/tanvir/noteshare/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	stored := *user
	stored.ID = id
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenStore) CreateRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeTokenStore) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok || rt.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenNotFound
	}
	return rt, nil
}

func (f *fakeTokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeTokenIssuer struct {
	counter int
}

func (f *fakeTokenIssuer) GenerateTokenPair(user *models.User) (string, string, int, int, error) {
	f.counter++
	return fmt.Sprintf("access-%d", f.counter), fmt.Sprintf("refresh-%d", f.counter), 3600, 2592000, nil
}

func (f *fakeTokenIssuer) GetRefreshTokenExpiry() time.Time {
	return time.Now().Add(720 * time.Hour)
}

func newAuthFixture() (AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	return NewAuthService(users, tokens, &fakeTokenIssuer{}), users, tokens
}

func TestRegisterIssuesTokensAndNeverStaff(t *testing.T) {
	svc, users, tokens := newAuthFixture()

	response, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "john@example.edu",
		Password:  "s3cret-pass",
		FirstName: "John",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	assert.False(t, response.User.IsStaff)
	assert.Equal(t, "Bearer", response.Token.TokenType)
	assert.NotEmpty(t, response.Token.AccessToken)
	assert.Contains(t, tokens.tokens, response.Token.RefreshToken)

	// Password is stored hashed
	stored := users.users[response.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, auth.CheckPassword(stored.PasswordHash, "s3cret-pass"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := &dto.RegisterRequest{Email: "dup@example.edu", Password: "password1", FirstName: "A", LastName: "B"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginChecksCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "jane@example.edu", Password: "correct-horse", FirstName: "Jane", LastName: "Roe",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.edu", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	response, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.edu", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.edu", response.User.Email)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, tokens := newAuthFixture()

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "rot@example.edu", Password: "password1", FirstName: "R", LastName: "T",
	})
	require.NoError(t, err)

	oldToken := registered.Token.RefreshToken
	refreshed, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: oldToken})
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, refreshed.RefreshToken)
	assert.NotContains(t, tokens.tokens, oldToken)

	// The consumed token cannot be replayed
	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: oldToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
