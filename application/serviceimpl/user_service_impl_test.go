package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskstream/domain/apperrors"
	"taskstream/domain/dto"
	"taskstream/pkg/config"
	"taskstream/pkg/utils"
)

const testJWTSecret = "test-secret-0123456789"

func newUserServiceForTest() (*fakeUserRepo, *recordingSessions, *UserServiceImpl) {
	repo := newFakeUserRepo()
	sessions := &recordingSessions{}
	svc := NewUserService(
		repo,
		nil, // no rate limiting in tests
		nil, // no token revocation store in tests
		sessions,
		config.JWTConfig{Secret: testJWTSecret, TTL: time.Hour},
		config.AuthConfig{MinPasswordLength: 6, LoginMaxAttempts: 10, LoginWindow: 15 * time.Minute},
	).(*UserServiceImpl)
	return repo, sessions, svc
}

func TestRegister(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	token, user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))

	claims, err := utils.ValidateToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestRegisterInvalidEmail(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)
}

func TestRegisterWeakPassword(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakCredential)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "different",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountExists)
}

func TestLogin(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	_, registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := utils.ValidateToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongCredential)
}

func TestLoginUnknownAccount(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestLogoutEndsSession(t *testing.T) {
	_, sessions, svc := newUserServiceForTest()

	token, user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID, token))

	require.Len(t, sessions.ended, 1)
	assert.Equal(t, user.ID, sessions.ended[0])
}

func TestLogoutGarbageToken(t *testing.T) {
	_, sessions, svc := newUserServiceForTest()

	_, user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	err = svc.Logout(context.Background(), user.ID, "not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrIdentityProvider)
	assert.Empty(t, sessions.ended)
}

func TestGetProfile(t *testing.T) {
	_, _, svc := newUserServiceForTest()

	_, user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
}
