package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"property-price-service/internal/core/domain"
	"property-price-service/internal/testutil"
)

const testSecret = "unit-test-secret"

func TestAuthService_Register(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	svc := NewAuthService(repo, testSecret, time.Hour)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, 3600, result.ExpiresIn)
	assert.NotEqual(t, "password123", result.User.PasswordHash)
	repo.AssertExpectations(t)

	token, err := jwt.Parse(result.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, result.User.ID.String(), claims["sub"])
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(new(testutil.MockUserRepo), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "", "password123")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)

	_, err = svc.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc := NewAuthService(new(testutil.MockUserRepo), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "alice", "short")
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	svc := NewAuthService(repo, testSecret, time.Hour)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), "alice", "password123")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	svc := NewAuthService(repo, testSecret, time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: string(hash)}
	repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	result, err := svc.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEmpty(t, result.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	svc := NewAuthService(repo, testSecret, time.Hour)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &domain.User{ID: uuid.New(), Username: "alice", PasswordHash: string(hash)}
	repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	_, err := svc.Login(context.Background(), "alice", "nope-nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := new(testutil.MockUserRepo)
	svc := NewAuthService(repo, testSecret, time.Hour)

	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.Login(context.Background(), "ghost", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
