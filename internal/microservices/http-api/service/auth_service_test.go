package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"webtoonhub/internal/config"
	"webtoonhub/internal/logging"
	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-test-secret-test-secret"

func newTestAuthService(repo *MockUserRepository) *authService {
	cfg := &config.Config{JWTSecret: testSecret, AccessTokenTTL: 15 * time.Minute}
	return NewAuthService(repo, cfg, logging.Discard()).(*authService)
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByUsername", "testuser").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "testuser",
		Email:    "Test@Example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, auth.VerifyPassword(user.Password, "password123"))
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByUsername", "taken").Return(&models.User{ID: "u-1"}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "taken", Email: "a@b.co", Password: "password123"})
	assert.ErrorIs(t, err, ErrNameInUse)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)

	mockUserRepo.On("FindByUsername", "fresh").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "a@b.co").Return(&models.User{ID: "u-1"}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "fresh", Email: "a@b.co", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegister_LookupFailureIsNotConflict(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)

	boom := errors.New("connection reset")
	mockUserRepo.On("FindByUsername", "fresh").Return(nil, boom)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "fresh", Email: "a@b.co", Password: "password123"})
	assert.ErrorIs(t, err, boom)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	mockUserRepo.On("FindByUsername", "reader").Return(&models.User{ID: "u-1", Username: "reader", Password: hash}, nil)
	mockUserRepo.On("TouchLastLogin", "u-1").Return(nil)

	token, err := svc.Login(context.Background(), "reader", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(900), token.ExpiresIn)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
}

func TestLogin_WrongPasswordAndUnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	mockUserRepo.On("FindByUsername", "reader").Return(&models.User{ID: "u-1", Password: hash}, nil)
	mockUserRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err = svc.Login(context.Background(), "reader", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Expired(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)

	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.generateAccessToken(&models.User{ID: "u-1", Username: "reader"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	other := newTestAuthService(new(MockUserRepository))
	other.jwtSecret = []byte("another-secret-another-secret-xx")
	token, err := other.generateAccessToken(&models.User{ID: "u-1"})
	require.NoError(t, err)

	svc := newTestAuthService(new(MockUserRepository))
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMe_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newTestAuthService(mockUserRepo)
	mockUserRepo.On("FindByID", "gone").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Me(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
