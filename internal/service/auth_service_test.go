package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/course-planner-api/internal/dto"
	"github.com/campushub/course-planner-api/internal/models"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
)

type mockAuthRepo struct {
	user             *models.User
	findByEmailErr   error
	lastLoginUpdated bool
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.user, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		Email:        "advisor@example.edu",
		PasswordHash: string(hash),
		FullName:     "Ada Advisor",
		Role:         models.RoleAdvisor,
		Active:       true,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := &mockAuthRepo{user: testUser(t, "correct-horse")}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "test"})

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "advisor@example.edu", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "u1", resp.User.ID)
	assert.True(t, repo.lastLoginUpdated)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdvisor, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &mockAuthRepo{user: testUser(t, "correct-horse")}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "advisor@example.edu", Password: "wrong-horse"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &mockAuthRepo{findByEmailErr: sql.ErrNoRows}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.edu", Password: "whatever1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	user := testUser(t, "correct-horse")
	user.Active = false
	repo := &mockAuthRepo{user: user}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "correct-horse"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	repo := &mockAuthRepo{user: testUser(t, "correct-horse")}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour})

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "advisor@example.edu", Password: "correct-horse"})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{Secret: "different-secret"})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}
