package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/profiremanager/pfm-api/internal/models"
	appErrors "github.com/profiremanager/pfm-api/pkg/errors"
)

type mockAuthRepo struct {
	employees map[string]*models.Employee
	byEmail   map[string]*models.Employee
	rotated   map[string]string
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	if e, ok := m.byEmail[email]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.rotated == nil {
		m.rotated = make(map[string]string)
	}
	m.rotated[id] = passwordHash
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *mockAuthRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("firehall123"), bcrypt.MinCost)
	require.NoError(t, err)
	emp := &models.Employee{
		ID:             "emp-1",
		FirstName:      "Jean",
		LastName:       "Dupuis",
		Email:          "jean.dupuis@firehall.example",
		PasswordHash:   string(hash),
		Role:           models.RoleAdmin,
		Rank:           models.RankCaptain,
		EmploymentType: models.EmploymentFullTime,
		Active:         true,
	}
	repo := &mockAuthRepo{
		employees: map[string]*models.Employee{emp.ID: emp},
		byEmail:   map[string]*models.Employee{emp.Email: emp},
	}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "pfm-api",
	})
	return svc, repo
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jean.dupuis@firehall.example",
		Password: "firehall123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "emp-1", resp.User.ID)
	assert.Equal(t, "Jean Dupuis", resp.User.FullName)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jean.dupuis@firehall.example",
		Password: "nope",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@firehall.example",
		Password: "firehall123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo := newAuthFixture(t)
	repo.byEmail["jean.dupuis@firehall.example"].Active = false

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jean.dupuis@firehall.example",
		Password: "firehall123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestChangePassword(t *testing.T) {
	svc, repo := newAuthFixture(t)

	err := svc.ChangePassword(context.Background(), "emp-1", models.ChangePasswordRequest{
		OldPassword: "firehall123",
		NewPassword: "newfirehall456",
	})
	require.NoError(t, err)
	require.Contains(t, repo.rotated, "emp-1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.rotated["emp-1"]), []byte("newfirehall456")))
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.ChangePassword(context.Background(), "emp-1", models.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newfirehall456",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
