package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/audit"
	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/auth"
	"github.com/laundrypos/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: time.Hour,
		Issuer:     "laundrypos-test",
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testJWTService(), zap.NewNop())
	tenantID := uuid.New()

	user, err := identity.NewUser(tenantID, "jkamau", "correct-horse-battery", identity.RoleStaff)
	require.NoError(t, err)

	repo.On("FindByUsername", mock.Anything, "jkamau").Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{Username: "jkamau", Password: "correct-horse-battery"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token.AccessToken)
	assert.Equal(t, "Bearer", result.Token.TokenType)
	assert.Equal(t, "jkamau", result.User.Username)
	require.NotNil(t, user.LastLoginAt)

	claims, err := testJWTService().Validate(result.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, "staff", claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testJWTService(), zap.NewNop())

	user, err := identity.NewUser(uuid.New(), "jkamau", "correct-horse-battery", identity.RoleStaff)
	require.NoError(t, err)
	repo.On("FindByUsername", mock.Anything, "jkamau").Return(user, nil)

	_, err = svc.Login(context.Background(), LoginInput{Username: "jkamau", Password: "wrong-password-here"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testJWTService(), zap.NewNop())

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever-password"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	// Unknown user and bad password are indistinguishable.
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testJWTService(), zap.NewNop())

	user, err := identity.NewUser(uuid.New(), "jkamau", "correct-horse-battery", identity.RoleStaff)
	require.NoError(t, err)
	user.Disable()
	repo.On("FindByUsername", mock.Anything, "jkamau").Return(user, nil)

	_, err = svc.Login(context.Background(), LoginInput{Username: "jkamau", Password: "correct-horse-battery"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DISABLED", domainErr.Code)
}

func TestAuthService_Login_AdminHasNoTenantClaim(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testJWTService(), zap.NewNop())

	admin, err := identity.NewUser(uuid.Nil, "platform", "admin-password-123", identity.RoleAdmin)
	require.NoError(t, err)
	repo.On("FindByUsername", mock.Anything, "platform").Return(admin, nil)
	repo.On("Update", mock.Anything, admin).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{Username: "platform", Password: "admin-password-123"})

	require.NoError(t, err)
	claims, err := testJWTService().Validate(result.Token.AccessToken)
	require.NoError(t, err)
	assert.Empty(t, claims.TenantID)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testJWTService(), zap.NewNop())

	user, err := identity.NewUser(uuid.New(), "jkamau", "old-password-123", identity.RoleStaff)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	err = svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "old-password-123",
		NewPassword: "new-password-456",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("new-password-456"))
	assert.False(t, user.VerifyPassword("old-password-123"))
}

func TestTenantService_RegisterShop_NoopDeps(t *testing.T) {
	tenantRepo := new(MockTenantRepository)
	userRepo := new(MockUserRepository)
	auditor := new(noopRecorder)
	svc := NewTenantService(tenantRepo, userRepo, auditor, noopInvalidator{}, 0, zap.NewNop())

	tenantRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.RegisterShop(context.Background(), RegisterShopRequest{
		Code:          "washly",
		Name:          "Washly Cleaners",
		OwnerUsername: "owner",
		OwnerPassword: "owner-password-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "WASHLY", resp.Tenant.Code)
	assert.Equal(t, "ACTIVE", resp.Tenant.Status)
	assert.Equal(t, "owner", resp.Owner.Role)
	require.NotNil(t, resp.Owner.TenantID)
	assert.Equal(t, resp.Tenant.ID, *resp.Owner.TenantID)
}

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, entry *audit.Entry) {}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(ctx context.Context, tenantID uuid.UUID) {}
