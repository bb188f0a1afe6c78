package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// UserService handles staff account management within a shop
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.Named("user"),
	}
}

// CreateStaff creates a staff account in the given shop
func (s *UserService) CreateStaff(ctx context.Context, tenantID uuid.UUID, req CreateStaffRequest) (*UserResponse, error) {
	user, err := identity.NewUser(tenantID, req.Username, req.Password, identity.RoleStaff)
	if err != nil {
		return nil, err
	}
	user.DisplayName = req.DisplayName

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("staff account created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("username", user.Username),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves the shop's staff accounts
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID) ([]UserResponse, error) {
	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses, nil
}

// Disable blocks a staff account from logging in. The account must belong
// to the caller's shop.
func (s *UserService) Disable(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	user.Disable()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Enable restores a disabled staff account
func (s *UserService) Enable(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.findForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	user.Enable()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) findForTenant(ctx context.Context, tenantID, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return user, nil
}
