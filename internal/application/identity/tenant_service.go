package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/audit"
	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// GateInvalidator drops a cached subscription verdict after the tenant's
// standing changes.
type GateInvalidator interface {
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// TenantService handles shop registration and subscription standing changes
type TenantService struct {
	tenantRepo   identity.TenantRepository
	userRepo     identity.UserRepository
	auditor      audit.Recorder
	gateCache    GateInvalidator
	defaultGrace time.Duration
	logger       *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	auditor audit.Recorder,
	gateCache GateInvalidator,
	defaultGrace time.Duration,
	logger *zap.Logger,
) *TenantService {
	if defaultGrace <= 0 {
		defaultGrace = 72 * time.Hour
	}
	return &TenantService{
		tenantRepo:   tenantRepo,
		userRepo:     userRepo,
		auditor:      auditor,
		gateCache:    gateCache,
		defaultGrace: defaultGrace,
		logger:       logger.Named("tenant"),
	}
}

// RegisterShop creates a shop and its owner account
func (s *TenantService) RegisterShop(ctx context.Context, req RegisterShopRequest) (*RegisterShopResponse, error) {
	tenant, err := identity.NewTenant(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	tenant.ContactPhone = req.ContactPhone
	tenant.ContactEmail = req.ContactEmail

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	owner, err := identity.NewUser(tenant.ID, req.OwnerUsername, req.OwnerPassword, identity.RoleOwner)
	if err != nil {
		return nil, err
	}
	owner.DisplayName = req.OwnerName

	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.logger.Info("shop registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code),
	)

	return &RegisterShopResponse{
		Tenant: ToTenantResponse(tenant),
		Owner:  ToUserResponse(owner),
	}, nil
}

// GetByID retrieves a shop
func (s *TenantService) GetByID(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// List retrieves shops with filtering and pagination
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) ([]TenantResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	f := shared.DefaultFilter()
	f.Page = filter.Page
	f.PageSize = filter.PageSize
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	tenants, err := s.tenantRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tenantRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, ToTenantResponse(&tenants[i]))
	}
	return responses, total, nil
}

// Suspend blocks all mutating operations for the shop
func (s *TenantService) Suspend(ctx context.Context, actorID, tenantID uuid.UUID, req SuspendTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tenant.Suspend(req.Reason)
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.gateCache.Invalidate(ctx, tenantID)
	s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionTenantSuspended, "tenant", tenantID, audit.OutcomeSuccess, req.Reason))

	s.logger.Info("shop suspended",
		zap.String("tenant_id", tenantID.String()),
		zap.String("reason", req.Reason),
	)

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// StartGrace moves the shop into a grace window; mutations are rejected
// until the shop is reinstated or the window lapses into suspension.
func (s *TenantService) StartGrace(ctx context.Context, actorID, tenantID uuid.UUID, req StartGraceRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	until := time.Now().Add(s.defaultGrace)
	if req.Until != nil {
		until = *req.Until
	}
	if err := tenant.EnterGrace(until); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.gateCache.Invalidate(ctx, tenantID)
	s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionTenantGrace, "tenant", tenantID, audit.OutcomeSuccess, until.Format(time.RFC3339)))

	s.logger.Info("shop entered grace",
		zap.String("tenant_id", tenantID.String()),
		zap.Time("until", until),
	)

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// Reinstate restores a suspended or grace-period shop to active standing
func (s *TenantService) Reinstate(ctx context.Context, actorID, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tenant.Reinstate()
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.gateCache.Invalidate(ctx, tenantID)
	s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionTenantRestored, "tenant", tenantID, audit.OutcomeSuccess, ""))

	s.logger.Info("shop reinstated", zap.String("tenant_id", tenantID.String()))

	resp := ToTenantResponse(tenant)
	return &resp, nil
}
