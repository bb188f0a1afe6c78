package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/audit"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Save persists an audit entry
func (r *GormAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(models.AuditEntryModelFromDomain(entry)).Error
}

// FindAllForTenant lists audit entries for a tenant, newest first
func (r *GormAuditRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}

// CountForTenant counts audit entries for a tenant matching the filter
func (r *GormAuditRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterConditions(
		r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuditRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query.Order("created_at DESC")
}

func (r *GormAuditRepository) applyFilterConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "entity_id":
			query = query.Where("entity_id = ?", value)
		case "outcome":
			query = query.Where("outcome = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}
	return query
}

// Ensure GormAuditRepository implements audit.Repository
var _ audit.Repository = (*GormAuditRepository)(nil)

// LoggedAuditRecorder writes audit entries through the repository and logs
// failures instead of returning them, so primary operations never abort on
// a broken audit path.
type LoggedAuditRecorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewLoggedAuditRecorder creates a recorder backed by the given repository
func NewLoggedAuditRecorder(repo audit.Repository, logger *zap.Logger) *LoggedAuditRecorder {
	return &LoggedAuditRecorder{repo: repo, logger: logger.Named("audit")}
}

// Record persists the entry, swallowing any error
func (r *LoggedAuditRecorder) Record(ctx context.Context, entry *audit.Entry) {
	if err := r.repo.Save(ctx, entry); err != nil {
		r.logger.Error("failed to write audit entry",
			zap.String("action", entry.Action),
			zap.String("tenant_id", entry.TenantID.String()),
			zap.String("entity_id", entry.EntityID.String()),
			zap.Error(err),
		)
	}
}

// Ensure LoggedAuditRecorder implements audit.Recorder
var _ audit.Recorder = (*LoggedAuditRecorder)(nil)
