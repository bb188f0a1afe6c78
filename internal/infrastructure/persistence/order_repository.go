package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/laundry"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements laundry.OrderRepository using GORM.
//
// All ledger mutations run their precondition inside the UPDATE statement,
// so the database is the single arbiter under concurrency. A zero-row
// result triggers a re-read that classifies the failure into a domain error.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a new order with its items and optional opening payment
// in one transaction.
func (r *GormOrderRepository) Create(ctx context.Context, order *laundry.Order, initialPayment *laundry.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.OrderModelFromDomain(order)
		if err := tx.Create(model).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrAlreadyExists
			}
			return err
		}

		if initialPayment != nil {
			if err := tx.Create(models.PaymentModelFromDomain(initialPayment)).Error; err != nil {
				if isUniqueViolation(err) {
					return shared.ErrAlreadyExists
				}
				return err
			}
		}

		return nil
	})
}

// FindByIDForTenant finds an order by ID within a tenant. An order belonging
// to another tenant is indistinguishable from a missing one.
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*laundry.Order, error) {
	return findOrderForTenant(r.db.WithContext(ctx), tenantID, id)
}

// FindByIdempotencyKey finds the order created under the given intake key
func (r *GormOrderRepository) FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*laundry.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND idempotency_key = ?", tenantID, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all orders for a tenant with filtering
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]laundry.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).
			Preload("Items").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]laundry.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// CountForTenant counts orders for a tenant matching the filter
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyPayment atomically adds the payment amount to the order ledger and
// inserts the ledger row. The UPDATE only matches while the order is not
// collected and the new amount paid stays within the total, so two racing
// payments can never overshoot.
func (r *GormOrderRepository) ApplyPayment(ctx context.Context, payment *laundry.Payment) (*laundry.Order, error) {
	var out *laundry.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("tenant_id = ? AND id = ? AND status <> ? AND amount_paid + ? <= total_amount",
				payment.TenantID, payment.OrderID, laundry.OrderStatusCollected, payment.Amount).
			Updates(map[string]any{
				"amount_paid": gorm.Expr("amount_paid + ?", payment.Amount),
				"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
					laundry.OrderStatusCreated, laundry.OrderStatusProcessing),
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return classifyPaymentFailure(tx, payment.TenantID, payment.OrderID)
		}

		if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrAlreadyExists
			}
			return err
		}

		order, err := findOrderForTenant(tx, payment.TenantID, payment.OrderID)
		if err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// classifyPaymentFailure re-reads the order to explain a zero-row payment update
func classifyPaymentFailure(tx *gorm.DB, tenantID, orderID uuid.UUID) error {
	order, err := findOrderForTenant(tx, tenantID, orderID)
	if err != nil {
		return err
	}
	if order.IsCollected() {
		return laundry.ErrOrderCollected
	}
	return laundry.ErrExceedsBalance
}

// MarkReady atomically transitions a CREATED or PROCESSING order to READY
// and stores the pickup secret hash.
func (r *GormOrderRepository) MarkReady(ctx context.Context, tenantID, orderID uuid.UUID, secretHash string) (*laundry.Order, error) {
	var out *laundry.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("tenant_id = ? AND id = ? AND status IN ?",
				tenantID, orderID,
				[]laundry.OrderStatus{laundry.OrderStatusCreated, laundry.OrderStatusProcessing}).
			Updates(map[string]any{
				"status":             laundry.OrderStatusReady,
				"pickup_secret_hash": secretHash,
				"version":            gorm.Expr("version + 1"),
				"updated_at":         time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			if _, err := findOrderForTenant(tx, tenantID, orderID); err != nil {
				return err
			}
			return laundry.ErrInvalidTransition
		}

		order, err := findOrderForTenant(tx, tenantID, orderID)
		if err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Collect atomically transitions a READY, fully paid order to COLLECTED.
// The pickup secret hash is cleared in the same UPDATE, so a secret can
// never verify twice.
func (r *GormOrderRepository) Collect(ctx context.Context, tenantID, orderID, collectedBy uuid.UUID) (*laundry.Order, error) {
	var out *laundry.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&models.OrderModel{}).
			Where("tenant_id = ? AND id = ? AND status = ? AND amount_paid = total_amount",
				tenantID, orderID, laundry.OrderStatusReady).
			Updates(map[string]any{
				"status":             laundry.OrderStatusCollected,
				"pickup_secret_hash": "",
				"collected_by":       collectedBy,
				"collected_at":       now,
				"version":            gorm.Expr("version + 1"),
				"updated_at":         now,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return classifyCollectFailure(tx, tenantID, orderID)
		}

		order, err := findOrderForTenant(tx, tenantID, orderID)
		if err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// classifyCollectFailure re-reads the order to explain a zero-row collect update
func classifyCollectFailure(tx *gorm.DB, tenantID, orderID uuid.UUID) error {
	order, err := findOrderForTenant(tx, tenantID, orderID)
	if err != nil {
		return err
	}
	if order.IsCollected() {
		return laundry.ErrOrderCollected
	}
	if !order.IsReady() {
		return laundry.ErrNotReady
	}
	return laundry.ErrOutstandingBalance
}

func findOrderForTenant(tx *gorm.DB, tenantID, id uuid.UUID) (*laundry.Order, error) {
	var model models.OrderModel
	if err := tx.
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
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

// isUniqueViolation reports whether the error is a unique constraint
// violation on either postgres or sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Ensure GormOrderRepository implements laundry.OrderRepository
var _ laundry.OrderRepository = (*GormOrderRepository)(nil)
