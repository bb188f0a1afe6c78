package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/laundry"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
// amount_paid and total_amount are the ledger source fields; the balance
// is always computed, never stored.
type OrderModel struct {
	AggregateModel
	// TenantID is declared here rather than through TenantAggregateModel so
	// it can anchor the composite unique indexes. Both the order number and
	// the idempotency key are unique per tenant, never globally.
	TenantID         uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_tenant_number,priority:1;uniqueIndex:idx_order_tenant_idem,priority:1"`
	CreatedBy        *uuid.UUID          `gorm:"type:uuid"`
	OrderNumber      string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	CustomerID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items            []OrderItemModel    `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status           laundry.OrderStatus `gorm:"type:varchar(20);not null;default:'CREATED';index"`
	PickupSecretHash string              `gorm:"type:varchar(100)"`
	IdempotencyKey   *string             `gorm:"type:varchar(200);uniqueIndex:idx_order_tenant_idem,priority:2"`
	Note             string              `gorm:"type:text"`
	CollectedBy      *uuid.UUID          `gorm:"type:uuid"`
	CollectedAt      *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *laundry.Order {
	order := &laundry.Order{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		OrderNumber:      m.OrderNumber,
		CustomerID:       m.CustomerID,
		TotalAmount:      m.TotalAmount,
		AmountPaid:       m.AmountPaid,
		Status:           m.Status,
		PickupSecretHash: m.PickupSecretHash,
		IdempotencyKey:   m.IdempotencyKey,
		Note:             m.Note,
		CollectedBy:      m.CollectedBy,
		CollectedAt:      m.CollectedAt,
		Items:            make([]laundry.OrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *laundry.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.TenantID = o.TenantID
	m.CreatedBy = o.CreatedBy
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.TotalAmount = o.TotalAmount
	m.AmountPaid = o.AmountPaid
	m.Status = o.Status
	m.PickupSecretHash = o.PickupSecretHash
	m.IdempotencyKey = o.IdempotencyKey
	m.Note = o.Note
	m.CollectedBy = o.CollectedBy
	m.CollectedAt = o.CollectedAt
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *laundry.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the OrderItem snapshot.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Size      string          `gorm:"type:varchar(50)"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity  int             `gorm:"not null"`
	Note      string          `gorm:"type:varchar(500)"`
	PhotoRef  string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem entity.
func (m *OrderItemModel) ToDomain() *laundry.OrderItem {
	return &laundry.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		Name:      m.Name,
		Size:      m.Size,
		UnitPrice: m.UnitPrice,
		Quantity:  m.Quantity,
		Note:      m.Note,
		PhotoRef:  m.PhotoRef,
		CreatedAt: m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem entity.
func OrderItemModelFromDomain(i *laundry.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:        i.ID,
		OrderID:   i.OrderID,
		Name:      i.Name,
		Size:      i.Size,
		UnitPrice: i.UnitPrice,
		Quantity:  i.Quantity,
		Note:      i.Note,
		PhotoRef:  i.PhotoRef,
		CreatedAt: i.CreatedAt,
	}
}

// PaymentModel is the persistence model for the append-only payment ledger.
type PaymentModel struct {
	BaseModel
	TenantID       uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_payment_tenant_idem,priority:1"`
	OrderID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Method         laundry.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference      string                `gorm:"type:varchar(100)"`
	ReceivedBy     uuid.UUID             `gorm:"type:uuid;not null"`
	IdempotencyKey *string               `gorm:"type:varchar(200);uniqueIndex:idx_payment_tenant_idem,priority:2"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *laundry.Payment {
	return &laundry.Payment{
		BaseEntity:     m.BaseModel.ToDomain(),
		TenantID:       m.TenantID,
		OrderID:        m.OrderID,
		Amount:         m.Amount,
		Method:         m.Method,
		Reference:      m.Reference,
		ReceivedBy:     m.ReceivedBy,
		IdempotencyKey: m.IdempotencyKey,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *laundry.Payment) *PaymentModel {
	m := &PaymentModel{
		TenantID:       p.TenantID,
		OrderID:        p.OrderID,
		Amount:         p.Amount,
		Method:         p.Method,
		Reference:      p.Reference,
		ReceivedBy:     p.ReceivedBy,
		IdempotencyKey: p.IdempotencyKey,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
