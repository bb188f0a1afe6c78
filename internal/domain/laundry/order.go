package laundry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of a laundry order
type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "CREATED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusCollected  OrderStatus = "COLLECTED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusProcessing, OrderStatusReady, OrderStatusCollected:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle is strictly linear: CREATED -> PROCESSING -> READY -> COLLECTED.
// No skipping except CREATED -> READY (an unpaid order can still be finished),
// and no backward transitions. COLLECTED is terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusCreated:
		return target == OrderStatusProcessing || target == OrderStatusReady
	case OrderStatusProcessing:
		return target == OrderStatusReady
	case OrderStatusReady:
		return target == OrderStatusCollected
	case OrderStatusCollected:
		return false // Terminal state
	}
	return false
}

// OrderItem is an immutable snapshot of one garment line on an order.
// Name, size and unit price are frozen at order time and never recomputed
// from any catalog.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Name      string
	Size      string
	UnitPrice decimal.Decimal
	Quantity  int
	Note      string
	PhotoRef  string
	CreatedAt time.Time
}

// NewOrderItem creates a new order item snapshot
func NewOrderItem(orderID uuid.UUID, name, size string, unitPrice valueobject.Money, quantity int, note, photoRef string) (*OrderItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot exceed 200 characters")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		Name:      name,
		Size:      size,
		UnitPrice: unitPrice.Amount(),
		Quantity:  quantity,
		Note:      note,
		PhotoRef:  photoRef,
		CreatedAt: time.Now(),
	}, nil
}

// Amount returns the line total (unit price * quantity)
func (i *OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a laundry order aggregate root.
// It owns the lifecycle state machine and the payment ledger fields.
// Orders are financial records: they are never deleted, only moved forward
// through their lifecycle.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber      string
	CustomerID       uuid.UUID
	Items            []OrderItem
	TotalAmount      decimal.Decimal
	AmountPaid       decimal.Decimal
	Status           OrderStatus
	PickupSecretHash string
	IdempotencyKey   *string
	Note             string
	CollectedBy      *uuid.UUID
	CollectedAt      *time.Time
}

// NewOrder creates a new order in CREATED status with the given item snapshots.
// The total amount is fixed here from the item snapshots and never recomputed.
func NewOrder(tenantID, customerID, createdBy uuid.UUID, orderNumber string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		Items:               make([]OrderItem, 0),
		TotalAmount:         decimal.Zero,
		AmountPaid:          decimal.Zero,
		Status:              OrderStatusCreated,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds an item snapshot to the order.
// Only allowed before the order has been persisted (CREATED, no payments).
func (o *Order) AddItem(name, size string, unitPrice valueobject.Money, quantity int, note, photoRef string) (*OrderItem, error) {
	if o.Status != OrderStatusCreated || !o.AmountPaid.IsZero() {
		return nil, shared.NewDomainError("INVALID_STATE", "Items are frozen once the order is in progress")
	}

	item, err := NewOrderItem(o.ID, name, size, unitPrice, quantity, note, photoRef)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.TotalAmount = o.TotalAmount.Add(item.Amount())
	o.UpdatedAt = time.Now()

	return item, nil
}

// Balance returns the outstanding balance, always derived from the two
// ledger source fields.
func (o *Order) Balance() decimal.Decimal {
	return o.TotalAmount.Sub(o.AmountPaid)
}

// IsFullyPaid returns true if the outstanding balance is zero
func (o *Order) IsFullyPaid() bool {
	return o.Balance().IsZero()
}

// ApplyPayment records a payment amount against the ledger fields.
// A payment on a CREATED order advances it to PROCESSING.
//
// This validates and mutates the in-memory aggregate only; the repository
// enforces the same bounds with a conditional write so that concurrent
// payments cannot overshoot the total.
func (o *Order) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if o.Status == OrderStatusCollected {
		return ErrOrderCollected
	}
	if amount.GreaterThan(o.Balance()) {
		return ErrExceedsBalance
	}

	o.AmountPaid = o.AmountPaid.Add(amount)
	if o.Status == OrderStatusCreated {
		o.Status = OrderStatusProcessing
	}
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewPaymentAppliedEvent(o, amount))

	return nil
}

// MarkReady transitions the order to READY, storing the hash of a freshly
// generated pickup secret. The plaintext secret never touches the aggregate.
func (o *Order) MarkReady(secretHash string) error {
	if !o.Status.CanTransitionTo(OrderStatusReady) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot mark order ready in %s status", o.Status))
	}
	if secretHash == "" {
		return shared.NewDomainError("INVALID_SECRET_HASH", "Pickup secret hash cannot be empty")
	}

	o.Status = OrderStatusReady
	o.PickupSecretHash = secretHash
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderReadyEvent(o))

	return nil
}

// Collect transitions the order to COLLECTED and clears the pickup secret
// hash. Clearing the hash in the same step makes secret reuse structurally
// impossible; the status transition alone already blocks it.
//
// Balance and secret verification are the caller's responsibility: balance
// must be zero and the presented secret must have verified against
// PickupSecretHash before calling Collect.
func (o *Order) Collect(collectedBy uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusCollected) {
		return ErrNotReady
	}
	if !o.IsFullyPaid() {
		return ErrOutstandingBalance
	}

	now := time.Now()
	o.Status = OrderStatusCollected
	o.PickupSecretHash = ""
	o.CollectedBy = &collectedBy
	o.CollectedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCollectedEvent(o))

	return nil
}

// IsCollected returns true if the order is in its terminal state
func (o *Order) IsCollected() bool {
	return o.Status == OrderStatusCollected
}

// IsReady returns true if the order is awaiting pickup
func (o *Order) IsReady() bool {
	return o.Status == OrderStatusReady
}

// ItemCount returns the number of line items on the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalAmountMoney returns the order total as a Money value object
func (o *Order) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyKES(o.TotalAmount)
}

// BalanceMoney returns the outstanding balance as a Money value object
func (o *Order) BalanceMoney() valueobject.Money {
	return valueobject.NewMoneyKES(o.Balance())
}
