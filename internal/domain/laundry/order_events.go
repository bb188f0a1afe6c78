package laundry

import (
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the order aggregate
const (
	EventTypeOrderCreated   = "laundry.order.created"
	EventTypePaymentApplied = "laundry.order.payment_applied"
	EventTypeOrderReady     = "laundry.order.ready"
	EventTypeOrderCollected = "laundry.order.collected"
)

// OrderCreatedEvent is raised when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string
	TotalAmount decimal.Decimal
	ItemCount   int
}

func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
		ItemCount:       len(order.Items),
	}
}

// PaymentAppliedEvent is raised when a payment is applied to the ledger
type PaymentAppliedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string
	Amount      decimal.Decimal
	AmountPaid  decimal.Decimal
	Balance     decimal.Decimal
}

func NewPaymentAppliedEvent(order *Order, amount decimal.Decimal) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentApplied, "Order", order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		Amount:          amount,
		AmountPaid:      order.AmountPaid,
		Balance:         order.Balance(),
	}
}

// OrderReadyEvent is raised when an order becomes ready for pickup
type OrderReadyEvent struct {
	shared.BaseDomainEvent
	OrderNumber string
}

func NewOrderReadyEvent(order *Order) *OrderReadyEvent {
	return &OrderReadyEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReady, "Order", order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
	}
}

// OrderCollectedEvent is raised when an order is handed over to the customer
type OrderCollectedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string
}

func NewOrderCollectedEvent(order *Order) *OrderCollectedEvent {
	return &OrderCollectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCollected, "Order", order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
	}
}
