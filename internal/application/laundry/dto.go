package laundry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/laundrypos/backend/internal/domain/laundry"
)

// ==================== Order DTOs ====================

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	CustomerID     uuid.UUID              `json:"customer_id" binding:"required"`
	Items          []CreateOrderItemInput `json:"items" binding:"required,min=1"`
	TotalAmount    decimal.Decimal        `json:"total_amount" binding:"required"`
	InitialPayment *InitialPaymentInput   `json:"initial_payment"`
	IdempotencyKey string                 `json:"idempotency_key" binding:"max=100"`
	Note           string                 `json:"note" binding:"max=500"`
}

// CreateOrderItemInput is one garment line in the create request
type CreateOrderItemInput struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Size      string          `json:"size" binding:"max=50"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Note      string          `json:"note" binding:"max=500"`
	PhotoRef  string          `json:"photo_ref" binding:"max=500"`
}

// InitialPaymentInput is an optional payment taken at drop-off
type InitialPaymentInput struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=CASH MPESA CARD BANK_TRANSFER"`
	Reference string          `json:"reference" binding:"max=100"`
}

// RecordPaymentRequest represents a payment against an order
type RecordPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Method         string          `json:"method" binding:"required,oneof=CASH MPESA CARD BANK_TRANSFER"`
	Reference      string          `json:"reference" binding:"max=100"`
	IdempotencyKey string          `json:"idempotency_key" binding:"max=100"`
}

// CollectOrderRequest carries the pickup secret presented at the counter
type CollectOrderRequest struct {
	Secret string `json:"secret" binding:"required,len=6,numeric"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=CREATED PROCESSING READY COLLECTED"`
	Statuses   []string   `form:"statuses"`
	StartDate  *time.Time `form:"start_date"`
	EndDate    *time.Time `form:"end_date"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is the API shape of an order item snapshot
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	PhotoRef  string          `json:"photo_ref,omitempty"`
}

// OrderResponse is the API shape of an order. AlreadyApplied is true when
// the request replayed a previously applied idempotency key.
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CustomerID     uuid.UUID           `json:"customer_id"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	Balance        decimal.Decimal     `json:"balance"`
	Status         string              `json:"status"`
	Note           string              `json:"note,omitempty"`
	CollectedBy    *uuid.UUID          `json:"collected_by,omitempty"`
	CollectedAt    *time.Time          `json:"collected_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	AlreadyApplied bool                `json:"already_applied,omitempty"`
}

// MarkReadyResponse carries the order and the one-time plaintext pickup
// secret. The secret is never retrievable again.
type MarkReadyResponse struct {
	Order        OrderResponse `json:"order"`
	PickupSecret string        `json:"pickup_secret"`
}

// RecordPaymentResponse returns the payment and the updated order ledger
type RecordPaymentResponse struct {
	Payment        PaymentResponse `json:"payment"`
	Order          OrderResponse   `json:"order"`
	AlreadyApplied bool            `json:"already_applied,omitempty"`
}

// PaymentResponse is the API shape of a payment
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	ReceivedBy uuid.UUID       `json:"received_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain order to its API shape
func ToOrderResponse(o *laundry.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			Name:      item.Name,
			Size:      item.Size,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Amount:    item.Amount(),
			Note:      item.Note,
			PhotoRef:  item.PhotoRef,
		})
	}

	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		AmountPaid:  o.AmountPaid,
		Balance:     o.Balance(),
		Status:      string(o.Status),
		Note:        o.Note,
		CollectedBy: o.CollectedBy,
		CollectedAt: o.CollectedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToPaymentResponse converts a domain payment to its API shape
func ToPaymentResponse(p *laundry.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		Method:     string(p.Method),
		Reference:  p.Reference,
		ReceivedBy: p.ReceivedBy,
		CreatedAt:  p.CreatedAt,
	}
}
