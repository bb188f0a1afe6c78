package laundry

import (
	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was received
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodMpesa        PaymentMethod = "MPESA"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMpesa, PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is one append-only ledger entry against an order.
// Payments are never updated or deleted; corrections are recorded as
// new entries on a fresh order.
type Payment struct {
	shared.BaseEntity
	TenantID       uuid.UUID
	OrderID        uuid.UUID
	Amount         decimal.Decimal
	Method         PaymentMethod
	Reference      string
	ReceivedBy     uuid.UUID
	IdempotencyKey *string
}

// NewPayment creates a new payment ledger entry
func NewPayment(tenantID, orderID, receivedBy uuid.UUID, amount decimal.Decimal, method PaymentMethod, reference string) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		OrderID:    orderID,
		Amount:     amount,
		Method:     method,
		Reference:  reference,
		ReceivedBy: receivedBy,
	}, nil
}

// WithIdempotencyKey attaches the intake key that produced this payment
func (p *Payment) WithIdempotencyKey(key string) *Payment {
	if key != "" {
		p.IdempotencyKey = &key
	}
	return p
}
