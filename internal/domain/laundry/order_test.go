package laundry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestOrder(t *testing.T) *Order {
	tenantID := uuid.New()
	customerID := uuid.New()
	staffID := uuid.New()
	order, err := NewOrder(tenantID, customerID, staffID, "ORD-2026-0001")
	require.NoError(t, err)
	return order
}

func addTestItem(t *testing.T, order *Order, name string, quantity int, price float64) *OrderItem {
	unitPrice := valueobject.NewMoneyKESFromFloat(price)
	item, err := order.AddItem(name, "M", unitPrice, quantity, "", "")
	require.NoError(t, err)
	return item
}

// ============================================
// OrderStatus Tests
// ============================================

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderStatusCreated, true},
		{OrderStatusProcessing, true},
		{OrderStatusReady, true},
		{OrderStatusCollected, true},
		{OrderStatus("INVALID"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		// From CREATED
		{OrderStatusCreated, OrderStatusProcessing, true},
		{OrderStatusCreated, OrderStatusReady, true},
		{OrderStatusCreated, OrderStatusCollected, false},
		// From PROCESSING
		{OrderStatusProcessing, OrderStatusReady, true},
		{OrderStatusProcessing, OrderStatusCreated, false},
		{OrderStatusProcessing, OrderStatusCollected, false},
		// From READY
		{OrderStatusReady, OrderStatusCollected, true},
		{OrderStatusReady, OrderStatusCreated, false},
		{OrderStatusReady, OrderStatusProcessing, false},
		// From COLLECTED (terminal)
		{OrderStatusCollected, OrderStatusCreated, false},
		{OrderStatusCollected, OrderStatusProcessing, false},
		{OrderStatusCollected, OrderStatusReady, false},
		{OrderStatusCollected, OrderStatusCollected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// Order Creation Tests
// ============================================

func TestNewOrder(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	staffID := uuid.New()

	order, err := NewOrder(tenantID, customerID, staffID, "ORD-2026-0001")

	require.NoError(t, err)
	assert.Equal(t, tenantID, order.TenantID)
	assert.Equal(t, customerID, order.CustomerID)
	assert.Equal(t, "ORD-2026-0001", order.OrderNumber)
	assert.Equal(t, OrderStatusCreated, order.Status)
	assert.True(t, order.TotalAmount.IsZero())
	assert.True(t, order.AmountPaid.IsZero())
	assert.Empty(t, order.PickupSecretHash)
	assert.Nil(t, order.CollectedBy)
	assert.Len(t, order.GetDomainEvents(), 1)
}

func TestNewOrder_EmptyOrderNumber(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), uuid.New(), "")
	assert.Error(t, err)
}

func TestNewOrder_NilCustomer(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.Nil, uuid.New(), "ORD-2026-0001")
	assert.Error(t, err)
}

func TestOrder_AddItem(t *testing.T) {
	order := createTestOrder(t)

	addTestItem(t, order, "Shirt", 3, 50.0)
	addTestItem(t, order, "Duvet", 1, 300.0)

	assert.Equal(t, 2, order.ItemCount())
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(450)))
}

func TestOrder_AddItem_Validation(t *testing.T) {
	order := createTestOrder(t)
	price := valueobject.NewMoneyKESFromFloat(50.0)

	_, err := order.AddItem("", "M", price, 1, "", "")
	assert.Error(t, err, "empty name should be rejected")

	_, err = order.AddItem("Shirt", "M", price, 0, "", "")
	assert.Error(t, err, "zero quantity should be rejected")

	negative := valueobject.NewMoneyKESFromFloat(-10.0)
	_, err = order.AddItem("Shirt", "M", negative, 1, "", "")
	assert.Error(t, err, "negative price should be rejected")
}

func TestOrder_AddItem_FrozenAfterPayment(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 2, 75.0)

	err := order.ApplyPayment(decimal.NewFromInt(50))
	require.NoError(t, err)

	price := valueobject.NewMoneyKESFromFloat(50.0)
	_, err = order.AddItem("Trousers", "L", price, 1, "", "")
	assert.Error(t, err)
}

// ============================================
// Payment Ledger Tests
// ============================================

func TestOrder_ApplyPayment_AdvancesToProcessing(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Suit", 1, 150.0)

	err := order.ApplyPayment(decimal.NewFromInt(50))

	require.NoError(t, err)
	assert.Equal(t, OrderStatusProcessing, order.Status)
	assert.True(t, order.AmountPaid.Equal(decimal.NewFromInt(50)))
	assert.True(t, order.Balance().Equal(decimal.NewFromInt(100)))
}

func TestOrder_ApplyPayment_SecondPaymentSettles(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Suit", 1, 150.0)

	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(50)))
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(100)))

	assert.True(t, order.Balance().IsZero())
	assert.True(t, order.IsFullyPaid())
	assert.Equal(t, OrderStatusProcessing, order.Status, "full payment alone does not make the order ready")
}

func TestOrder_ApplyPayment_ExceedsBalance(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Jacket", 1, 100.0)

	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(50)))

	err := order.ApplyPayment(decimal.NewFromInt(75))

	assert.ErrorIs(t, err, ErrExceedsBalance)
	assert.True(t, order.AmountPaid.Equal(decimal.NewFromInt(50)), "ledger must be unchanged after rejection")
	assert.True(t, order.Balance().Equal(decimal.NewFromInt(50)))
}

func TestOrder_ApplyPayment_ExactBalanceAccepted(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Jacket", 1, 100.0)

	err := order.ApplyPayment(decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.True(t, order.IsFullyPaid())
}

func TestOrder_ApplyPayment_NonPositiveAmount(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)

	assert.Error(t, order.ApplyPayment(decimal.Zero))
	assert.Error(t, order.ApplyPayment(decimal.NewFromInt(-10)))
}

func TestOrder_ApplyPayment_AfterCollection(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(100)))

	hash, err := HashPickupSecret("123456")
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))
	require.NoError(t, order.Collect(uuid.New()))

	err = order.ApplyPayment(decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrOrderCollected)
}

func TestOrder_ApplyPayment_DoesNotRegressStatus(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 2, 100.0)

	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(50)))

	hash, err := HashPickupSecret("654321")
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))

	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(150)))
	assert.Equal(t, OrderStatusReady, order.Status, "payment on a READY order must not move it back")
}

// ============================================
// Ready / Collect Tests
// ============================================

func TestOrder_MarkReady(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)

	hash, err := HashPickupSecret("042137")
	require.NoError(t, err)

	err = order.MarkReady(hash)

	require.NoError(t, err)
	assert.Equal(t, OrderStatusReady, order.Status)
	assert.Equal(t, hash, order.PickupSecretHash)
}

func TestOrder_MarkReady_UnpaidOrderAllowed(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)

	hash, err := HashPickupSecret("111111")
	require.NoError(t, err)

	assert.NoError(t, order.MarkReady(hash), "readiness is about processing, not payment")
}

func TestOrder_MarkReady_InvalidStates(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(100)))

	hash, err := HashPickupSecret("222222")
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))

	assert.Error(t, order.MarkReady(hash), "READY order cannot be marked ready again")

	require.NoError(t, order.Collect(uuid.New()))
	assert.Error(t, order.MarkReady(hash), "COLLECTED order cannot be marked ready")
}

func TestOrder_MarkReady_EmptyHash(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)

	assert.Error(t, order.MarkReady(""))
}

func TestOrder_Collect(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(100)))

	hash, err := HashPickupSecret("333333")
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))

	staffID := uuid.New()
	err = order.Collect(staffID)

	require.NoError(t, err)
	assert.Equal(t, OrderStatusCollected, order.Status)
	assert.Empty(t, order.PickupSecretHash, "secret hash must be cleared on collection")
	require.NotNil(t, order.CollectedBy)
	assert.Equal(t, staffID, *order.CollectedBy)
	assert.NotNil(t, order.CollectedAt)
}

func TestOrder_Collect_OutstandingBalance(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(60)))

	hash, err := HashPickupSecret("444444")
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))

	err = order.Collect(uuid.New())

	assert.ErrorIs(t, err, ErrOutstandingBalance)
	assert.Equal(t, OrderStatusReady, order.Status)
	assert.NotEmpty(t, order.PickupSecretHash, "a denied collection keeps the secret valid")
}

func TestOrder_Collect_NotReady(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(100)))

	err := order.Collect(uuid.New())

	assert.ErrorIs(t, err, ErrNotReady)
}

func TestOrder_Collect_AlreadyCollected(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Shirt", 1, 100.0)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(100)))

	hash, err := HashPickupSecret("555555")
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))
	require.NoError(t, order.Collect(uuid.New()))

	err = order.Collect(uuid.New())
	assert.ErrorIs(t, err, ErrNotReady)
}

// ============================================
// Payment Entity Tests
// ============================================

func TestNewPayment(t *testing.T) {
	payment, err := NewPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(50), PaymentMethodMpesa, "QA12BC34")

	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, PaymentMethodMpesa, payment.Method)
	assert.Equal(t, "QA12BC34", payment.Reference)
	assert.Nil(t, payment.IdempotencyKey)
}

func TestNewPayment_Validation(t *testing.T) {
	_, err := NewPayment(uuid.New(), uuid.New(), uuid.New(), decimal.Zero, PaymentMethodCash, "")
	assert.Error(t, err, "zero amount should be rejected")

	_, err = NewPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(10), PaymentMethod("CHEQUE"), "")
	assert.Error(t, err, "unknown method should be rejected")
}

func TestPayment_WithIdempotencyKey(t *testing.T) {
	payment, err := NewPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(10), PaymentMethodCash, "")
	require.NoError(t, err)

	payment.WithIdempotencyKey("intake-abc-1")
	require.NotNil(t, payment.IdempotencyKey)
	assert.Equal(t, "intake-abc-1", *payment.IdempotencyKey)

	fresh, err := NewPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(10), PaymentMethodCash, "")
	require.NoError(t, err)
	fresh.WithIdempotencyKey("")
	assert.Nil(t, fresh.IdempotencyKey)
}
