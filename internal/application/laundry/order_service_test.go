package laundry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/audit"
	"github.com/laundrypos/backend/internal/domain/laundry"
	"github.com/laundrypos/backend/internal/domain/partner"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of laundry.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *laundry.Order, initialPayment *laundry.Payment) error {
	args := m.Called(ctx, order, initialPayment)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*laundry.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundry.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*laundry.Order, error) {
	args := m.Called(ctx, tenantID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundry.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]laundry.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]laundry.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ApplyPayment(ctx context.Context, payment *laundry.Payment) (*laundry.Order, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundry.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkReady(ctx context.Context, tenantID, orderID uuid.UUID, secretHash string) (*laundry.Order, error) {
	args := m.Called(ctx, tenantID, orderID, secretHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundry.Order), args.Error(1)
}

func (m *MockOrderRepository) Collect(ctx context.Context, tenantID, orderID, collectedBy uuid.UUID) (*laundry.Order, error) {
	args := m.Called(ctx, tenantID, orderID, collectedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundry.Order), args.Error(1)
}

// MockPaymentRepository is a mock implementation of laundry.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByOrderForTenant(ctx context.Context, tenantID, orderID uuid.UUID) ([]laundry.Payment, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]laundry.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*laundry.Payment, error) {
	args := m.Called(ctx, tenantID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundry.Payment), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhoneForTenant(ctx context.Context, tenantID uuid.UUID, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubscriptionGate is a mock implementation of laundry.SubscriptionGate
type MockSubscriptionGate struct {
	mock.Mock
}

func (m *MockSubscriptionGate) Check(ctx context.Context, tenantID uuid.UUID) (laundry.SubscriptionState, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(laundry.SubscriptionState), args.Error(1)
}

// MockAttemptLimiter is a mock implementation of cache.AttemptLimiter
type MockAttemptLimiter struct {
	mock.Mock
}

func (m *MockAttemptLimiter) Allowed(ctx context.Context, tenantID, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptLimiter) RecordFailure(ctx context.Context, tenantID, orderID uuid.UUID) error {
	args := m.Called(ctx, tenantID, orderID)
	return args.Error(0)
}

func (m *MockAttemptLimiter) Reset(ctx context.Context, tenantID, orderID uuid.UUID) error {
	args := m.Called(ctx, tenantID, orderID)
	return args.Error(0)
}

// MockAuditRecorder is a mock implementation of audit.Recorder
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry *audit.Entry) {
	m.Called(ctx, entry)
}

type orderServiceMocks struct {
	orderRepo    *MockOrderRepository
	paymentRepo  *MockPaymentRepository
	customerRepo *MockCustomerRepository
	gate         *MockSubscriptionGate
	limiter      *MockAttemptLimiter
	auditor      *MockAuditRecorder
}

func newOrderService(t *testing.T) (*OrderService, *orderServiceMocks) {
	t.Helper()
	m := &orderServiceMocks{
		orderRepo:    new(MockOrderRepository),
		paymentRepo:  new(MockPaymentRepository),
		customerRepo: new(MockCustomerRepository),
		gate:         new(MockSubscriptionGate),
		limiter:      new(MockAttemptLimiter),
		auditor:      new(MockAuditRecorder),
	}
	svc := NewOrderService(m.orderRepo, m.paymentRepo, m.customerRepo, m.gate, m.limiter, m.auditor, nil, zap.NewNop())
	return svc, m
}

func activeGate(m *orderServiceMocks) {
	m.gate.On("Check", mock.Anything, mock.Anything).Return(laundry.SubscriptionActive, nil)
}

func anyAudit(m *orderServiceMocks) {
	m.auditor.On("Record", mock.Anything, mock.Anything).Return()
}

func testCustomer(t *testing.T, tenantID uuid.UUID) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, "Jane Wanjiku", "+254700000001")
	require.NoError(t, err)
	return customer
}

func testOrder(t *testing.T, tenantID uuid.UUID, total int64) *laundry.Order {
	t.Helper()
	order, err := laundry.NewOrder(tenantID, uuid.New(), uuid.New(), "ORD-20260901-AB12CD")
	require.NoError(t, err)
	_, err = order.AddItem("Shirt", "M", valueobject.NewMoneyKES(decimal.NewFromInt(total)), 1, "", "")
	require.NoError(t, err)
	return order
}

func TestOrderService_Create_Success(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	actorID := uuid.New()
	customer := testCustomer(t, tenantID)

	activeGate(m)
	anyAudit(m)
	m.customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	m.orderRepo.On("Create", mock.Anything, mock.Anything, (*laundry.Payment)(nil)).Return(nil)

	resp, err := svc.Create(context.Background(), tenantID, actorID, CreateOrderRequest{
		CustomerID:  customer.ID,
		Items:       []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 3}},
		TotalAmount: decimal.NewFromInt(150),
	})

	require.NoError(t, err)
	assert.Equal(t, string(laundry.OrderStatusCreated), resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(150)))
	assert.True(t, resp.AmountPaid.IsZero())
	assert.False(t, resp.AlreadyApplied)
	m.orderRepo.AssertExpectations(t)
}

func TestOrderService_Create_WithInitialPaymentStartsProcessing(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	customer := testCustomer(t, tenantID)

	activeGate(m)
	anyAudit(m)
	m.customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)

	var capturedPayment *laundry.Payment
	m.orderRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		capturedPayment = args.Get(2).(*laundry.Payment)
	}).Return(nil)

	resp, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:     customer.ID,
		Items:          []CreateOrderItemInput{{Name: "Duvet", UnitPrice: decimal.NewFromInt(150), Quantity: 1}},
		TotalAmount:    decimal.NewFromInt(150),
		InitialPayment: &InitialPaymentInput{Amount: decimal.NewFromInt(50), Method: "CASH"},
	})

	require.NoError(t, err)
	assert.Equal(t, string(laundry.OrderStatusProcessing), resp.Status)
	assert.True(t, resp.AmountPaid.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.Balance.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, capturedPayment)
	assert.True(t, capturedPayment.Amount.Equal(decimal.NewFromInt(50)))
}

func TestOrderService_Create_TotalMismatch(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	customer := testCustomer(t, tenantID)

	activeGate(m)
	m.customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)

	_, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:  customer.ID,
		Items:       []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 3}},
		TotalAmount: decimal.NewFromInt(100),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOTAL_MISMATCH", domainErr.Code)
	m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Create_CustomerNotFound(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	customerID := uuid.New()

	activeGate(m)
	m.customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customerID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:  customerID,
		Items:       []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 1}},
		TotalAmount: decimal.NewFromInt(50),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", domainErr.Code)
}

func TestOrderService_Create_SuspendedTenantBlocked(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()

	m.gate.On("Check", mock.Anything, tenantID).Return(laundry.SubscriptionSuspended, nil)

	_, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:  uuid.New(),
		Items:       []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 1}},
		TotalAmount: decimal.NewFromInt(50),
	})

	assert.ErrorIs(t, err, laundry.ErrTenantSuspended)
	m.customerRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Create_GraceTenantBlocked(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()

	m.gate.On("Check", mock.Anything, tenantID).Return(laundry.SubscriptionGrace, nil)

	_, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:  uuid.New(),
		Items:       []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 1}},
		TotalAmount: decimal.NewFromInt(50),
	})

	assert.ErrorIs(t, err, laundry.ErrTenantInGrace)
}

func TestOrderService_Create_GateFailureFailsClosed(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()

	m.gate.On("Check", mock.Anything, tenantID).Return(laundry.SubscriptionState(""), laundry.ErrGateUnavailable)

	_, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:  uuid.New(),
		Items:       []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 1}},
		TotalAmount: decimal.NewFromInt(50),
	})

	assert.ErrorIs(t, err, laundry.ErrGateUnavailable)
	m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Create_IdempotentReplay(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	existing := testOrder(t, tenantID, 150)

	activeGate(m)
	m.orderRepo.On("FindByIdempotencyKey", mock.Anything, tenantID, "req-1").Return(existing, nil)

	resp, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:     uuid.New(),
		Items:          []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(150), Quantity: 1}},
		TotalAmount:    decimal.NewFromInt(150),
		IdempotencyKey: "req-1",
	})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyApplied)
	assert.Equal(t, existing.ID, resp.ID)
	m.customerRepo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	m.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Create_InsertRaceReturnsOriginal(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	customer := testCustomer(t, tenantID)
	existing := testOrder(t, tenantID, 50)

	activeGate(m)
	m.orderRepo.On("FindByIdempotencyKey", mock.Anything, tenantID, "req-2").Return(nil, shared.ErrNotFound).Once()
	m.customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	m.orderRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)
	m.orderRepo.On("FindByIdempotencyKey", mock.Anything, tenantID, "req-2").Return(existing, nil).Once()

	resp, err := svc.Create(context.Background(), tenantID, uuid.New(), CreateOrderRequest{
		CustomerID:     customer.ID,
		Items:          []CreateOrderItemInput{{Name: "Shirt", UnitPrice: decimal.NewFromInt(50), Quantity: 1}},
		TotalAmount:    decimal.NewFromInt(50),
		IdempotencyKey: "req-2",
	})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyApplied)
	assert.Equal(t, existing.ID, resp.ID)
}

func TestOrderService_RecordPayment_Success(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := testOrder(t, tenantID, 150)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(50)))
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(100)))

	activeGate(m)
	anyAudit(m)
	m.orderRepo.On("ApplyPayment", mock.Anything, mock.Anything).Return(order, nil)

	resp, err := svc.RecordPayment(context.Background(), tenantID, uuid.New(), order.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: "MPESA",
	})

	require.NoError(t, err)
	assert.True(t, resp.Order.AmountPaid.Equal(decimal.NewFromInt(150)))
	assert.True(t, resp.Order.Balance.IsZero())
	assert.False(t, resp.AlreadyApplied)
}

func TestOrderService_RecordPayment_ExceedsBalancePropagated(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	orderID := uuid.New()

	activeGate(m)
	m.orderRepo.On("ApplyPayment", mock.Anything, mock.Anything).Return(nil, laundry.ErrExceedsBalance)

	_, err := svc.RecordPayment(context.Background(), tenantID, uuid.New(), orderID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(75),
		Method: "CASH",
	})

	assert.ErrorIs(t, err, laundry.ErrExceedsBalance)
	m.auditor.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestOrderService_RecordPayment_IdempotentReplay(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := testOrder(t, tenantID, 150)
	payment, err := laundry.NewPayment(tenantID, order.ID, uuid.New(), decimal.NewFromInt(50), laundry.PaymentMethodCash, "")
	require.NoError(t, err)

	activeGate(m)
	m.paymentRepo.On("FindByIdempotencyKey", mock.Anything, tenantID, "pay-1").Return(payment, nil)
	m.orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)

	resp, err := svc.RecordPayment(context.Background(), tenantID, uuid.New(), order.ID, RecordPaymentRequest{
		Amount:         decimal.NewFromInt(50),
		Method:         "CASH",
		IdempotencyKey: "pay-1",
	})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyApplied)
	assert.Equal(t, payment.ID, resp.Payment.ID)
	m.orderRepo.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything)
}

func TestOrderService_MarkReady_ReturnsVerifiableSecret(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := testOrder(t, tenantID, 100)

	activeGate(m)
	anyAudit(m)

	var storedHash string
	m.orderRepo.On("MarkReady", mock.Anything, tenantID, order.ID, mock.Anything).Run(func(args mock.Arguments) {
		storedHash = args.String(3)
	}).Return(order, nil)

	resp, err := svc.MarkReady(context.Background(), tenantID, uuid.New(), order.ID)

	require.NoError(t, err)
	assert.Len(t, resp.PickupSecret, laundry.PickupSecretLength)
	assert.True(t, laundry.VerifyPickupSecret(storedHash, resp.PickupSecret))
	assert.NotContains(t, storedHash, resp.PickupSecret)
}

func TestOrderService_MarkReady_InvalidTransitionPropagated(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	orderID := uuid.New()

	activeGate(m)
	m.orderRepo.On("MarkReady", mock.Anything, tenantID, orderID, mock.Anything).Return(nil, laundry.ErrInvalidTransition)

	_, err := svc.MarkReady(context.Background(), tenantID, uuid.New(), orderID)

	assert.ErrorIs(t, err, laundry.ErrInvalidTransition)
}

// readyOrder builds a fully paid READY order with a known pickup secret.
func readyOrder(t *testing.T, tenantID uuid.UUID, secret string) *laundry.Order {
	t.Helper()
	order := testOrder(t, tenantID, 150)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(150)))
	hash, err := laundry.HashPickupSecret(secret)
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))
	return order
}

func TestOrderService_Collect_Success(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	actorID := uuid.New()
	order := readyOrder(t, tenantID, "042137")

	collected := readyOrder(t, tenantID, "042137")
	require.NoError(t, collected.Collect(actorID))

	activeGate(m)
	anyAudit(m)
	m.orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)
	m.limiter.On("Allowed", mock.Anything, tenantID, order.ID).Return(true, nil)
	m.orderRepo.On("Collect", mock.Anything, tenantID, order.ID, actorID).Return(collected, nil)
	m.limiter.On("Reset", mock.Anything, tenantID, order.ID).Return(nil)

	resp, err := svc.Collect(context.Background(), tenantID, actorID, order.ID, CollectOrderRequest{Secret: "042137"})

	require.NoError(t, err)
	assert.Equal(t, string(laundry.OrderStatusCollected), resp.Status)
	m.limiter.AssertCalled(t, "Reset", mock.Anything, tenantID, order.ID)
}

func TestOrderService_Collect_WrongSecretDeniedAndAudited(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := readyOrder(t, tenantID, "042137")

	activeGate(m)
	m.orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)
	m.limiter.On("Allowed", mock.Anything, tenantID, order.ID).Return(true, nil)
	m.limiter.On("RecordFailure", mock.Anything, tenantID, order.ID).Return(nil)

	var recorded *audit.Entry
	m.auditor.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*audit.Entry)
	}).Return()

	_, err := svc.Collect(context.Background(), tenantID, uuid.New(), order.ID, CollectOrderRequest{Secret: "999999"})

	assert.ErrorIs(t, err, laundry.ErrInvalidSecret)
	m.orderRepo.AssertNotCalled(t, "Collect", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	require.NotNil(t, recorded)
	assert.Equal(t, audit.ActionCollectDenied, recorded.Action)
	assert.Equal(t, audit.OutcomeDenied, recorded.Outcome)
}

func TestOrderService_Collect_OutstandingBalance(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := testOrder(t, tenantID, 150)
	require.NoError(t, order.ApplyPayment(decimal.NewFromInt(50)))
	hash, err := laundry.HashPickupSecret("042137")
	require.NoError(t, err)
	require.NoError(t, order.MarkReady(hash))

	activeGate(m)
	m.orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)

	_, err = svc.Collect(context.Background(), tenantID, uuid.New(), order.ID, CollectOrderRequest{Secret: "042137"})

	assert.ErrorIs(t, err, laundry.ErrOutstandingBalance)
	m.limiter.AssertNotCalled(t, "Allowed", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Collect_NotReady(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := testOrder(t, tenantID, 150)

	activeGate(m)
	m.orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)

	_, err := svc.Collect(context.Background(), tenantID, uuid.New(), order.ID, CollectOrderRequest{Secret: "042137"})

	assert.ErrorIs(t, err, laundry.ErrNotReady)
}

func TestOrderService_Collect_RateLimited(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := readyOrder(t, tenantID, "042137")

	activeGate(m)
	m.orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)
	m.limiter.On("Allowed", mock.Anything, tenantID, order.ID).Return(false, nil)

	_, err := svc.Collect(context.Background(), tenantID, uuid.New(), order.ID, CollectOrderRequest{Secret: "042137"})

	assert.ErrorIs(t, err, ErrTooManyAttempts)
	m.orderRepo.AssertNotCalled(t, "Collect", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_GetByID_ReadsBypassGate(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := testOrder(t, tenantID, 100)

	m.orderRepo.On("FindByIDForTenant", mock.Anything, tenantID, order.ID).Return(order, nil)

	resp, err := svc.GetByID(context.Background(), tenantID, order.ID)

	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.ID)
	m.gate.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestOrderService_List_MapsFilters(t *testing.T) {
	svc, m := newOrderService(t)
	tenantID := uuid.New()
	order := testOrder(t, tenantID, 100)

	var captured shared.Filter
	m.orderRepo.On("FindAllForTenant", mock.Anything, tenantID, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(2).(shared.Filter)
	}).Return([]laundry.Order{*order}, nil)
	m.orderRepo.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(1), nil)

	page, err := svc.List(context.Background(), tenantID, OrderListFilter{Status: "CREATED", Page: 2, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "CREATED", captured.Filters["status"])
	assert.Equal(t, 2, captured.Page)
}
