package laundry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/audit"
	"github.com/laundrypos/backend/internal/domain/laundry"
	"github.com/laundrypos/backend/internal/domain/partner"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/domain/shared/valueobject"
	"github.com/laundrypos/backend/internal/infrastructure/cache"
)

// ErrTooManyAttempts is returned when pickup verification for an order has
// been attempted too often within the window.
var ErrTooManyAttempts = shared.NewDomainError("TOO_MANY_ATTEMPTS", "Too many pickup attempts for this order; try again later")

// OrderService drives the order lifecycle: intake, payments, readiness and
// collection. Every mutating operation passes the subscription gate before
// any side effect.
type OrderService struct {
	orderRepo    laundry.OrderRepository
	paymentRepo  laundry.PaymentRepository
	customerRepo partner.CustomerRepository
	gate         laundry.SubscriptionGate
	limiter      cache.AttemptLimiter
	auditor      audit.Recorder
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewOrderService creates a new order service. The event publisher may be
// nil; lifecycle events are then dropped.
func NewOrderService(
	orderRepo laundry.OrderRepository,
	paymentRepo laundry.PaymentRepository,
	customerRepo partner.CustomerRepository,
	gate laundry.SubscriptionGate,
	limiter cache.AttemptLimiter,
	auditor audit.Recorder,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		gate:         gate,
		limiter:      limiter,
		auditor:      auditor,
		events:       events,
		logger:       logger.Named("order"),
	}
}

// publish hands events to the bus. Publishing is best effort and never
// fails the operation that raised the events.
func (s *OrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
}

// Create takes in a new order with its garment snapshots and an optional
// drop-off payment, all in one transaction. A repeated idempotency key
// returns the original order flagged as already applied.
func (s *OrderService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if err := s.requireWritable(ctx, tenantID); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.orderRepo.FindByIdempotencyKey(ctx, tenantID, req.IdempotencyKey)
		if err == nil {
			resp := ToOrderResponse(existing)
			resp.AlreadyApplied = true
			return &resp, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	orderNumber, err := generateOrderNumber()
	if err != nil {
		return nil, err
	}

	order, err := laundry.NewOrder(tenantID, req.CustomerID, actorID, orderNumber)
	if err != nil {
		return nil, err
	}
	order.Note = req.Note
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		order.IdempotencyKey = &key
	}

	for _, item := range req.Items {
		unitPrice := valueobject.NewMoneyKES(item.UnitPrice)
		if _, err := order.AddItem(item.Name, item.Size, unitPrice, item.Quantity, item.Note, item.PhotoRef); err != nil {
			return nil, err
		}
	}

	if !order.TotalAmount.Equal(req.TotalAmount) {
		return nil, shared.NewDomainError("TOTAL_MISMATCH", "Submitted total does not match the item amounts")
	}

	var initialPayment *laundry.Payment
	if req.InitialPayment != nil {
		initialPayment, err = laundry.NewPayment(tenantID, order.ID, actorID, req.InitialPayment.Amount, laundry.PaymentMethod(req.InitialPayment.Method), req.InitialPayment.Reference)
		if err != nil {
			return nil, err
		}
		if err := order.ApplyPayment(req.InitialPayment.Amount); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Create(ctx, order, initialPayment); err != nil {
		// A concurrent request with the same key may have won the insert.
		if req.IdempotencyKey != "" && errors.Is(err, shared.ErrAlreadyExists) {
			existing, findErr := s.orderRepo.FindByIdempotencyKey(ctx, tenantID, req.IdempotencyKey)
			if findErr == nil {
				resp := ToOrderResponse(existing)
				resp.AlreadyApplied = true
				return &resp, nil
			}
		}
		return nil, err
	}

	s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionOrderCreated, "order", order.ID, audit.OutcomeSuccess,
		fmt.Sprintf("order %s for customer %s, total %s", order.OrderNumber, order.CustomerID, order.TotalAmount)))
	s.publish(ctx, order.GetDomainEvents()...)
	order.ClearDomainEvents()

	s.logger.Info("order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)),
	)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// RecordPayment applies a payment to an order's ledger. The admission check
// runs inside the repository's conditional update, so concurrent payments
// can never overshoot the total.
func (s *OrderService) RecordPayment(ctx context.Context, tenantID, actorID, orderID uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	if err := s.requireWritable(ctx, tenantID); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if resp, ok, err := s.replayPayment(ctx, tenantID, req.IdempotencyKey); err != nil {
			return nil, err
		} else if ok {
			return resp, nil
		}
	}

	payment, err := laundry.NewPayment(tenantID, orderID, actorID, req.Amount, laundry.PaymentMethod(req.Method), req.Reference)
	if err != nil {
		return nil, err
	}
	payment.WithIdempotencyKey(req.IdempotencyKey)

	order, err := s.orderRepo.ApplyPayment(ctx, payment)
	if err != nil {
		if req.IdempotencyKey != "" && errors.Is(err, shared.ErrAlreadyExists) {
			if resp, ok, replayErr := s.replayPayment(ctx, tenantID, req.IdempotencyKey); replayErr == nil && ok {
				return resp, nil
			}
		}
		return nil, err
	}

	s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionPaymentRecorded, "order", orderID, audit.OutcomeSuccess,
		fmt.Sprintf("payment %s via %s, paid %s of %s", payment.Amount, payment.Method, order.AmountPaid, order.TotalAmount)))
	s.publish(ctx, laundry.NewPaymentAppliedEvent(order, payment.Amount))

	s.logger.Info("payment recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("amount", payment.Amount.String()),
	)

	return &RecordPaymentResponse{
		Payment: ToPaymentResponse(payment),
		Order:   ToOrderResponse(order),
	}, nil
}

// replayPayment returns the original payment result for a key that has
// already been applied.
func (s *OrderService) replayPayment(ctx context.Context, tenantID uuid.UUID, key string) (*RecordPaymentResponse, bool, error) {
	existing, err := s.paymentRepo.FindByIdempotencyKey(ctx, tenantID, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, existing.OrderID)
	if err != nil {
		return nil, false, err
	}

	return &RecordPaymentResponse{
		Payment:        ToPaymentResponse(existing),
		Order:          ToOrderResponse(order),
		AlreadyApplied: true,
	}, true, nil
}

// MarkReady moves an order to READY and returns the one-time plaintext
// pickup secret. Only the bcrypt hash is stored; the secret cannot be
// retrieved or regenerated afterwards.
func (s *OrderService) MarkReady(ctx context.Context, tenantID, actorID, orderID uuid.UUID) (*MarkReadyResponse, error) {
	if err := s.requireWritable(ctx, tenantID); err != nil {
		return nil, err
	}

	secret, err := laundry.GeneratePickupSecret()
	if err != nil {
		return nil, err
	}
	hash, err := laundry.HashPickupSecret(secret)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.MarkReady(ctx, tenantID, orderID, hash)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionOrderReady, "order", orderID, audit.OutcomeSuccess,
		fmt.Sprintf("order %s ready for pickup", order.OrderNumber)))
	s.publish(ctx, laundry.NewOrderReadyEvent(order))

	s.logger.Info("order ready",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
	)

	return &MarkReadyResponse{
		Order:        ToOrderResponse(order),
		PickupSecret: secret,
	}, nil
}

// Collect hands the order over after verifying the pickup secret. Failed
// verifications are audited and rate limited per order.
func (s *OrderService) Collect(ctx context.Context, tenantID, actorID, orderID uuid.UUID, req CollectOrderRequest) (*OrderResponse, error) {
	if err := s.requireWritable(ctx, tenantID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsCollected() {
		return nil, laundry.ErrOrderCollected
	}
	if !order.IsReady() {
		return nil, laundry.ErrNotReady
	}
	if !order.IsFullyPaid() {
		return nil, laundry.ErrOutstandingBalance
	}

	allowed, err := s.limiter.Allowed(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrTooManyAttempts
	}

	if !laundry.VerifyPickupSecret(order.PickupSecretHash, req.Secret) {
		if err := s.limiter.RecordFailure(ctx, tenantID, orderID); err != nil {
			s.logger.Warn("failed to record pickup attempt", zap.Error(err))
		}
		s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionCollectDenied, "order", orderID, audit.OutcomeDenied,
			fmt.Sprintf("pickup secret mismatch for order %s", order.OrderNumber)))
		return nil, laundry.ErrInvalidSecret
	}

	collected, err := s.orderRepo.Collect(ctx, tenantID, orderID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, tenantID, orderID); err != nil {
		s.logger.Warn("failed to reset pickup attempt counter", zap.Error(err))
	}

	s.auditor.Record(ctx, audit.NewEntry(tenantID, actorID, audit.ActionOrderCollected, "order", orderID, audit.OutcomeSuccess,
		fmt.Sprintf("order %s collected", collected.OrderNumber)))
	s.publish(ctx, laundry.NewOrderCollectedEvent(collected))

	s.logger.Info("order collected",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", orderID.String()),
	)

	resp := ToOrderResponse(collected)
	return &resp, nil
}

// GetByID retrieves an order. Reads stay available whatever the shop's
// subscription standing.
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
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
	f.OrderBy = filter.OrderBy
	f.OrderDir = filter.OrderDir
	if filter.CustomerID != nil {
		f.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if len(filter.Statuses) > 0 {
		f.Filters["statuses"] = filter.Statuses
	}
	if filter.StartDate != nil {
		f.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		f.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListPayments retrieves an order's payments in the order they were taken
func (s *OrderService) ListPayments(ctx context.Context, tenantID, orderID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByOrderForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses, nil
}

// requireWritable checks the subscription gate before a mutating operation
func (s *OrderService) requireWritable(ctx context.Context, tenantID uuid.UUID) error {
	state, err := s.gate.Check(ctx, tenantID)
	if err != nil {
		return err
	}
	return state.RequireWritable()
}

// generateOrderNumber produces a counter-friendly order number with a
// random suffix, e.g. ORD-20260901-3F2A1C.
func generateOrderNumber() (string, error) {
	var buf [3]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("ORD-%s-%X", time.Now().Format("20060102"), buf), nil
}
