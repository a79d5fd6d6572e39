package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/outbox"
	"github.com/restauranteos/restauranteos-backend/pkg/outbox/payloads"
	"github.com/restauranteos/restauranteos-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// RecordInput declares a settlement attempt against an order.
type RecordInput struct {
	TenantID    uuid.UUID
	OrderID     uuid.UUID
	Method      enums.PaymentMethod
	AmountCents int
	ReceiptURL  *string
}

// ResolveInput identifies the pending payment being confirmed or rejected.
type ResolveInput struct {
	TenantID    uuid.UUID
	PaymentID   uuid.UUID
	Reason      string
	ActorUserID uuid.UUID
	ActorRole   string
}

// Service defines the payment reconciliation operations.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*models.Payment, error)
	Confirm(ctx context.Context, input ResolveInput) (*models.Payment, error)
	Reject(ctx context.Context, input ResolveInput) (*models.Payment, error)
	HasConfirmedPayment(ctx context.Context, orderID uuid.UUID) (bool, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*PaymentList, error)
}

type service struct {
	repo   Repository
	orders OrderReader
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a payment reconciliation service with the required dependencies.
func NewService(repo Repository, orders OrderReader, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:   repo,
		orders: orders,
		tx:     tx,
		outbox: outbox,
	}, nil
}

func (s *service) Record(ctx context.Context, input RecordInput) (*models.Payment, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	order, err := s.orders.FindByID(ctx, input.TenantID, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	// Exact match against the grand total; partial payments are not accepted.
	if input.AmountCents != order.TotalCents {
		return nil, pkgerrors.New(pkgerrors.CodeAmountMismatch, "payment amount does not match order total").
			WithDetails(map[string]int{
				"amount_cents": input.AmountCents,
				"total_cents":  order.TotalCents,
			})
	}

	payment := &models.Payment{
		OrderID:     order.ID,
		TenantID:    order.TenantID,
		Method:      input.Method,
		Status:      enums.PaymentStatusPending,
		AmountCents: input.AmountCents,
		ReceiptURL:  input.ReceiptURL,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.Create(ctx, payment)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
		}
		payment = created

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPaymentRecorded,
			AggregateType: enums.AggregatePayment,
			AggregateID:   payment.ID,
			Version:       1,
			Data: payloads.PaymentRecordedEvent{
				PaymentID:   payment.ID,
				OrderID:     payment.OrderID,
				TenantID:    payment.TenantID,
				Method:      payment.Method,
				AmountCents: payment.AmountCents,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) Confirm(ctx context.Context, input ResolveInput) (*models.Payment, error) {
	if input.PaymentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	var payment *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.FindByID(ctx, input.TenantID, input.PaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
		}
		payment = found

		if payment.Status.IsResolved() {
			return pkgerrors.New(pkgerrors.CodeAlreadyResolved, "payment already resolved").
				WithDetails(map[string]string{"status": payment.Status.String()})
		}

		confirmed, err := repo.CountByOrderAndStatus(ctx, payment.OrderID, enums.PaymentStatusConfirmed)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count confirmed payments")
		}
		if confirmed > 0 {
			return pkgerrors.New(pkgerrors.CodeDuplicateConfirmation, "order already has a confirmed payment")
		}

		now := time.Now()
		if err := repo.Update(ctx, payment.ID, map[string]any{
			"status":       enums.PaymentStatusConfirmed,
			"confirmed_at": now,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm payment")
		}
		payment.Status = enums.PaymentStatusConfirmed
		payment.ConfirmedAt = &now

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPaymentConfirmed,
			AggregateType: enums.AggregatePayment,
			AggregateID:   payment.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.TenantID, input.ActorRole),
			Data: payloads.PaymentConfirmedEvent{
				PaymentID:   payment.ID,
				OrderID:     payment.OrderID,
				TenantID:    payment.TenantID,
				AmountCents: payment.AmountCents,
				ConfirmedAt: now,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) Reject(ctx context.Context, input ResolveInput) (*models.Payment, error) {
	if input.PaymentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	var payment *models.Payment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.FindByID(ctx, input.TenantID, input.PaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
		}
		payment = found

		if payment.Status.IsResolved() {
			return pkgerrors.New(pkgerrors.CodeAlreadyResolved, "payment already resolved").
				WithDetails(map[string]string{"status": payment.Status.String()})
		}

		updates := map[string]any{"status": enums.PaymentStatusRejected}
		if reason := strings.TrimSpace(input.Reason); reason != "" {
			updates["failure_reason"] = reason
			payment.FailureReason = &reason
		}
		if err := repo.Update(ctx, payment.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject payment")
		}
		payment.Status = enums.PaymentStatusRejected

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPaymentRejected,
			AggregateType: enums.AggregatePayment,
			AggregateID:   payment.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.TenantID, input.ActorRole),
			Data: payloads.PaymentRejectedEvent{
				PaymentID: payment.ID,
				OrderID:   payment.OrderID,
				TenantID:  payment.TenantID,
				Reason:    strings.TrimSpace(input.Reason),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) HasConfirmedPayment(ctx context.Context, orderID uuid.UUID) (bool, error) {
	if orderID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	count, err := s.repo.CountByOrderAndStatus(ctx, orderID, enums.PaymentStatusConfirmed)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count confirmed payments")
	}
	return count > 0, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	rows, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return rows, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*PaymentList, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	list, err := s.repo.List(ctx, tenantID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return list, nil
}

func buildActor(userID, tenantID uuid.UUID, role string) *outbox.ActorRef {
	if userID == uuid.Nil {
		return nil
	}
	tenant := tenantID
	return &outbox.ActorRef{
		UserID:   userID,
		TenantID: &tenant,
		Role:     role,
	}
}
