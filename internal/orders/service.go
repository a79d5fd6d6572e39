package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/internal/pricing"
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

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Advance(ctx context.Context, input AdvanceInput) (*models.Order, error)
	Cancel(ctx context.Context, input CancelInput) (*models.Order, error)
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*OrderList, error)
}

type service struct {
	repo     Repository
	products ProductReader
	tenants  TenantReader
	tx       txRunner
	outbox   outboxPublisher
}

// NewService builds an order lifecycle service with the required dependencies.
func NewService(repo Repository, products ProductReader, tenants TenantReader, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant reader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:     repo,
		products: products,
		tenants:  tenants,
		tx:       tx,
		outbox:   outbox,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}

	tenant, err := s.tenants.FindByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}
	if !tenant.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant is suspended")
	}

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
		}
		if item.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		productIDs = append(productIDs, item.ProductID)
	}

	found, err := s.products.FindByIDs(ctx, input.TenantID, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	lines := make([]pricing.LineInput, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product not found in catalog").
				WithDetails(map[string]string{"product_id": item.ProductID.String()})
		}
		if !product.Available {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available").
				WithDetails(map[string]string{"product_id": item.ProductID.String()})
		}
		lines = append(lines, pricing.LineInput{
			Name:           product.Name,
			UnitPriceCents: product.PriceCents,
			Qty:            item.Qty,
		})
	}

	quote, err := pricing.Compute(lines, tenant.Delivery)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate order number")
	}

	order := &models.Order{
		TenantID:         input.TenantID,
		OrderNumber:      orderNumber,
		Status:           enums.OrderStatusNew,
		SubtotalCents:    quote.SubtotalCents,
		DeliveryFeeCents: quote.DeliveryFeeCents,
		TotalCents:       quote.TotalCents,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
		CustomerAddress:  input.CustomerAddress,
		Notes:            input.Notes,
	}
	for i, item := range input.Items {
		product := byID[item.ProductID]
		productID := product.ID
		order.Items = append(order.Items, models.OrderLineItem{
			ProductID:      &productID,
			Name:           product.Name,
			UnitPriceCents: product.PriceCents,
			Qty:            item.Qty,
			TotalCents:     quote.Lines[i].TotalCents,
			Modifiers:      item.Modifiers,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		order = created

		event := &models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  enums.OrderStatusNew,
		}
		if err := repo.AppendStatusEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append status event")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Data: payloads.OrderCreatedEvent{
				OrderID:     order.ID,
				TenantID:    order.TenantID,
				OrderNumber: order.OrderNumber,
				TotalCents:  order.TotalCents,
				ItemCount:   len(order.Items),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) Advance(ctx context.Context, input AdvanceInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}

	if input.Target == enums.OrderStatusCancelled {
		return s.Cancel(ctx, CancelInput{
			TenantID:    input.TenantID,
			OrderID:     input.OrderID,
			ActorUserID: input.ActorUserID,
			ActorRole:   input.ActorRole,
		})
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.FindByID(ctx, input.TenantID, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		order = found

		if !CanAdvance(order.Status, input.Target) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "order status transition disallowed").
				WithDetails(map[string]string{
					"from": order.Status.String(),
					"to":   input.Target.String(),
				})
		}

		from := order.Status
		updates := map[string]any{"status": input.Target}
		if input.Target == enums.OrderStatusDelivered {
			now := time.Now()
			updates["delivered_at"] = now
			order.DeliveredAt = &now
		}
		if err := repo.UpdateStatus(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order.Status = input.Target

		event := &models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  input.Target,
		}
		if err := repo.AppendStatusEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append status event")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.TenantID, input.ActorRole),
			Data: payloads.OrderStatusChangedEvent{
				OrderID:     order.ID,
				TenantID:    order.TenantID,
				OrderNumber: order.OrderNumber,
				From:        from,
				To:          input.Target,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.FindByID(ctx, input.TenantID, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		order = found

		if !CanCancel(order.Status) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition, "order status transition disallowed").
				WithDetails(map[string]string{
					"from": order.Status.String(),
					"to":   enums.OrderStatusCancelled.String(),
				})
		}

		now := time.Now()
		updates := map[string]any{
			"status":       enums.OrderStatusCancelled,
			"cancelled_at": now,
		}
		if reason := strings.TrimSpace(input.Reason); reason != "" {
			updates["cancel_reason"] = reason
			order.CancelReason = &reason
		}
		if err := repo.UpdateStatus(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}
		order.Status = enums.OrderStatusCancelled
		order.CancelledAt = &now

		event := &models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  enums.OrderStatusCancelled,
		}
		if reason := strings.TrimSpace(input.Reason); reason != "" {
			event.Message = &reason
		}
		if err := repo.AppendStatusEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append status event")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCancelled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.TenantID, input.ActorRole),
			Data: payloads.OrderCancelledEvent{
				OrderID:     order.ID,
				TenantID:    order.TenantID,
				OrderNumber: order.OrderNumber,
				CancelledAt: now,
				Reason:      strings.TrimSpace(input.Reason),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, strings.TrimSpace(orderNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters Filters) (*OrderList, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	list, err := s.repo.List(ctx, tenantID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

const orderNumberAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// nextOrderNumber derives a short, human-readable order number and retries
// on the rare collision.
func (s *service) nextOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		suffix := make([]byte, 6)
		for i := range suffix {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNumberAlphabet))))
			if err != nil {
				return "", err
			}
			suffix[i] = orderNumberAlphabet[n.Int64()]
		}
		candidate := fmt.Sprintf("ORD-%s", string(suffix))
		exists, err := s.repo.ExistsOrderNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted order number attempts")
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
