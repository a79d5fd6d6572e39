package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/internal/orders"
	"github.com/restauranteos/restauranteos-backend/internal/payments"
	"github.com/restauranteos/restauranteos-backend/internal/pricing"
	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
)

type tenantResolver interface {
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
}

type productFinder interface {
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Product, error)
}

type orderCreator interface {
	Create(ctx context.Context, input orders.CreateInput) (*models.Order, error)
}

type paymentRecorder interface {
	Record(ctx context.Context, input payments.RecordInput) (*models.Payment, error)
}

// QuoteItem is one cart line sent by the storefront.
type QuoteItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
}

// QuoteInput prices a cart for a tenant resolved by slug.
type QuoteInput struct {
	TenantSlug string
	Items      []QuoteItem
}

// CheckoutItem extends a quote line with modifiers.
type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
	Modifiers []string  `json:"modifiers,omitempty"`
}

// CheckoutInput captures the customer-facing order submission.
type CheckoutInput struct {
	TenantSlug      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress *string
	Notes           *string
	PaymentMethod   *enums.PaymentMethod
	Items           []CheckoutItem
}

// CheckoutResult is the storefront response: the persisted order plus
// the WhatsApp handoff the customer uses to notify the restaurant.
type CheckoutResult struct {
	Order          *models.Order   `json:"order"`
	Payment        *models.Payment `json:"payment,omitempty"`
	HandoffMessage string          `json:"handoff_message"`
	HandoffLink    string          `json:"handoff_link"`
}

// Service orchestrates the public storefront flows.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*pricing.Quote, error)
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type service struct {
	tenants  tenantResolver
	products productFinder
	orders   orderCreator
	payments paymentRecorder
}

// NewService builds the checkout service.
func NewService(
	tenants tenantResolver,
	products productFinder,
	ordersSvc orderCreator,
	paymentsSvc paymentRecorder,
) (Service, error) {
	if tenants == nil {
		return nil, fmt.Errorf("tenant resolver required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if paymentsSvc == nil {
		return nil, fmt.Errorf("payments service required")
	}
	return &service{
		tenants:  tenants,
		products: products,
		orders:   ordersSvc,
		payments: paymentsSvc,
	}, nil
}

// Quote prices the cart without persisting anything.
func (s *service) Quote(ctx context.Context, input QuoteInput) (*pricing.Quote, error) {
	tenant, err := s.tenants.GetBySlug(ctx, input.TenantSlug)
	if err != nil {
		return nil, err
	}

	// An empty cart still quotes, pricing the delivery fee alone.
	byID := make(map[uuid.UUID]models.Product, len(input.Items))
	if len(input.Items) > 0 {
		ids := make([]uuid.UUID, 0, len(input.Items))
		for _, item := range input.Items {
			ids = append(ids, item.ProductID)
		}
		found, err := s.products.FindByIDs(ctx, tenant.ID, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		for _, product := range found {
			byID[product.ID] = product
		}
	}

	lines := make([]pricing.LineInput, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok || !product.Available {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product unavailable").
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
	return quote, nil
}

// Checkout persists the order first, optionally records the declared
// payment, and only then composes the WhatsApp handoff.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	tenant, err := s.tenants.GetBySlug(ctx, input.TenantSlug)
	if err != nil {
		return nil, err
	}

	items := make([]orders.NewOrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, orders.NewOrderItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Modifiers: item.Modifiers,
		})
	}

	order, err := s.orders.Create(ctx, orders.CreateInput{
		TenantID:        tenant.ID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Notes:           input.Notes,
		Items:           items,
	})
	if err != nil {
		return nil, err
	}

	var payment *models.Payment
	if input.PaymentMethod != nil {
		payment, err = s.payments.Record(ctx, payments.RecordInput{
			TenantID:    tenant.ID,
			OrderID:     order.ID,
			Method:      *input.PaymentMethod,
			AmountCents: order.TotalCents,
		})
		if err != nil {
			return nil, err
		}
	}

	message := ComposeHandoffMessage(tenant, order)
	return &CheckoutResult{
		Order:          order,
		Payment:        payment,
		HandoffMessage: message,
		HandoffLink:    HandoffLink(tenant, message),
	}, nil
}
