package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

type orderLookup interface {
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

// TimelineStep is one entry of the public order timeline.
type TimelineStep struct {
	Status     enums.OrderStatus `json:"status"`
	Message    *string           `json:"message,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Projection is the read-only view exposed on the tracking page. It
// carries no customer contact data beyond the first name already known
// to whoever holds the order number.
type Projection struct {
	OrderNumber      string            `json:"order_number"`
	Status           enums.OrderStatus `json:"status"`
	SubtotalCents    int               `json:"subtotal_cents"`
	DeliveryFeeCents int               `json:"delivery_fee_cents"`
	TotalCents       int               `json:"total_cents"`
	Items            []ItemSummary     `json:"items"`
	Timeline         []TimelineStep    `json:"timeline"`
	PaymentState     string            `json:"payment_state"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ItemSummary is a line item stripped to what the tracking page shows.
type ItemSummary struct {
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceCents int    `json:"unit_price_cents"`
	TotalCents     int    `json:"total_cents"`
}

// Service resolves tracking projections by order number.
type Service interface {
	Track(ctx context.Context, orderNumber string) (*Projection, error)
}

type service struct {
	orders orderLookup
}

// NewService builds the tracking service.
func NewService(orders orderLookup) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order lookup required")
	}
	return &service{orders: orders}, nil
}

func (s *service) Track(ctx context.Context, orderNumber string) (*Projection, error) {
	order, err := s.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	items := make([]ItemSummary, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemSummary{
			Name:           item.Name,
			Qty:            item.Qty,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}

	timeline := make([]TimelineStep, 0, len(order.StatusEvents))
	for _, event := range order.StatusEvents {
		timeline = append(timeline, TimelineStep{
			Status:     event.Status,
			Message:    event.Message,
			OccurredAt: event.CreatedAt,
		})
	}

	return &Projection{
		OrderNumber:      order.OrderNumber,
		Status:           order.Status,
		SubtotalCents:    order.SubtotalCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		TotalCents:       order.TotalCents,
		Items:            items,
		Timeline:         timeline,
		PaymentState:     paymentState(order.Payments),
		CreatedAt:        order.CreatedAt,
	}, nil
}

// paymentState collapses the payment rows into the single word shown to
// the customer: confirmed wins, then pending, then none.
func paymentState(rows []models.Payment) string {
	state := "none"
	for _, payment := range rows {
		switch payment.Status {
		case enums.PaymentStatusConfirmed:
			return "confirmed"
		case enums.PaymentStatusPending:
			state = "pending"
		}
	}
	return state
}
