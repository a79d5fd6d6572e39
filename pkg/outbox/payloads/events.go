package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

// OrderCreatedEvent signals a new customer order accepted at checkout.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	OrderNumber string    `json:"order_number"`
	TotalCents  int       `json:"total_cents"`
	ItemCount   int       `json:"item_count"`
}

// OrderStatusChangedEvent is emitted on every lifecycle advancement.
type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	TenantID    uuid.UUID         `json:"tenant_id"`
	OrderNumber string            `json:"order_number"`
	From        enums.OrderStatus `json:"from"`
	To          enums.OrderStatus `json:"to"`
}

// OrderCancelledEvent is emitted whenever an order is cancelled pre-delivery.
type OrderCancelledEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	OrderNumber string    `json:"order_number"`
	CancelledAt time.Time `json:"cancelled_at"`
	Reason      string    `json:"reason,omitempty"`
}

// PaymentRecordedEvent signals a new payment claim awaiting reconciliation.
type PaymentRecordedEvent struct {
	PaymentID   uuid.UUID           `json:"payment_id"`
	OrderID     uuid.UUID           `json:"order_id"`
	TenantID    uuid.UUID           `json:"tenant_id"`
	Method      enums.PaymentMethod `json:"method"`
	AmountCents int                 `json:"amount_cents"`
}

// PaymentConfirmedEvent is emitted when staff verifies a payment against the order total.
type PaymentConfirmedEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     uuid.UUID `json:"order_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	AmountCents int       `json:"amount_cents"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// PaymentRejectedEvent carries the staff-provided rejection reason.
type PaymentRejectedEvent struct {
	PaymentID uuid.UUID `json:"payment_id"`
	OrderID   uuid.UUID `json:"order_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Reason    string    `json:"reason,omitempty"`
}

// TenantRegisteredEvent signals a new restaurant signup.
type TenantRegisteredEvent struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
}
