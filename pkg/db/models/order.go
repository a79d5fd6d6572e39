package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

// Order is the canonical order record. Rows are never deleted; a refused
// order transitions to cancelled instead.
type Order struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID         uuid.UUID          `gorm:"column:tenant_id;type:uuid;not null;index"`
	OrderNumber      string             `gorm:"column:order_number;not null;uniqueIndex"`
	Status           enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'new'"`
	SubtotalCents    int                `gorm:"column:subtotal_cents;not null"`
	DeliveryFeeCents int                `gorm:"column:delivery_fee_cents;not null;default:0"`
	TotalCents       int                `gorm:"column:total_cents;not null"`
	CustomerName     string             `gorm:"column:customer_name;not null"`
	CustomerPhone    string             `gorm:"column:customer_phone;not null"`
	CustomerAddress  *string            `gorm:"column:customer_address"`
	Notes            *string            `gorm:"column:notes"`
	CancelReason     *string            `gorm:"column:cancel_reason"`
	Items            []OrderLineItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments         []Payment          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusEvents     []OrderStatusEvent `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DeliveredAt      *time.Time         `gorm:"column:delivered_at"`
	CancelledAt      *time.Time         `gorm:"column:cancelled_at"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderStatusEvent is one step of the order's timeline, written in the
// same transaction as the transition it records.
type OrderStatusEvent struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null"`
	Message   *string           `gorm:"column:message"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
