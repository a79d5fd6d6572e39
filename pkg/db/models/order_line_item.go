package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lib/pq"
)

// OrderLineItem captures the product snapshot frozen at order time.
// Product edits after creation never reach existing orders.
type OrderLineItem struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      *uuid.UUID     `gorm:"column:product_id;type:uuid"`
	Name           string         `gorm:"column:name;not null"`
	UnitPriceCents int            `gorm:"column:unit_price_cents;not null"`
	Qty            int            `gorm:"column:qty;not null"`
	TotalCents     int            `gorm:"column:total_cents;not null"`
	Modifiers      pq.StringArray `gorm:"column:modifiers;type:text[]"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
}
