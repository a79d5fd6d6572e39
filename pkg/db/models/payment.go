package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

// Payment tracks one declared settlement attempt for an order. Rejected
// payments stay on the ledger; a retry inserts a new row.
type Payment struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	TenantID      uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null;index"`
	Method        enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	Status        enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	AmountCents   int                 `gorm:"column:amount_cents;not null"`
	ReceiptURL    *string             `gorm:"column:receipt_url"`
	FailureReason *string             `gorm:"column:failure_reason"`
	ConfirmedAt   *time.Time          `gorm:"column:confirmed_at"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
