package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups catalog products for display ordering.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Product represents a catalog item. Orders never reference live product
// rows for pricing; line items carry their own snapshot.
type Product struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	CategoryID  *uuid.UUID `gorm:"column:category_id;type:uuid"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description;not null;default:''"`
	PriceCents  int        `gorm:"column:price_cents;not null"`
	Available   bool       `gorm:"column:available;not null;default:true"`
	PrepMinutes int        `gorm:"column:prep_minutes;not null;default:0"`
	ImageURL    string     `gorm:"column:image_url;not null;default:''"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
