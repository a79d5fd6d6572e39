package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/pkg/types"
)

// Tenant represents a single restaurant business on the platform.
type Tenant struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug            string               `gorm:"column:slug;not null;uniqueIndex"`
	Name            string               `gorm:"column:name;not null"`
	Description     *string              `gorm:"column:description"`
	Phone           string               `gorm:"column:phone;not null"`
	WhatsAppNumber  string               `gorm:"column:whatsapp_number;not null"`
	Address         *string              `gorm:"column:address"`
	City            *string              `gorm:"column:city"`
	Delivery        types.DeliveryConfig `gorm:"column:delivery;type:jsonb;serializer:json"`
	Hours           types.OperatingHours `gorm:"column:hours;type:jsonb;serializer:json"`
	BotFallback     *string              `gorm:"column:bot_fallback"`
	IsActive        bool                 `gorm:"column:is_active;not null;default:true"`
	SuspendedAt     *time.Time           `gorm:"column:suspended_at"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
