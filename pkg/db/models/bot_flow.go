package models

import (
	"time"

	"github.com/google/uuid"
)

// BotFlow is one trigger/response pair of the tenant's WhatsApp bot.
// Matching is a linear scan in Position order.
type BotFlow struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Trigger   string    `gorm:"column:trigger;not null"`
	Response  string    `gorm:"column:response;not null"`
	Enabled   bool      `gorm:"column:enabled;not null;default:true"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
