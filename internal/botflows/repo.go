package botflows

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bot flow repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, flow *models.BotFlow) (*models.BotFlow, error) {
	if err := r.db.WithContext(ctx).Create(flow).Error; err != nil {
		return nil, err
	}
	return flow, nil
}

func (r *repository) FindByID(ctx context.Context, tenantID, flowID uuid.UUID) (*models.BotFlow, error) {
	var flow models.BotFlow
	query := r.db.WithContext(ctx).Where("id = ?", flowID)
	if tenantID != uuid.Nil {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if err := query.First(&flow).Error; err != nil {
		return nil, err
	}
	return &flow, nil
}

func (r *repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.BotFlow, error) {
	var flows []models.BotFlow
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&flows).Error
	return flows, err
}

func (r *repository) Update(ctx context.Context, flowID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.BotFlow{}).
		Where("id = ?", flowID).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, flowID uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("id = ?", flowID)
	if tenantID != uuid.Nil {
		query = query.Where("tenant_id = ?", tenantID)
	}
	res := query.Delete(&models.BotFlow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
