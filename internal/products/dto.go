package products

import (
	"github.com/google/uuid"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
)

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	TenantID    uuid.UUID
	CategoryID  *uuid.UUID
	Name        string
	Description string
	PriceCents  int
	Available   bool
	PrepMinutes int
	ImageURL    string
}

// UpdateProductInput holds optional mutation values for a product.
// Nil fields are left untouched.
type UpdateProductInput struct {
	TenantID    uuid.UUID
	ProductID   uuid.UUID
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	PriceCents  *int
	Available   *bool
	PrepMinutes *int
	ImageURL    *string
}

// CreateCategoryInput defines a new menu section.
type CreateCategoryInput struct {
	TenantID uuid.UUID
	Name     string
	Position int
}

// CatalogSection is one menu category with its products, in display order.
type CatalogSection struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// Catalog is the public menu projection for a tenant.
type Catalog struct {
	Sections      []CatalogSection `json:"sections"`
	Uncategorized []models.Product `json:"uncategorized,omitempty"`
}
