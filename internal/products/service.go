package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error
	ListProducts(ctx context.Context, tenantID uuid.UUID) ([]models.Product, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Product, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error
	Catalog(ctx context.Context, tenantID uuid.UUID) (*Catalog, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	product := &models.Product{
		TenantID:    input.TenantID,
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Available:   input.Available,
		PrepMinutes: input.PrepMinutes,
		ImageURL:    input.ImageURL,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*models.Product, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindProduct(ctx, input.TenantID, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		updates["name"] = name
		product.Name = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price_cents"] = *input.PriceCents
		product.PriceCents = *input.PriceCents
	}
	if input.Available != nil {
		updates["available"] = *input.Available
		product.Available = *input.Available
	}
	if input.PrepMinutes != nil {
		updates["prep_minutes"] = *input.PrepMinutes
		product.PrepMinutes = *input.PrepMinutes
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
		product.ImageURL = *input.ImageURL
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
		product.CategoryID = input.CategoryID
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := s.repo.UpdateProduct(ctx, product.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.DeleteProduct(ctx, tenantID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context, tenantID uuid.UUID) ([]models.Product, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	rows, err := s.repo.ListProducts(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func (s *service) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	return s.repo.FindByIDs(ctx, tenantID, ids)
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	category := &models.Category{
		TenantID: input.TenantID,
		Name:     name,
		Position: input.Position,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if err := s.repo.DeleteCategory(ctx, tenantID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

// Catalog builds the public menu grouped by category in display order.
func (s *service) Catalog(ctx context.Context, tenantID uuid.UUID) (*Catalog, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}

	categories, err := s.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	all, err := s.repo.ListProducts(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	byCategory := make(map[uuid.UUID][]models.Product)
	var uncategorized []models.Product
	for _, product := range all {
		if !product.Available {
			continue
		}
		if product.CategoryID == nil {
			uncategorized = append(uncategorized, product)
			continue
		}
		byCategory[*product.CategoryID] = append(byCategory[*product.CategoryID], product)
	}

	catalog := &Catalog{Uncategorized: uncategorized}
	for _, category := range categories {
		catalog.Sections = append(catalog.Sections, CatalogSection{
			Category: category,
			Products: byCategory[category.ID],
		})
	}
	return catalog, nil
}
