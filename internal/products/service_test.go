package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
)

type stubRepo struct {
	products   []models.Product
	categories []models.Category
	updates    map[string]any
}

func (s *stubRepo) CreateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.products = append(s.products, *product)
	return product, nil
}

func (s *stubRepo) FindProduct(_ context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		if tenantID != uuid.Nil && s.products[i].TenantID != tenantID {
			continue
		}
		found := s.products[i]
		return &found, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	for _, p := range s.products {
		if p.TenantID != tenantID {
			continue
		}
		for _, id := range ids {
			if p.ID == id {
				rows = append(rows, p)
			}
		}
	}
	return rows, nil
}

func (s *stubRepo) ListProducts(_ context.Context, tenantID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	for _, p := range s.products {
		if p.TenantID == tenantID {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (s *stubRepo) UpdateProduct(_ context.Context, productID uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubRepo) DeleteProduct(_ context.Context, tenantID, productID uuid.UUID) error {
	for i := range s.products {
		if s.products[i].ID == productID && s.products[i].TenantID == tenantID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubRepo) CreateCategory(_ context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	s.categories = append(s.categories, *category)
	return category, nil
}

func (s *stubRepo) ListCategories(_ context.Context, tenantID uuid.UUID) ([]models.Category, error) {
	var rows []models.Category
	for _, c := range s.categories {
		if c.TenantID == tenantID {
			rows = append(rows, c)
		}
	}
	return rows, nil
}

func (s *stubRepo) DeleteCategory(_ context.Context, tenantID, categoryID uuid.UUID) error {
	for i := range s.categories {
		if s.categories[i].ID == categoryID && s.categories[i].TenantID == tenantID {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code())
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t, &stubRepo{})
	tenantID := uuid.New()

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{TenantID: tenantID, Name: "  "})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{TenantID: tenantID, Name: "Tacos", PriceCents: -100})
	assertCode(t, err, pkgerrors.CodeValidation)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		TenantID:   tenantID,
		Name:       " Tacos al Pastor ",
		PriceCents: 9500,
		Available:  true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.Name != "Tacos al Pastor" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo)
	tenantID := uuid.New()

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		TenantID:   tenantID,
		Name:       "Pozole",
		PriceCents: 12000,
		Available:  true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	price := 13500
	available := false
	updated, err := svc.UpdateProduct(context.Background(), UpdateProductInput{
		TenantID:   tenantID,
		ProductID:  created.ID,
		PriceCents: &price,
		Available:  &available,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.PriceCents != 13500 || updated.Available {
		t.Fatalf("unexpected updated product: %+v", updated)
	}
	if repo.updates["price_cents"] != 13500 {
		t.Fatalf("expected price update to be persisted, got %v", repo.updates)
	}
	if _, ok := repo.updates["name"]; ok {
		t.Fatal("name should not be part of a partial update")
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := newTestService(t, &stubRepo{})
	name := "Ghost"
	_, err := svc.UpdateProduct(context.Background(), UpdateProductInput{
		TenantID:  uuid.New(),
		ProductID: uuid.New(),
		Name:      &name,
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := newTestService(t, &stubRepo{})
	err := svc.DeleteProduct(context.Background(), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCatalogGroupsByCategory(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()
	tenantID := uuid.New()

	mains, err := svc.CreateCategory(ctx, CreateCategoryInput{TenantID: tenantID, Name: "Mains", Position: 1})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	drinks, err := svc.CreateCategory(ctx, CreateCategoryInput{TenantID: tenantID, Name: "Drinks", Position: 2})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if _, err := svc.CreateProduct(ctx, CreateProductInput{
		TenantID: tenantID, CategoryID: &mains.ID, Name: "Enchiladas", PriceCents: 11000, Available: true,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, CreateProductInput{
		TenantID: tenantID, CategoryID: &drinks.ID, Name: "Horchata", PriceCents: 3000, Available: true,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, CreateProductInput{
		TenantID: tenantID, Name: "Daily Special", PriceCents: 8000, Available: true,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, CreateProductInput{
		TenantID: tenantID, CategoryID: &mains.ID, Name: "Off Menu", PriceCents: 9000, Available: false,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	catalog, err := svc.Catalog(ctx, tenantID)
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(catalog.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(catalog.Sections))
	}
	if catalog.Sections[0].Category.Name != "Mains" {
		t.Fatalf("expected Mains first, got %s", catalog.Sections[0].Category.Name)
	}
	if len(catalog.Sections[0].Products) != 1 {
		t.Fatalf("expected only available products in section, got %d", len(catalog.Sections[0].Products))
	}
	if len(catalog.Uncategorized) != 1 || catalog.Uncategorized[0].Name != "Daily Special" {
		t.Fatalf("unexpected uncategorized products: %+v", catalog.Uncategorized)
	}
}
