package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/danil228cmd/danisa-shop-bot/internal/dto"
	"github.com/danil228cmd/danisa-shop-bot/internal/model"
	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
	"github.com/danil228cmd/danisa-shop-bot/internal/validate"
)

// CatalogService covers categories, subcategories and products. Admin
// authorization happens in the handlers; payloads are validated here
// before the store is touched.
type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.store.Categories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if errs := validate.Category(name); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}
	cat, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}

func (s *CatalogService) Subcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	return s.store.Subcategories(ctx, categoryID)
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, categoryID int64, name string) (*model.Subcategory, error) {
	sub, err := s.store.CreateSubcategory(ctx, categoryID, name)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return sub, nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id int64) error {
	return s.store.DeleteSubcategory(ctx, id)
}

func (s *CatalogService) Products(ctx context.Context, subcategoryID int64) ([]model.Product, error) {
	return s.store.Products(ctx, subcategoryID)
}

func (s *CatalogService) Product(ctx context.Context, id int64) (*model.Product, error) {
	return s.store.Product(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	if errs := validate.Product(req.Name, req.Description, req.Price); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	main := sanitizeImage(req.ImageData)
	images := []string{}
	if main != "" {
		images = append(images, main)
	}

	p := &model.Product{
		SubcategoryID: req.SubcategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		MainImage:     main,
		Images:        images,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req dto.UpdateProductRequest) error {
	return s.store.UpdateProduct(ctx, id, repository.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

// sanitizeImage keeps only inline base64 data URLs; anything else is
// dropped. Images live in the store itself so they survive redeploys on
// ephemeral filesystems.
func sanitizeImage(imageData string) string {
	if strings.HasPrefix(imageData, "data:image") {
		return imageData
	}
	return ""
}
