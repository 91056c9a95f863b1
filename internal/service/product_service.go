package service

import (
	"context"

	"juice-store/internal/domain"
	"juice-store/internal/repository"

	"github.com/google/uuid"
)

// ProductService defines the interface for catalog business logic
type ProductService interface {
	Create(ctx context.Context, name string, price float64, category, imageURL string, amount int) (*domain.Product, error)
	List(ctx context.Context, category string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create stores a new product under a freshly generated identifier
func (s *productService) Create(ctx context.Context, name string, price float64, category, imageURL string, amount int) (*domain.Product, error) {
	product := &domain.Product{
		ID:       uuid.NewString(),
		Name:     name,
		Price:    price,
		Category: category,
		ImageURL: imageURL,
		Amount:   amount,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// List returns products, optionally filtered by category
func (s *productService) List(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.productRepo.FindAll(ctx, category)
}

// GetByID retrieves a product by identifier
func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Update replaces every product field with the supplied values
func (s *productService) Update(ctx context.Context, product *domain.Product) error {
	return s.productRepo.Update(ctx, product)
}

// Delete removes a product by identifier
func (s *productService) Delete(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}
