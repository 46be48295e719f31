package command

import (
	"context"
	"fmt"

	"github.com/dowusu/shop-backoffice/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name           string
	SKU            string
	WholesalePrice float64
	RetailPrice    float64
	Stock          int
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("SKU is required")
	}
	if cmd.WholesalePrice < 0 || cmd.RetailPrice < 0 {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	if existing, _ := h.repo.FindBySKU(ctx, cmd.SKU); existing != nil {
		return nil, fmt.Errorf("SKU already exists")
	}

	product := &domain.Product{
		Name:           cmd.Name,
		SKU:            cmd.SKU,
		WholesalePrice: cmd.WholesalePrice,
		RetailPrice:    cmd.RetailPrice,
		Stock:          &domain.Stock{Quantity: cmd.Stock},
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
