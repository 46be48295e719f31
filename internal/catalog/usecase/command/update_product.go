package command

import (
	"context"
	"fmt"

	"github.com/dowusu/shop-backoffice/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update a product.
// Nil fields are left untouched.
type UpdateProductCommand struct {
	ID             string
	Name           string
	SKU            string
	WholesalePrice *float64
	RetailPrice    *float64
	Stock          *int
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if cmd.WholesalePrice != nil && *cmd.WholesalePrice < 0 {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if cmd.RetailPrice != nil && *cmd.RetailPrice < 0 {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if cmd.Stock != nil && *cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}

	if cmd.Name != "" {
		product.Name = cmd.Name
	}
	if cmd.SKU != "" && cmd.SKU != product.SKU {
		if existing, _ := h.repo.FindBySKU(ctx, cmd.SKU); existing != nil {
			return nil, fmt.Errorf("SKU already exists")
		}
		product.SKU = cmd.SKU
	}
	if cmd.WholesalePrice != nil {
		product.WholesalePrice = *cmd.WholesalePrice
	}
	if cmd.RetailPrice != nil {
		product.RetailPrice = *cmd.RetailPrice
	}

	if err := h.repo.UpdateWithStock(ctx, product, cmd.Stock); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return h.repo.FindByID(ctx, product.ID)
}
