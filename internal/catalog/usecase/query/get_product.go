package query

import (
	"context"
	"fmt"

	"github.com/dowusu/shop-backoffice/internal/catalog/domain"
)

// GetProductQuery represents the query to fetch one product
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles the get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	if q.ID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	return h.repo.FindByID(ctx, q.ID)
}
