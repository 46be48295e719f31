package query

import (
	"context"

	"github.com/dowusu/shop-backoffice/internal/sales/domain"
)

// ListSalesHandler handles the list sales query
type ListSalesHandler struct {
	repo domain.SaleRepository
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.SaleRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle returns all sales, newest first, with attendant and items loaded
func (h *ListSalesHandler) Handle(ctx context.Context) ([]domain.Sale, error) {
	return h.repo.FindAll(ctx)
}
