package query

import (
	"context"

	"github.com/dowusu/shop-backoffice/internal/sales/domain"
)

// SalesSummaryHandler handles the sales summary query
type SalesSummaryHandler struct {
	repo domain.SaleRepository
}

// NewSalesSummaryHandler creates a new sales summary handler
func NewSalesSummaryHandler(repo domain.SaleRepository) *SalesSummaryHandler {
	return &SalesSummaryHandler{repo: repo}
}

// Handle returns ledger-wide sale count and revenue
func (h *SalesSummaryHandler) Handle(ctx context.Context) (*domain.SalesSummary, error) {
	return h.repo.Summary(ctx)
}
