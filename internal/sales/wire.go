//go:build wireinject
// +build wireinject

package sales

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/dowusu/shop-backoffice/internal/catalog/domain"
	"github.com/dowusu/shop-backoffice/internal/sales/delivery/http"
	"github.com/dowusu/shop-backoffice/internal/sales/domain"
	"github.com/dowusu/shop-backoffice/internal/sales/repository"
	"github.com/dowusu/shop-backoffice/internal/sales/usecase/command"
	"github.com/dowusu/shop-backoffice/internal/sales/usecase/query"
	"github.com/dowusu/shop-backoffice/kafka"
)

// ProvideSaleRepository provides the traced sale repository
func ProvideSaleRepository(db *gorm.DB) domain.SaleRepository {
	return repository.NewTracingSaleRepository(db)
}

// RepositorySet is the wire set for repositories
var RepositorySet = wire.NewSet(
	ProvideSaleRepository,
)

// InitializeHTTPHandler initializes the sales HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, products catalogdomain.ProductRepository, publisher *kafka.Publisher) (*http.SaleHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateSaleHandler,
		query.NewListSalesHandler,
		query.NewSalesSummaryHandler,
		http.NewSaleHandler,
	)
	return nil, nil
}
