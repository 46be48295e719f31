//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dowusu/shop-backoffice/internal/catalog/delivery/http"
	"github.com/dowusu/shop-backoffice/internal/catalog/domain"
	"github.com/dowusu/shop-backoffice/internal/catalog/repository"
	"github.com/dowusu/shop-backoffice/internal/catalog/usecase/command"
	"github.com/dowusu/shop-backoffice/internal/catalog/usecase/query"
)

// ProvideProductRepository provides the Redis-cached product repository
func ProvideProductRepository(db *gorm.DB, redisClient *redis.Client) domain.ProductRepository {
	return repository.NewCachedProductRepository(repository.NewGormProductRepository(db), redisClient)
}

// RepositorySet is the wire set for repositories
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, redisClient *redis.Client) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateProductHandler,
		command.NewUpdateProductHandler,
		command.NewDeleteProductHandler,
		query.NewListProductsHandler,
		query.NewGetProductHandler,
		http.NewProductHandler,
	)
	return nil, nil
}
