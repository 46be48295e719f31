//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/dowusu/shop-backoffice/internal/user/delivery/http"
	"github.com/dowusu/shop-backoffice/internal/user/domain"
	"github.com/dowusu/shop-backoffice/internal/user/repository"
	"github.com/dowusu/shop-backoffice/internal/user/usecase/command"
	"github.com/dowusu/shop-backoffice/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// RepositorySet is the wire set for repositories
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

// InitializeHTTPHandler initializes the user HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewLoginUserHandler,
		query.NewListUsersHandler,
		http.NewUserHandler,
	)
	return nil, nil
}
