package query

import (
	"context"

	"github.com/dowusu/shop-backoffice/internal/user/domain"
)

// ListUsersQuery represents the query to list staff accounts
type ListUsersQuery struct {
	Limit  int
	Offset int
}

// ListUsersHandler handles the list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the query
func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsersQuery) ([]domain.User, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	return h.repo.FindAll(ctx, q.Limit, q.Offset)
}
