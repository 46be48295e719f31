package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dowusu/shop-backoffice/internal/user/domain"
	"github.com/dowusu/shop-backoffice/pkg/auth"
)

// ErrInvalidCredentials is returned for any username/password mismatch
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginUserCommand represents the command to authenticate a staff member
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResult carries the authenticated user and the issued token
type LoginResult struct {
	User  *domain.User
	Token string
}

// LoginUserHandler handles the login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResult, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	user, err := h.repo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}
