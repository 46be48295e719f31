package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dowusu/shop-backoffice/internal/user/usecase/command"
	"github.com/dowusu/shop-backoffice/internal/user/usecase/query"
	"github.com/dowusu/shop-backoffice/pkg/logger"
)

// UserHandler handles HTTP requests for staff accounts
type UserHandler struct {
	loginHandler *command.LoginUserHandler
	listHandler  *query.ListUsersHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(loginHandler *command.LoginUserHandler, listHandler *query.ListUsersHandler) *UserHandler {
	return &UserHandler{
		loginHandler: loginHandler,
		listHandler:  listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, command.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Invalid credentials",
			})
			return
		}
		logger.Error(r.Context()).Err(err).Str("username", req.Username).Msg("Login failed")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Unable to process login",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"user":  result.User,
			"token": result.Token,
		},
	})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list users",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    users,
	})
}

// RegisterRoutes registers user routes on the router
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/users", AuthMiddleware(h.ListUsers)).Methods("GET")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
