package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dowusu/shop-backoffice/internal/sales/domain"
	"github.com/dowusu/shop-backoffice/internal/sales/usecase/command"
	"github.com/dowusu/shop-backoffice/internal/sales/usecase/query"
	userhttp "github.com/dowusu/shop-backoffice/internal/user/delivery/http"
	"github.com/dowusu/shop-backoffice/pkg/logger"
)

// SaleHandler handles HTTP requests for the sale ledger
type SaleHandler struct {
	createHandler  *command.CreateSaleHandler
	listHandler    *query.ListSalesHandler
	summaryHandler *query.SalesSummaryHandler
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(
	createHandler *command.CreateSaleHandler,
	listHandler *query.ListSalesHandler,
	summaryHandler *query.SalesSummaryHandler,
) *SaleHandler {
	return &SaleHandler{
		createHandler:  createHandler,
		listHandler:    listHandler,
		summaryHandler: summaryHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateSale handles POST /api/sales
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiptNumber string  `json:"receiptNumber"`
		UserID        string  `json:"userId"`
		PaymentMethod string  `json:"paymentMethod"`
		Discount      float64 `json:"discount"`
		Items         []struct {
			ProductID string   `json:"productId"`
			Quantity  float64  `json:"quantity"`
			Price     *float64 `json:"price"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	items := make([]command.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, command.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	sale, err := h.createHandler.Handle(r.Context(), command.CreateSaleCommand{
		ReceiptNumber: req.ReceiptNumber,
		UserID:        req.UserID,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		Items:         items,
	})
	if err != nil {
		status, message, kind := mapSaleError(err)
		saleFailuresTotal.WithLabelValues(kind).Inc()
		if status == http.StatusInternalServerError {
			logger.Error(r.Context()).Err(err).Msg("Failed to create sale")
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   message,
		})
		return
	}

	salesCreatedTotal.WithLabelValues(sale.PaymentMethod).Inc()
	saleAmountTotal.Add(sale.TotalAmount)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Sale recorded successfully",
		Data:    formatSale(sale),
	})
}

// ListSales handles GET /api/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.listHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list sales")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Unable to fetch sales",
		})
		return
	}

	formatted := make([]saleResponse, 0, len(sales))
	for i := range sales {
		formatted = append(formatted, formatSale(&sales[i]))
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    formatted,
	})
}

// SalesSummary handles GET /api/sales/summary
func (h *SaleHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to summarize sales")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Unable to summarize sales",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// RegisterRoutes registers sale routes on the router
func (h *SaleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/sales", userhttp.AuthMiddleware(h.CreateSale)).Methods("POST")
	router.HandleFunc("/api/sales", userhttp.AuthMiddleware(h.ListSales)).Methods("GET")
	router.HandleFunc("/api/sales/summary", userhttp.AuthMiddleware(h.SalesSummary)).Methods("GET")
}

// mapSaleError translates domain failures into an HTTP status, a safe
// client message and a metric label. Unknown errors stay generic.
func mapSaleError(err error) (int, string, string) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.ProductsNotFoundError
	var missingStockErr *domain.MissingStockError
	var insufficientErr *domain.InsufficientStockError
	var conflictErr *domain.StockConflictError
	var duplicateErr *domain.DuplicateReceiptError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error(), "validation"
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error(), "not_found"
	case errors.As(err, &missingStockErr):
		return http.StatusBadRequest, missingStockErr.Error(), "missing_stock"
	case errors.As(err, &insufficientErr):
		return http.StatusBadRequest, insufficientErr.Error(), "insufficient_stock"
	case errors.As(err, &conflictErr):
		return http.StatusConflict, conflictErr.Error(), "stock_conflict"
	case errors.As(err, &duplicateErr):
		return http.StatusConflict, "Receipt number must be unique", "duplicate_receipt"
	default:
		return http.StatusInternalServerError, "Unable to create sale", "internal"
	}
}

type attendantSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

type productSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type saleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Total     float64         `json:"total"`
	Product   *productSummary `json:"product,omitempty"`
}

type saleResponse struct {
	ID            string             `json:"id"`
	ReceiptNumber string             `json:"receipt_number"`
	UserID        string             `json:"user_id"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      float64            `json:"subtotal"`
	Discount      float64            `json:"discount"`
	TotalAmount   float64            `json:"total_amount"`
	CreatedAt     time.Time          `json:"created_at"`
	Attendant     *attendantSummary  `json:"attendant,omitempty"`
	Items         []saleItemResponse `json:"items"`
}

func formatSale(sale *domain.Sale) saleResponse {
	resp := saleResponse{
		ID:            sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		UserID:        sale.UserID,
		PaymentMethod: sale.PaymentMethod,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		TotalAmount:   sale.TotalAmount,
		CreatedAt:     sale.CreatedAt,
		Items:         make([]saleItemResponse, 0, len(sale.Items)),
	}

	if sale.Attendant != nil {
		resp.Attendant = &attendantSummary{
			ID:       sale.Attendant.ID,
			FullName: sale.Attendant.FullName,
			Username: sale.Attendant.Username,
		}
	}

	for _, item := range sale.Items {
		itemResp := saleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		}
		if item.Product != nil {
			itemResp.Product = &productSummary{
				ID:   item.Product.ID,
				Name: item.Product.Name,
				SKU:  item.Product.SKU,
			}
		}
		resp.Items = append(resp.Items, itemResp)
	}

	return resp
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
