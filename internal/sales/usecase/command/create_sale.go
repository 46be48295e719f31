package command

import (
	"context"
	"fmt"
	"math"
	"strings"

	catalogdomain "github.com/dowusu/shop-backoffice/internal/catalog/domain"
	"github.com/dowusu/shop-backoffice/internal/sales/domain"
	"github.com/dowusu/shop-backoffice/kafka"
	"github.com/dowusu/shop-backoffice/pkg/logger"
)

// SaleItemInput is one requested line item. Quantity arrives as a float
// so that non-integer quantities can be rejected with a proper message
// instead of failing at JSON decode time. Price, when set, overrides the
// product's current retail price.
type SaleItemInput struct {
	ProductID string
	Quantity  float64
	Price     *float64
}

// CreateSaleCommand represents the command to record a sale
type CreateSaleCommand struct {
	ReceiptNumber string
	UserID        string
	PaymentMethod string
	Discount      float64
	Items         []SaleItemInput
}

// CreateSaleHandler validates, prices and atomically commits sales.
// All money math runs in integer cents; decimals only exist on the
// persisted record.
type CreateSaleHandler struct {
	products  catalogdomain.ProductRepository
	sales     domain.SaleRepository
	publisher *kafka.Publisher
}

// NewCreateSaleHandler creates a new create sale handler. The publisher
// may be nil, in which case no event is emitted.
func NewCreateSaleHandler(products catalogdomain.ProductRepository, sales domain.SaleRepository, publisher *kafka.Publisher) *CreateSaleHandler {
	return &CreateSaleHandler{
		products:  products,
		sales:     sales,
		publisher: publisher,
	}
}

// Handle executes the create sale command: validate the request, resolve
// products and stock, compute totals in cents, then hand the sale to the
// repository for the atomic re-check-and-decrement commit.
func (h *CreateSaleHandler) Handle(ctx context.Context, cmd CreateSaleCommand) (*domain.Sale, error) {
	method, err := h.validate(cmd)
	if err != nil {
		return nil, err
	}

	productsByID, err := h.resolveProducts(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}

	items, subtotalCents, err := priceItems(cmd.Items, productsByID)
	if err != nil {
		return nil, err
	}

	discountCents := domain.ToCents(cmd.Discount)
	if discountCents > subtotalCents {
		return nil, &domain.ValidationError{Reason: "discount cannot exceed subtotal"}
	}

	receiptNumber := strings.TrimSpace(cmd.ReceiptNumber)
	if receiptNumber == "" {
		receiptNumber = domain.GenerateReceiptNumber()
	}

	sale := &domain.Sale{
		ReceiptNumber: receiptNumber,
		UserID:        cmd.UserID,
		PaymentMethod: string(method),
		Subtotal:      domain.CentsToAmount(subtotalCents),
		Discount:      domain.CentsToAmount(discountCents),
		TotalAmount:   domain.CentsToAmount(subtotalCents - discountCents),
		Items:         items,
	}

	if err := h.sales.Create(ctx, sale); err != nil {
		return nil, err
	}

	h.publishCompleted(ctx, sale)

	persisted, err := h.sales.FindByID(ctx, sale.ID)
	if err != nil {
		// The commit already succeeded; return the sale without associations.
		logger.Warn(ctx).Err(err).Str("sale_id", sale.ID).Msg("Failed to reload persisted sale")
		return sale, nil
	}

	return persisted, nil
}

// validate applies the request-shape rules before any lookup happens.
// Every failure is a *domain.ValidationError with a stable message.
func (h *CreateSaleHandler) validate(cmd CreateSaleCommand) (domain.PaymentMethod, error) {
	if cmd.UserID == "" {
		return "", &domain.ValidationError{Reason: "userId is required"}
	}

	method, err := domain.ParsePaymentMethod(cmd.PaymentMethod)
	if err != nil {
		return "", err
	}

	if len(cmd.Items) == 0 {
		return "", &domain.ValidationError{Reason: "at least one sale item is required"}
	}

	if math.IsNaN(cmd.Discount) || math.IsInf(cmd.Discount, 0) || cmd.Discount < 0 {
		return "", &domain.ValidationError{Reason: "discount must be a non-negative number"}
	}

	for i, item := range cmd.Items {
		position := i + 1
		if item.ProductID == "" {
			return "", &domain.ValidationError{Reason: fmt.Sprintf("item %d is missing productId", position)}
		}
		if item.Quantity <= 0 || item.Quantity != math.Trunc(item.Quantity) {
			return "", &domain.ValidationError{Reason: fmt.Sprintf("item %d quantity must be a positive integer", position)}
		}
		if item.Price != nil {
			if math.IsNaN(*item.Price) || math.IsInf(*item.Price, 0) || *item.Price <= 0 {
				return "", &domain.ValidationError{Reason: fmt.Sprintf("item %d price must be a positive number", position)}
			}
		}
	}

	return method, nil
}

// resolveProducts fetches the distinct referenced products with their
// stock snapshot, reporting every missing id at once.
func (h *CreateSaleHandler) resolveProducts(ctx context.Context, items []SaleItemInput) (map[string]catalogdomain.Product, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := h.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	productsByID := make(map[string]catalogdomain.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	if len(productsByID) != len(ids) {
		var missing []string
		for _, id := range ids {
			if _, ok := productsByID[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &domain.ProductsNotFoundError{MissingIDs: missing}
	}

	return productsByID, nil
}

// priceItems turns validated inputs into persisted line items, checking the
// stock snapshot and accumulating the subtotal entirely in cents. Quantities
// are summed per product first so a sale that splits one product across
// several lines is checked against its combined demand.
func priceItems(inputs []SaleItemInput, productsByID map[string]catalogdomain.Product) ([]domain.SaleItem, int64, error) {
	requested := make(map[string]int, len(inputs))
	for _, input := range inputs {
		requested[input.ProductID] += int(input.Quantity)
	}

	checked := make(map[string]struct{}, len(requested))
	for _, input := range inputs {
		if _, ok := checked[input.ProductID]; ok {
			continue
		}
		checked[input.ProductID] = struct{}{}

		product := productsByID[input.ProductID]
		if product.Stock == nil {
			return nil, 0, &domain.MissingStockError{ProductName: product.Name}
		}
		if quantity := requested[input.ProductID]; quantity > product.Stock.Quantity {
			return nil, 0, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   quantity,
				Available:   product.Stock.Quantity,
			}
		}
	}

	items := make([]domain.SaleItem, 0, len(inputs))
	var subtotalCents int64

	for _, input := range inputs {
		product := productsByID[input.ProductID]
		quantity := int(input.Quantity)

		unitPrice := product.RetailPrice
		if input.Price != nil {
			unitPrice = *input.Price
		}
		if math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) || unitPrice <= 0 {
			return nil, 0, &domain.ValidationError{Reason: fmt.Sprintf("invalid price for %s", product.Name)}
		}

		priceCents := domain.ToCents(unitPrice)
		lineTotalCents := priceCents * int64(quantity)
		subtotalCents += lineTotalCents

		items = append(items, domain.SaleItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     domain.CentsToAmount(priceCents),
			Total:     domain.CentsToAmount(lineTotalCents),
		})
	}

	return items, subtotalCents, nil
}

func (h *CreateSaleHandler) publishCompleted(ctx context.Context, sale *domain.Sale) {
	if h.publisher == nil {
		return
	}

	event := kafka.SaleCompletedEvent{
		SaleID:        sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		UserID:        sale.UserID,
		PaymentMethod: sale.PaymentMethod,
		TotalAmount:   sale.TotalAmount,
		ItemCount:     len(sale.Items),
	}
	if err := h.publisher.PublishSaleCompleted(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Str("sale_id", sale.ID).Msg("Failed to publish sale completed event")
	}
}
