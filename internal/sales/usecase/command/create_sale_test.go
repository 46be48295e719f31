package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/dowusu/shop-backoffice/internal/catalog/domain"
	"github.com/dowusu/shop-backoffice/internal/sales/domain"
)

// fakeProductRepo serves a fixed product snapshot
type fakeProductRepo struct {
	products map[string]catalogdomain.Product
	err      error
	calls    int
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []string) ([]catalogdomain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []catalogdomain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*catalogdomain.Product, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*catalogdomain.Product, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeProductRepo) FindAll(ctx context.Context, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(ctx context.Context, p *catalogdomain.Product) error { return nil }
func (f *fakeProductRepo) UpdateWithStock(ctx context.Context, p *catalogdomain.Product, stockQuantity *int) error {
	return nil
}
func (f *fakeProductRepo) Delete(ctx context.Context, id string) error                { return nil }
func (f *fakeProductRepo) SetStockQuantity(ctx context.Context, productID string, quantity int) error {
	return nil
}

// fakeSaleRepo reproduces the repository's commit semantics in memory:
// the whole re-check/insert/decrement runs under one lock and either all
// effects land or none do.
type fakeSaleRepo struct {
	mu        sync.Mutex
	stocks    map[string]int
	sales     []*domain.Sale
	receipts  map[string]struct{}
	createErr error
}

func newFakeSaleRepo(stocks map[string]int) *fakeSaleRepo {
	copied := make(map[string]int, len(stocks))
	for id, qty := range stocks {
		copied[id] = qty
	}
	return &fakeSaleRepo{
		stocks:   copied,
		receipts: make(map[string]struct{}),
	}
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *domain.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	for _, item := range sale.Items {
		available, ok := f.stocks[item.ProductID]
		if !ok || available < item.Quantity {
			return &domain.StockConflictError{}
		}
	}

	if _, exists := f.receipts[sale.ReceiptNumber]; exists {
		return &domain.DuplicateReceiptError{ReceiptNumber: sale.ReceiptNumber}
	}

	decremented := make(map[string]int)
	for _, item := range sale.Items {
		if f.stocks[item.ProductID] < item.Quantity {
			// roll back partial decrements
			for id, qty := range decremented {
				f.stocks[id] += qty
			}
			return &domain.StockConflictError{}
		}
		f.stocks[item.ProductID] -= item.Quantity
		decremented[item.ProductID] += item.Quantity
	}

	sale.ID = uuid.NewString()
	sale.CreatedAt = time.Now()
	for i := range sale.Items {
		sale.Items[i].ID = uuid.NewString()
		sale.Items[i].SaleID = sale.ID
	}

	stored := *sale
	stored.Items = append([]domain.SaleItem(nil), sale.Items...)
	f.sales = append(f.sales, &stored)
	f.receipts[sale.ReceiptNumber] = struct{}{}
	return nil
}

func (f *fakeSaleRepo) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sale := range f.sales {
		if sale.ID == id {
			copied := *sale
			return &copied, nil
		}
	}
	return nil, errors.New("sale not found")
}

func (f *fakeSaleRepo) FindAll(ctx context.Context) ([]domain.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Sale, 0, len(f.sales))
	for i := len(f.sales) - 1; i >= 0; i-- {
		out = append(out, *f.sales[i])
	}
	return out, nil
}

func (f *fakeSaleRepo) Summary(ctx context.Context) (*domain.SalesSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary := &domain.SalesSummary{}
	for _, sale := range f.sales {
		summary.Count++
		summary.TotalRevenue += sale.TotalAmount
	}
	return summary, nil
}

func (f *fakeSaleRepo) stock(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stocks[productID]
}

func (f *fakeSaleRepo) saleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sales)
}

func productWithStock(id, name string, price float64, quantity int) catalogdomain.Product {
	return catalogdomain.Product{
		ID:          id,
		Name:        name,
		SKU:         "SKU-" + id,
		RetailPrice: price,
		Stock:       &catalogdomain.Stock{ProductID: id, Quantity: quantity},
	}
}

func newTestHandler(products map[string]catalogdomain.Product, stocks map[string]int) (*CreateSaleHandler, *fakeProductRepo, *fakeSaleRepo) {
	productRepo := &fakeProductRepo{products: products}
	saleRepo := newFakeSaleRepo(stocks)
	return NewCreateSaleHandler(productRepo, saleRepo, nil), productRepo, saleRepo
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateSaleHappyPath(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 19.99, 10)},
		map[string]int{"P": 10},
	)

	sale, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 39.98, sale.Subtotal)
	assert.Equal(t, 0.0, sale.Discount)
	assert.Equal(t, 39.98, sale.TotalAmount)
	assert.Equal(t, "CASH", sale.PaymentMethod)
	assert.True(t, strings.HasPrefix(sale.ReceiptNumber, "SAL-"))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 19.99, sale.Items[0].Price)
	assert.Equal(t, 39.98, sale.Items[0].Total)
	assert.Equal(t, 8, saleRepo.stock("P"))
}

func TestCreateSaleNormalizesPaymentMethod(t *testing.T) {
	handler, _, _ := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 5.00, 10)},
		map[string]int{"P": 10},
	)

	sale, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "mobile_money",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "MOBILE_MONEY", sale.PaymentMethod)
}

func TestCreateSalePriceOverride(t *testing.T) {
	handler, _, _ := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 19.99, 10)},
		map[string]int{"P": 10},
	)

	sale, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 1, Price: floatPtr(15.00)}},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, 15.00, sale.Items[0].Price)
	assert.Equal(t, 15.00, sale.Items[0].Total)
	assert.Equal(t, 15.00, sale.TotalAmount)
}

func TestCreateSaleSubtotalIsExact(t *testing.T) {
	products := map[string]catalogdomain.Product{
		"A": productWithStock("A", "Gum", 0.10, 100),
		"B": productWithStock("B", "Soda", 19.99, 100),
		"C": productWithStock("C", "Bread", 2.50, 100),
	}
	handler, _, _ := newTestHandler(products, map[string]int{"A": 100, "B": 100, "C": 100})

	sale, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CARD",
		Items: []SaleItemInput{
			{ProductID: "A", Quantity: 7},
			{ProductID: "B", Quantity: 3},
			{ProductID: "C", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 7*0.10 + 3*19.99 + 1*2.50 = 63.17, exact in cents
	assert.Equal(t, 63.17, sale.Subtotal)

	var lineSum int64
	for _, item := range sale.Items {
		lineSum += domain.ToCents(item.Total)
	}
	assert.Equal(t, domain.ToCents(sale.Subtotal), lineSum)
}

func TestCreateSaleAppliesDiscount(t *testing.T) {
	handler, _, _ := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 19.99, 10)},
		map[string]int{"P": 10},
	)

	sale, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Discount:      5.99,
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 39.98, sale.Subtotal)
	assert.Equal(t, 5.99, sale.Discount)
	assert.Equal(t, 33.99, sale.TotalAmount)
}

func TestCreateSaleValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     CreateSaleCommand
		message string
	}{
		{
			name:    "missing user id",
			cmd:     CreateSaleCommand{PaymentMethod: "CASH", Items: []SaleItemInput{{ProductID: "P", Quantity: 1}}},
			message: "userId is required",
		},
		{
			name:    "unknown payment method",
			cmd:     CreateSaleCommand{UserID: "u1", PaymentMethod: "BITCOIN", Items: []SaleItemInput{{ProductID: "P", Quantity: 1}}},
			message: `paymentMethod "BITCOIN" is invalid`,
		},
		{
			name:    "empty items",
			cmd:     CreateSaleCommand{UserID: "u1", PaymentMethod: "CASH"},
			message: "at least one sale item is required",
		},
		{
			name:    "negative discount",
			cmd:     CreateSaleCommand{UserID: "u1", PaymentMethod: "CASH", Discount: -1, Items: []SaleItemInput{{ProductID: "P", Quantity: 1}}},
			message: "discount must be a non-negative number",
		},
		{
			name:    "missing product id",
			cmd:     CreateSaleCommand{UserID: "u1", PaymentMethod: "CASH", Items: []SaleItemInput{{ProductID: "P", Quantity: 1}, {Quantity: 1}}},
			message: "item 2 is missing productId",
		},
		{
			name:    "zero quantity",
			cmd:     CreateSaleCommand{UserID: "u1", PaymentMethod: "CASH", Items: []SaleItemInput{{ProductID: "P", Quantity: 0}}},
			message: "item 1 quantity must be a positive integer",
		},
		{
			name:    "fractional quantity",
			cmd:     CreateSaleCommand{UserID: "u1", PaymentMethod: "CASH", Items: []SaleItemInput{{ProductID: "P", Quantity: 2.5}}},
			message: "item 1 quantity must be a positive integer",
		},
		{
			name:    "non-positive price override",
			cmd:     CreateSaleCommand{UserID: "u1", PaymentMethod: "CASH", Items: []SaleItemInput{{ProductID: "P", Quantity: 1, Price: floatPtr(0)}}},
			message: "item 1 price must be a positive number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, productRepo, saleRepo := newTestHandler(nil, nil)

			_, err := handler.Handle(context.Background(), tt.cmd)
			require.Error(t, err)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.message, validationErr.Error())

			// rejected before any lookup or write
			assert.Zero(t, productRepo.calls)
			assert.Zero(t, saleRepo.saleCount())
		})
	}
}

func TestCreateSaleRejectionIsIdempotent(t *testing.T) {
	handler, _, _ := newTestHandler(nil, nil)
	cmd := CreateSaleCommand{UserID: "u1", PaymentMethod: "BITCOIN", Items: []SaleItemInput{{ProductID: "P", Quantity: 1}}}

	_, first := handler.Handle(context.Background(), cmd)
	_, second := handler.Handle(context.Background(), cmd)

	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
	assert.IsType(t, first, second)
}

func TestCreateSaleReportsAllMissingProducts(t *testing.T) {
	handler, _, _ := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 1.00, 10)},
		map[string]int{"P": 10},
	)

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items: []SaleItemInput{
			{ProductID: "ghost-1", Quantity: 1},
			{ProductID: "P", Quantity: 1},
			{ProductID: "ghost-2", Quantity: 1},
		},
	})
	require.Error(t, err)

	var notFoundErr *domain.ProductsNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, []string{"ghost-1", "ghost-2"}, notFoundErr.MissingIDs)
}

func TestCreateSaleMissingStockRecord(t *testing.T) {
	product := catalogdomain.Product{ID: "P", Name: "Cola", SKU: "SKU-P", RetailPrice: 1.00}
	handler, _, _ := newTestHandler(map[string]catalogdomain.Product{"P": product}, nil)

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 1}},
	})
	require.Error(t, err)

	var missingErr *domain.MissingStockError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "Cola", missingErr.ProductName)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 1.00, 1)},
		map[string]int{"P": 1},
	)

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 2}},
	})
	require.Error(t, err)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 1, insufficientErr.Available)
	assert.Equal(t, "Cola", insufficientErr.ProductName)
	assert.Equal(t, 1, saleRepo.stock("P"))
}

// A product split across several lines is checked against its combined
// quantity, so over-asking fails up front instead of at commit.
func TestCreateSaleCombinedLineQuantitiesChecked(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 1.00, 5)},
		map[string]int{"P": 5},
	)

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items: []SaleItemInput{
			{ProductID: "P", Quantity: 3},
			{ProductID: "P", Quantity: 3},
		},
	})
	require.Error(t, err)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 6, insufficientErr.Requested)
	assert.Equal(t, 5, insufficientErr.Available)
	assert.Equal(t, 5, saleRepo.stock("P"))
}

func TestCreateSaleDuplicateLinesWithinStock(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 2.00, 10)},
		map[string]int{"P": 10},
	)

	sale, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items: []SaleItemInput{
			{ProductID: "P", Quantity: 2},
			{ProductID: "P", Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 2)
	assert.Equal(t, 10.00, sale.Subtotal)
	assert.Equal(t, 5, saleRepo.stock("P"))
}

func TestCreateSaleDiscountExceedsSubtotal(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 10.00, 10)},
		map[string]int{"P": 10},
	)

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Discount:      15.00,
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 1}},
	})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "discount cannot exceed subtotal", validationErr.Error())
	assert.Equal(t, 10, saleRepo.stock("P"))
}

func TestCreateSaleDuplicateReceipt(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 1.00, 10)},
		map[string]int{"P": 10},
	)

	cmd := CreateSaleCommand{
		ReceiptNumber: "SAL-100",
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 1}},
	}

	_, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)
	require.Error(t, err)

	var duplicateErr *domain.DuplicateReceiptError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "SAL-100", duplicateErr.ReceiptNumber)

	// only the first sale decremented stock
	assert.Equal(t, 9, saleRepo.stock("P"))
	assert.Equal(t, 1, saleRepo.saleCount())
}

// The pre-check snapshot can be stale; the commit re-check is authoritative.
func TestCreateSaleStaleSnapshotConflicts(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 1.00, 5)},
		map[string]int{"P": 1},
	)

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 3}},
	})
	require.Error(t, err)

	var conflictErr *domain.StockConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, 1, saleRepo.stock("P"))
	assert.Zero(t, saleRepo.saleCount())
}

func TestCreateSaleCommitFailureLeavesNoTrace(t *testing.T) {
	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 1.00, 10)},
		map[string]int{"P": 10},
	)
	saleRepo.createErr = errors.New("connection reset")

	_, err := handler.Handle(context.Background(), CreateSaleCommand{
		UserID:        "u1",
		PaymentMethod: "CASH",
		Items:         []SaleItemInput{{ProductID: "P", Quantity: 2}},
	})
	require.Error(t, err)

	assert.Equal(t, 10, saleRepo.stock("P"))
	assert.Zero(t, saleRepo.saleCount())

	summary, err := saleRepo.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
}

// Concurrent sales against one product must never drive its stock negative,
// no matter how the attempts interleave.
func TestCreateSaleConcurrentStockInvariant(t *testing.T) {
	const initialStock = 10
	const workers = 8
	const perSale = 3

	handler, _, saleRepo := newTestHandler(
		map[string]catalogdomain.Product{"P": productWithStock("P", "Cola", 2.00, initialStock)},
		map[string]int{"P": initialStock},
	)

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := handler.Handle(context.Background(), CreateSaleCommand{
				ReceiptNumber: fmt.Sprintf("SAL-C%d", n),
				UserID:        "u1",
				PaymentMethod: "CASH",
				Items:         []SaleItemInput{{ProductID: "P", Quantity: perSale}},
			})
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)

	committed := 0
	for err := range results {
		if err == nil {
			committed++
			continue
		}
		var conflictErr *domain.StockConflictError
		require.ErrorAs(t, err, &conflictErr)
	}

	finalStock := saleRepo.stock("P")
	assert.GreaterOrEqual(t, finalStock, 0)
	assert.Equal(t, initialStock-committed*perSale, finalStock)
	assert.LessOrEqual(t, committed*perSale, initialStock)
	assert.Equal(t, committed, saleRepo.saleCount())
}
