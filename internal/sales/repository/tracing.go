package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/dowusu/shop-backoffice/internal/sales/domain"
)

var tracer = otel.Tracer("sales-repository")

// TracingSaleRepository wraps a SaleRepository with tracing spans
type TracingSaleRepository struct {
	inner domain.SaleRepository
}

// NewTracingSaleRepository creates a traced repository over the gorm one
func NewTracingSaleRepository(db *gorm.DB) *TracingSaleRepository {
	return &TracingSaleRepository{inner: NewGormSaleRepository(db)}
}

func (r *TracingSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	ctx, span := tracer.Start(ctx, "repository.CreateSale",
		trace.WithAttributes(
			attribute.String("sale.receipt_number", sale.ReceiptNumber),
			attribute.String("sale.payment_method", sale.PaymentMethod),
			attribute.Int("sale.item_count", len(sale.Items)),
			attribute.Float64("sale.total_amount", sale.TotalAmount),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, sale); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("sale.id", sale.ID))
	return nil
}

func (r *TracingSaleRepository) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "repository.FindSaleByID",
		trace.WithAttributes(attribute.String("sale.id", id)),
	)
	defer span.End()

	sale, err := r.inner.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return sale, nil
}

func (r *TracingSaleRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAllSales")
	defer span.End()

	sales, err := r.inner.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("sales.count", len(sales)))
	return sales, nil
}

func (r *TracingSaleRepository) Summary(ctx context.Context) (*domain.SalesSummary, error) {
	ctx, span := tracer.Start(ctx, "repository.SalesSummary")
	defer span.End()

	summary, err := r.inner.Summary(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return summary, nil
}
