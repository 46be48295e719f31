package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/dowusu/shop-backoffice/internal/catalog/domain"
	"github.com/dowusu/shop-backoffice/internal/sales/domain"
)

type GormSaleRepository struct {
	db *gorm.DB
}

func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

func (r *GormSaleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Sale{}, &domain.SaleItem{})
}

// Create commits a sale atomically. The pre-check done by the caller is
// advisory only: other sales may have committed since, so every affected
// stock row is re-read here under SELECT ... FOR UPDATE before the sale is
// inserted and the quantities decremented. Any shortfall aborts the whole
// transaction with *domain.StockConflictError and nothing is persisted.
func (r *GormSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range sale.Items {
			var stock catalogdomain.Stock
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_id = ?", item.ProductID).
				First(&stock).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &domain.StockConflictError{}
				}
				return err
			}
			if stock.Quantity < item.Quantity {
				return &domain.StockConflictError{}
			}
		}

		if err := tx.Omit("Attendant").Create(sale).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &domain.DuplicateReceiptError{ReceiptNumber: sale.ReceiptNumber}
			}
			return err
		}

		for _, item := range sale.Items {
			res := tx.Model(&catalogdomain.Stock{}).
				Where("product_id = ? AND quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &domain.StockConflictError{}
			}
		}

		return nil
	})
}

func (r *GormSaleRepository) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithContext(ctx).
		Preload("Attendant").
		Preload("Items").
		Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *GormSaleRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.WithContext(ctx).
		Preload("Attendant").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *GormSaleRepository) Summary(ctx context.Context) (*domain.SalesSummary, error) {
	var summary domain.SalesSummary
	err := r.db.WithContext(ctx).Model(&domain.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
