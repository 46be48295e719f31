package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogdomain "github.com/dowusu/shop-backoffice/internal/catalog/domain"
	userdomain "github.com/dowusu/shop-backoffice/internal/user/domain"
)

// Sale represents one committed sale with its line items. Sales are
// immutable after creation; totals are computed in cents and stored as
// decimal amounts.
type Sale struct {
	ID            string           `json:"id" gorm:"primaryKey;size:36"`
	ReceiptNumber string           `json:"receipt_number" gorm:"uniqueIndex;not null"`
	UserID        string           `json:"user_id" gorm:"not null;index;size:36"`
	PaymentMethod string           `json:"payment_method" gorm:"not null"`
	Subtotal      float64          `json:"subtotal" gorm:"not null"`
	Discount      float64          `json:"discount" gorm:"not null;default:0"`
	TotalAmount   float64          `json:"total_amount" gorm:"not null"`
	Attendant     *userdomain.User `json:"attendant,omitempty" gorm:"foreignKey:UserID"`
	Items         []SaleItem       `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// BeforeCreate assigns a UUID primary key
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SaleItem is one product/quantity/price line within a sale. Price is
// the unit price at the time of sale, Total the cents-exact line total.
type SaleItem struct {
	ID        string                 `json:"id" gorm:"primaryKey;size:36"`
	SaleID    string                 `json:"sale_id" gorm:"not null;index;size:36"`
	ProductID string                 `json:"product_id" gorm:"not null;index;size:36"`
	Quantity  int                    `json:"quantity" gorm:"not null"`
	Price     float64                `json:"price" gorm:"not null"`
	Total     float64                `json:"total" gorm:"not null"`
	Product   *catalogdomain.Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time              `json:"created_at"`
}

// TableName specifies the table name
func (SaleItem) TableName() string {
	return "sale_items"
}

// BeforeCreate assigns a UUID primary key
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// GenerateReceiptNumber builds the fallback receipt number used when the
// caller does not supply one.
func GenerateReceiptNumber() string {
	return fmt.Sprintf("SAL-%d", time.Now().UnixMilli())
}

// SalesSummary aggregates the persisted ledger
type SalesSummary struct {
	Count        int64   `json:"count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// SaleRepository defines the contract for sale persistence. Create is the
// atomic commit of the sale ledger: within one transaction it must re-check
// every affected stock row under a row lock, insert the sale with its items
// and decrement stock, or leave no trace. Expected failures surface as
// *StockConflictError and *DuplicateReceiptError.
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, id string) (*Sale, error)
	FindAll(ctx context.Context) ([]Sale, error)
	Summary(ctx context.Context) (*SalesSummary, error)
}
