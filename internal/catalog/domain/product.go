package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog entry. Every product owns exactly one
// stock record carrying its available quantity.
type Product struct {
	ID             string         `json:"id" gorm:"primaryKey;size:36"`
	Name           string         `json:"name" gorm:"not null"`
	SKU            string         `json:"sku" gorm:"uniqueIndex;not null"`
	WholesalePrice float64        `json:"wholesale_price"`
	RetailPrice    float64        `json:"retail_price" gorm:"not null"`
	Stock          *Stock         `json:"stock,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a UUID primary key
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Stock holds the available quantity for a product (1:1)
type Stock struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex;not null;size:36"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Stock) TableName() string {
	return "stocks"
}

// BeforeCreate assigns a UUID primary key
func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ProductRepository defines the contract for product data access.
// UpdateWithStock persists the product row and, when stockQuantity is
// non-nil, the stock quantity in one transaction so neither lands alone.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	UpdateWithStock(ctx context.Context, product *Product, stockQuantity *int) error
	Delete(ctx context.Context, id string) error
	SetStockQuantity(ctx context.Context, productID string, quantity int) error
}
