package kafka

import "time"

// SaleCompletedEvent is emitted after a sale commits
type SaleCompletedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	SaleID        string    `json:"sale_id"`
	ReceiptNumber string    `json:"receipt_number"`
	UserID        string    `json:"user_id"`
	PaymentMethod string    `json:"payment_method"`
	TotalAmount   float64   `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleCompleted = "sale.completed"
)

// Kafka topics
const (
	TopicSaleCompleted = "sale-completed"
)
