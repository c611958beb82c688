package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is a snapshot of a product line at checkout time. Price and name
// are copied so later catalog changes never rewrite order history.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Image       string    `json:"image,omitempty"`
	Price       float64   `json:"price"`
}

// OrderItems stores the item snapshots as a JSONB array
type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*i = make(OrderItems, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, i)
}

// ShippingAddress is the destination captured at checkout
type ShippingAddress struct {
	FullName   string `json:"full_name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	State      string `json:"state" binding:"required"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// PaymentResult records the simulated payment confirmation
type PaymentResult struct {
	ID           string `json:"id,omitempty"`
	Status       string `json:"status,omitempty"`
	UpdateTime   string `json:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

func (p PaymentResult) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PaymentResult) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// Order represents a placed order with embedded item snapshots.
type Order struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID       `json:"user" gorm:"type:uuid;not null;index"`
	OrderNumber     string          `json:"order_number" gorm:"not null;uniqueIndex"`
	Items           OrderItems      `json:"items" gorm:"type:jsonb;not null"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"type:jsonb;not null"`
	PaymentMethod   string          `json:"payment_method" gorm:"not null"`
	PaymentResult   *PaymentResult  `json:"payment_result,omitempty" gorm:"type:jsonb"`
	Tax             float64         `json:"tax" gorm:"not null;default:0"`
	Shipping        float64         `json:"shipping" gorm:"not null;default:0"`
	Subtotal        float64         `json:"subtotal" gorm:"not null;default:0"`
	Total           float64         `json:"total" gorm:"not null;default:0"`
	IsPaid          bool            `json:"is_paid" gorm:"not null;default:false"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `json:"is_delivered" gorm:"not null;default:false"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Status          OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt       time.Time       `json:"created_date" gorm:"column:created_date;index"`
	UpdatedAt       time.Time       `json:"updated_date" gorm:"column:updated_date"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// CreateOrderRequest represents a checkout submission
type CreateOrderRequest struct {
	OrderNumber     string          `json:"order_number" binding:"required"`
	Items           []OrderItem     `json:"items" binding:"required"`
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	Tax             float64         `json:"tax"`
	Shipping        float64         `json:"shipping"`
	Subtotal        float64         `json:"subtotal"`
	Total           float64         `json:"total"`
}
