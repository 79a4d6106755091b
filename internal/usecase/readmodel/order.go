package readmodel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRM struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Image     *string         `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

type ShippingInfoRM struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type StatusHistoryRM struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type OrderRM struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	OrderNumber    string            `json:"order_number"`
	Status         string            `json:"status"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	Discount       decimal.Decimal   `json:"discount"`
	DiscountCode   *string           `json:"discount_code,omitempty"`
	DiscountSource *string           `json:"discount_source,omitempty"`
	PointsUsed     int64             `json:"points_used"`
	Items          []OrderItemRM     `json:"items"`
	ShippingInfo   ShippingInfoRM    `json:"shipping_info"`
	PaymentMethod  string            `json:"payment_method"`
	Note           *string           `json:"note,omitempty"`
	StatusHistory  []StatusHistoryRM `json:"status_history"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type OrderListRM struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	ItemCount     int32           `json:"item_count"`
	TotalQuantity int32           `json:"total_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}
