package readmodel

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineRM keeps lines whose product was removed; Available is false for them.
type CartLineRM struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	Image         *string         `json:"image,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int32           `json:"quantity"`
	StockQuantity int32           `json:"stock_quantity"`
	LineTotal     decimal.Decimal `json:"line_total"`
	Available     bool            `json:"available"`
}

type CartRM struct {
	UserID    uuid.UUID       `json:"user_id"`
	Lines     []CartLineRM    `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int32           `json:"item_count"`
}
