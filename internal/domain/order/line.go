package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidProduct = errors.New("invalid product in cart")
)

// InsufficientStockError names the first line whose product cannot cover the request.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for %s. Available: %d", e.ProductName, e.Available)
}

// ProductSnapshot is the product state read alongside a cart line. Nil means the product is gone.
type ProductSnapshot struct {
	Name          string
	UnitPrice     decimal.Decimal
	StockQuantity int32
}

type CartLine struct {
	ProductID uuid.UUID
	Quantity  int32
	Product   *ProductSnapshot
}

type LineItem struct {
	productID uuid.UUID
	name      string
	unitPrice decimal.Decimal
	quantity  int32
	total     decimal.Decimal
}

func ReconstructLineItem(productID uuid.UUID, name string, unitPrice decimal.Decimal, quantity int32, total decimal.Decimal) LineItem {
	return LineItem{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		total:     total,
	}
}

func (l LineItem) ProductID() uuid.UUID       { return l.productID }
func (l LineItem) Name() string               { return l.name }
func (l LineItem) UnitPrice() decimal.Decimal { return l.unitPrice }
func (l LineItem) Quantity() int32            { return l.quantity }
func (l LineItem) Total() decimal.Decimal     { return l.total }

// SnapshotLines validates every cart line in order and freezes name and price.
// The first missing product or short line aborts the whole checkout.
func SnapshotLines(lines []CartLine) ([]LineItem, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}

	items := make([]LineItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Product == nil {
			return nil, decimal.Zero, ErrInvalidProduct
		}
		if line.Quantity < 1 {
			return nil, decimal.Zero, ErrInvalidProduct
		}
		if line.Product.StockQuantity < line.Quantity {
			return nil, decimal.Zero, &InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: line.Product.Name,
				Available:   line.Product.StockQuantity,
			}
		}

		total := RoundMoney(line.Product.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity)))
		items = append(items, LineItem{
			productID: line.ProductID,
			name:      line.Product.Name,
			unitPrice: line.Product.UnitPrice,
			quantity:  line.Quantity,
			total:     total,
		})
		subtotal = subtotal.Add(total)
	}
	return items, subtotal, nil
}
