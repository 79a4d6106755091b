//go:build unit || e2e

package builder

import (
	"storefront-checkout/internal/domain/order"
	reqdto "storefront-checkout/internal/handler/dto/request"
	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartLineSpec struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int32
	Stock     int32
}

type CartBuilder struct {
	UserID uuid.UUID
	Lines  []CartLineSpec
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{
		UserID: uuid.New(),
		Lines: []CartLineSpec{
			{ProductID: uuid.New(), Name: "Green Tea", Price: decimal.NewFromInt(25), Quantity: 2, Stock: 10},
		},
	}
}

func (c *CartBuilder) With(mutate func(*CartBuilder)) *CartBuilder {
	mutate(c)
	return c
}

func (c *CartBuilder) BuildRM() *readmodel.CartRM {
	view := &readmodel.CartRM{
		UserID:   c.UserID,
		Lines:    make([]readmodel.CartLineRM, 0, len(c.Lines)),
		Subtotal: decimal.Zero,
	}
	for _, l := range c.Lines {
		total := order.RoundMoney(l.Price.Mul(decimal.NewFromInt32(l.Quantity)))
		view.Lines = append(view.Lines, readmodel.CartLineRM{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Price:         l.Price,
			Quantity:      l.Quantity,
			StockQuantity: l.Stock,
			LineTotal:     total,
			Available:     true,
		})
		view.Subtotal = view.Subtotal.Add(total)
		view.ItemCount += l.Quantity
	}
	return view
}

// BuildAddRequestDTO adds the first line of the cart.
func (c *CartBuilder) BuildAddRequestDTO() reqdto.AddCartItemRequest {
	l := c.Lines[0]
	return reqdto.AddCartItemRequest{ProductID: l.ProductID, Quantity: int(l.Quantity)}
}

func (c *CartBuilder) WithUserID(userID uuid.UUID) *CartBuilder {
	c.UserID = userID
	return c
}

func (c *CartBuilder) WithLines(lines ...CartLineSpec) *CartBuilder {
	c.Lines = lines
	return c
}

func (c *CartBuilder) Empty() *CartBuilder {
	c.Lines = nil
	return c
}
