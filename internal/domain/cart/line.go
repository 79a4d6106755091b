package cart

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")

const maxQuantity = 999

type Quantity int32

func NewQuantity(q int) (Quantity, error) {
	if q < 1 || q > maxQuantity {
		return 0, ErrInvalidQuantity
	}
	return Quantity(q), nil
}

func (q Quantity) Int32() int32 {
	return int32(q)
}

// Line is one product request in a cart. Adding the same product again grows the line.
type Line struct {
	productID uuid.UUID
	quantity  Quantity
}

func NewLine(productID uuid.UUID, quantity int) (Line, error) {
	q, err := NewQuantity(quantity)
	if err != nil {
		return Line{}, err
	}
	return Line{productID: productID, quantity: q}, nil
}

func (l Line) ProductID() uuid.UUID { return l.productID }
func (l Line) Quantity() Quantity   { return l.quantity }
