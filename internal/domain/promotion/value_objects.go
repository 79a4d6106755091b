package promotion

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode            = errors.New("invalid promotion code")
	ErrInvalidDiscountType    = errors.New("discount type must be percent or fixed")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidMinimum         = errors.New("minimum order value cannot be negative")
)

const maxCodeLength = 64

var hundred = decimal.NewFromInt(100)

// Code is matched exactly as stored; only surrounding whitespace is ignored.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > maxCodeLength {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	TypePercent DiscountType = "percent"
	TypeFixed   DiscountType = "fixed"
)

func (t DiscountType) String() string {
	return string(t)
}

type Discount struct {
	kind  DiscountType
	value decimal.Decimal
}

func NewDiscount(kind string, value decimal.Decimal) (Discount, error) {
	switch DiscountType(kind) {
	case TypePercent:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return Discount{}, ErrInvalidDiscountPercent
		}
	case TypeFixed:
		if value.IsNegative() {
			return Discount{}, ErrInvalidDiscountAmount
		}
	default:
		return Discount{}, ErrInvalidDiscountType
	}
	return Discount{kind: DiscountType(kind), value: value}, nil
}

func (d Discount) Type() DiscountType     { return d.kind }
func (d Discount) Value() decimal.Decimal { return d.value }
func (d Discount) IsPercentage() bool     { return d.kind == TypePercent }
func (d Discount) IsFixed() bool          { return d.kind == TypeFixed }

// AmountFor is the contribution against the undiscounted subtotal.
func (d Discount) AmountFor(subtotal decimal.Decimal) decimal.Decimal {
	if d.IsPercentage() {
		return subtotal.Mul(d.value).Div(hundred).Round(2)
	}
	return d.value
}
