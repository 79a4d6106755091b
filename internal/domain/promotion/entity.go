package promotion

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrExpired       = errors.New("promotion has expired")
	ErrNotOwner      = errors.New("promotion belongs to another user")
	ErrMinimumNotMet = errors.New("order does not meet minimum value for promotion")
)

type Promotion struct {
	id            uuid.UUID
	code          Code
	discount      Discount
	minOrderValue *decimal.Decimal
	ownerID       *uuid.UUID
	expiresAt     time.Time
	createdAt     time.Time
}

func Reconstruct(
	id uuid.UUID,
	code string,
	discountType string,
	discountValue decimal.Decimal,
	minOrderValue *decimal.Decimal,
	ownerID *uuid.UUID,
	expiresAt, createdAt time.Time,
) (*Promotion, error) {
	c, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	discount, err := NewDiscount(discountType, discountValue)
	if err != nil {
		return nil, err
	}
	if minOrderValue != nil && minOrderValue.IsNegative() {
		return nil, ErrInvalidMinimum
	}
	return &Promotion{
		id:            id,
		code:          c,
		discount:      discount,
		minOrderValue: minOrderValue,
		ownerID:       ownerID,
		expiresAt:     expiresAt,
		createdAt:     createdAt,
	}, nil
}

// IsGlobal reports whether any user may redeem the code. Global codes are never consumed.
func (p *Promotion) IsGlobal() bool {
	return p.ownerID == nil
}

func (p *Promotion) IsExpiredAt(t time.Time) bool {
	return !t.Before(p.expiresAt)
}

// ValidateFor checks expiry, ownership and minimum order value in that order.
func (p *Promotion) ValidateFor(userID uuid.UUID, subtotal decimal.Decimal, now time.Time) error {
	if p.IsExpiredAt(now) {
		return ErrExpired
	}
	if p.ownerID != nil && *p.ownerID != userID {
		return ErrNotOwner
	}
	if p.minOrderValue != nil && subtotal.LessThan(*p.minOrderValue) {
		return ErrMinimumNotMet
	}
	return nil
}

func (p *Promotion) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	return p.discount.AmountFor(subtotal)
}

func (p *Promotion) ID() uuid.UUID                   { return p.id }
func (p *Promotion) Code() Code                      { return p.code }
func (p *Promotion) Discount() Discount              { return p.discount }
func (p *Promotion) MinOrderValue() *decimal.Decimal { return p.minOrderValue }
func (p *Promotion) OwnerID() *uuid.UUID             { return p.ownerID }
func (p *Promotion) ExpiresAt() time.Time            { return p.expiresAt }
func (p *Promotion) CreatedAt() time.Time            { return p.createdAt }
