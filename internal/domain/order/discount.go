package order

import (
	"github.com/shopspring/decimal"
)

// DiscountSource records where a discount came from.
type DiscountSource string

const (
	SourcePromotion          DiscountSource = "promotion"
	SourcePoints             DiscountSource = "points"
	SourcePromotionAndPoints DiscountSource = "promotion+points"
)

func (s DiscountSource) String() string {
	return string(s)
}

type Discount struct {
	amount     decimal.Decimal
	code       *string
	source     *DiscountSource
	pointsUsed int64
}

func NoDiscount() Discount {
	return Discount{amount: decimal.Zero}
}

// NewDiscount combines a promotion contribution, computed against the original
// subtotal, with redeemed points added on top. Clamping happens on the order total.
func NewDiscount(promotionAmount *decimal.Decimal, code *string, pointsUsed int64) Discount {
	d := NoDiscount()
	var source DiscountSource

	if promotionAmount != nil {
		d.amount = d.amount.Add(*promotionAmount)
		d.code = code
		source = SourcePromotion
	}
	if pointsUsed > 0 {
		d.amount = d.amount.Add(PointsToAmount(pointsUsed))
		d.pointsUsed = pointsUsed
		if source == SourcePromotion {
			source = SourcePromotionAndPoints
		} else {
			source = SourcePoints
		}
	}
	if source != "" {
		d.source = &source
	}
	d.amount = RoundMoney(d.amount)
	return d
}

func ReconstructDiscount(amount decimal.Decimal, code *string, source *DiscountSource, pointsUsed int64) Discount {
	return Discount{amount: amount, code: code, source: source, pointsUsed: pointsUsed}
}

func (d Discount) Amount() decimal.Decimal { return d.amount }
func (d Discount) Code() *string           { return d.code }
func (d Discount) Source() *DiscountSource { return d.source }
func (d Discount) PointsUsed() int64       { return d.pointsUsed }
func (d Discount) IsZero() bool            { return d.source == nil }

// ApplyTo returns the payable amount, never below zero.
func (d Discount) ApplyTo(subtotal decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(d.amount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return RoundMoney(total)
}
