package commands

import (
	"context"
	"errors"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/patch"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountRequest struct {
	UserID        uuid.UUID
	Subtotal      decimal.Decimal
	PromotionCode *string
	UsePoints     order.PointsRedemption
}

// DiscountResolver turns a promotion code and a points request into one discount.
// Every check runs before the first mutation, and the mutations are conditional,
// so a rejected request leaves promotions and balances as they were once the
// surrounding transaction rolls back.
type DiscountResolver struct {
	clock clock.Clock
}

func NewDiscountResolver(clk clock.Clock) *DiscountResolver {
	return &DiscountResolver{clock: clk}
}

func (r *DiscountResolver) Resolve(ctx context.Context, tx shared.Tx, req DiscountRequest) (order.Discount, error) {
	var (
		promoAmount *decimal.Decimal
		promoCode   *string
	)

	// An absent or blank code means no promotion was requested.
	if code := patch.Trimmed(req.PromotionCode); code != "" {
		promo, err := r.findPromotion(ctx, tx, code, req)
		if err != nil {
			return order.Discount{}, err
		}

		amount := promo.DiscountFor(req.Subtotal)
		promoAmount = &amount
		c := promo.Code().String()
		promoCode = &c

		if !promo.IsGlobal() {
			consumed, err := tx.Promotions().Consume(ctx, tx.DB(), promo.ID())
			if err != nil {
				return order.Discount{}, NewCheckoutError(KindPersistence, MsgCreateOrderFailed, err)
			}
			if !consumed {
				return order.Discount{}, NewCheckoutError(KindInvalidPromotion, MsgInvalidPromotion, nil)
			}
		}
	}

	points := req.UsePoints.Int64()
	if points > 0 {
		deducted, err := tx.Points().Deduct(ctx, tx.DB(), req.UserID, points)
		if err != nil {
			return order.Discount{}, NewCheckoutError(KindPersistence, MsgCreateOrderFailed, err)
		}
		if !deducted {
			return order.Discount{}, NewCheckoutError(KindInsufficientPoints, MsgInsufficientPoints, nil)
		}
	}

	return order.NewDiscount(promoAmount, promoCode, points), nil
}

func (r *DiscountResolver) findPromotion(ctx context.Context, tx shared.Tx, raw string, req DiscountRequest) (*promotion.Promotion, error) {
	code, err := promotion.NewCode(raw)
	if err != nil {
		return nil, NewCheckoutError(KindInvalidPromotion, MsgInvalidPromotion, err)
	}

	now := r.clock.Now()
	promo, err := tx.Reads().PromotionForRedemption(ctx, code, req.UserID, now)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, NewCheckoutError(KindInvalidPromotion, MsgInvalidPromotion, err)
		}
		return nil, NewCheckoutError(KindPersistence, MsgCreateOrderFailed, err)
	}

	if err := promo.ValidateFor(req.UserID, req.Subtotal, now); err != nil {
		if errors.Is(err, promotion.ErrMinimumNotMet) {
			return nil, NewCheckoutError(KindPromotionMinimumNotMet, MsgPromotionMinimumNotMet, err)
		}
		return nil, NewCheckoutError(KindInvalidPromotion, MsgInvalidPromotion, err)
	}
	return promo, nil
}
