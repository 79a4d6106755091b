//go:build unit || e2e

package builder

import (
	"time"

	"storefront-checkout/internal/domain/promotion"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PromotionBuilder struct {
	ID            uuid.UUID
	Code          string
	DiscountType  promotion.DiscountType
	DiscountValue decimal.Decimal
	MinOrderValue *decimal.Decimal
	OwnerID       *uuid.UUID
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

func NewPromotionBuilder() *PromotionBuilder {
	now := time.Now()
	return &PromotionBuilder{
		ID:            uuid.New(),
		Code:          "WELCOME10",
		DiscountType:  promotion.TypeFixed,
		DiscountValue: decimal.NewFromInt(10),
		ExpiresAt:     now.Add(30 * 24 * time.Hour),
		CreatedAt:     now,
	}
}

func (p *PromotionBuilder) With(mutate func(*PromotionBuilder)) *PromotionBuilder {
	mutate(p)
	return p
}

// Build methods
func (p *PromotionBuilder) BuildDomain() (*promotion.Promotion, error) {
	return promotion.Reconstruct(
		p.ID,
		p.Code,
		p.DiscountType.String(),
		p.DiscountValue,
		p.MinOrderValue,
		p.OwnerID,
		p.ExpiresAt,
		p.CreatedAt,
	)
}

// MustBuildDomain panics on invalid builder state; tests use it with known-good values.
func (p *PromotionBuilder) MustBuildDomain() *promotion.Promotion {
	promo, err := p.BuildDomain()
	if err != nil {
		panic(err)
	}
	return promo
}

func (p *PromotionBuilder) BuildInfra() sqlc.Promotions {
	return sqlc.Promotions{
		ID:            p.ID,
		Code:          p.Code,
		DiscountType:  p.DiscountType.String(),
		DiscountValue: pgconv.DecimalToNumeric(p.DiscountValue),
		MinOrderValue: pgconv.DecimalPtrToNumeric(p.MinOrderValue),
		UserID:        pgconv.UUIDPtrToPgtype(p.OwnerID),
		ExpiresAt:     pgconv.TimeToPgtype(p.ExpiresAt),
		CreatedAt:     pgconv.TimeToPgtype(p.CreatedAt),
	}
}

// Fluent builder methods
func (p *PromotionBuilder) WithCode(code string) *PromotionBuilder {
	p.Code = code
	return p
}

func (p *PromotionBuilder) AsPercent(value int64) *PromotionBuilder {
	p.DiscountType = promotion.TypePercent
	p.DiscountValue = decimal.NewFromInt(value)
	return p
}

func (p *PromotionBuilder) AsFixed(value int64) *PromotionBuilder {
	p.DiscountType = promotion.TypeFixed
	p.DiscountValue = decimal.NewFromInt(value)
	return p
}

func (p *PromotionBuilder) WithMinOrderValue(value int64) *PromotionBuilder {
	minimum := decimal.NewFromInt(value)
	p.MinOrderValue = &minimum
	return p
}

func (p *PromotionBuilder) OwnedBy(userID uuid.UUID) *PromotionBuilder {
	p.OwnerID = &userID
	return p
}

func (p *PromotionBuilder) ExpiringAt(at time.Time) *PromotionBuilder {
	p.ExpiresAt = at
	return p
}

func (p *PromotionBuilder) CreatedAtTime(at time.Time) *PromotionBuilder {
	p.CreatedAt = at
	return p
}
