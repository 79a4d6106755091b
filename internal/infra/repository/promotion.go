package repository

import (
	"context"

	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type PromotionWriteQueries interface {
	DeletePromotion(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type PromotionRepository struct {
	queries PromotionWriteQueries
	db      sqlc.DBTX
}

func NewPromotionRepository(queries PromotionWriteQueries, db sqlc.DBTX) *PromotionRepository {
	return &PromotionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PromotionRepository) Consume(ctx context.Context, tx sqlc.DBTX, promotionID uuid.UUID) (bool, error) {
	affected, err := r.queries.DeletePromotion(ctx, tx, promotionID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to consume promotion", err)
	}
	return affected == 1, nil
}
