package repository

import (
	"context"

	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type PointsWriteQueries interface {
	DeductUserPoints(ctx context.Context, db sqlc.DBTX, arg sqlc.DeductUserPointsParams) (int64, error)
	RefundUserPoints(ctx context.Context, db sqlc.DBTX, arg sqlc.RefundUserPointsParams) (int64, error)
}

// PointsRepository owns the loyalty balance column on users.
type PointsRepository struct {
	queries PointsWriteQueries
	db      sqlc.DBTX
}

func NewPointsRepository(queries PointsWriteQueries, db sqlc.DBTX) *PointsRepository {
	return &PointsRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PointsRepository) Deduct(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, points int64) (bool, error) {
	affected, err := r.queries.DeductUserPoints(ctx, tx, sqlc.DeductUserPointsParams{
		Points: points,
		ID:     userID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to deduct user points", err)
	}
	return affected == 1, nil
}

func (r *PointsRepository) Refund(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, points int64) error {
	affected, err := r.queries.RefundUserPoints(ctx, tx, sqlc.RefundUserPointsParams{
		Points: points,
		ID:     userID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to refund user points", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("user not found for points refund", nil, infra.KindNotFound)
	}
	return nil
}
