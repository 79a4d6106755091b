package readstore

import (
	"context"
	"time"

	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PromotionReadQueries interface {
	FindRedeemablePromotion(ctx context.Context, db sqlc.DBTX, arg sqlc.FindRedeemablePromotionParams) (sqlc.Promotions, error)
}

type PromotionReadStore struct {
	queries PromotionReadQueries
	db      sqlc.DBTX
}

func NewPromotionReadStore(queries PromotionReadQueries, db sqlc.DBTX) *PromotionReadStore {
	return &PromotionReadStore{
		queries: queries,
		db:      db,
	}
}

// FindRedeemable matches the code exactly among unexpired promotions that are
// global or owned by userID. A user-scoped match wins over a global one.
func (r *PromotionReadStore) FindRedeemable(ctx context.Context, code promotion.Code, userID uuid.UUID, now time.Time) (*promotion.Promotion, error) {
	row, err := r.queries.FindRedeemablePromotion(ctx, r.db, sqlc.FindRedeemablePromotionParams{
		Code:   code.String(),
		Now:    pgconv.TimeToPgtype(now),
		UserID: pgconv.UUIDToPgtype(userID),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promotion not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promotion", err)
	}

	value, err := pgconv.DecimalFromNumeric(row.DiscountValue)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid promotion value", err)
	}
	minimum, err := pgconv.DecimalPtrFromNumeric(row.MinOrderValue)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid promotion minimum", err)
	}

	promo, err := promotion.Reconstruct(
		row.ID,
		row.Code,
		row.DiscountType,
		value,
		minimum,
		pgconv.UUIDPtrFromPgtype(row.UserID),
		pgconv.TimeFromPgtype(row.ExpiresAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid promotion row", err)
	}
	return promo, nil
}
