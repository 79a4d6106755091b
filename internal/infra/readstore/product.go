package readstore

import (
	"context"

	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductReadQueries interface {
	GetProduct(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Products, error)
}

type ProductReadStore struct {
	queries ProductReadQueries
	db      sqlc.DBTX
}

func NewProductReadStore(queries ProductReadQueries, db sqlc.DBTX) *ProductReadStore {
	return &ProductReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	row, err := r.queries.GetProduct(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}

	price, err := pgconv.DecimalFromNumeric(row.Price)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product price", err)
	}

	return &shared.ProductSnapshot{
		ID:            row.ID,
		Name:          row.Name,
		Price:         price,
		StockQuantity: row.StockQuantity,
	}, nil
}
