package repository

import (
	"context"

	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type ProductWriteQueries interface {
	DecrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementProductStockParams) (int64, error)
	RestoreProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.RestoreProductStockParams) (int64, error)
}

type ProductRepository struct {
	queries ProductWriteQueries
	db      sqlc.DBTX
}

func NewProductRepository(queries ProductWriteQueries, db sqlc.DBTX) *ProductRepository {
	return &ProductRepository{
		queries: queries,
		db:      db,
	}
}

// DecrementStock is a single guarded UPDATE; concurrent buyers can never drive stock below zero.
func (r *ProductRepository) DecrementStock(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) (bool, error) {
	affected, err := r.queries.DecrementProductStock(ctx, tx, sqlc.DecrementProductStockParams{
		Quantity: quantity,
		ID:       productID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement product stock", err)
	}
	return affected == 1, nil
}

func (r *ProductRepository) RestoreStock(ctx context.Context, tx sqlc.DBTX, productID uuid.UUID, quantity int32) error {
	// zero rows means the product was removed after the order; nothing to give back
	_, err := r.queries.RestoreProductStock(ctx, tx, sqlc.RestoreProductStockParams{
		Quantity: quantity,
		ID:       productID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to restore product stock", err)
	}
	return nil
}
