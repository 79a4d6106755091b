package repository

import (
	"context"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type CartWriteQueries interface {
	UpsertCart(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) error
	AddCartItem(ctx context.Context, db sqlc.DBTX, arg sqlc.AddCartItemParams) error
	RemoveCartItem(ctx context.Context, db sqlc.DBTX, arg sqlc.RemoveCartItemParams) (int64, error)
	DeleteCart(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (int64, error)
}

type CartRepository struct {
	queries CartWriteQueries
	db      sqlc.DBTX
}

func NewCartRepository(queries CartWriteQueries, db sqlc.DBTX) *CartRepository {
	return &CartRepository{
		queries: queries,
		db:      db,
	}
}

// AddItem creates the cart on first use and adds to an existing line's quantity.
func (r *CartRepository) AddItem(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, line cart.Line) error {
	if err := r.queries.UpsertCart(ctx, tx, userID); err != nil {
		return infra.WrapRepoErr("failed to create cart", err)
	}

	err := r.queries.AddCartItem(ctx, tx, sqlc.AddCartItemParams{
		UserID:    userID,
		ProductID: line.ProductID(),
		Quantity:  line.Quantity().Int32(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to add cart item", err)
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, tx sqlc.DBTX, userID, productID uuid.UUID) (bool, error) {
	affected, err := r.queries.RemoveCartItem(ctx, tx, sqlc.RemoveCartItemParams{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to remove cart item", err)
	}
	return affected > 0, nil
}

// Delete drops the cart row; its lines go with it through the cascade.
func (r *CartRepository) Delete(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error {
	if _, err := r.queries.DeleteCart(ctx, tx, userID); err != nil {
		return infra.WrapRepoErr("failed to delete cart", err)
	}
	return nil
}
