package queries

import (
	"context"

	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type CartReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*readmodel.CartRM, error)
}

type CartQueries interface {
	Get(ctx context.Context, userID uuid.UUID) (*readmodel.CartRM, error)
}

type cartQueriesImpl struct {
	store CartReadStore
}

func NewCartQueries(store CartReadStore) CartQueries {
	return &cartQueriesImpl{store: store}
}

func (q *cartQueriesImpl) Get(ctx context.Context, userID uuid.UUID) (*readmodel.CartRM, error) {
	return q.store.FindByUser(ctx, userID)
}
