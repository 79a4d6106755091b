package repository

import (
	"context"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/repository/converter"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	CreateOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderItemParams) error
	AppendOrderStatusHistory(ctx context.Context, db sqlc.DBTX, arg sqlc.AppendOrderStatusHistoryParams) error
	TransitionOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.TransitionOrderStatusParams) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

// Create writes the order row, its line snapshots and the opening history.
func (r *OrderRepository) Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error {
	if err := r.queries.CreateOrder(ctx, tx, converter.OrderToCreateParams(o)); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	for i, item := range o.Items() {
		if err := r.queries.CreateOrderItem(ctx, tx, converter.LineItemToParams(o.ID(), i, item)); err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}

	for _, change := range o.History() {
		if err := r.queries.AppendOrderStatusHistory(ctx, tx, converter.StatusChangeToParams(o.ID(), change)); err != nil {
			return infra.WrapRepoErr("failed to append order history", err)
		}
	}

	return nil
}

func (r *OrderRepository) TransitionStatus(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID, from order.Status, change order.StatusChange) (bool, error) {
	affected, err := r.queries.TransitionOrderStatus(ctx, tx, sqlc.TransitionOrderStatusParams{
		ToStatus:   change.Status.String(),
		UpdatedAt:  pgconv.TimeToPgtype(change.ChangedAt),
		ID:         orderID,
		FromStatus: from.String(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition order status", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := r.queries.AppendOrderStatusHistory(ctx, tx, converter.StatusChangeToParams(orderID, change)); err != nil {
		return false, infra.WrapRepoErr("failed to append order history", err)
	}

	return true, nil
}
