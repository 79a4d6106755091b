package readstore

import (
	"context"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/repository/converter"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type OrderViewQueries interface {
	GetOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	ListOrderItems(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.ListOrderItemsRow, error)
	ListOrderStatusHistory(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderStatusHistory, error)
	ListOrdersByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserParams) ([]sqlc.ListOrdersByUserRow, error)
}

type OrderReadStore struct {
	queries OrderViewQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderViewQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

type orderRows struct {
	order   sqlc.Orders
	items   []sqlc.ListOrderItemsRow
	history []sqlc.OrderStatusHistory
}

func (r *OrderReadStore) load(ctx context.Context, id uuid.UUID) (*orderRows, error) {
	row, err := r.queries.GetOrder(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	items, err := r.queries.ListOrderItems(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}

	history, err := r.queries.ListOrderStatusHistory(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order history", err)
	}

	return &orderRows{order: row, items: items, history: history}, nil
}

// FindByID returns the customer facing view, with item images taken from the live product.
func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error) {
	rows, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return rowsToOrderRM(rows)
}

// FindAggregate rebuilds the domain order for write-side decisions.
func (r *OrderReadStore) FindAggregate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	rows, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	o, err := converter.OrderFromRows(rows.order, rows.items, rows.history)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct order", err)
	}
	return o, nil
}

func (r *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*readmodel.OrderListRM, error) {
	params := sqlc.ListOrdersByUserParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}

	rows, err := r.queries.ListOrdersByUser(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}

	result := make([]*readmodel.OrderListRM, len(rows))
	for i, row := range rows {
		total, err := pgconv.DecimalFromNumeric(row.TotalAmount)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid order total", err)
		}
		discount, err := pgconv.DecimalFromNumeric(row.Discount)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid order discount", err)
		}
		result[i] = &readmodel.OrderListRM{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			Status:        row.Status,
			TotalAmount:   total,
			Discount:      discount,
			ItemCount:     row.ItemCount,
			TotalQuantity: row.TotalQuantity,
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}

	return result, nil
}

func rowsToOrderRM(rows *orderRows) (*readmodel.OrderRM, error) {
	o, err := converter.OrderFromRows(rows.order, rows.items, rows.history)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct order", err)
	}

	items := make([]readmodel.OrderItemRM, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = readmodel.OrderItemRM{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Image:     pgconv.StringPtrFromPgtype(rows.items[i].ProductImageUrl),
			Price:     item.UnitPrice(),
			Quantity:  item.Quantity(),
			Total:     item.Total(),
		}
	}

	history := make([]readmodel.StatusHistoryRM, len(o.History()))
	for i, h := range o.History() {
		history[i] = readmodel.StatusHistoryRM{
			Status:    h.Status.String(),
			Timestamp: h.ChangedAt,
			Note:      h.Note,
		}
	}

	d := o.Discount()
	var source *string
	if s := d.Source(); s != nil {
		v := s.String()
		source = &v
	}
	shipping := o.Shipping()

	return &readmodel.OrderRM{
		ID:             o.ID(),
		UserID:         o.UserID(),
		OrderNumber:    o.Number().String(),
		Status:         o.Status().String(),
		Subtotal:       o.Subtotal(),
		TotalAmount:    o.Total(),
		Discount:       d.Amount(),
		DiscountCode:   d.Code(),
		DiscountSource: source,
		PointsUsed:     d.PointsUsed(),
		Items:          items,
		ShippingInfo: readmodel.ShippingInfoRM{
			Name:    shipping.Name(),
			Phone:   shipping.Phone(),
			Address: shipping.Address(),
			City:    shipping.City(),
			Country: shipping.Country(),
		},
		PaymentMethod: o.PaymentMethod().String(),
		Note:          o.Note().Value(),
		StatusHistory: history,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}, nil
}
