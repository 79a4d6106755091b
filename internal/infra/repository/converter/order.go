package converter

import (
	"storefront-checkout/internal/domain/order"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	d := o.Discount()
	shipping := o.Shipping()

	params := sqlc.CreateOrderParams{
		ID:              o.ID(),
		UserID:          o.UserID(),
		OrderNumber:     o.Number().String(),
		Status:          o.Status().String(),
		Subtotal:        pgconv.DecimalToNumeric(o.Subtotal()),
		TotalAmount:     pgconv.DecimalToNumeric(o.Total()),
		Discount:        pgconv.DecimalToNumeric(d.Amount()),
		DiscountCode:    pgconv.StringPtrToPgtype(d.Code()),
		PointsUsed:      d.PointsUsed(),
		PaymentMethod:   o.PaymentMethod().String(),
		ShippingName:    shipping.Name(),
		ShippingPhone:   shipping.Phone(),
		ShippingAddress: shipping.Address(),
		ShippingCity:    shipping.City(),
		ShippingCountry: shipping.Country(),
		Note:            pgconv.StringPtrToPgtype(o.Note().Value()),
		CreatedAt:       pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(o.UpdatedAt()),
	}

	if src := d.Source(); src != nil {
		params.DiscountSource = pgtype.Text{String: src.String(), Valid: true}
	} else {
		params.DiscountSource = pgtype.Text{Valid: false}
	}

	return params
}

func LineItemToParams(orderID uuid.UUID, position int, item order.LineItem) sqlc.CreateOrderItemParams {
	return sqlc.CreateOrderItemParams{
		OrderID:   orderID,
		Position:  int32(position), // #nosec G115 -- bounded by cart size
		ProductID: item.ProductID(),
		Name:      item.Name(),
		UnitPrice: pgconv.DecimalToNumeric(item.UnitPrice()),
		Quantity:  item.Quantity(),
		LineTotal: pgconv.DecimalToNumeric(item.Total()),
	}
}

func StatusChangeToParams(orderID uuid.UUID, change order.StatusChange) sqlc.AppendOrderStatusHistoryParams {
	return sqlc.AppendOrderStatusHistoryParams{
		OrderID:   orderID,
		Status:    change.Status.String(),
		Note:      change.Note,
		ChangedAt: pgconv.TimeToPgtype(change.ChangedAt),
	}
}

// OrderFromRows rebuilds the aggregate from its three tables.
func OrderFromRows(row sqlc.Orders, items []sqlc.ListOrderItemsRow, history []sqlc.OrderStatusHistory) (*order.Order, error) {
	status, err := order.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "order %s", row.ID)
	}
	number, err := order.ParseNumber(row.OrderNumber)
	if err != nil {
		return nil, errs.Wrapf(err, "order %s", row.ID)
	}

	subtotal, err := pgconv.DecimalFromNumeric(row.Subtotal)
	if err != nil {
		return nil, errs.Wrap(err, "subtotal")
	}
	total, err := pgconv.DecimalFromNumeric(row.TotalAmount)
	if err != nil {
		return nil, errs.Wrap(err, "total_amount")
	}
	discountAmount, err := pgconv.DecimalFromNumeric(row.Discount)
	if err != nil {
		return nil, errs.Wrap(err, "discount")
	}

	var source *order.DiscountSource
	if row.DiscountSource.Valid {
		s := order.DiscountSource(row.DiscountSource.String)
		source = &s
	}
	discount := order.ReconstructDiscount(discountAmount, pgconv.StringPtrFromPgtype(row.DiscountCode), source, row.PointsUsed)

	lineItems := make([]order.LineItem, 0, len(items))
	for _, it := range items {
		price, err := pgconv.DecimalFromNumeric(it.UnitPrice)
		if err != nil {
			return nil, errs.Wrap(err, "unit_price")
		}
		lineTotal, err := pgconv.DecimalFromNumeric(it.LineTotal)
		if err != nil {
			return nil, errs.Wrap(err, "line_total")
		}
		lineItems = append(lineItems, order.ReconstructLineItem(it.ProductID, it.Name, price, it.Quantity, lineTotal))
	}

	changes := make([]order.StatusChange, 0, len(history))
	for _, h := range history {
		s, err := order.NewStatus(h.Status)
		if err != nil {
			return nil, errs.Wrapf(err, "history entry %d", h.ID)
		}
		changes = append(changes, order.StatusChange{
			Status:    s,
			Note:      h.Note,
			ChangedAt: pgconv.TimeFromPgtype(h.ChangedAt),
		})
	}

	return order.Reconstruct(
		row.ID, row.UserID,
		number,
		status,
		lineItems,
		subtotal, total,
		discount,
		order.PaymentMethod(row.PaymentMethod),
		order.ReconstructShippingInfo(row.ShippingName, row.ShippingPhone, row.ShippingAddress, row.ShippingCity, row.ShippingCountry),
		order.ReconstructNote(pgconv.StringPtrFromPgtype(row.Note)),
		changes,
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
