package readstore

import (
	"context"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartViewQueries interface {
	LockCartForCheckout(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (uuid.UUID, error)
	ListCartLines(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.ListCartLinesRow, error)
}

type CartReadStore struct {
	queries CartViewQueries
	db      sqlc.DBTX
}

func NewCartReadStore(queries CartViewQueries, db sqlc.DBTX) *CartReadStore {
	return &CartReadStore{
		queries: queries,
		db:      db,
	}
}

// LinesForCheckout must run inside a transaction: the cart row stays locked until commit,
// so a second checkout for the same user waits and then finds no cart.
func (r *CartReadStore) LinesForCheckout(ctx context.Context, userID uuid.UUID) ([]order.CartLine, error) {
	if _, err := r.queries.LockCartForCheckout(ctx, r.db, userID); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to lock cart", err)
	}

	rows, err := r.queries.ListCartLines(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart lines", err)
	}

	lines := make([]order.CartLine, 0, len(rows))
	for _, row := range rows {
		line := order.CartLine{ProductID: row.ProductID, Quantity: row.Quantity}
		if row.ProductName.Valid {
			price, err := pgconv.DecimalFromNumeric(row.ProductPrice)
			if err != nil {
				return nil, infra.WrapRepoErr("invalid product price", err)
			}
			line.Product = &order.ProductSnapshot{
				Name:          row.ProductName.String,
				UnitPrice:     price,
				StockQuantity: row.ProductStockQuantity.Int32,
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// FindByUser returns the cart view. A user without a cart gets an empty one.
func (r *CartReadStore) FindByUser(ctx context.Context, userID uuid.UUID) (*readmodel.CartRM, error) {
	rows, err := r.queries.ListCartLines(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart lines", err)
	}

	view := &readmodel.CartRM{
		UserID:   userID,
		Lines:    make([]readmodel.CartLineRM, 0, len(rows)),
		Subtotal: decimal.Zero,
	}
	for _, row := range rows {
		line := readmodel.CartLineRM{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Price:     decimal.Zero,
			LineTotal: decimal.Zero,
		}
		if row.ProductName.Valid {
			price, err := pgconv.DecimalFromNumeric(row.ProductPrice)
			if err != nil {
				return nil, infra.WrapRepoErr("invalid product price", err)
			}
			line.Name = row.ProductName.String
			line.Image = pgconv.StringPtrFromPgtype(row.ProductImageUrl)
			line.Price = price
			line.StockQuantity = row.ProductStockQuantity.Int32
			line.LineTotal = order.RoundMoney(price.Mul(decimal.NewFromInt32(row.Quantity)))
			line.Available = true
			view.Subtotal = view.Subtotal.Add(line.LineTotal)
		}
		view.ItemCount += row.Quantity
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}
