//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/readstore"
	sqlc "storefront-checkout/internal/infra/sqlc/generated"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/tests/common/builder"
	readstoremock "storefront-checkout/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

var placedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func cartRow(productID uuid.UUID, qty int32, name, price string, stock int32) sqlc.ListCartLinesRow {
	return sqlc.ListCartLinesRow{
		ProductID:            productID,
		Quantity:             qty,
		CreatedAt:            pgconv.TimeToPgtype(placedAt),
		ProductName:          pgconv.StringToPgtype(name),
		ProductPrice:         pgconv.DecimalToNumeric(decimal.RequireFromString(price)),
		ProductStockQuantity: pgtype.Int4{Int32: stock, Valid: true},
	}
}

func removedProductRow(productID uuid.UUID, qty int32) sqlc.ListCartLinesRow {
	return sqlc.ListCartLinesRow{ProductID: productID, Quantity: qty, CreatedAt: pgconv.TimeToPgtype(placedAt)}
}

// =============================================================================
// Cart Read Tests
// =============================================================================

func TestCartReadStore_LinesForCheckout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tea, gone := uuid.New(), uuid.New()

	testCases := []struct {
		name          string
		setupMock     func(*readstoremock.MockCartViewQueries, sqlc.DBTX)
		expectLines   int
		expectedError bool
	}{
		{
			name: "success: live and removed products",
			setupMock: func(mock *readstoremock.MockCartViewQueries, db sqlc.DBTX) {
				gomock.InOrder(
					mock.EXPECT().LockCartForCheckout(ctx, db, userID).Return(uuid.New(), nil),
					mock.EXPECT().ListCartLines(ctx, db, userID).Return([]sqlc.ListCartLinesRow{
						cartRow(tea, 4, "Green Tea", "25", 10),
						removedProductRow(gone, 1),
					}, nil),
				)
			},
			expectLines: 2,
		},
		{
			name: "success: no cart yields no lines",
			setupMock: func(mock *readstoremock.MockCartViewQueries, db sqlc.DBTX) {
				mock.EXPECT().LockCartForCheckout(ctx, db, userID).Return(uuid.Nil, pgx.ErrNoRows)
			},
			expectLines: 0,
		},
		{
			name: "error: lock fails",
			setupMock: func(mock *readstoremock.MockCartViewQueries, db sqlc.DBTX) {
				mock.EXPECT().LockCartForCheckout(ctx, db, userID).Return(uuid.Nil, errDBConnectionLost)
			},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := readstoremock.NewMockCartViewQueries(ctrl)
			mockDB := &mockDBTX{}
			store := readstore.NewCartReadStore(mockQueries, mockDB)
			tc.setupMock(mockQueries, mockDB)

			lines, err := store.LinesForCheckout(ctx, userID)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			require.Len(t, lines, tc.expectLines)
			if tc.expectLines == 2 {
				require.NotNil(t, lines[0].Product)
				assert.Equal(t, "Green Tea", lines[0].Product.Name)
				assert.True(t, decimal.NewFromInt(25).Equal(lines[0].Product.UnitPrice))
				assert.Equal(t, int32(10), lines[0].Product.StockQuantity)
				assert.Nil(t, lines[1].Product, "removed product has no snapshot")
			}
		})
	}
}

func TestCartReadStore_FindByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tea, coffee, gone := uuid.New(), uuid.New(), uuid.New()

	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockCartViewQueries(ctrl)
	mockDB := &mockDBTX{}
	mockQueries.EXPECT().ListCartLines(ctx, mockDB, userID).Return([]sqlc.ListCartLinesRow{
		cartRow(tea, 2, "Green Tea", "25", 10),
		cartRow(coffee, 3, "Coffee", "10.333", 5),
		removedProductRow(gone, 1),
	}, nil)

	view, err := readstore.NewCartReadStore(mockQueries, mockDB).FindByUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, view.Lines, 3)
	assert.Equal(t, userID, view.UserID)
	assert.Equal(t, "31", view.Lines[1].LineTotal.String(), "line totals round to cents")
	assert.Equal(t, "81", view.Subtotal.String())
	assert.Equal(t, int32(6), view.ItemCount)
	assert.True(t, view.Lines[0].Available)
	assert.False(t, view.Lines[2].Available)
	assert.True(t, view.Lines[2].LineTotal.IsZero())
}

// =============================================================================
// Order Read Tests
// =============================================================================

func orderRow(id, userID uuid.UUID) sqlc.Orders {
	return sqlc.Orders{
		ID:              id,
		UserID:          userID,
		OrderNumber:     "ORD-01J0000000000000000000TEST",
		Status:          "CONFIRMED",
		Subtotal:        pgconv.DecimalToNumeric(decimal.NewFromInt(100)),
		TotalAmount:     pgconv.DecimalToNumeric(decimal.NewFromInt(80)),
		Discount:        pgconv.DecimalToNumeric(decimal.NewFromInt(20)),
		DiscountCode:    pgconv.StringToPgtype("SAVE10"),
		DiscountSource:  pgconv.StringToPgtype("promotion+points"),
		PointsUsed:      10,
		PaymentMethod:   "cod",
		ShippingName:    "Nguyen Van An",
		ShippingPhone:   "0900000000",
		ShippingAddress: "1 Le Loi",
		ShippingCity:    "Hue",
		ShippingCountry: "VN",
		CreatedAt:       pgconv.TimeToPgtype(placedAt),
		UpdatedAt:       pgconv.TimeToPgtype(placedAt.Add(30 * time.Minute)),
	}
}

func TestOrderReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	orderID, userID, productID := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		name          string
		setupMock     func(*readstoremock.MockOrderViewQueries, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: order with items and history",
			setupMock: func(mock *readstoremock.MockOrderViewQueries, db sqlc.DBTX) {
				mock.EXPECT().GetOrder(ctx, db, orderID).Return(orderRow(orderID, userID), nil)
				mock.EXPECT().ListOrderItems(ctx, db, orderID).Return([]sqlc.ListOrderItemsRow{{
					OrderID:         orderID,
					ProductID:       productID,
					Name:            "Green Tea",
					UnitPrice:       pgconv.DecimalToNumeric(decimal.NewFromInt(25)),
					Quantity:        4,
					LineTotal:       pgconv.DecimalToNumeric(decimal.NewFromInt(100)),
					ProductImageUrl: pgconv.StringToPgtype("https://cdn.example.com/tea.png"),
				}}, nil)
				mock.EXPECT().ListOrderStatusHistory(ctx, db, orderID).Return([]sqlc.OrderStatusHistory{
					{ID: 1, OrderID: orderID, Status: "NEW", Note: "Order created", ChangedAt: pgconv.TimeToPgtype(placedAt)},
					{ID: 2, OrderID: orderID, Status: "CONFIRMED", Note: "Order automatically confirmed after 30 minutes", ChangedAt: pgconv.TimeToPgtype(placedAt.Add(30 * time.Minute))},
				}, nil)
			},
		},
		{
			name: "error: order not found",
			setupMock: func(mock *readstoremock.MockOrderViewQueries, db sqlc.DBTX) {
				mock.EXPECT().GetOrder(ctx, db, orderID).Return(sqlc.Orders{}, pgx.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: items query fails",
			setupMock: func(mock *readstoremock.MockOrderViewQueries, db sqlc.DBTX) {
				mock.EXPECT().GetOrder(ctx, db, orderID).Return(orderRow(orderID, userID), nil)
				mock.EXPECT().ListOrderItems(ctx, db, orderID).Return(nil, errDBConnectionLost)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name: "error: corrupt status in row",
			setupMock: func(mock *readstoremock.MockOrderViewQueries, db sqlc.DBTX) {
				row := orderRow(orderID, userID)
				row.Status = "lost"
				mock.EXPECT().GetOrder(ctx, db, orderID).Return(row, nil)
				mock.EXPECT().ListOrderItems(ctx, db, orderID).Return(nil, nil)
				mock.EXPECT().ListOrderStatusHistory(ctx, db, orderID).Return(nil, nil)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := readstoremock.NewMockOrderViewQueries(ctrl)
			mockDB := &mockDBTX{}
			store := readstore.NewOrderReadStore(mockQueries, mockDB)
			tc.setupMock(mockQueries, mockDB)

			view, err := store.FindByID(ctx, orderID)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "CONFIRMED", view.Status)
			assert.Equal(t, "80", view.TotalAmount.String())
			require.NotNil(t, view.DiscountSource)
			assert.Equal(t, "promotion+points", *view.DiscountSource)
			assert.Equal(t, int64(10), view.PointsUsed)
			require.Len(t, view.Items, 1)
			require.NotNil(t, view.Items[0].Image)
			assert.Equal(t, "https://cdn.example.com/tea.png", *view.Items[0].Image)
			require.Len(t, view.StatusHistory, 2)
			assert.Equal(t, "Order automatically confirmed after 30 minutes", view.StatusHistory[1].Note)
			assert.Equal(t, "Hue", view.ShippingInfo.City)
		})
	}
}

func TestOrderReadStore_ListByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	first, second := uuid.New(), uuid.New()

	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockOrderViewQueries(ctrl)
	mockDB := &mockDBTX{}
	mockQueries.EXPECT().ListOrdersByUser(ctx, mockDB, sqlc.ListOrdersByUserParams{UserID: userID, Limit: 20, Offset: 40}).
		Return([]sqlc.ListOrdersByUserRow{
			{ID: first, OrderNumber: "ORD-A", Status: "NEW", TotalAmount: pgconv.DecimalToNumeric(decimal.NewFromInt(80)), Discount: pgconv.DecimalToNumeric(decimal.NewFromInt(20)), ItemCount: 2, TotalQuantity: 5, CreatedAt: pgconv.TimeToPgtype(placedAt.Add(time.Hour))},
			{ID: second, OrderNumber: "ORD-B", Status: "DELIVERED", TotalAmount: pgconv.DecimalToNumeric(decimal.NewFromInt(15)), Discount: pgconv.DecimalToNumeric(decimal.Zero), ItemCount: 1, TotalQuantity: 1, CreatedAt: pgconv.TimeToPgtype(placedAt)},
		}, nil)

	list, err := readstore.NewOrderReadStore(mockQueries, mockDB).ListByUser(ctx, userID, 20, 40)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, int32(5), list[0].TotalQuantity)
	assert.Equal(t, "DELIVERED", list[1].Status)
	assert.True(t, list[1].Discount.IsZero())
}

// =============================================================================
// Product, Promotion and Idempotency Read Tests
// =============================================================================

func TestProductReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("success: snapshot of the live product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockProductReadQueries(ctrl)
		mockDB := &mockDBTX{}
		mockQueries.EXPECT().GetProduct(ctx, mockDB, productID).Return(sqlc.Products{
			ID:            productID,
			Name:          "Green Tea",
			Price:         pgconv.DecimalToNumeric(decimal.RequireFromString("25.50")),
			StockQuantity: 7,
		}, nil)

		p, err := readstore.NewProductReadStore(mockQueries, mockDB).FindByID(ctx, productID)

		require.NoError(t, err)
		assert.Equal(t, "Green Tea", p.Name)
		assert.Equal(t, "25.5", p.Price.String())
		assert.Equal(t, int32(7), p.StockQuantity)
	})

	t.Run("error: product not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockProductReadQueries(ctrl)
		mockDB := &mockDBTX{}
		mockQueries.EXPECT().GetProduct(ctx, mockDB, productID).Return(sqlc.Products{}, pgx.ErrNoRows)

		_, err := readstore.NewProductReadStore(mockQueries, mockDB).FindByID(ctx, productID)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestPromotionReadStore_FindRedeemable(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	code, err := promotion.NewCode("WELCOME10")
	require.NoError(t, err)

	t.Run("success: row becomes a promotion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockPromotionReadQueries(ctrl)
		mockDB := &mockDBTX{}
		row := builder.NewPromotionBuilder().AsPercent(15).WithMinOrderValue(50).OwnedBy(userID).BuildInfra()
		mockQueries.EXPECT().FindRedeemablePromotion(ctx, mockDB, sqlc.FindRedeemablePromotionParams{
			Code:   "WELCOME10",
			Now:    pgconv.TimeToPgtype(placedAt),
			UserID: pgconv.UUIDToPgtype(userID),
		}).Return(row, nil)

		promo, err := readstore.NewPromotionReadStore(mockQueries, mockDB).FindRedeemable(ctx, code, userID, placedAt)

		require.NoError(t, err)
		assert.Equal(t, row.ID, promo.ID())
		assert.True(t, promo.Discount().IsPercentage())
		require.NotNil(t, promo.MinOrderValue())
		assert.Equal(t, "50", promo.MinOrderValue().String())
		require.NotNil(t, promo.OwnerID())
		assert.Equal(t, userID, *promo.OwnerID())
	})

	t.Run("error: no redeemable promotion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockPromotionReadQueries(ctrl)
		mockDB := &mockDBTX{}
		mockQueries.EXPECT().FindRedeemablePromotion(ctx, mockDB, gomock.Any()).Return(sqlc.Promotions{}, pgx.ErrNoRows)

		_, err := readstore.NewPromotionReadStore(mockQueries, mockDB).FindRedeemable(ctx, code, userID, placedAt)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestIdempotencyReadStore_Get(t *testing.T) {
	ctx := context.Background()
	key, userID, orderID := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		name        string
		row         sqlc.IdempotencyKeys
		dbErr       error
		expectOrder bool
		expectKind  infra.RepositoryErrorKind
	}{
		{
			name:        "success: completed key",
			row:         sqlc.IdempotencyKeys{Key: key, UserID: userID, Endpoint: "POST /api/orders", RequestHash: "abc", ResultOrderID: pgconv.UUIDToPgtype(orderID), ExpiresAt: pgconv.TimeToPgtype(placedAt)},
			expectOrder: true,
		},
		{
			name: "success: key claimed but not completed",
			row:  sqlc.IdempotencyKeys{Key: key, UserID: userID, Endpoint: "POST /api/orders", RequestHash: "abc", ExpiresAt: pgconv.TimeToPgtype(placedAt)},
		},
		{name: "error: unknown key", dbErr: pgx.ErrNoRows, expectKind: infra.KindNotFound},
		{name: "error: database error", dbErr: errDBConnectionLost, expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockIdempotencyReadQueries(ctrl)
			mockDB := &mockDBTX{}
			mockQueries.EXPECT().GetIdempotencyKey(ctx, mockDB, sqlc.GetIdempotencyKeyParams{Key: key, UserID: userID}).Return(tc.row, tc.dbErr)

			record, err := readstore.NewIdempotencyReadStore(mockQueries, mockDB).Get(ctx, key, userID)

			if tc.expectKind != "" {
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "abc", record.RequestHash)
			if tc.expectOrder {
				require.NotNil(t, record.ResultOrderID)
				assert.Equal(t, orderID, *record.ResultOrderID)
			} else {
				assert.Nil(t, record.ResultOrderID)
			}
		})
	}
}

// =============================================================================
// Mock DBTX
// =============================================================================

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
