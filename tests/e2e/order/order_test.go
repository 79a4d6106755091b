//go:build e2e

package order_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/domain/user"
	reqdto "storefront-checkout/internal/handler/dto/request"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/tests/common/builder"
	"storefront-checkout/tests/common/dbtest"
	"storefront-checkout/tests/common/httptest"
	"storefront-checkout/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	ordersURL      = "/api/orders"
	orderURL       = "/api/orders/%s"
	cancelOrderURL = "/api/orders/%s/cancel"
	orderStatusURL = "/api/orders/%s/status"
)

type OrderSuite struct {
	e2e.SharedSuite
}

func (s *OrderSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OrderSuite))
}

func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }

// placeOrder seeds a customer with one cart line and places the order through the API.
func (s *OrderSuite) placeOrder(t *testing.T, email string) (uuid.UUID, uuid.UUID, *resdto.OrderResponse) {
	t.Helper()

	userID := dbtest.CreateTestUser(t, s.DB, email, 0)
	productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
	dbtest.AddCartItem(t, s.DB, userID, productID, 2)

	reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res resdto.PlaceOrderResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	require.NotNil(t, res.Order)
	return userID, productID, res.Order
}

func (s *OrderSuite) fetchOrder(t *testing.T, orderID uuid.UUID, token string) *resdto.OrderResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, orderID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res resdto.OrderEnvelope
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res.Order
}

// =============================================================================
// TestPlaceOrder - checkout finalization
// =============================================================================

func (s *OrderSuite) TestPlaceOrder() {
	s.Run("Normal case: promotion and points are applied and every side effect lands", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", 100)
		productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
		dbtest.AddCartItem(t, s.DB, userID, productID, 4)
		promoID := dbtest.CreateTestPromotion(t, s.DB, dbtest.PromotionSeed{Code: "WELCOME10", Value: "10", OwnerID: &userID})

		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
		reqBody.PromotionCode = strPtr("WELCOME10")
		reqBody.UsePoints = int64Ptr(20)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Empty(t, w.Header().Get("Idempotent-Replayed"))

		var res resdto.PlaceOrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.True(t, res.Success)
		require.Equal(t, "Order placed successfully", res.Message)

		expected := &resdto.OrderResponse{
			UserID:         userID,
			Status:         string(order.StatusNew),
			Subtotal:       "100.00",
			TotalAmount:    "70.00",
			Discount:       "30.00",
			DiscountCode:   strPtr("WELCOME10"),
			DiscountSource: strPtr(string(order.SourcePromotionAndPoints)),
			PointsUsed:     20,
			Items: []resdto.OrderItemResponse{
				{ProductID: productID, Name: "Green Tea", Price: "25.00", Quantity: 4, Total: "100.00"},
			},
			ShippingInfo: resdto.ShippingInfoResponse{
				Name:    reqBody.ShippingInfo.Name,
				Phone:   reqBody.ShippingInfo.Phone,
				Address: reqBody.ShippingInfo.Address,
				City:    reqBody.ShippingInfo.City,
				Country: reqBody.ShippingInfo.Country,
			},
			PaymentMethod: reqBody.PaymentMethod,
			StatusHistory: []resdto.StatusHistoryResponse{{Status: string(order.StatusNew)}},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.OrderResponse{}, "ID", "OrderNumber", "Note", "CreatedAt", "UpdatedAt"),
			cmpopts.IgnoreFields(resdto.StatusHistoryResponse{}, "Timestamp", "Note"),
		}
		if diff := cmp.Diff(expected, res.Order, opts...); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		assert.NotEmpty(t, res.Order.OrderNumber)

		assert.Equal(t, int32(6), dbtest.Stock(t, s.DB, productID))
		assert.Equal(t, int64(80), dbtest.Points(t, s.DB, userID))
		assert.Zero(t, dbtest.Count(t, s.DB, "carts", "user_id = $1", userID))
		assert.Zero(t, dbtest.Count(t, s.DB, "cart_items", "user_id = $1", userID))
		assert.Zero(t, dbtest.Count(t, s.DB, "promotions", "id = $1", promoID))
		assert.Equal(t, 1, dbtest.Count(t, s.DB, "scheduled_jobs", "status = 'queued' AND payload->>'order_id' = $1", res.Order.ID.String()))
	})

	s.Run("Normal case: global promotion stays redeemable for other customers", func() {
		t := s.T()

		promoID := dbtest.CreateTestPromotion(t, s.DB, dbtest.PromotionSeed{Code: "SPRING15", Type: "percent", Value: "15"})
		userID := dbtest.CreateTestUser(t, s.DB, "spring@example.com", 0)
		productID := dbtest.CreateTestProduct(t, s.DB, "Oolong", "33.33", 5)
		dbtest.AddCartItem(t, s.DB, userID, productID, 1)

		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
		reqBody.PromotionCode = strPtr("  SPRING15  ")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res resdto.PlaceOrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		assert.Equal(t, "5.00", res.Order.Discount.String())
		assert.Equal(t, "28.33", res.Order.TotalAmount.String())
		assert.Equal(t, 1, dbtest.Count(t, s.DB, "promotions", "id = $1", promoID))
	})

	s.Run("Normal case: discount larger than the subtotal clamps the total at zero", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "bigspender@example.com", 500)
		productID := dbtest.CreateTestProduct(t, s.DB, "Sencha", "12.00", 5)
		dbtest.AddCartItem(t, s.DB, userID, productID, 1)

		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
		reqBody.UsePoints = int64Ptr(50)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res resdto.PlaceOrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		assert.Equal(t, "0.00", res.Order.TotalAmount.String())
		assert.Equal(t, int64(450), dbtest.Points(t, s.DB, userID))
	})

	s.Run("Exception case: checkout failures leave stock, points and cart untouched", func() {
		testCases := []struct {
			name        string
			stock       int32
			points      int64
			promo       *dbtest.PromotionSeed
			mutate      func(r *reqdto.PlaceOrderRequest)
			expectedMsg string
		}{
			{
				name:        "insufficient stock",
				stock:       2,
				points:      100,
				mutate:      func(r *reqdto.PlaceOrderRequest) { r.UsePoints = int64Ptr(10) },
				expectedMsg: "Not enough stock for Green Tea. Available: 2",
			},
			{
				name:        "insufficient points",
				stock:       10,
				points:      5,
				mutate:      func(r *reqdto.PlaceOrderRequest) { r.UsePoints = int64Ptr(10) },
				expectedMsg: commands.MsgInsufficientPoints,
			},
			{
				name:        "unknown promotion code",
				stock:       10,
				points:      100,
				mutate:      func(r *reqdto.PlaceOrderRequest) { r.PromotionCode = strPtr("NOPE") },
				expectedMsg: commands.MsgInvalidPromotion,
			},
			{
				name:   "expired promotion",
				stock:  10,
				points: 100,
				promo:  &dbtest.PromotionSeed{Code: "OLD5", Value: "5", ExpiresAt: time.Now().Add(-time.Hour)},
				mutate: func(r *reqdto.PlaceOrderRequest) {
					r.PromotionCode = strPtr("OLD5")
					r.UsePoints = int64Ptr(10)
				},
				expectedMsg: commands.MsgInvalidPromotion,
			},
			{
				name:        "promotion minimum not met",
				stock:       10,
				points:      100,
				promo:       &dbtest.PromotionSeed{Code: "BIG50", Value: "50", MinOrderValue: strPtr("500")},
				mutate:      func(r *reqdto.PlaceOrderRequest) { r.PromotionCode = strPtr("BIG50") },
				expectedMsg: commands.MsgPromotionMinimumNotMet,
			},
			{
				name:        "negative points",
				stock:       10,
				points:      100,
				mutate:      func(r *reqdto.PlaceOrderRequest) { r.UsePoints = int64Ptr(-1) },
				expectedMsg: commands.MsgNegativePoints,
			},
			{
				name:        "missing shipping info",
				stock:       10,
				points:      100,
				mutate:      func(r *reqdto.PlaceOrderRequest) { r.ShippingInfo = nil },
				expectedMsg: commands.MsgMissingCheckoutDetails,
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				t := s.T()

				userID := dbtest.CreateTestUser(t, s.DB, "rollback@example.com", tc.points)
				productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", tc.stock)
				dbtest.AddCartItem(t, s.DB, userID, productID, 4)
				if tc.promo != nil {
					dbtest.CreateTestPromotion(t, s.DB, *tc.promo)
				}

				reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
				tc.mutate(&reqBody)

				w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
				httptest.AssertErrorResponse(t, w, http.StatusBadRequest, tc.expectedMsg)

				assert.Equal(t, tc.stock, dbtest.Stock(t, s.DB, productID))
				assert.Equal(t, tc.points, dbtest.Points(t, s.DB, userID))
				assert.Equal(t, 1, dbtest.Count(t, s.DB, "cart_items", "user_id = $1", userID))
				assert.Zero(t, dbtest.Count(t, s.DB, "orders", ""))
				assert.Zero(t, dbtest.Count(t, s.DB, "scheduled_jobs", ""))
			})
		}
	})

	s.Run("Exception case: rejected points keep a user-scoped promotion unused", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "keeper@example.com", 5)
		productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
		dbtest.AddCartItem(t, s.DB, userID, productID, 1)
		promoID := dbtest.CreateTestPromotion(t, s.DB, dbtest.PromotionSeed{Code: "MINE5", Value: "5", OwnerID: &userID})

		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
		reqBody.PromotionCode = strPtr("MINE5")
		reqBody.UsePoints = int64Ptr(10)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, commands.MsgInsufficientPoints)
		assert.Equal(t, 1, dbtest.Count(t, s.DB, "promotions", "id = $1", promoID))
	})

	s.Run("Exception case: another customer's promotion is not redeemable", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", 0)
		userID := dbtest.CreateTestUser(t, s.DB, "other@example.com", 0)
		productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
		dbtest.AddCartItem(t, s.DB, userID, productID, 1)
		dbtest.CreateTestPromotion(t, s.DB, dbtest.PromotionSeed{Code: "PRIVATE", Value: "5", OwnerID: &ownerID})

		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
		reqBody.PromotionCode = strPtr("PRIVATE")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, commands.MsgInvalidPromotion)
	})

	s.Run("Exception case: empty cart", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "empty@example.com", 0)
		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, commands.MsgEmptyCart)
	})

	s.Run("Exception case: 401 without a valid token", func() {
		t := s.T()
		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
		userID := uuid.New()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Not authorized")

		expired := s.Auth.CreateExpiredToken(t, userID, user.RoleViewer)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, expired)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Not authorized")
	})
}

// =============================================================================
// TestIdempotentPlacement - Idempotency-Key replay
// =============================================================================

func (s *OrderSuite) TestIdempotentPlacement() {
	s.Run("Normal case: repeating the key replays the stored order", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "retry@example.com", 0)
		productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
		dbtest.AddCartItem(t, s.DB, userID, productID, 2)

		token := s.Auth.CustomerToken(t, userID)
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}
		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, reqBody, token, headers)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		var created resdto.PlaceOrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, first.Body, &created))

		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, reqBody, token, headers)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())
		httptest.AssertHeaders(t, second, map[string]string{"Idempotent-Replayed": "true"})
		var replayed resdto.PlaceOrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, second.Body, &replayed))

		assert.Equal(t, created.Order.ID, replayed.Order.ID)
		assert.Equal(t, created.Order.OrderNumber, replayed.Order.OrderNumber)
		assert.Equal(t, 1, dbtest.Count(t, s.DB, "orders", "user_id = $1", userID))
		assert.Equal(t, int32(8), dbtest.Stock(t, s.DB, productID))
	})

	s.Run("Exception case: the same key with a different body is a conflict", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "reuse@example.com", 0)
		productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
		dbtest.AddCartItem(t, s.DB, userID, productID, 2)

		token := s.Auth.CustomerToken(t, userID)
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}
		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, reqBody, token, headers)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		reqBody.PaymentMethod = "CARD"
		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, reqBody, token, headers)
		httptest.AssertErrorResponse(t, second, http.StatusConflict, commands.MsgIdempotencyKeyReused)
	})

	s.Run("Exception case: malformed key", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "badkey@example.com", 0)
		headers := map[string]string{"Idempotency-Key": "not-a-uuid"}
		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, reqBody, s.Auth.CustomerToken(t, userID), headers)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid Idempotency-Key header")
	})
}

// =============================================================================
// TestConcurrentPlacement - stock contention
// =============================================================================

func (s *OrderSuite) TestConcurrentPlacement() {
	s.Run("Normal case: racing buyers never oversell", func() {
		t := s.T()

		const buyers = 8
		const stock = 3

		productID := dbtest.CreateTestProduct(t, s.DB, "Limited Matcha", "40.00", stock)
		tokens := make([]string, buyers)
		for i := range tokens {
			userID := dbtest.CreateTestUser(t, s.DB, fmt.Sprintf("racer%d@example.com", i), 0)
			dbtest.AddCartItem(t, s.DB, userID, productID, 1)
			tokens[i] = s.Auth.CustomerToken(t, userID)
		}
		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()

		codes := make([]int, buyers)
		var wg sync.WaitGroup
		for i := range tokens {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, tokens[i])
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		var created, rejected int
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusBadRequest:
				rejected++
			default:
				t.Errorf("unexpected status %d", code)
			}
		}
		assert.Equal(t, stock, created)
		assert.Equal(t, buyers-stock, rejected)
		assert.Zero(t, dbtest.Stock(t, s.DB, productID))
		assert.Equal(t, stock, dbtest.Count(t, s.DB, "orders", ""))
	})

	s.Run("Normal case: a double submit places one order", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "double@example.com", 0)
		productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
		dbtest.AddCartItem(t, s.DB, userID, productID, 1)
		token := s.Auth.CustomerToken(t, userID)
		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				codes[i] = httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, token).Code
			}(i)
		}
		wg.Wait()

		assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusBadRequest}, codes)
		assert.Equal(t, 1, dbtest.Count(t, s.DB, "orders", "user_id = $1", userID))
		assert.Equal(t, int32(9), dbtest.Stock(t, s.DB, productID))
	})
}

// =============================================================================
// TestReadOrders - order history and detail
// =============================================================================

func (s *OrderSuite) TestReadOrders() {
	s.Run("Normal case: owner lists and reads own orders", func() {
		t := s.T()

		userID, _, placed := s.placeOrder(t, "reader@example.com")
		token := s.Auth.CustomerToken(t, userID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var list resdto.OrderListEnvelope
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &list))
		require.Len(t, list.Orders, 1)
		assert.Equal(t, placed.ID, list.Orders[0].ID)
		assert.Equal(t, int32(1), list.Orders[0].ItemCount)
		assert.Equal(t, int32(2), list.Orders[0].TotalQuantity)

		got := s.fetchOrder(t, placed.ID, token)
		assert.Equal(t, placed.OrderNumber, got.OrderNumber)
	})

	s.Run("Exception case: another customer gets 403, staff can read", func() {
		t := s.T()

		_, _, placed := s.placeOrder(t, "private@example.com")
		strangerID := dbtest.CreateTestUser(t, s.DB, "stranger@example.com", 0)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, placed.ID), nil, s.Auth.CustomerToken(t, strangerID))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, commands.MsgOrderForbidden)

		got := s.fetchOrder(t, placed.ID, s.Auth.StaffToken(t))
		assert.Equal(t, placed.ID, got.ID)
	})

	s.Run("Exception case: unknown order is 404", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "lost@example.com", 0)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(orderURL, uuid.New()), nil, s.Auth.CustomerToken(t, userID))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, commands.MsgOrderNotFound)
	})
}

// =============================================================================
// TestCancelOrder - customer cancellation
// =============================================================================

func (s *OrderSuite) TestCancelOrder() {
	s.Run("Normal case: cancel inside the window restores stock and points", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "cancel@example.com", 100)
		productID := dbtest.CreateTestProduct(t, s.DB, "Green Tea", "25.00", 10)
		dbtest.AddCartItem(t, s.DB, userID, productID, 3)
		token := s.Auth.CustomerToken(t, userID)

		reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
		reqBody.UsePoints = int64Ptr(30)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var placed resdto.PlaceOrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &placed))
		require.Equal(t, int32(7), dbtest.Stock(t, s.DB, productID))
		require.Equal(t, int64(70), dbtest.Points(t, s.DB, userID))

		s.Clock.Add(29 * time.Minute)
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(cancelOrderURL, placed.Order.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res resdto.OrderEnvelope
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		assert.Equal(t, "Order canceled successfully", res.Message)
		assert.Equal(t, string(order.StatusCanceled), res.Order.Status)
		require.Len(t, res.Order.StatusHistory, 2)
		assert.Equal(t, string(order.StatusCanceled), res.Order.StatusHistory[1].Status)

		assert.Equal(t, int32(10), dbtest.Stock(t, s.DB, productID))
		assert.Equal(t, int64(100), dbtest.Points(t, s.DB, userID))

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(cancelOrderURL, placed.Order.ID), nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, commands.MsgCancelNotAllowed)
		assert.Equal(t, int32(10), dbtest.Stock(t, s.DB, productID))
	})

	s.Run("Exception case: cancel after the window closes", func() {
		t := s.T()

		userID, productID, placed := s.placeOrder(t, "late@example.com")

		s.Clock.Add(31 * time.Minute)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(cancelOrderURL, placed.ID), nil, s.Auth.CustomerToken(t, userID))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, commands.MsgCancelWindowClosed)
		assert.Equal(t, int32(8), dbtest.Stock(t, s.DB, productID))
	})

	s.Run("Exception case: only the owner can cancel", func() {
		t := s.T()

		_, productID, placed := s.placeOrder(t, "victim@example.com")
		strangerID := dbtest.CreateTestUser(t, s.DB, "meddler@example.com", 0)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(cancelOrderURL, placed.ID), nil, s.Auth.CustomerToken(t, strangerID))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, commands.MsgOrderForbidden)
		assert.Equal(t, int32(8), dbtest.Stock(t, s.DB, productID))
	})
}

// =============================================================================
// TestAutoConfirm - scheduled confirmation
// =============================================================================

func (s *OrderSuite) TestAutoConfirm() {
	ctx := context.Background()

	s.Run("Normal case: new order is confirmed once the delay passes", func() {
		t := s.T()

		userID, _, placed := s.placeOrder(t, "patient@example.com")

		s.Clock.Add(29 * time.Minute)
		claimed, err := s.Sweeper.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, claimed)

		s.Clock.Add(time.Minute)
		claimed, err = s.Sweeper.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, claimed)

		got := s.fetchOrder(t, placed.ID, s.Auth.CustomerToken(t, userID))
		assert.Equal(t, string(order.StatusConfirmed), got.Status)
		require.Len(t, got.StatusHistory, 2)
		assert.Equal(t, "Order automatically confirmed after 30 minutes", got.StatusHistory[1].Note)
		assert.Equal(t, 1, dbtest.Count(t, s.DB, "scheduled_jobs", "status = 'done'"))

		claimed, err = s.Sweeper.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, claimed)
	})

	s.Run("Normal case: canceled order is left alone", func() {
		t := s.T()

		userID, _, placed := s.placeOrder(t, "changed-mind@example.com")
		token := s.Auth.CustomerToken(t, userID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(cancelOrderURL, placed.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		s.Clock.Add(30 * time.Minute)
		claimed, err := s.Sweeper.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, claimed)

		got := s.fetchOrder(t, placed.ID, token)
		assert.Equal(t, string(order.StatusCanceled), got.Status)
		assert.Len(t, got.StatusHistory, 2)
		assert.Equal(t, 1, dbtest.Count(t, s.DB, "scheduled_jobs", "status = 'done'"))
	})

	s.Run("Normal case: staff confirmation first makes the job a no-op", func() {
		t := s.T()

		userID, _, placed := s.placeOrder(t, "early@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(orderStatusURL, placed.ID),
			reqdto.UpdateStatusRequest{Status: string(order.StatusConfirmed)}, s.Auth.StaffToken(t))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		s.Clock.Add(30 * time.Minute)
		_, err := s.Sweeper.RunOnce(ctx)
		require.NoError(t, err)

		got := s.fetchOrder(t, placed.ID, s.Auth.CustomerToken(t, userID))
		assert.Equal(t, string(order.StatusConfirmed), got.Status)
		assert.Len(t, got.StatusHistory, 2)
	})
}

// =============================================================================
// TestUpdateStatus - staff lifecycle moves
// =============================================================================

func (s *OrderSuite) TestUpdateStatus() {
	s.Run("Normal case: staff walk an order to delivered", func() {
		t := s.T()

		userID, _, placed := s.placeOrder(t, "lifecycle@example.com")
		staff := s.Auth.StaffToken(t)
		url := fmt.Sprintf(orderStatusURL, placed.ID)

		for _, next := range []order.Status{order.StatusConfirmed, order.StatusPreparing, order.StatusDelivering, order.StatusDelivered} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, reqdto.UpdateStatusRequest{Status: string(next)}, staff)
			require.Equal(t, http.StatusOK, w.Code, "moving to %s: %s", next, w.Body.String())
		}

		got := s.fetchOrder(t, placed.ID, s.Auth.CustomerToken(t, userID))
		assert.Equal(t, string(order.StatusDelivered), got.Status)
		assert.Len(t, got.StatusHistory, 5)
	})

	s.Run("Exception case: invalid moves", func() {
		testCases := []struct {
			name           string
			status         string
			expectedStatus int
			expectedMsg    string
		}{
			{name: "skipping ahead", status: string(order.StatusDelivered), expectedStatus: http.StatusConflict, expectedMsg: commands.MsgInvalidTransition},
			{name: "unknown status", status: "lost", expectedStatus: http.StatusBadRequest, expectedMsg: commands.MsgInvalidStatus},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				t := s.T()
				_, _, placed := s.placeOrder(t, "skipper@example.com")

				w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(orderStatusURL, placed.ID),
					reqdto.UpdateStatusRequest{Status: tc.status}, s.Auth.StaffToken(t))
				httptest.AssertErrorResponse(t, w, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("Exception case: customers cannot change status", func() {
		t := s.T()

		userID, _, placed := s.placeOrder(t, "sneaky@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(orderStatusURL, placed.ID),
			reqdto.UpdateStatusRequest{Status: string(order.StatusConfirmed)}, s.Auth.CustomerToken(t, userID))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}
