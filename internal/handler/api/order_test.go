//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront-checkout/internal/domain/user"
	"storefront-checkout/internal/handler/api"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/readmodel"
	"storefront-checkout/tests/common/builder"
	"storefront-checkout/tests/common/httptest"
	"storefront-checkout/tests/common/testutil"
	commandsmock "storefront-checkout/tests/mock/commands"
	queriesmock "storefront-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	userID       uuid.UUID
	role         user.Role
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()
	s.role = user.RoleViewer

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/api/orders", authMiddleware, s.handler.PlaceOrder)
	s.router.GET("/api/orders", authMiddleware, s.handler.ListMyOrders)
	s.router.GET("/api/orders/:id", authMiddleware, s.handler.GetOrder)
	s.router.PUT("/api/orders/:id/cancel", authMiddleware, s.handler.CancelOrder)
	s.router.PATCH("/api/orders/:id/status", authMiddleware, s.handler.UpdateStatus)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

type testCaseOrder struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

// ================================================================================
// TestPlaceOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestPlaceOrder() {
	url := "/api/orders"

	reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
	placed := builder.NewOrderBuilder().WithUserID(s.userID).BuildRM()

	s.Run("success: returns 201 Created with the placed order", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, cmd commands.PlaceOrderCommand) (*commands.PlaceOrderResult, error) {
				s.Nil(cmd.IdempotencyKey)
				s.Equal(reqBody.PaymentMethod, cmd.PaymentMethod)
				s.Require().NotNil(cmd.Shipping)
				s.Equal(reqBody.ShippingInfo.Name, cmd.Shipping.Name)
				return &commands.PlaceOrderResult{Order: placed}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.True(body.Success)
		s.Equal("Order placed successfully", body.Message)
		s.Require().NotNil(body.Order)
		s.Equal(placed.ID, body.Order.ID)
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
	})

	s.Run("success: replay answers 200 with the stored order", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, cmd commands.PlaceOrderCommand) (*commands.PlaceOrderResult, error) {
				s.Require().NotNil(cmd.IdempotencyKey)
				s.Equal(key, *cmd.IdempotencyKey)
				return &commands.PlaceOrderResult{Order: placed, IsReplayed: true}, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": key.String()})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("error: 400 Bad Request on malformed input", func() {
		testCases := []testCaseOrder{
			{name: "points not a number", mutate: testutil.Field("usePoints", "ten"), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
			{name: "shipping not an object", mutate: testutil.Field("shippingInfo", "Hue"), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
			{name: "shipping name not a string", mutate: testutil.Nested("shippingInfo", "name", 42), expectCode: http.StatusBadRequest, expectInBody: "Invalid request format"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
			})
		}
	})

	s.Run("error: 400 Bad Request on a malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid Idempotency-Key header")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Not authorized")
	})

	s.Run("error: maps checkout errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "missing details",
				commandsError:  commands.NewCheckoutError(commands.KindValidation, commands.MsgMissingCheckoutDetails, nil),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    commands.MsgMissingCheckoutDetails,
			},
			{
				name:           "empty cart",
				commandsError:  commands.NewCheckoutError(commands.KindEmptyCart, commands.MsgEmptyCart, nil),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    commands.MsgEmptyCart,
			},
			{
				name:           "insufficient stock",
				commandsError:  commands.NewCheckoutError(commands.KindInsufficientStock, "Not enough stock for Green Tea. Available: 2", nil),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Available: 2",
			},
			{
				name:           "promotion minimum",
				commandsError:  commands.NewCheckoutError(commands.KindPromotionMinimumNotMet, commands.MsgPromotionMinimumNotMet, nil),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    commands.MsgPromotionMinimumNotMet,
			},
			{
				name:           "idempotency key reused",
				commandsError:  commands.NewCheckoutError(commands.KindIdempotencyKeyReused, commands.MsgIdempotencyKeyReused, nil),
				expectedStatus: http.StatusConflict,
				expectedMsg:    commands.MsgIdempotencyKeyReused,
			},
			{
				name:           "persistence failure hides the cause",
				commandsError:  commands.NewCheckoutError(commands.KindPersistence, commands.MsgCreateOrderFailed, errors.New("connection reset")),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    commands.MsgCreateOrderFailed,
			},
			{
				name:           "unrecognised error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.NotContains(rec.Body.String(), "connection reset")
			})
		}
	})
}

// ================================================================================
// TestGetOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestGetOrder() {
	view := builder.NewOrderBuilder().WithUserID(s.userID).BuildRM()
	url := "/api/orders/" + view.ID.String()

	s.Run("success: returns 200 OK with the order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID, user.RoleViewer).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.OrderEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Order)
		s.Equal(view.OrderNumber, body.Order.OrderNumber)
		s.Len(body.Order.StatusHistory, len(view.StatusHistory))
	})

	s.Run("error: 400 Bad Request on malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/abc", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID format")
	})

	s.Run("error: maps query errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "not found", queryError: errs.Mark(errors.New("no rows"), queries.ErrOrderNotFound), expectedStatus: http.StatusNotFound, expectedMsg: commands.MsgOrderNotFound},
			{name: "another user's order", queryError: queries.ErrOrderAccess, expectedStatus: http.StatusForbidden, expectedMsg: commands.MsgOrderForbidden},
			{name: "database error", queryError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID, gomock.Any()).Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestListMyOrders
// ================================================================================

func (s *OrderHandlerTestSuite) TestListMyOrders() {
	s.Run("success: forwards paging to the query", func() {
		item := builder.NewOrderBuilder().WithUserID(s.userID).BuildListItem()
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 5, 10).Return([]*readmodel.OrderListRM{item}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders?limit=5&offset=10", nil, "bearer-token")

		var body resdto.OrderListEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Orders, 1)
		s.Equal(item.ID, body.Orders[0].ID)
	})

	s.Run("success: empty history is an empty list", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 0, 0).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders", nil, "bearer-token")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`{"success":true,"orders":[]}`, rec.Body.String())
	})

	s.Run("error: 400 Bad Request on non-numeric paging", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders?limit=abc", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination parameters")
	})
}

// ================================================================================
// TestCancelOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestCancelOrder() {
	view := builder.NewOrderBuilder().WithUserID(s.userID).BuildRM()
	url := "/api/orders/" + view.ID.String() + "/cancel"

	s.Run("success: returns 200 OK with the canceled order", func() {
		view.Status = "CANCELED"
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.userID, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")

		var body resdto.OrderEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Order canceled successfully", body.Message)
		s.Equal("CANCELED", body.Order.Status)
	})

	s.Run("error: maps cancel errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "not the owner", commandsError: commands.NewCheckoutError(commands.KindForbidden, commands.MsgOrderForbidden, nil), expectedStatus: http.StatusForbidden, expectedMsg: commands.MsgOrderForbidden},
			{name: "not new", commandsError: commands.NewCheckoutError(commands.KindInvalidTransition, commands.MsgCancelNotAllowed, nil), expectedStatus: http.StatusConflict, expectedMsg: commands.MsgCancelNotAllowed},
			{name: "window closed", commandsError: commands.NewCheckoutError(commands.KindCancelWindowClosed, commands.MsgCancelWindowClosed, nil), expectedStatus: http.StatusConflict, expectedMsg: commands.MsgCancelWindowClosed},
			{name: "unknown order", commandsError: commands.NewCheckoutError(commands.KindOrderNotFound, commands.MsgOrderNotFound, nil), expectedStatus: http.StatusNotFound, expectedMsg: commands.MsgOrderNotFound},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.userID, view.ID).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *OrderHandlerTestSuite) TestUpdateStatus() {
	view := builder.NewOrderBuilder().BuildRM()
	url := "/api/orders/" + view.ID.String() + "/status"

	s.Run("success: returns 200 OK with the advanced order", func() {
		view.Status = "PREPARING"
		s.mockCommands.EXPECT().AdvanceStatus(gomock.Any(), view.ID, "PREPARING", gomock.Nil()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "PREPARING"}, "bearer-token")

		var body resdto.OrderEnvelope
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("PREPARING", body.Order.Status)
	})

	s.Run("error: 400 Bad Request when status is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"note": "packed"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps transition errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "unknown status", commandsError: commands.NewCheckoutError(commands.KindValidation, commands.MsgInvalidStatus, nil), expectedStatus: http.StatusBadRequest, expectedMsg: commands.MsgInvalidStatus},
			{name: "backwards move", commandsError: commands.NewCheckoutError(commands.KindInvalidTransition, commands.MsgInvalidTransition, nil), expectedStatus: http.StatusConflict, expectedMsg: commands.MsgInvalidTransition},
			{name: "write failed", commandsError: commands.NewCheckoutError(commands.KindPersistence, commands.MsgUpdateOrderFailed, errors.New("timeout")), expectedStatus: http.StatusInternalServerError, expectedMsg: commands.MsgUpdateOrderFailed},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().AdvanceStatus(gomock.Any(), view.ID, "DELIVERED", gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "DELIVERED"}, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
