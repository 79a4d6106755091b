package api

import (
	"net/http"

	reqdto "storefront-checkout/internal/handler/dto/request"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader     = middleware.IdempotencyKeyHeader
	idempotentReplayedHeader = middleware.IdempotentReplayedHeader
	msgOrderPlaced           = "Order placed successfully"
	msgOrderCanceled         = "Order canceled successfully"
)

type OrderHandler struct {
	commands commands.OrderCommands
	queries  queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		commands: cmds,
		queries:  q,
	}
}

// @Summary Place order
// @Description Convert the caller's cart into an order, applying an optional promotion code and loyalty points
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the stored order when repeated with the same body"
// @Param request body reqdto.PlaceOrderRequest true "Checkout request"
// @Success 201 {object} resdto.PlaceOrderResponse
// @Success 200 {object} resdto.PlaceOrderResponse "Idempotent replay"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	idempotencyKey, err := parseIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}

	var req reqdto.PlaceOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.commands.PlaceOrder(c.Request.Context(), userID, req.ToCommand(idempotencyKey))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	order, err := resdto.FromOrderRM(result.Order)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
		c.Header(idempotentReplayedHeader, "true")
	}
	c.JSON(status, resdto.PlaceOrderResponse{
		Success: true,
		Message: msgOrderPlaced,
		Order:   order,
	})
}

// @Summary List my orders
// @Description Orders placed by the caller, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} resdto.OrderListEnvelope
// @Failure 401 {object} httperr.Response
// @Router /api/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var q reqdto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination parameters", nil)
		return
	}

	rms, err := h.queries.ListByUser(c.Request.Context(), userID, q.Limit, q.Offset)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	orders, err := resdto.FromOrderListRM(rms)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderListEnvelope{Success: true, Orders: orders})
}

// @Summary Get order
// @Description Full order for its owner, or for staff
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderEnvelope
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	userID, uok := middleware.GetUserID(c)
	role, rok := middleware.GetUserRole(c)
	if !uok || !rok {
		httperr.Abort(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	rm, err := h.queries.GetByID(c.Request.Context(), orderID, userID, role)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondOrder(c, rm, "")
}

// @Summary Cancel order
// @Description Customer cancellation, allowed while the order is new and inside the cancel window
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderEnvelope
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	rm, err := h.commands.CancelOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondOrder(c, rm, msgOrderCanceled)
}

// @Summary Advance order status
// @Description Staff move an order forward along its lifecycle
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateStatusRequest true "Target status"
// @Success 200 {object} resdto.OrderEnvelope
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	rm, err := h.commands.AdvanceStatus(c.Request.Context(), orderID, req.Status, req.Note)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondOrder(c, rm, "")
}

func (h *OrderHandler) respondOrder(c *gin.Context, rm *readmodel.OrderRM, msg string) {
	order, err := resdto.FromOrderRM(rm)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderEnvelope{Success: true, Message: msg, Order: order})
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

// parseIdempotencyKey returns nil when the header is absent; the key is optional.
func parseIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
