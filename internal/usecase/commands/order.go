package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/patch"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/readmodel"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const placeOrderEndpoint = "POST /api/orders"

type ShippingInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type PlaceOrderCommand struct {
	PaymentMethod  string         `json:"payment_method"`
	Shipping       *ShippingInput `json:"shipping_info"`
	Note           *string        `json:"note"`
	PromotionCode  *string        `json:"promotion_code"`
	UsePoints      *int64         `json:"use_points"`
	IdempotencyKey *uuid.UUID     `json:"-"`
}

type PlaceOrderResult struct {
	Order      *readmodel.OrderRM
	IsReplayed bool
}

type OrderCommands interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, cmd PlaceOrderCommand) (*PlaceOrderResult, error)
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*readmodel.OrderRM, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, next string, note *string) (*readmodel.OrderRM, error)
}

type orderUseCaseImpl struct {
	uow          shared.UnitOfWork
	discounts    *DiscountResolver
	orderQueries queries.OrderQueries
	services     *order.Services
	clock        clock.Clock
	cfg          config.CheckoutConfig
	logger       *slog.Logger
}

func NewOrderUseCase(
	uow shared.UnitOfWork,
	discounts *DiscountResolver,
	orderQueries queries.OrderQueries,
	numbers order.NumberGenerator,
	clk clock.Clock,
	cfg config.CheckoutConfig,
	logger *slog.Logger,
) OrderCommands {
	return &orderUseCaseImpl{
		uow:          uow,
		discounts:    discounts,
		orderQueries: orderQueries,
		services:     &order.Services{Clock: clk, Numbers: numbers},
		clock:        clk,
		cfg:          cfg,
		logger:       logger,
	}
}

// checkoutInput is a command that passed validation.
type checkoutInput struct {
	payment  order.PaymentMethod
	shipping order.ShippingInfo
	note     order.Note
	promo    *string
	points   order.PointsRedemption
}

func validatePlaceOrder(cmd PlaceOrderCommand) (*checkoutInput, error) {
	if cmd.Shipping == nil {
		return nil, NewCheckoutError(KindValidation, MsgMissingCheckoutDetails, order.ErrMissingCheckoutDetails)
	}
	payment, err := order.NewPaymentMethod(cmd.PaymentMethod)
	if err != nil {
		return nil, NewCheckoutError(KindValidation, MsgMissingCheckoutDetails, err)
	}
	shipping, err := order.NewShippingInfo(cmd.Shipping.Name, cmd.Shipping.Phone, cmd.Shipping.Address, cmd.Shipping.City, cmd.Shipping.Country)
	if err != nil {
		return nil, NewCheckoutError(KindValidation, MsgIncompleteShipping, err)
	}
	note, err := order.NewNote(cmd.Note)
	if err != nil {
		return nil, NewCheckoutError(KindValidation, MsgNoteTooLong, err)
	}
	points, err := order.NewPointsRedemption(cmd.UsePoints)
	if err != nil {
		return nil, NewCheckoutError(KindValidation, MsgNegativePoints, err)
	}

	return &checkoutInput{
		payment:  payment,
		shipping: shipping,
		note:     note,
		promo:    cmd.PromotionCode,
		points:   points,
	}, nil
}

func (uc *orderUseCaseImpl) PlaceOrder(ctx context.Context, userID uuid.UUID, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	input, err := validatePlaceOrder(cmd)
	if err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(cmd)

	var (
		orderID  uuid.UUID
		replayed bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayed = false

		if cmd.IdempotencyKey != nil {
			existing, derr := uc.claimIdempotencyKey(ctx, tx, userID, *cmd.IdempotencyKey, requestHash)
			if derr != nil {
				return derr
			}
			if existing != nil {
				orderID = *existing
				replayed = true
				return nil
			}
		}

		o, derr := uc.finalize(ctx, tx, userID, input)
		if derr != nil {
			return derr
		}
		orderID = o.ID()

		if cmd.IdempotencyKey != nil {
			if derr = tx.Idempotency().Complete(ctx, tx.DB(), *cmd.IdempotencyKey, userID, orderID); derr != nil {
				return derr
			}
		}
		return nil
	})
	if err != nil {
		return nil, uc.placementError(err, userID)
	}

	view, err := uc.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		uc.logger.Error("order committed but could not be read back",
			slog.String("order_id", orderID.String()),
			slog.String("error", err.Error()))
		return nil, NewCheckoutError(KindPersistence, MsgCreateOrderFailed, err)
	}

	if replayed {
		uc.logger.Info("replayed idempotent order placement",
			slog.String("order_id", orderID.String()),
			slog.String("user_id", userID.String()))
	}
	return &PlaceOrderResult{Order: view, IsReplayed: replayed}, nil
}

// claimIdempotencyKey returns the stored order id when the request is a replay.
func (uc *orderUseCaseImpl) claimIdempotencyKey(ctx context.Context, tx shared.Tx, userID, key uuid.UUID, requestHash string) (*uuid.UUID, error) {
	now := uc.clock.Now()
	claimed, err := tx.Idempotency().Claim(ctx, tx.DB(), key, userID, placeOrderEndpoint, requestHash, now, now.Add(uc.cfg.IdempotencyTTL))
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if existing.Endpoint != placeOrderEndpoint || existing.RequestHash != requestHash || existing.ResultOrderID == nil {
		return nil, NewCheckoutError(KindIdempotencyKeyReused, MsgIdempotencyKeyReused, errs.ErrIdempotencyKeyReused)
	}
	return existing.ResultOrderID, nil
}

// finalize converts the locked cart into an order. Nothing it writes survives an error.
func (uc *orderUseCaseImpl) finalize(ctx context.Context, tx shared.Tx, userID uuid.UUID, input *checkoutInput) (*order.Order, error) {
	lines, err := tx.Reads().CartForCheckout(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := order.SnapshotLines(lines)
	if err != nil {
		return nil, err
	}

	discount, err := uc.discounts.Resolve(ctx, tx, DiscountRequest{
		UserID:        userID,
		Subtotal:      subtotal,
		PromotionCode: input.promo,
		UsePoints:     input.points,
	})
	if err != nil {
		return nil, err
	}

	o, err := order.Place(uc.services, order.PlaceParams{
		UserID:        userID,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      discount,
		PaymentMethod: input.payment,
		Shipping:      input.shipping,
		Note:          input.note,
	})
	if err != nil {
		return nil, err
	}

	if err = tx.Orders().Create(ctx, tx.DB(), o); err != nil {
		return nil, err
	}

	for _, item := range o.Items() {
		if err = uc.reserveStock(ctx, tx, item); err != nil {
			return nil, err
		}
	}

	if err = tx.Carts().Delete(ctx, tx.DB(), userID); err != nil {
		return nil, err
	}

	if err = scheduleAutoConfirm(ctx, tx, o.ID(), o.CreatedAt().Add(uc.cfg.AutoConfirmDelay)); err != nil {
		return nil, err
	}

	return o, nil
}

// reserveStock loses to a concurrent buyer when the guarded decrement matches no row.
func (uc *orderUseCaseImpl) reserveStock(ctx context.Context, tx shared.Tx, item order.LineItem) error {
	ok, err := tx.Products().DecrementStock(ctx, tx.DB(), item.ProductID(), item.Quantity())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	current, err := tx.Reads().ProductByID(ctx, item.ProductID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return order.ErrInvalidProduct
		}
		return err
	}
	return &order.InsufficientStockError{
		ProductID:   item.ProductID(),
		ProductName: current.Name,
		Available:   current.StockQuantity,
	}
}

func (uc *orderUseCaseImpl) placementError(err error, userID uuid.UUID) error {
	if ce, ok := AsCheckoutError(err); ok {
		if ce.Kind == KindPersistence {
			uc.logPersistence("order placement failed", err, userID)
		}
		return ce
	}

	var stockErr *order.InsufficientStockError
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		return NewCheckoutError(KindEmptyCart, MsgEmptyCart, err)
	case errors.Is(err, order.ErrInvalidProduct):
		return NewCheckoutError(KindInvalidProduct, MsgInvalidProduct, err)
	case errors.As(err, &stockErr):
		return NewCheckoutError(KindInsufficientStock, stockErr.Error(), err)
	}

	uc.logPersistence("order placement failed", err, userID)
	return NewCheckoutError(KindPersistence, MsgCreateOrderFailed, err)
}

func (uc *orderUseCaseImpl) logPersistence(msg string, err error, userID uuid.UUID) {
	uc.logger.Error(msg,
		slog.String("user_id", userID.String()),
		slog.String("error", err.Error()),
		slog.Any("stack", errs.ExtractStackLines(err, 5)))
}

func (uc *orderUseCaseImpl) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*readmodel.OrderRM, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, derr := loadOrder(ctx, tx, orderID)
		if derr != nil {
			return derr
		}

		from := o.Status()
		change, derr := o.Cancel(userID, uc.clock.Now(), uc.cfg.CancelWindow)
		if derr != nil {
			return cancelError(derr)
		}
		return applyTransition(ctx, tx, o, from, change)
	})
	if err != nil {
		return nil, uc.statusError(err, orderID)
	}

	return uc.readBack(ctx, orderID)
}

func (uc *orderUseCaseImpl) AdvanceStatus(ctx context.Context, orderID uuid.UUID, next string, note *string) (*readmodel.OrderRM, error) {
	status, err := order.NewStatus(next)
	if err != nil {
		return nil, NewCheckoutError(KindValidation, MsgInvalidStatus, err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, derr := loadOrder(ctx, tx, orderID)
		if derr != nil {
			return derr
		}

		from := o.Status()
		change, derr := o.TransitionTo(status, uc.clock.Now(), statusNote(status, note))
		if derr != nil {
			return NewCheckoutError(KindInvalidTransition, MsgInvalidTransition, derr)
		}
		return applyTransition(ctx, tx, o, from, change)
	})
	if err != nil {
		return nil, uc.statusError(err, orderID)
	}

	return uc.readBack(ctx, orderID)
}

func loadOrder(ctx context.Context, tx shared.Tx, orderID uuid.UUID) (*order.Order, error) {
	o, err := tx.Reads().OrderByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, NewCheckoutError(KindOrderNotFound, MsgOrderNotFound, err)
		}
		return nil, err
	}
	return o, nil
}

// applyTransition persists the change as a compare-and-set on the status read
// earlier. Cancellation hands stock and redeemed points back.
func applyTransition(ctx context.Context, tx shared.Tx, o *order.Order, from order.Status, change order.StatusChange) error {
	ok, err := tx.Orders().TransitionStatus(ctx, tx.DB(), o.ID(), from, change)
	if err != nil {
		return err
	}
	if !ok {
		return NewCheckoutError(KindInvalidTransition, MsgInvalidTransition, errs.ErrInvalidTransition)
	}
	if change.Status != order.StatusCanceled {
		return nil
	}

	for _, item := range o.Items() {
		if err = tx.Products().RestoreStock(ctx, tx.DB(), item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}
	if points := o.Discount().PointsUsed(); points > 0 {
		if err = tx.Points().Refund(ctx, tx.DB(), o.UserID(), points); err != nil {
			return err
		}
	}
	return nil
}

func cancelError(err error) error {
	switch {
	case errors.Is(err, order.ErrNotOwner):
		return NewCheckoutError(KindForbidden, MsgOrderForbidden, err)
	case errors.Is(err, order.ErrCancelWindowClosed):
		return NewCheckoutError(KindCancelWindowClosed, MsgCancelWindowClosed, err)
	default:
		return NewCheckoutError(KindInvalidTransition, MsgCancelNotAllowed, err)
	}
}

func statusNote(status order.Status, note *string) string {
	return patch.NonBlank(note, "Order status updated to "+status.String())
}

func (uc *orderUseCaseImpl) statusError(err error, orderID uuid.UUID) error {
	if ce, ok := AsCheckoutError(err); ok {
		return ce
	}
	uc.logger.Error("order status change failed",
		slog.String("order_id", orderID.String()),
		slog.String("error", err.Error()))
	return NewCheckoutError(KindPersistence, MsgUpdateOrderFailed, err)
}

func (uc *orderUseCaseImpl) readBack(ctx context.Context, orderID uuid.UUID) (*readmodel.OrderRM, error) {
	view, err := uc.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		return nil, NewCheckoutError(KindPersistence, MsgUpdateOrderFailed, err)
	}
	return view, nil
}

// calculateRequestHash fingerprints the checkout body stored with an idempotency key.
func calculateRequestHash(cmd PlaceOrderCommand) string {
	data, _ := json.Marshal(cmd)
	hash := blake2b.Sum256(data)
	return hex.EncodeToString(hash[:])
}
