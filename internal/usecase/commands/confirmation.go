package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

const JobKindAutoConfirm = "order.auto_confirm"

type autoConfirmPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}

func scheduleAutoConfirm(ctx context.Context, tx shared.Tx, orderID uuid.UUID, runAt time.Time) error {
	payload, err := json.Marshal(autoConfirmPayload{OrderID: orderID})
	if err != nil {
		return errs.Wrap(err, "failed to encode auto-confirm payload")
	}
	_, err = tx.Jobs().Schedule(ctx, tx.DB(), JobKindAutoConfirm, payload, runAt)
	return err
}

// AutoConfirmHandler confirms an order that is still new when its delay elapses.
// Orders that moved on in the meantime are left alone.
type AutoConfirmHandler struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	delay  time.Duration
	logger *slog.Logger
}

func NewAutoConfirmHandler(uow shared.UnitOfWork, clk clock.Clock, cfg config.CheckoutConfig, logger *slog.Logger) *AutoConfirmHandler {
	return &AutoConfirmHandler{uow: uow, clock: clk, delay: cfg.AutoConfirmDelay, logger: logger}
}

func (h *AutoConfirmHandler) Kind() string {
	return JobKindAutoConfirm
}

func (h *AutoConfirmHandler) Handle(ctx context.Context, payload []byte) error {
	var p autoConfirmPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errs.Wrap(err, "failed to decode auto-confirm payload")
	}

	var confirmed bool
	err := h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		confirmed = false

		o, err := tx.Reads().OrderByID(ctx, p.OrderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		if o.Status() != order.StatusNew {
			return nil
		}

		change, err := o.TransitionTo(order.StatusConfirmed, h.clock.Now(), order.AutoConfirmNote(h.delay))
		if err != nil {
			return err
		}
		// A concurrent cancel wins the compare-and-set and makes this a no-op.
		confirmed, err = tx.Orders().TransitionStatus(ctx, tx.DB(), o.ID(), order.StatusNew, change)
		return err
	})
	if err != nil {
		return errs.Wrapf(err, "failed to auto-confirm order %s", p.OrderID)
	}

	if confirmed {
		h.logger.Info("order auto-confirmed", slog.String("order_id", p.OrderID.String()))
	}
	return nil
}

var _ shared.JobHandler = (*AutoConfirmHandler)(nil)
