package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/readmodel"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartCommands interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*readmodel.CartRM, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*readmodel.CartRM, error)
}

type cartUseCaseImpl struct {
	uow         shared.UnitOfWork
	cartQueries queries.CartQueries
	logger      *slog.Logger
}

func NewCartUseCase(uow shared.UnitOfWork, cartQueries queries.CartQueries, logger *slog.Logger) CartCommands {
	return &cartUseCaseImpl{
		uow:         uow,
		cartQueries: cartQueries,
		logger:      logger,
	}
}

func (uc *cartUseCaseImpl) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*readmodel.CartRM, error) {
	line, err := cart.NewLine(productID, quantity)
	if err != nil {
		return nil, NewCheckoutError(KindValidation, MsgInvalidQuantity, err)
	}

	if _, err = uc.uow.CommandReads().ProductByID(ctx, productID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, NewCheckoutError(KindInvalidProduct, MsgProductNotFound, err)
		}
		return nil, uc.persistenceError("failed to look up product for cart", err, userID)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Carts().AddItem(ctx, tx.DB(), userID, line)
	})
	if err != nil {
		// The merged quantity broke the line's check constraint.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, NewCheckoutError(KindValidation, MsgInvalidQuantity, err)
		}
		return nil, uc.persistenceError("failed to add cart item", err, userID)
	}

	return uc.view(ctx, userID)
}

func (uc *cartUseCaseImpl) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*readmodel.CartRM, error) {
	var removed bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		removed, err = tx.Carts().RemoveItem(ctx, tx.DB(), userID, productID)
		return err
	})
	if err != nil {
		return nil, uc.persistenceError("failed to remove cart item", err, userID)
	}
	if !removed {
		return nil, NewCheckoutError(KindInvalidProduct, MsgProductNotFound, errors.New("product is not in the cart"))
	}

	return uc.view(ctx, userID)
}

func (uc *cartUseCaseImpl) view(ctx context.Context, userID uuid.UUID) (*readmodel.CartRM, error) {
	rm, err := uc.cartQueries.Get(ctx, userID)
	if err != nil {
		return nil, uc.persistenceError("failed to read cart", err, userID)
	}
	return rm, nil
}

func (uc *cartUseCaseImpl) persistenceError(msg string, err error, userID uuid.UUID) error {
	uc.logger.Error(msg,
		slog.String("user_id", userID.String()),
		slog.String("error", err.Error()))
	return NewCheckoutError(KindPersistence, MsgUpdateCartFailed, err)
}
