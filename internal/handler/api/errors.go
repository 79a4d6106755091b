package api

import (
	"net/http"

	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var checkoutStatus = map[commands.CheckoutErrorKind]int{
	commands.KindValidation:             http.StatusBadRequest,
	commands.KindEmptyCart:              http.StatusBadRequest,
	commands.KindInvalidProduct:         http.StatusBadRequest,
	commands.KindInsufficientStock:      http.StatusBadRequest,
	commands.KindInvalidPromotion:       http.StatusBadRequest,
	commands.KindPromotionMinimumNotMet: http.StatusBadRequest,
	commands.KindInsufficientPoints:     http.StatusBadRequest,
	commands.KindOrderNotFound:          http.StatusNotFound,
	commands.KindForbidden:              http.StatusForbidden,
	commands.KindInvalidTransition:      http.StatusConflict,
	commands.KindCancelWindowClosed:     http.StatusConflict,
	commands.KindIdempotencyKeyReused:   http.StatusConflict,
	commands.KindPersistence:            http.StatusInternalServerError,
}

// abortWithUseCaseError renders use-case errors; anything unrecognised is a 500.
func abortWithUseCaseError(c *gin.Context, err error) {
	if ce, ok := commands.AsCheckoutError(err); ok {
		status, known := checkoutStatus[ce.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		httperr.AbortWithError(c, status, err, ce.Message(), nil)
		return
	}

	switch {
	case errs.Is(err, queries.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, commands.MsgOrderNotFound, nil)
	case errs.Is(err, queries.ErrOrderAccess):
		httperr.AbortWithError(c, http.StatusForbidden, err, commands.MsgOrderForbidden, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
