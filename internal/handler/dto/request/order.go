package request

import (
	"storefront-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type ShippingInfoRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// PlaceOrderRequest leaves presence checks to the use case so that missing
// fields get the checkout messages clients already handle.
type PlaceOrderRequest struct {
	PaymentMethod string               `json:"paymentMethod"`
	ShippingInfo  *ShippingInfoRequest `json:"shippingInfo"`
	Note          *string              `json:"note,omitempty"`
	PromotionCode *string              `json:"promotionCode,omitempty"`
	UsePoints     *int64               `json:"usePoints,omitempty"`
}

func (r PlaceOrderRequest) ToCommand(idempotencyKey *uuid.UUID) commands.PlaceOrderCommand {
	cmd := commands.PlaceOrderCommand{
		PaymentMethod:  r.PaymentMethod,
		Note:           r.Note,
		PromotionCode:  r.PromotionCode,
		UsePoints:      r.UsePoints,
		IdempotencyKey: idempotencyKey,
	}
	if r.ShippingInfo != nil {
		cmd.Shipping = &commands.ShippingInput{
			Name:    r.ShippingInfo.Name,
			Phone:   r.ShippingInfo.Phone,
			Address: r.ShippingInfo.Address,
			City:    r.ShippingInfo.City,
			Country: r.ShippingInfo.Country,
		}
	}
	return cmd
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note,omitempty"`
}

type ListOrdersQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
