package response

import (
	"encoding/json"

	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	ProductID     uuid.UUID   `json:"productId"`
	Name          string      `json:"name"`
	Image         *string     `json:"image"`
	Price         json.Number `json:"price" swaggertype:"number"`
	Quantity      int32       `json:"quantity"`
	StockQuantity int32       `json:"stockQuantity"`
	LineTotal     json.Number `json:"lineTotal" swaggertype:"number"`
	Available     bool        `json:"available"`
}

type CartResponse struct {
	Lines     []CartLineResponse `json:"items"`
	Subtotal  json.Number        `json:"subtotal" swaggertype:"number"`
	ItemCount int32              `json:"itemCount"`
}

type CartEnvelope struct {
	Success bool          `json:"success"`
	Cart    *CartResponse `json:"cart"`
}

func FromCartRM(rm *readmodel.CartRM) (*CartResponse, error) {
	res := &CartResponse{}
	if err := copyInto(res, rm); err != nil {
		return nil, err
	}
	if res.Lines == nil {
		res.Lines = []CartLineResponse{}
	}
	return res, nil
}
