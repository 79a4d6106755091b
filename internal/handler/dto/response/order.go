package response

import (
	"encoding/json"
	"time"

	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID uuid.UUID   `json:"productId"`
	Name      string      `json:"name"`
	Image     *string     `json:"image"`
	Price     json.Number `json:"price" swaggertype:"number"`
	Quantity  int32       `json:"quantity"`
	Total     json.Number `json:"total" swaggertype:"number"`
}

type ShippingInfoResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type StatusHistoryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type OrderResponse struct {
	ID             uuid.UUID               `json:"_id"`
	UserID         uuid.UUID               `json:"user"`
	OrderNumber    string                  `json:"orderNumber"`
	Status         string                  `json:"status"`
	Subtotal       json.Number             `json:"subtotal" swaggertype:"number"`
	TotalAmount    json.Number             `json:"totalAmount" swaggertype:"number"`
	Discount       json.Number             `json:"discount" swaggertype:"number"`
	DiscountCode   *string                 `json:"discountCode"`
	DiscountSource *string                 `json:"discountSource"`
	PointsUsed     int64                   `json:"pointsUsed"`
	Items          []OrderItemResponse     `json:"items"`
	ShippingInfo   ShippingInfoResponse    `json:"shippingInfo"`
	PaymentMethod  string                  `json:"paymentMethod"`
	Note           *string                 `json:"note"`
	StatusHistory  []StatusHistoryResponse `json:"statusHistory"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

type OrderListItemResponse struct {
	ID            uuid.UUID   `json:"_id"`
	OrderNumber   string      `json:"orderNumber"`
	Status        string      `json:"status"`
	TotalAmount   json.Number `json:"totalAmount" swaggertype:"number"`
	Discount      json.Number `json:"discount" swaggertype:"number"`
	ItemCount     int32       `json:"itemCount"`
	TotalQuantity int32       `json:"totalQuantity"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type PlaceOrderResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order"`
}

type OrderEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Order   *OrderResponse `json:"order"`
}

type OrderListEnvelope struct {
	Success bool                    `json:"success"`
	Orders  []OrderListItemResponse `json:"orders"`
}

func FromOrderRM(rm *readmodel.OrderRM) (*OrderResponse, error) {
	res := &OrderResponse{}
	if err := copyInto(res, rm); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []OrderItemResponse{}
	}
	if res.StatusHistory == nil {
		res.StatusHistory = []StatusHistoryResponse{}
	}
	return res, nil
}

func FromOrderListRM(rms []*readmodel.OrderListRM) ([]OrderListItemResponse, error) {
	res := make([]OrderListItemResponse, len(rms))
	for i, rm := range rms {
		if err := copyInto(&res[i], rm); err != nil {
			return nil, err
		}
	}
	return res, nil
}
