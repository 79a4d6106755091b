//go:build unit || e2e

package builder

import (
	"time"

	"storefront-checkout/internal/domain/order"
	reqdto "storefront-checkout/internal/handler/dto/request"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemSpec struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
}

type OrderBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Number        string
	Status        order.Status
	Items         []OrderItemSpec
	Discount      order.Discount
	PaymentMethod string
	ShippingName  string
	ShippingPhone string
	Address       string
	City          string
	Country       string
	Note          *string
	CreatedAt     time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Number: "ORD-01J0000000000000000000TEST",
		Status: order.StatusNew,
		Items: []OrderItemSpec{
			{ProductID: uuid.New(), Name: "Green Tea", UnitPrice: decimal.NewFromInt(25), Quantity: 4},
		},
		Discount:      order.NoDiscount(),
		PaymentMethod: "COD",
		ShippingName:  "Nguyen Van An",
		ShippingPhone: "0900000000",
		Address:       "1 Le Loi",
		City:          "Hue",
		Country:       "VN",
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

// Build methods
func (o *OrderBuilder) BuildDomain() *order.Order {
	items := make([]order.LineItem, len(o.Items))
	subtotal := decimal.Zero
	for i, spec := range o.Items {
		total := order.RoundMoney(spec.UnitPrice.Mul(decimal.NewFromInt32(spec.Quantity)))
		items[i] = order.ReconstructLineItem(spec.ProductID, spec.Name, spec.UnitPrice, spec.Quantity, total)
		subtotal = subtotal.Add(total)
	}

	history := []order.StatusChange{{Status: order.StatusNew, Note: order.NotePlaced, ChangedAt: o.CreatedAt}}
	if o.Status != order.StatusNew {
		history = append(history, order.StatusChange{Status: o.Status, Note: "Order status updated to " + o.Status.String(), ChangedAt: o.CreatedAt})
	}

	return order.Reconstruct(
		o.ID,
		o.UserID,
		order.Number(o.Number),
		o.Status,
		items,
		subtotal,
		o.Discount.ApplyTo(subtotal),
		o.Discount,
		order.PaymentMethod(o.PaymentMethod),
		order.ReconstructShippingInfo(o.ShippingName, o.ShippingPhone, o.Address, o.City, o.Country),
		order.ReconstructNote(o.Note),
		history,
		o.CreatedAt,
		o.CreatedAt,
	)
}

func (o *OrderBuilder) BuildRM() *readmodel.OrderRM {
	dom := o.BuildDomain()

	items := make([]readmodel.OrderItemRM, len(dom.Items()))
	for i, item := range dom.Items() {
		items[i] = readmodel.OrderItemRM{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.UnitPrice(),
			Quantity:  item.Quantity(),
			Total:     item.Total(),
		}
	}
	history := make([]readmodel.StatusHistoryRM, len(dom.History()))
	for i, h := range dom.History() {
		history[i] = readmodel.StatusHistoryRM{Status: h.Status.String(), Timestamp: h.ChangedAt, Note: h.Note}
	}
	var source *string
	if s := dom.Discount().Source(); s != nil {
		v := s.String()
		source = &v
	}

	return &readmodel.OrderRM{
		ID:             dom.ID(),
		UserID:         dom.UserID(),
		OrderNumber:    dom.Number().String(),
		Status:         dom.Status().String(),
		Subtotal:       dom.Subtotal(),
		TotalAmount:    dom.Total(),
		Discount:       dom.Discount().Amount(),
		DiscountCode:   dom.Discount().Code(),
		DiscountSource: source,
		PointsUsed:     dom.Discount().PointsUsed(),
		Items:          items,
		ShippingInfo: readmodel.ShippingInfoRM{
			Name:    o.ShippingName,
			Phone:   o.ShippingPhone,
			Address: o.Address,
			City:    o.City,
			Country: o.Country,
		},
		PaymentMethod: o.PaymentMethod,
		Note:          o.Note,
		StatusHistory: history,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.CreatedAt,
	}
}

func (o *OrderBuilder) BuildListItem() *readmodel.OrderListRM {
	dom := o.BuildDomain()
	var quantity int32
	for _, item := range dom.Items() {
		quantity += item.Quantity()
	}
	return &readmodel.OrderListRM{
		ID:            dom.ID(),
		OrderNumber:   dom.Number().String(),
		Status:        dom.Status().String(),
		TotalAmount:   dom.Total(),
		Discount:      dom.Discount().Amount(),
		ItemCount:     int32(len(dom.Items())),
		TotalQuantity: quantity,
		CreatedAt:     o.CreatedAt,
	}
}

func (o *OrderBuilder) BuildPlaceRequestDTO() reqdto.PlaceOrderRequest {
	return reqdto.PlaceOrderRequest{
		PaymentMethod: o.PaymentMethod,
		ShippingInfo: &reqdto.ShippingInfoRequest{
			Name:    o.ShippingName,
			Phone:   o.ShippingPhone,
			Address: o.Address,
			City:    o.City,
			Country: o.Country,
		},
		Note: o.Note,
	}
}

func (o *OrderBuilder) BuildPlaceCommand() commands.PlaceOrderCommand {
	return o.BuildPlaceRequestDTO().ToCommand(nil)
}

// Fluent builder methods
func (o *OrderBuilder) WithUserID(userID uuid.UUID) *OrderBuilder {
	o.UserID = userID
	return o
}

func (o *OrderBuilder) WithStatus(status order.Status) *OrderBuilder {
	o.Status = status
	return o
}

func (o *OrderBuilder) WithItems(items ...OrderItemSpec) *OrderBuilder {
	o.Items = items
	return o
}

func (o *OrderBuilder) WithDiscount(discount order.Discount) *OrderBuilder {
	o.Discount = discount
	return o
}

func (o *OrderBuilder) WithCreatedAt(at time.Time) *OrderBuilder {
	o.CreatedAt = at
	return o
}

func (o *OrderBuilder) WithNote(note string) *OrderBuilder {
	o.Note = &note
	return o
}
