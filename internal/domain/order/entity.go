package order

import (
	"errors"
	"fmt"
	"time"

	"storefront-checkout/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidNumber      = errors.New("invalid order number")
	ErrInvalidTransition  = errors.New("order status cannot change this way")
	ErrNotOwner           = errors.New("order belongs to another user")
	ErrCancelWindowClosed = errors.New("order can no longer be canceled")
)

const (
	NotePlaced             = "Order placed successfully"
	NoteCanceledByCustomer = "Order canceled by customer"
)

func AutoConfirmNote(delay time.Duration) string {
	return fmt.Sprintf("Order automatically confirmed after %d minutes", int(delay.Minutes()))
}

type Services struct {
	Clock   clock.Clock
	Numbers NumberGenerator
}

type StatusChange struct {
	Status    Status
	Note      string
	ChangedAt time.Time
}

type Order struct {
	id            uuid.UUID
	userID        uuid.UUID
	number        Number
	status        Status
	items         []LineItem
	subtotal      decimal.Decimal
	total         decimal.Decimal
	discount      Discount
	paymentMethod PaymentMethod
	shipping      ShippingInfo
	note          Note
	history       []StatusChange
	createdAt     time.Time
	updatedAt     time.Time
}

type PlaceParams struct {
	UserID        uuid.UUID
	Items         []LineItem
	Subtotal      decimal.Decimal
	Discount      Discount
	PaymentMethod PaymentMethod
	Shipping      ShippingInfo
	Note          Note
}

// Place builds a new order in status new with its opening history entry.
func Place(services *Services, p PlaceParams) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, ErrEmptyCart
	}
	now := services.Clock.Now()
	items := make([]LineItem, len(p.Items))
	copy(items, p.Items)

	return &Order{
		id:            uuid.New(),
		userID:        p.UserID,
		number:        services.Numbers.Next(now),
		status:        StatusNew,
		items:         items,
		subtotal:      RoundMoney(p.Subtotal),
		total:         p.Discount.ApplyTo(p.Subtotal),
		discount:      p.Discount,
		paymentMethod: p.PaymentMethod,
		shipping:      p.Shipping,
		note:          p.Note,
		history:       []StatusChange{{Status: StatusNew, Note: NotePlaced, ChangedAt: now}},
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	number Number,
	status Status,
	items []LineItem,
	subtotal, total decimal.Decimal,
	discount Discount,
	paymentMethod PaymentMethod,
	shipping ShippingInfo,
	note Note,
	history []StatusChange,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:            id,
		userID:        userID,
		number:        number,
		status:        status,
		items:         items,
		subtotal:      subtotal,
		total:         total,
		discount:      discount,
		paymentMethod: paymentMethod,
		shipping:      shipping,
		note:          note,
		history:       history,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// TransitionTo moves the order along the state machine and appends history.
func (o *Order) TransitionTo(next Status, at time.Time, note string) (StatusChange, error) {
	if !o.status.CanTransitionTo(next) {
		return StatusChange{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, next)
	}
	change := StatusChange{Status: next, Note: note, ChangedAt: at}
	o.status = next
	o.history = append(o.history, change)
	o.updatedAt = at
	return change, nil
}

// Cancel applies a customer cancellation, allowed only while new and inside the window.
func (o *Order) Cancel(by uuid.UUID, at time.Time, window time.Duration) (StatusChange, error) {
	if o.userID != by {
		return StatusChange{}, ErrNotOwner
	}
	if o.status != StatusNew {
		return StatusChange{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, StatusCanceled)
	}
	if at.Sub(o.createdAt) > window {
		return StatusChange{}, ErrCancelWindowClosed
	}
	return o.TransitionTo(StatusCanceled, at, NoteCanceledByCustomer)
}

func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.userID == userID
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) Number() Number               { return o.number }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Items() []LineItem            { return o.items }
func (o *Order) Subtotal() decimal.Decimal    { return o.subtotal }
func (o *Order) Total() decimal.Decimal       { return o.total }
func (o *Order) Discount() Discount           { return o.discount }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Shipping() ShippingInfo       { return o.shipping }
func (o *Order) Note() Note                   { return o.note }
func (o *Order) History() []StatusChange      { return o.history }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
