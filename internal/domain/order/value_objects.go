package order

import (
	"errors"
	"strings"

	"storefront-checkout/internal/pkg/sanitize"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingCheckoutDetails = errors.New("payment method and shipping info are required")
	ErrIncompleteShipping     = errors.New("complete shipping information is required")
	ErrNoteTooLong            = errors.New("note exceeds maximum length")
	ErrNegativePoints         = errors.New("points to redeem must not be negative")
)

const (
	// CurrencyScale is the number of fraction digits money is stored with.
	CurrencyScale int32 = 2

	maxNoteLength = 1000
)

// PointValue is the currency amount one loyalty point is worth.
var PointValue = decimal.NewFromInt(1)

func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

func PointsToAmount(points int64) decimal.Decimal {
	return RoundMoney(decimal.NewFromInt(points).Mul(PointValue))
}

type PaymentMethod string

func NewPaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrMissingCheckoutDetails
	}
	return PaymentMethod(s), nil
}

func (p PaymentMethod) String() string {
	return string(p)
}

type ShippingInfo struct {
	name    string
	phone   string
	address string
	city    string
	country string
}

// NewShippingInfo requires name, phone and address; city and country are optional.
func NewShippingInfo(name, phone, address, city, country string) (ShippingInfo, error) {
	info := ShippingInfo{
		name:    sanitize.Text(name),
		phone:   sanitize.Text(phone),
		address: sanitize.Text(address),
		city:    sanitize.Text(city),
		country: sanitize.Text(country),
	}
	if info.name == "" || info.phone == "" || info.address == "" {
		return ShippingInfo{}, ErrIncompleteShipping
	}
	return info, nil
}

func ReconstructShippingInfo(name, phone, address, city, country string) ShippingInfo {
	return ShippingInfo{name: name, phone: phone, address: address, city: city, country: country}
}

func (s ShippingInfo) Name() string    { return s.name }
func (s ShippingInfo) Phone() string   { return s.phone }
func (s ShippingInfo) Address() string { return s.address }
func (s ShippingInfo) City() string    { return s.city }
func (s ShippingInfo) Country() string { return s.country }

type Note struct {
	value *string
}

func NewNote(s *string) (Note, error) {
	clean := sanitize.TextPtr(s)
	if clean != nil && len([]rune(*clean)) > maxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: clean}, nil
}

func ReconstructNote(s *string) Note {
	return Note{value: s}
}

func (n Note) Value() *string {
	return n.value
}

// PointsRedemption is the number of loyalty points a customer asked to spend.
type PointsRedemption int64

func NewPointsRedemption(points *int64) (PointsRedemption, error) {
	if points == nil {
		return 0, nil
	}
	if *points < 0 {
		return 0, ErrNegativePoints
	}
	return PointsRedemption(*points), nil
}

func (p PointsRedemption) Int64() int64 {
	return int64(p)
}
