package order

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const numberPrefix = "ORD-"

// Number is the human readable order reference printed on receipts.
type Number string

func (n Number) String() string {
	return string(n)
}

type NumberGenerator interface {
	Next(at time.Time) Number
}

// ULIDNumberGenerator yields lexically sortable, collision resistant numbers.
type ULIDNumberGenerator struct{}

func NewULIDNumberGenerator() *ULIDNumberGenerator {
	return &ULIDNumberGenerator{}
}

func (ULIDNumberGenerator) Next(at time.Time) Number {
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy())
	return Number(numberPrefix + id.String())
}

func ParseNumber(s string) (Number, error) {
	if !strings.HasPrefix(s, numberPrefix) {
		return "", ErrInvalidNumber
	}
	if _, err := ulid.ParseStrict(strings.TrimPrefix(s, numberPrefix)); err != nil {
		return "", ErrInvalidNumber
	}
	return Number(s), nil
}
