package response

import (
	"encoding/json"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// Money leaves the API as a JSON number with two fraction digits.
var copyOptions = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: json.Number(""),
			Fn: func(src any) (any, error) {
				return json.Number(src.(decimal.Decimal).StringFixed(2)), nil
			},
		},
	},
}

func copyInto(dst, src any) error {
	return copier.CopyWithOption(dst, src, copyOptions)
}
