package core

import (
	"reflect"

	"github.com/shopspring/decimal"
)

func init() {
	// money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundMoney rounds half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// decimalTypeFunc lets validation tags like `min=0` or `gt=0` apply to decimal fields.
func decimalTypeFunc(v reflect.Value) interface{} {
	switch d := v.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		// a pointer, so that omitempty only skips nulls
		if d.Valid {
			f, _ := d.Decimal.Float64()
			return &f
		}
	}
	return nil
}
