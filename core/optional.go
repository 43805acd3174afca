package core

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/volatiletech/null/v8"
)

// Optional tells an absent JSON field (Set is false) apart from an explicit null (Set & !Valid).
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Some returns a set & valid Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

func NullString(o Optional[string]) null.String   { return null.NewString(o.Value, o.Valid) }
func NullFloat64(o Optional[float64]) null.Float64 { return null.NewFloat64(o.Value, o.Valid) }
func NullInt(o Optional[int]) null.Int             { return null.NewInt(o.Value, o.Valid) }

func NullJSON(o Optional[json.RawMessage]) null.JSON {
	if !o.Valid {
		return null.JSON{}
	}
	return null.JSONFrom(o.Value)
}

// NullTime parses a value that passed the `date` validation tag.
func NullTime(o Optional[string]) null.Time {
	if !o.Valid {
		return null.Time{}
	}
	return null.TimeFrom(MustParseDate(o.Value))
}

// optionalTypeFunc exposes the value of valid Optionals to validation tags. The value is handed over
// as a pointer: omitempty then skips absent & null Optionals only, and an explicit "" or 0 is checked.
func optionalTypeFunc(v reflect.Value) interface{} {
	if !v.FieldByName("Valid").Bool() {
		return nil
	}
	val := v.FieldByName("Value")
	ptr := reflect.New(val.Type())
	ptr.Elem().Set(val)
	return ptr.Interface()
}

var optionalTypes = []interface{}{
	Optional[string]{}, Optional[int]{}, Optional[float64]{}, Optional[bool]{},
}
