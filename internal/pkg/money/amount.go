package money

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a request field that accepts a JSON number, a numeric string or
// null. The value is normalized lazily so validation can decide what an
// absent or malformed amount means.
type Amount struct {
	raw any
	set bool
}

func NewAmount(v any) Amount {
	return Amount{raw: v, set: v != nil}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Amount{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*a = Amount{raw: v, set: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.Decimal())
}

// IsSet reports whether the client sent a non-null value.
func (a Amount) IsSet() bool {
	return a.set
}

func (a Amount) Decimal() decimal.Decimal {
	return Normalize(a.raw)
}
