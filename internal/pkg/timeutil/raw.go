package timeutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// RawInstant holds a timestamp exactly as the client sent it, either epoch
// milliseconds (number or string) or a date-time string. Resolution is deferred
// until the business location is known.
type RawInstant struct {
	value any
}

// NewRawInstant wraps v, mostly for tests and internal callers.
func NewRawInstant(v any) RawInstant {
	return RawInstant{value: v}
}

func (r *RawInstant) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.value = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	r.value = v
	return nil
}

func (r RawInstant) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// IsEmpty reports a missing value or a blank string.
func (r RawInstant) IsEmpty() bool {
	switch v := r.value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// Resolve converts the raw value into a UTC instant.
func (r RawInstant) Resolve(loc *time.Location) (time.Time, error) {
	return ToInstant(r.value, loc)
}
