package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	var body struct {
		Number  Amount `json:"number"`
		String  Amount `json:"string"`
		Garbage Amount `json:"garbage"`
		Null    Amount `json:"null"`
		Missing Amount `json:"missing"`
	}
	err := json.Unmarshal([]byte(`{"number": 1500.25, "string": "200", "garbage": "abc", "null": null}`), &body)
	require.NoError(t, err)

	assert.True(t, body.Number.IsSet())
	assert.Equal(t, "1500.25", body.Number.Decimal().String())
	assert.Equal(t, "200", body.String.Decimal().String())

	assert.True(t, body.Garbage.IsSet())
	assert.True(t, body.Garbage.Decimal().IsZero())

	assert.False(t, body.Null.IsSet())
	assert.False(t, body.Missing.IsSet())
	assert.True(t, body.Missing.Decimal().IsZero())
}

func TestAmount_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Amount{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	a := NewAmount(nil)
	assert.False(t, a.IsSet())
}
