package transaction

import (
	"testing"

	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	got, err := ParseType("Gelir")
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, got)

	got, err = ParseType("gider")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, got)

	_, err = ParseType("refund")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestTransaction_IsIncome(t *testing.T) {
	assert.True(t, Transaction{Type: TypeIncome}.IsIncome())
	assert.True(t, Transaction{Type: "GELIR"}.IsIncome())
	assert.False(t, Transaction{Type: TypeExpense}.IsIncome())
	assert.False(t, Transaction{Type: "kira"}.IsIncome())
}

func TestCreateTransactionRequest_Validate(t *testing.T) {
	req := CreateTransactionRequest{Type: "expense", Amount: money.NewAmount("120.50"), Description: "Shampoo stock"}
	assert.NoError(t, req.Validate())

	req = CreateTransactionRequest{Type: "x", Amount: money.NewAmount("abc")}
	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.True(t, errs.Has("type"))
	assert.True(t, errs.Has("amount"))
	assert.True(t, errs.Has("description"))
}

func TestToResponse_UnknownCreator(t *testing.T) {
	resp := ToResponse(Transaction{ID: "t1", CreatedBy: "gone"}, map[string]string{}, "Unknown")
	assert.Equal(t, "Unknown", resp.CreatedByName)
	assert.Equal(t, int64(0), resp.DateMillis)
}
