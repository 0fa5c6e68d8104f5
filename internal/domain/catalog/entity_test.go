package catalog

import (
	"testing"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []Service{
	{ID: "cut", Title: "Haircut", DurationMinutes: 30, Price: decimal.NewFromInt(250)},
	{ID: "dye", Title: "Dye", DurationMinutes: 90, Price: decimal.NewFromInt(900)},
	{ID: "wash", Title: "Wash", DurationMinutes: 15, Price: decimal.RequireFromString("75.50")},
}

func TestTotalDuration_OrderIndependent(t *testing.T) {
	a := TotalDuration([]Service{testCatalog[0], testCatalog[1], testCatalog[2]})
	b := TotalDuration([]Service{testCatalog[2], testCatalog[0], testCatalog[1]})

	assert.Equal(t, 135*time.Minute, a)
	assert.Equal(t, a, b)
	assert.Equal(t, time.Duration(0), TotalDuration(nil))
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, "1225.5", TotalPrice(testCatalog).String())
	assert.True(t, TotalPrice(nil).IsZero())
}

func TestResolve(t *testing.T) {
	got, err := Resolve([]string{"wash", "cut"}, testCatalog)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "wash", got[0].ID)
	assert.Equal(t, "cut", got[1].ID)

	_, err = Resolve([]string{"cut", "gone"}, testCatalog)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestResolveKnown_SkipsOrphans(t *testing.T) {
	got := ResolveKnown([]string{"cut", "gone", "dye"}, testCatalog)
	require.Len(t, got, 2)
	assert.Equal(t, 120*time.Minute, TotalDuration(got))
}

func TestCreateServiceRequest_Validate(t *testing.T) {
	req := CreateServiceRequest{Title: "Beard trim", DurationMinutes: 20, Price: money.NewAmount(120)}
	assert.NoError(t, req.Validate())

	req = CreateServiceRequest{Title: " ", DurationMinutes: 0, Price: money.NewAmount(-1)}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "duration_minutes")
	assert.Contains(t, err.Error(), "price")
}
