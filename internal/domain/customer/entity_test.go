package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	c := Customer{ID: "c1", Name: "İlayda Yılmaz", Phone: "05321234567"}

	assert.True(t, Matches(c, ""))
	assert.True(t, Matches(c, "ilayda"))
	assert.True(t, Matches(c, "YILMAZ"))
	assert.True(t, Matches(c, "0532"))
	assert.True(t, Matches(c, "  yılmaz 0532 "))
	assert.False(t, Matches(c, "ayşe"))
}

func TestFilter(t *testing.T) {
	customers := []Customer{
		{ID: "1", Name: "Ayşe Demir", Phone: "05551112233"},
		{ID: "2", Name: "Mehmet Kaya", Phone: "05329998877"},
	}
	got := Filter(customers, "AYŞE")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Len(t, Filter(customers, ""), 2)
}

func TestCreateCustomerRequest_Validate(t *testing.T) {
	req := CreateCustomerRequest{Name: "  Zeynep ", Phone: "0532 123 45 67"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Zeynep", req.Name)
	assert.Equal(t, "05321234567", req.Phone)

	req = CreateCustomerRequest{Name: "", Phone: "12"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "phone")
}
