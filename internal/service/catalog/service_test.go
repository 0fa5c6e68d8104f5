package catalog

import (
	"context"
	"testing"

	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	"github.com/salonpanel/salon-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListServices(t *testing.T) {
	repo := servicetest.NewServiceRepo()
	pub := &servicetest.Publisher{}
	svc := NewCatalogService(repo, pub)
	ctx := context.Background()

	_, err := svc.CreateService(ctx, catalog.CreateServiceRequest{Title: " Saç Kesimi ", DurationMinutes: 30, Price: money.NewAmount("250")})
	require.NoError(t, err)
	_, err = svc.CreateService(ctx, catalog.CreateServiceRequest{Title: "Boya", DurationMinutes: 90, Price: money.NewAmount(900)})
	require.NoError(t, err)

	list, err := svc.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Boya", list[0].Title)
	assert.Equal(t, "Saç Kesimi", list[1].Title)
	assert.Equal(t, []events.Topic{events.TopicServices, events.TopicServices}, pub.Topics)
}

func TestCreateService_Validation(t *testing.T) {
	repo := servicetest.NewServiceRepo()
	svc := NewCatalogService(repo, events.Nop{})

	_, err := svc.CreateService(context.Background(), catalog.CreateServiceRequest{Title: "", DurationMinutes: 0, Price: money.NewAmount(-1)})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("title"))
	assert.True(t, verrs.Has("duration_minutes"))
	assert.True(t, verrs.Has("price"))
	assert.Empty(t, repo.Rows)
}

func TestUpdatePriceAndDelete(t *testing.T) {
	repo := servicetest.NewServiceRepo(catalog.Service{ID: "svc-1", Title: "Fön", DurationMinutes: 20, Price: decimal.NewFromInt(100)})
	svc := NewCatalogService(repo, events.Nop{})
	ctx := context.Background()

	updated, err := svc.UpdatePrice(ctx, catalog.UpdatePriceRequest{ID: "svc-1", Price: money.NewAmount("120.5")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("120.5").Equal(updated.Price))

	require.NoError(t, svc.DeleteService(ctx, "svc-1"))
	assert.ErrorIs(t, svc.DeleteService(ctx, "svc-1"), catalog.ErrServiceNotFound)
}
