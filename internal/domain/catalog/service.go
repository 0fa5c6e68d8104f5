package catalog

import "context"

type CatalogService interface {
	ListServices(ctx context.Context) ([]ServiceResponse, error)
	CreateService(ctx context.Context, req CreateServiceRequest) (ServiceResponse, error)
	UpdatePrice(ctx context.Context, req UpdatePriceRequest) (ServiceResponse, error)
	DeleteService(ctx context.Context, id string) error
}
