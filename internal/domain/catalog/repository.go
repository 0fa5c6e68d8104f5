package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

type ServiceRepository interface {
	Create(ctx context.Context, s Service) (Service, error)
	GetByID(ctx context.Context, id string) (Service, error)
	List(ctx context.Context) ([]Service, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
