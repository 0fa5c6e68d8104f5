package customer

import "context"

type CustomerRepository interface {
	Create(ctx context.Context, c Customer) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]Customer, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}
