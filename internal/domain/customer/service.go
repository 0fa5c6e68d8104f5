package customer

import "context"

type CustomerService interface {
	ListCustomers(ctx context.Context, filter CustomerFilter) ([]CustomerResponse, error)
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
}
