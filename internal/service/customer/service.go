package customer

import (
	"context"

	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
)

type CustomerServiceImpl struct {
	customerRepo customer.CustomerRepository
	publisher    events.Publisher
}

func NewCustomerService(customerRepo customer.CustomerRepository, publisher events.Publisher) customer.CustomerService {
	return &CustomerServiceImpl{
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

// ListCustomers implements customer.CustomerService.
func (s *CustomerServiceImpl) ListCustomers(ctx context.Context, filter customer.CustomerFilter) ([]customer.CustomerResponse, error) {
	customers, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]customer.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, customer.ToResponse(c))
	}
	return resp, nil
}

// CreateCustomer implements customer.CustomerService.
func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return customer.CustomerResponse{}, err
	}

	created, err := s.customerRepo.Create(ctx, customer.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		return customer.CustomerResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicCustomers)
	return customer.ToResponse(created), nil
}

// DeleteCustomer implements customer.CustomerService. Appointments keep the dangling id.
func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.TopicCustomers)
	return nil
}
