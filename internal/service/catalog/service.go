package catalog

import (
	"context"
	"strings"

	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
)

type CatalogServiceImpl struct {
	serviceRepo catalog.ServiceRepository
	publisher   events.Publisher
}

func NewCatalogService(serviceRepo catalog.ServiceRepository, publisher events.Publisher) catalog.CatalogService {
	return &CatalogServiceImpl{
		serviceRepo: serviceRepo,
		publisher:   publisher,
	}
}

// ListServices implements catalog.CatalogService.
func (s *CatalogServiceImpl) ListServices(ctx context.Context) ([]catalog.ServiceResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]catalog.ServiceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, catalog.ToResponse(svc))
	}
	return resp, nil
}

// CreateService implements catalog.CatalogService.
func (s *CatalogServiceImpl) CreateService(ctx context.Context, req catalog.CreateServiceRequest) (catalog.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ServiceResponse{}, err
	}

	created, err := s.serviceRepo.Create(ctx, catalog.Service{
		Title:           strings.TrimSpace(req.Title),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price.Decimal(),
	})
	if err != nil {
		return catalog.ServiceResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicServices)
	return catalog.ToResponse(created), nil
}

// UpdatePrice implements catalog.CatalogService. Existing appointments keep their stored total.
func (s *CatalogServiceImpl) UpdatePrice(ctx context.Context, req catalog.UpdatePriceRequest) (catalog.ServiceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ServiceResponse{}, err
	}

	if err := s.serviceRepo.UpdatePrice(ctx, req.ID, req.Price.Decimal()); err != nil {
		return catalog.ServiceResponse{}, err
	}

	updated, err := s.serviceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return catalog.ServiceResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicServices)
	return catalog.ToResponse(updated), nil
}

// DeleteService implements catalog.CatalogService. Appointments referencing it are left as they are.
func (s *CatalogServiceImpl) DeleteService(ctx context.Context, id string) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.TopicServices)
	return nil
}
