package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering of the salon.
type Service struct {
	ID              string
	Title           string
	DurationMinutes int
	Price           decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s Service) Duration() time.Duration {
	if s.DurationMinutes <= 0 {
		return 0
	}
	return time.Duration(s.DurationMinutes) * time.Minute
}

// TotalDuration sums the durations of services. Order does not matter.
func TotalDuration(services []Service) time.Duration {
	var total time.Duration
	for _, s := range services {
		total += s.Duration()
	}
	return total
}

func TotalPrice(services []Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}

// Resolve returns the services matching ids in the order of ids.
// An id missing from the catalog yields ErrServiceNotFound.
func Resolve(ids []string, catalog []Service) ([]Service, error) {
	idx := Index(catalog)
	resolved := make([]Service, 0, len(ids))
	for _, id := range ids {
		s, ok := idx[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
		}
		resolved = append(resolved, s)
	}
	return resolved, nil
}

// ResolveKnown is Resolve without the error: ids no longer in the catalog are skipped.
func ResolveKnown(ids []string, catalog []Service) []Service {
	idx := Index(catalog)
	resolved := make([]Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := idx[id]; ok {
			resolved = append(resolved, s)
		}
	}
	return resolved
}

func Index(services []Service) map[string]Service {
	idx := make(map[string]Service, len(services))
	for _, s := range services {
		idx[s.ID] = s
	}
	return idx
}
