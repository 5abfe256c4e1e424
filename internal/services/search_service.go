package services

import (
	"fmt"
	"time"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"
	"milk_delivery/internal/repository"
)

type SearchFilter struct {
	StartDate        string // YYYY-MM-DD, inclusive
	EndDate          string // YYYY-MM-DD, inclusive
	DeliveryPersonID string
	Pincode          string
}

type SearchResult struct {
	Orders     []models.Order    `json:"orders"`
	Deliveries []models.Delivery `json:"deliveries"`
}

// SearchService answers the admin console's cross-cutting lookups: deliveries
// and bot orders filtered by date range, delivery person or pincode. The
// person and pincode filters apply to deliveries only; orders carry neither.
type SearchService interface {
	Search(filter SearchFilter) (*SearchResult, error)
}

type searchService struct {
	deliveryRepo repository.DeliveryRepository
	catalogRepo  repository.CatalogRepository
}

func NewSearchService(deliveryRepo repository.DeliveryRepository, catalogRepo repository.CatalogRepository) SearchService {
	return &searchService{deliveryRepo: deliveryRepo, catalogRepo: catalogRepo}
}

func (s *searchService) Search(filter SearchFilter) (*SearchResult, error) {
	if err := validateDateRange(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}

	deliveries, err := s.deliveryRepo.Search(repository.DeliverySearchFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		PersonID:  filter.DeliveryPersonID,
		Pincode:   filter.Pincode,
	})
	if err != nil {
		return nil, err
	}

	orders, err := s.catalogRepo.SearchOrders(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	return &SearchResult{Orders: orders, Deliveries: deliveries}, nil
}

// validateDateRange requires both bounds or neither, both well-formed.
func validateDateRange(startDate, endDate string) error {
	if startDate == "" && endDate == "" {
		return nil
	}
	if startDate == "" || endDate == "" {
		return fmt.Errorf("%w: start_date and end_date must be given together", apperr.Invalid)
	}
	for _, date := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("%w: dates must be YYYY-MM-DD", apperr.Invalid)
		}
	}
	if endDate < startDate {
		return fmt.Errorf("%w: end_date is before start_date", apperr.Invalid)
	}
	return nil
}
