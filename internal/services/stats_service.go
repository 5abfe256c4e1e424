package services

import (
	"milk_delivery/internal/models"
	"milk_delivery/internal/repository"
)

type DayStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type DeliveryStats struct {
	TotalDeliveries     int                 `json:"total_deliveries"`
	CompletedDeliveries int                 `json:"completed_deliveries"`
	PendingDeliveries   int                 `json:"pending_deliveries"`
	DailyStats          map[string]DayStats `json:"daily_stats"`
}

// StatsService derives dashboard counters from the delivery registry. Every
// call recomputes from the current snapshot; there are no cached rollups, so
// the result always reflects the latest committed writes.
type StatsService interface {
	PersonStats(personID string) (*DeliveryStats, error)
	GlobalStats() (*DeliveryStats, error)
}

type statsService struct {
	deliveryRepo repository.DeliveryRepository
	personRepo   repository.DeliveryPersonRepository
}

func NewStatsService(deliveryRepo repository.DeliveryRepository, personRepo repository.DeliveryPersonRepository) StatsService {
	return &statsService{deliveryRepo: deliveryRepo, personRepo: personRepo}
}

func (s *statsService) PersonStats(personID string) (*DeliveryStats, error) {
	if _, err := s.personRepo.GetByID(personID); err != nil {
		return nil, err
	}
	deliveries, err := s.deliveryRepo.GetByPersonID(personID)
	if err != nil {
		return nil, err
	}
	return aggregate(deliveries), nil
}

func (s *statsService) GlobalStats() (*DeliveryStats, error) {
	deliveries, err := s.deliveryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return aggregate(deliveries), nil
}

func aggregate(deliveries []models.Delivery) *DeliveryStats {
	stats := &DeliveryStats{
		DailyStats: make(map[string]DayStats),
	}

	for _, d := range deliveries {
		stats.TotalDeliveries++

		// The delivery date is an opaque calendar-day label; deliveries
		// with the same label always land in the same bucket.
		day := stats.DailyStats[d.DeliveryDate]
		day.Total++

		if d.Status.Terminal() {
			stats.CompletedDeliveries++
			day.Completed++
		} else {
			stats.PendingDeliveries++
			day.Pending++
		}
		stats.DailyStats[d.DeliveryDate] = day
	}

	return stats
}
