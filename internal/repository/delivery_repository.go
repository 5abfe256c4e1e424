package repository

import (
	"errors"
	"fmt"
	"time"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"

	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(delivery *models.Delivery) error
	GetByID(id string) (*models.Delivery, error)
	GetByPersonID(personID string) ([]models.Delivery, error)
	GetAll() ([]models.Delivery, error)
	// FinalizeStatus moves a delivery out of pending. A non-empty ownerID
	// additionally requires that person to still own the delivery, so a
	// reassignment committed after the caller's read makes the write miss.
	// It reports false when no row matched, without touching anything.
	FinalizeStatus(id string, status models.DeliveryStatus, reason, comments, ownerID string) (bool, error)
	// Reassign changes the owning person while the delivery is still pending.
	Reassign(id, newPersonID string) (bool, error)
	Search(filter DeliverySearchFilter) ([]models.Delivery, error)
}

// DeliverySearchFilter narrows the admin search; zero-value fields are
// ignored. Dates bound the delivery_date label, inclusive on both ends.
type DeliverySearchFilter struct {
	StartDate string
	EndDate   string
	PersonID  string
	Pincode   string
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(delivery *models.Delivery) error {
	return r.db.Create(delivery).Error
}

func (r *deliveryRepository) GetByID(id string) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.First(&delivery, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: delivery not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) GetByPersonID(personID string) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := r.db.Where("delivery_person_id = ?", personID).Order("created_at").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepository) GetAll() ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := r.db.Order("created_at").Find(&deliveries).Error
	return deliveries, err
}

// The WHERE clause is the compare-and-swap that keeps two racing
// finalizations (or a finalization racing a reassignment) from both
// committing: the first writer wins, the second matches zero rows. The
// owner guard makes a reassignment that landed between the caller's read
// and this write count as losing the race.
func (r *deliveryRepository) FinalizeStatus(id string, status models.DeliveryStatus, reason, comments, ownerID string) (bool, error) {
	query := r.db.Model(&models.Delivery{}).
		Where("id = ? AND status = ?", id, models.StatusPending)
	if ownerID != "" {
		query = query.Where("delivery_person_id = ?", ownerID)
	}
	result := query.
		Updates(map[string]interface{}{
			"status":     status,
			"reason":     reason,
			"comments":   comments,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *deliveryRepository) Search(filter DeliverySearchFilter) ([]models.Delivery, error) {
	query := r.db.Order("created_at")
	if filter.StartDate != "" {
		// YYYY-MM-DD labels order lexicographically.
		query = query.Where("delivery_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}
	if filter.PersonID != "" {
		query = query.Where("delivery_person_id = ?", filter.PersonID)
	}
	if filter.Pincode != "" {
		query = query.Where("customer_pincode = ?", filter.Pincode)
	}

	var deliveries []models.Delivery
	err := query.Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepository) Reassign(id, newPersonID string) (bool, error) {
	result := r.db.Model(&models.Delivery{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"delivery_person_id": newPersonID,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
