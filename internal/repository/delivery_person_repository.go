package repository

import (
	"errors"
	"fmt"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"

	"gorm.io/gorm"
)

type DeliveryPersonRepository interface {
	Create(person *models.DeliveryPerson) error
	GetByID(id string) (*models.DeliveryPerson, error)
	GetByPhone(phone string) (*models.DeliveryPerson, error)
	GetAll() ([]models.DeliveryPerson, error)
	UpdatePasswordHash(id, passwordHash string) error
}

type deliveryPersonRepository struct {
	db *gorm.DB
}

func NewDeliveryPersonRepository(db *gorm.DB) DeliveryPersonRepository {
	return &deliveryPersonRepository{db: db}
}

func (r *deliveryPersonRepository) Create(person *models.DeliveryPerson) error {
	err := r.db.Create(person).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: phone number already registered", apperr.Conflict)
	}
	return err
}

func (r *deliveryPersonRepository) GetByID(id string) (*models.DeliveryPerson, error) {
	var person models.DeliveryPerson
	err := r.db.First(&person, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: delivery person not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *deliveryPersonRepository) GetByPhone(phone string) (*models.DeliveryPerson, error) {
	var person models.DeliveryPerson
	err := r.db.First(&person, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: delivery person not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *deliveryPersonRepository) GetAll() ([]models.DeliveryPerson, error) {
	var persons []models.DeliveryPerson
	err := r.db.Order("created_at").Find(&persons).Error
	return persons, err
}

func (r *deliveryPersonRepository) UpdatePasswordHash(id, passwordHash string) error {
	result := r.db.Model(&models.DeliveryPerson{}).Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: delivery person not found", apperr.NotFound)
	}
	return nil
}
