package repository

import (
	"errors"
	"fmt"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"

	"gorm.io/gorm"
)

type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: admin not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
