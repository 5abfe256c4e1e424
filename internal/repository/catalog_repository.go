package repository

import (
	"errors"
	"fmt"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository holds the reference data the ordering bot maintains.
// The console reads it and the admin edits a few flat attributes; nothing in
// the delivery lifecycle writes here.
type CatalogRepository interface {
	CreateCategory(category *models.Category) error
	GetCategoryByID(id string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(category *models.Category) error

	CreateProductType(productType *models.ProductType) error
	GetProductTypeByID(id string) (*models.ProductType, error)
	GetProductTypes() ([]models.ProductType, error)

	CreateCharacteristic(characteristic *models.Characteristic) error
	GetCharacteristicByID(id string) (*models.Characteristic, error)
	GetCharacteristics() ([]models.Characteristic, error)

	CreateSize(size *models.Size) error
	GetSizes() ([]models.Size, error)

	CreatePinCode(pinCode *models.PinCode) error
	GetPinCodeByID(id string) (*models.PinCode, error)
	GetPinCodes() ([]models.PinCode, error)
	UpdatePinCode(pinCode *models.PinCode) error

	GetCustomers() ([]models.Customer, error)
	GetOrders() ([]models.Order, error)
	// SearchOrders bounds orders by their delivery_date label, inclusive.
	// Empty bounds mean all orders.
	SearchOrders(startDate, endDate string) ([]models.Order, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *catalogRepository) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: category not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("created_at").Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) UpdateCategory(category *models.Category) error {
	result := r.db.Model(&models.Category{}).Where("id = ?", category.ID).
		Select("name", "description", "is_active").Updates(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: category not found", apperr.NotFound)
	}
	return nil
}

func (r *catalogRepository) CreateProductType(productType *models.ProductType) error {
	return r.db.Create(productType).Error
}

func (r *catalogRepository) GetProductTypeByID(id string) (*models.ProductType, error) {
	var productType models.ProductType
	err := r.db.First(&productType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product type not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &productType, nil
}

func (r *catalogRepository) GetProductTypes() ([]models.ProductType, error) {
	var productTypes []models.ProductType
	err := r.db.Order("created_at").Find(&productTypes).Error
	return productTypes, err
}

func (r *catalogRepository) CreateCharacteristic(characteristic *models.Characteristic) error {
	return r.db.Create(characteristic).Error
}

func (r *catalogRepository) GetCharacteristicByID(id string) (*models.Characteristic, error) {
	var characteristic models.Characteristic
	err := r.db.First(&characteristic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: characteristic not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &characteristic, nil
}

func (r *catalogRepository) GetCharacteristics() ([]models.Characteristic, error) {
	var characteristics []models.Characteristic
	err := r.db.Order("created_at").Find(&characteristics).Error
	return characteristics, err
}

func (r *catalogRepository) CreateSize(size *models.Size) error {
	return r.db.Create(size).Error
}

func (r *catalogRepository) GetSizes() ([]models.Size, error) {
	var sizes []models.Size
	err := r.db.Order("created_at").Find(&sizes).Error
	return sizes, err
}

func (r *catalogRepository) CreatePinCode(pinCode *models.PinCode) error {
	err := r.db.Create(pinCode).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: pin code already exists", apperr.Conflict)
	}
	return err
}

func (r *catalogRepository) GetPinCodeByID(id string) (*models.PinCode, error) {
	var pinCode models.PinCode
	err := r.db.First(&pinCode, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: pin code not found", apperr.NotFound)
	}
	if err != nil {
		return nil, err
	}
	return &pinCode, nil
}

func (r *catalogRepository) GetPinCodes() ([]models.PinCode, error) {
	var pinCodes []models.PinCode
	err := r.db.Order("created_at").Find(&pinCodes).Error
	return pinCodes, err
}

func (r *catalogRepository) UpdatePinCode(pinCode *models.PinCode) error {
	result := r.db.Model(&models.PinCode{}).Where("id = ?", pinCode.ID).
		Select("pincode", "area_name", "is_serviceable", "available_time_slots", "delivery_charge").
		Updates(pinCode)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: pin code not found", apperr.NotFound)
	}
	return nil
}

func (r *catalogRepository) GetCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at").Find(&customers).Error
	return customers, err
}

func (r *catalogRepository) GetOrders() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at").Find(&orders).Error
	return orders, err
}

func (r *catalogRepository) SearchOrders(startDate, endDate string) ([]models.Order, error) {
	query := r.db.Order("created_at")
	if startDate != "" {
		query = query.Where("delivery_date BETWEEN ? AND ?", startDate, endDate)
	}

	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}
