package services

import (
	"fmt"
	"strings"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"
	"milk_delivery/internal/repository"

	"github.com/google/uuid"
)

// CatalogService exposes the reference data the ordering bot maintains:
// product hierarchy, serviceable pin codes, customers and orders. The
// console displays it; only flat attributes are editable here.
type CatalogService interface {
	CreateCategory(name, description string, isActive bool) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(id, name, description string, isActive bool) error

	CreateProductType(name, categoryID, description string, isActive bool) (*models.ProductType, error)
	GetProductTypes() ([]models.ProductType, error)

	CreateCharacteristic(name, productTypeID, description string, isActive bool) (*models.Characteristic, error)
	GetCharacteristics() ([]models.Characteristic, error)

	CreateSize(name, value, characteristicID string, price float64, isActive bool) (*models.Size, error)
	GetSizes() ([]models.Size, error)

	CreatePinCode(input PinCodeInput) (*models.PinCode, error)
	GetPinCodes() ([]models.PinCode, error)
	UpdatePinCode(id string, input PinCodeInput) error

	GetCustomers() ([]models.Customer, error)
	GetOrders() ([]models.Order, error)
}

type PinCodeInput struct {
	Pincode            string   `json:"pincode"`
	AreaName           string   `json:"area_name"`
	IsServiceable      bool     `json:"is_serviceable"`
	AvailableTimeSlots []string `json:"available_time_slots"`
	DeliveryCharge     float64  `json:"delivery_charge"`
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) CreateCategory(name, description string, isActive bool) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.Invalid)
	}
	category := &models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    isActive,
	}
	if err := s.catalogRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategories() ([]models.Category, error) {
	return s.catalogRepo.GetCategories()
}

func (s *catalogService) UpdateCategory(id, name, description string, isActive bool) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", apperr.Invalid)
	}
	return s.catalogRepo.UpdateCategory(&models.Category{
		ID:          id,
		Name:        name,
		Description: description,
		IsActive:    isActive,
	})
}

func (s *catalogService) CreateProductType(name, categoryID, description string, isActive bool) (*models.ProductType, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(categoryID) == "" {
		return nil, fmt.Errorf("%w: name and category_id are required", apperr.Invalid)
	}
	if _, err := s.catalogRepo.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}
	productType := &models.ProductType{
		ID:          uuid.NewString(),
		Name:        name,
		CategoryID:  categoryID,
		Description: description,
		IsActive:    isActive,
	}
	if err := s.catalogRepo.CreateProductType(productType); err != nil {
		return nil, err
	}
	return productType, nil
}

func (s *catalogService) GetProductTypes() ([]models.ProductType, error) {
	return s.catalogRepo.GetProductTypes()
}

func (s *catalogService) CreateCharacteristic(name, productTypeID, description string, isActive bool) (*models.Characteristic, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(productTypeID) == "" {
		return nil, fmt.Errorf("%w: name and product_type_id are required", apperr.Invalid)
	}
	if _, err := s.catalogRepo.GetProductTypeByID(productTypeID); err != nil {
		return nil, err
	}
	characteristic := &models.Characteristic{
		ID:            uuid.NewString(),
		Name:          name,
		ProductTypeID: productTypeID,
		Description:   description,
		IsActive:      isActive,
	}
	if err := s.catalogRepo.CreateCharacteristic(characteristic); err != nil {
		return nil, err
	}
	return characteristic, nil
}

func (s *catalogService) GetCharacteristics() ([]models.Characteristic, error) {
	return s.catalogRepo.GetCharacteristics()
}

func (s *catalogService) CreateSize(name, value, characteristicID string, price float64, isActive bool) (*models.Size, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(value) == "" || strings.TrimSpace(characteristicID) == "" {
		return nil, fmt.Errorf("%w: name, value and characteristic_id are required", apperr.Invalid)
	}
	if _, err := s.catalogRepo.GetCharacteristicByID(characteristicID); err != nil {
		return nil, err
	}
	size := &models.Size{
		ID:               uuid.NewString(),
		Name:             name,
		Value:            value,
		CharacteristicID: characteristicID,
		Price:            price,
		IsActive:         isActive,
	}
	if err := s.catalogRepo.CreateSize(size); err != nil {
		return nil, err
	}
	return size, nil
}

func (s *catalogService) GetSizes() ([]models.Size, error) {
	return s.catalogRepo.GetSizes()
}

func (s *catalogService) CreatePinCode(input PinCodeInput) (*models.PinCode, error) {
	if strings.TrimSpace(input.Pincode) == "" || strings.TrimSpace(input.AreaName) == "" {
		return nil, fmt.Errorf("%w: pincode and area_name are required", apperr.Invalid)
	}
	pinCode := &models.PinCode{
		ID:                 uuid.NewString(),
		Pincode:            input.Pincode,
		AreaName:           input.AreaName,
		IsServiceable:      input.IsServiceable,
		AvailableTimeSlots: input.AvailableTimeSlots,
		DeliveryCharge:     input.DeliveryCharge,
	}
	if err := s.catalogRepo.CreatePinCode(pinCode); err != nil {
		return nil, err
	}
	return pinCode, nil
}

func (s *catalogService) GetPinCodes() ([]models.PinCode, error) {
	return s.catalogRepo.GetPinCodes()
}

func (s *catalogService) UpdatePinCode(id string, input PinCodeInput) error {
	if strings.TrimSpace(input.Pincode) == "" || strings.TrimSpace(input.AreaName) == "" {
		return fmt.Errorf("%w: pincode and area_name are required", apperr.Invalid)
	}
	return s.catalogRepo.UpdatePinCode(&models.PinCode{
		ID:                 id,
		Pincode:            input.Pincode,
		AreaName:           input.AreaName,
		IsServiceable:      input.IsServiceable,
		AvailableTimeSlots: input.AvailableTimeSlots,
		DeliveryCharge:     input.DeliveryCharge,
	})
}

func (s *catalogService) GetCustomers() ([]models.Customer, error) {
	return s.catalogRepo.GetCustomers()
}

func (s *catalogService) GetOrders() ([]models.Order, error) {
	return s.catalogRepo.GetOrders()
}
