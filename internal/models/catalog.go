package models

import "time"

// Catalog reference data produced by the WhatsApp ordering bot. The console
// reads it for display; the delivery lifecycle never mutates it.

type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductType struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	CategoryID  string    `json:"category_id" gorm:"not null;index"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

type Characteristic struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	ProductTypeID string    `json:"product_type_id" gorm:"not null;index"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
}

type Size struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"not null"`
	Value            string    `json:"value" gorm:"not null"` // e.g. "250ml", "500ml", "1L"
	CharacteristicID string    `json:"characteristic_id" gorm:"not null;index"`
	Price            float64   `json:"price" gorm:"not null"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
}

type PinCode struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	Pincode            string    `json:"pincode" gorm:"unique;not null"`
	AreaName           string    `json:"area_name" gorm:"not null"`
	IsServiceable      bool      `json:"is_serviceable" gorm:"default:true"`
	AvailableTimeSlots []string  `json:"available_time_slots" gorm:"serializer:json"` // e.g. ["6:00-8:00"]
	DeliveryCharge     float64   `json:"delivery_charge"`
	CreatedAt          time.Time `json:"created_at"`
}
