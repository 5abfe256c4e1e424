package models

import "time"

type DeliveryPerson struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"not null"`
	Phone            string    `json:"phone" gorm:"unique;not null"` // login identity
	Address          string    `json:"address"`
	AadharNumber     string    `json:"aadhar_number"`
	BikeNumber       string    `json:"bike_number"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	BloodGroup       string    `json:"blood_group"`
	Pincode          string    `json:"pincode" gorm:"not null"`
	TimeOfWork       string    `json:"time_of_work"`
	SelectedPincodes []string  `json:"selected_pincodes" gorm:"serializer:json"`
	PasswordHash     string    `json:"-" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Admin struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserType string

const (
	UserTypeAdmin          UserType = "admin"
	UserTypeDeliveryPerson UserType = "delivery_person"
)
