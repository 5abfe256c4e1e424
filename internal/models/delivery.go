package models

import "time"

type Delivery struct {
	ID               string         `json:"id" gorm:"primaryKey"`
	DeliveryPersonID string         `json:"delivery_person_id" gorm:"not null;index"`
	CustomerName     string         `json:"customer_name" gorm:"not null"`
	CustomerAddress  string         `json:"customer_address" gorm:"not null"`
	CustomerPhone    string         `json:"customer_phone" gorm:"not null"`
	CustomerWhatsApp string         `json:"customer_whatsapp" gorm:"column:customer_whatsapp"`
	CustomerPincode  string         `json:"customer_pincode" gorm:"not null"`
	ProductName      string         `json:"product_name" gorm:"not null"`
	ProductQuantity  string         `json:"product_quantity" gorm:"not null"`
	DeliveryDate     string         `json:"delivery_date" gorm:"not null;index"` // YYYY-MM-DD
	Status           DeliveryStatus `json:"status" gorm:"default:'pending';index"`
	Reason           string         `json:"reason,omitempty"`
	Comments         string         `json:"comments,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type DeliveryStatus string

const (
	StatusPending      DeliveryStatus = "pending"
	StatusDelivered    DeliveryStatus = "delivered"
	StatusNotDelivered DeliveryStatus = "not_delivered"
)

var allowedStatuses = [...]DeliveryStatus{
	StatusPending, StatusDelivered, StatusNotDelivered,
}

// Valid checks if the DeliveryStatus is one of the allowed values.
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusNotDelivered
}

type NotDeliveredReason string

// Closed set of reasons a delivery person may report. Values are
// case-sensitive and shown to the admin verbatim.
const (
	ReasonCustomerRefuses   NotDeliveredReason = "Customer refuses delivery"
	ReasonDeliveryDelay     NotDeliveredReason = "Delivery delay"
	ReasonBadWeather        NotDeliveredReason = "Bad Weather"
	ReasonNotReachable      NotDeliveredReason = "Customer not reachable"
	ReasonDamagedItem       NotDeliveredReason = "Damaged or defective item"
	ReasonIncompleteAddress NotDeliveredReason = "Incomplete or incorrect addresses"
	ReasonIncorrectAddress  NotDeliveredReason = "Incorrect addresses"
	ReasonIncorrectOrder    NotDeliveredReason = "Incorrect order"
	ReasonPaymentProblems   NotDeliveredReason = "Problems with payment"
	ReasonUnrealistic       NotDeliveredReason = "Unrealistic expectations"
)

var allowedReasons = [...]NotDeliveredReason{
	ReasonCustomerRefuses,
	ReasonDeliveryDelay,
	ReasonBadWeather,
	ReasonNotReachable,
	ReasonDamagedItem,
	ReasonIncompleteAddress,
	ReasonIncorrectAddress,
	ReasonIncorrectOrder,
	ReasonPaymentProblems,
	ReasonUnrealistic,
}

// Valid checks if the NotDeliveredReason is one of the allowed values.
func (r NotDeliveredReason) Valid() bool {
	for _, v := range allowedReasons {
		if r == v {
			return true
		}
	}
	return false
}
