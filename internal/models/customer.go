package models

import "time"

// Customer and Order records are written by the WhatsApp ordering bot and
// listed read-only in the admin console.

type Customer struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	WhatsAppNumber string    `json:"whatsapp_number" gorm:"column:whatsapp_number;unique;not null"`
	Name           string    `json:"name" gorm:"not null"`
	Pincode        string    `json:"pincode"`
	Address        string    `json:"address"`
	Landmark       string    `json:"landmark"`
	TotalOrders    int       `json:"total_orders" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
}

type Order struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	OrderNumber      string    `json:"order_number" gorm:"unique;not null"`
	CustomerID       string    `json:"customer_id" gorm:"not null;index"`
	DeliveryDate     string    `json:"delivery_date"`
	DeliveryTimeSlot string    `json:"delivery_time_slot"`
	Frequency        string    `json:"frequency" gorm:"default:'once'"` // once, alternate_day, daily, custom
	SubscriptionDays int       `json:"subscription_days" gorm:"default:1"`
	TotalAmount      float64   `json:"total_amount"`
	PaymentStatus    string    `json:"payment_status" gorm:"default:'pending'"` // pending, success, failed
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
