package models

import (
	"time"
)

// Payment tracks an order created with the gateway, or a UPI transfer
type Payment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	OrderID   string    `json:"orderId" gorm:"index"`
	PaymentID string    `json:"paymentId"`
	Method    string    `json:"method"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency" gorm:"default:INR"`
	Receipt   string    `json:"receipt"`
	Reference string    `json:"reference"`
	Status    string    `json:"status" gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
