package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking status constants
const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// PaymentInfo is what the payment collaborator hands back for a booking
type PaymentInfo struct {
	Method string `json:"method"`
	Amount int    `json:"amount"`
	Time   string `json:"time"`
	Ref    string `json:"ref,omitempty"`
}

// Booking is the one canonical reservation record
type Booking struct {
	ID               uint                            `json:"id" gorm:"primaryKey"`
	Reference        string                          `json:"reference,omitempty" gorm:"index"`
	Name             string                          `json:"name" gorm:"not null"`
	Email            string                          `json:"email"`
	Phone            string                          `json:"phone"`
	CheckIn          string                          `json:"checkIn" gorm:"type:varchar(10);index"`
	CheckOut         string                          `json:"checkOut" gorm:"type:varchar(10)"`
	Guests           int                             `json:"guests" gorm:"default:1"`
	Message          string                          `json:"message"`
	IdentityDocument string                          `json:"identityDocument"`
	Payment          datatypes.JSONType[PaymentInfo] `json:"payment"`
	Price            int                             `json:"price"`
	Status           string                          `json:"status" gorm:"default:pending;index"`
	Source           string                          `json:"source" gorm:"default:web"`
	CreatedAt        time.Time                       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time                       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// HasValidRange reports whether both keys are set and check-out is not before check-in.
// Keys are fixed-width so string order is date order.
func (b *Booking) HasValidRange() bool {
	return b.CheckIn != "" && b.CheckOut != "" && b.CheckOut >= b.CheckIn
}

// Covers reports whether day falls inside the inclusive stay
func (b *Booking) Covers(day string) bool {
	return b.HasValidRange() && day >= b.CheckIn && day <= b.CheckOut
}
