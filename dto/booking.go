package dto

import "ngi/models"

// BookingRequest is the public booking form. Guests may be a tier number
// or a tier label such as "10-15".
type BookingRequest struct {
	Name             string              `json:"name" form:"name"`
	Email            string              `json:"email" form:"email"`
	Phone            string              `json:"phone" form:"phone"`
	CheckIn          string              `json:"checkIn" form:"checkIn"`
	CheckOut         string              `json:"checkOut" form:"checkOut"`
	Guests           interface{}         `json:"guests" form:"-"`
	GuestsForm       string              `json:"-" form:"guests"`
	Message          string              `json:"message" form:"message"`
	IdentityDocument string              `json:"identityDocument" form:"identityDocument"`
	Payment          *models.PaymentInfo `json:"payment" form:"-"`
	PaymentMethod    string              `json:"-" form:"paymentMethod"`
	PaymentRef       string              `json:"-" form:"paymentRef"`
}

// BookingListQuery is the admin listing filter
type BookingListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Q      string `form:"q"`
	Page   int    `form:"page" binding:"omitempty,min=0"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// BookingListResponse carries a "did you mean" hint when a search is empty
type BookingListResponse struct {
	Bookings   []models.Booking `json:"bookings"`
	Suggestion string           `json:"suggestion,omitempty"`
}

// DeleteBookingResponse reports which days the deletion freed
type DeleteBookingResponse struct {
	Success  bool     `json:"success"`
	Removed  []string `json:"removedDates"`
	Retained []string `json:"retainedDates"`
}

// ImportResponse
type ImportResponse struct {
	Imported int              `json:"imported"`
	Bookings []models.Booking `json:"bookings"`
}
