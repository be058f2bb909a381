package builders

import (
	"ngi/models"

	"gorm.io/datatypes"
)

// BookingBuilder assembles a booking from request parts
type BookingBuilder struct {
	booking *models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{},
	}
}

// WithGuest sets the contact details
func (b *BookingBuilder) WithGuest(name, email, phone string) *BookingBuilder {
	b.booking.Name = name
	b.booking.Email = email
	b.booking.Phone = phone
	return b
}

// WithStay sets the inclusive date range
func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.booking.CheckIn = checkIn
	b.booking.CheckOut = checkOut
	return b
}

// WithGuests sets the guest tier
func (b *BookingBuilder) WithGuests(tier int) *BookingBuilder {
	b.booking.Guests = tier
	return b
}

func (b *BookingBuilder) WithMessage(message string) *BookingBuilder {
	b.booking.Message = message
	return b
}

func (b *BookingBuilder) WithIdentityDocument(ref string) *BookingBuilder {
	b.booking.IdentityDocument = ref
	return b
}

// WithPayment is skipped for a zero PaymentInfo
func (b *BookingBuilder) WithPayment(info models.PaymentInfo) *BookingBuilder {
	if info != (models.PaymentInfo{}) {
		b.booking.Payment = datatypes.NewJSONType(info)
	}
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.booking.Status = status
	return b
}

func (b *BookingBuilder) WithSource(source string) *BookingBuilder {
	b.booking.Source = source
	return b
}

// Build returns the booking
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
