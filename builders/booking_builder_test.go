package builders

import (
	"testing"

	"ngi/models"

	"github.com/stretchr/testify/assert"
)

func TestBookingBuilder(t *testing.T) {
	b := NewBookingBuilder().
		WithGuest("Asha", "asha@example.com", "9845012345").
		WithStay("2025-06-06", "2025-06-08").
		WithGuests(3).
		WithMessage("late arrival").
		WithIdentityDocument("identity/abc").
		WithPayment(models.PaymentInfo{Method: "UPI", Amount: 2000}).
		WithStatus(models.BookingStatusPending).
		WithSource("web").
		Build()

	assert.Equal(t, "Asha", b.Name)
	assert.Equal(t, "2025-06-08", b.CheckOut)
	assert.Equal(t, 3, b.Guests)
	assert.Equal(t, "identity/abc", b.IdentityDocument)
	assert.Equal(t, 2000, b.Payment.Data().Amount)
	assert.True(t, b.HasValidRange())
}

func TestBookingBuilder_EmptyPaymentLeftUnset(t *testing.T) {
	b := NewBookingBuilder().WithPayment(models.PaymentInfo{}).Build()
	assert.Equal(t, "", b.Payment.Data().Method)
}
