package services

import (
	"context"
	"testing"

	"ngi/constants"
	"ngi/errors"
	"ngi/models"
	"ngi/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := newBooking("  Asha Rao ", "2025-06-07", "2025-06-08")
	b.Guests = 0
	b.Status = models.BookingStatusApproved
	require.NoError(t, f.bookings.Create(ctx, b))

	assert.NotZero(t, b.ID)
	assert.Equal(t, "Asha Rao", b.Name)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, 1, b.Guests)
	assert.Equal(t, constants.BookingSourceWeb, b.Source)
	// Saturday, tier 1
	assert.Equal(t, 12000, b.Price)

	last := f.events.Last()
	assert.Equal(t, notification.BookingsUpdated, last.Type)
	assert.Equal(t, "1", last.ID)

	// nothing is booked until approval
	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Booked)
}

func TestBookingService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.bookings.Create(ctx, newBooking("Asha", "2025-06-08", "2025-06-07"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidDateRange, errors.GetAppError(err).Code)

	noContact := newBooking("Asha", "2025-06-07", "2025-06-07")
	noContact.Phone = ""
	assert.Error(t, f.bookings.Create(ctx, noContact))

	badTier := newBooking("Asha", "2025-06-07", "2025-06-07")
	badTier.Guests = 9
	assert.Error(t, f.bookings.Create(ctx, badTier))

	for _, r := range [][2]string{{"2026-02-29", "2026-02-29"}, {"2025-02-30", "2025-03-01"}} {
		err := f.bookings.Create(ctx, newBooking("Asha", r[0], r[1]))
		require.Error(t, err, r[0])
		assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetAppError(err).Code)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.events.Types())
}

func TestBookingService_ApproveBooksTheStay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := newBooking("Asha", "2025-06-06", "2025-06-08")
	require.NoError(t, f.bookings.Create(ctx, b))

	approved, err := f.bookings.UpdateStatus(ctx, b.ID, "Approved", "admin")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, approved.Status)

	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-06", "2025-06-07", "2025-06-08"}, snap.Booked)

	assert.Equal(t, []notification.EventType{
		notification.BookingsUpdated,
		notification.BookedUpdated,
		notification.BookingsUpdated,
	}, f.events.Types())

	_, err = f.bookings.Approve(ctx, b.ID, "admin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidTransition))

	_, err = f.bookings.Reject(ctx, b.ID)
	assert.True(t, errors.Is(err, errors.ErrInvalidTransition))
}

func TestBookingService_RejectLeavesAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := newBooking("Asha", "2025-06-06", "2025-06-08")
	require.NoError(t, f.bookings.Create(ctx, b))

	rejected, err := f.bookings.UpdateStatus(ctx, b.ID, models.BookingStatusRejected, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, rejected.Status)

	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Booked)

	_, err = f.bookings.Approve(ctx, b.ID, "admin")
	assert.True(t, errors.Is(err, errors.ErrInvalidTransition))
}

func TestBookingService_UpdateStatusErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := newBooking("Asha", "2025-06-06", "2025-06-06")
	require.NoError(t, f.bookings.Create(ctx, b))

	_, err := f.bookings.UpdateStatus(ctx, b.ID, models.BookingStatusPending, "admin")
	assert.Equal(t, errors.ErrCodeInvalidTransition, errors.GetAppError(err).Code)

	_, err = f.bookings.UpdateStatus(ctx, b.ID, "cancelled", "admin")
	assert.Equal(t, errors.ErrCodeInvalidStatus, errors.GetAppError(err).Code)

	_, err = f.bookings.UpdateStatus(ctx, 999, models.BookingStatusApproved, "admin")
	assert.True(t, errors.Is(err, errors.ErrBookingNotFound))
}

func TestBookingService_DeleteKeepsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := newBooking("Asha", "2025-06-06", "2025-06-08")
	second := newBooking("Ravi", "2025-06-08", "2025-06-09")
	for _, b := range []*models.Booking{first, second} {
		require.NoError(t, f.bookings.Create(ctx, b))
		_, err := f.bookings.Approve(ctx, b.ID, "admin")
		require.NoError(t, err)
	}

	res, err := f.bookings.Delete(ctx, first.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-06", "2025-06-07"}, res.Removed)
	assert.Equal(t, []string{"2025-06-08"}, res.Retained)

	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-08", "2025-06-09"}, snap.Booked)

	_, err = f.bookings.GetByID(ctx, first.ID)
	assert.True(t, errors.Is(err, errors.ErrBookingNotFound))

	_, err = f.bookings.Delete(ctx, first.ID, "admin")
	assert.True(t, errors.Is(err, errors.ErrBookingNotFound))
}

func TestBookingService_DeletePendingFreesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.AddBooked(ctx, "2025-06-06", "", "admin")
	require.NoError(t, err)
	b := newBooking("Asha", "2025-06-06", "2025-06-06")
	require.NoError(t, f.bookings.Create(ctx, b))

	res, err := f.bookings.Delete(ctx, b.ID, "admin")
	require.NoError(t, err)
	assert.Empty(t, res.Removed)

	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-06"}, snap.Booked)
}

func TestBookingService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Asha Rao", "Ravi Kumar", "Zoë Fernandes"} {
		require.NoError(t, f.bookings.Create(ctx, newBooking(name, "2025-06-06", "2025-06-06")))
	}
	_, err := f.bookings.Approve(ctx, 2, "admin")
	require.NoError(t, err)

	page, err := f.bookings.List(ctx, BookingFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Bookings, 2)
	assert.Equal(t, "Zoë Fernandes", page.Bookings[0].Name)

	page, err = f.bookings.List(ctx, BookingFilter{Status: models.BookingStatusApproved})
	require.NoError(t, err)
	require.Len(t, page.Bookings, 1)
	assert.Equal(t, "Ravi Kumar", page.Bookings[0].Name)

	page, err = f.bookings.List(ctx, BookingFilter{Query: "zoe"})
	require.NoError(t, err)
	require.Len(t, page.Bookings, 1)
	assert.Equal(t, "Zoë Fernandes", page.Bookings[0].Name)

	page, err = f.bookings.List(ctx, BookingFilter{Query: "kumr"})
	require.NoError(t, err)
	assert.Len(t, page.Bookings, 1)

	page, err = f.bookings.List(ctx, BookingFilter{Query: "ashaa raoo xyz"})
	require.NoError(t, err)
	assert.Empty(t, page.Bookings)
	assert.Equal(t, "asha rao", page.Suggestion)

	_, err = f.bookings.List(ctx, BookingFilter{Status: "archived"})
	assert.Error(t, err)
}

func TestBookingService_Import(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	records, err := DecodeLegacyBookings([]byte(`[
		{"fullName": "Old Guest", "checkin": "2025-07-01T00:00:00.000Z", "check_out": "2025-07-02", "status": "approved", "mobile": "9876543210"},
		{"name": "Pending Guest", "date": "2025-07-10", "guestCount": "10-15", "email": "p@example.com"}
	]`))
	require.NoError(t, err)

	imported, err := f.bookings.Import(ctx, records, "admin")
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, constants.BookingSourceLegacy, imported[0].Source)
	assert.Equal(t, int(Tier10To15), imported[1].Guests)
	assert.NotZero(t, imported[1].Price)

	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-01", "2025-07-02"}, snap.Booked)

	assert.Equal(t, []notification.EventType{
		notification.BookedUpdated,
		notification.BookingsUpdated,
	}, f.events.Types())
}
