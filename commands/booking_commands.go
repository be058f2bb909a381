package commands

import (
	"context"
	stderrors "errors"
	"time"

	"ngi/errors"
	"ngi/models"
	"ngi/utils"

	"gorm.io/gorm"
)

// CreateBookingCommand inserts a validated booking
type CreateBookingCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewCreateBookingCommand(booking *models.Booking, db *gorm.DB) *CreateBookingCommand {
	return &CreateBookingCommand{
		booking: booking,
		db:      db,
	}
}

func (c *CreateBookingCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Create(c.booking).Error
}

// ApproveBookingCommand sets status approved and merges the stay into the
// booked set in the same transaction
type ApproveBookingCommand struct {
	db    *gorm.DB
	id    uint
	loc   *time.Location
	actor string

	Booking *models.Booking
	Added   []string
}

func NewApproveBookingCommand(db *gorm.DB, id uint, loc *time.Location, actor string) *ApproveBookingCommand {
	return &ApproveBookingCommand{db: db, id: id, loc: loc, actor: actor}
}

func (c *ApproveBookingCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := loadBooking(tx, c.id)
		if err != nil {
			return err
		}

		if err := models.GetBookingState(booking.Status).Approve(booking); err != nil {
			return transitionError(err)
		}
		if err := tx.Model(booking).Update("status", booking.Status).Error; err != nil {
			return err
		}

		if booking.HasValidRange() {
			dates := utils.EnumerateRange(booking.CheckIn, booking.CheckOut, c.loc)
			added, err := addDates(tx, Booked, dates)
			if err != nil {
				return err
			}
			c.Added = added
			if err := writeLog(tx, models.ActionBookedAdded, added, c.actor, &booking.ID); err != nil {
				return err
			}
		}

		c.Booking = booking
		return nil
	})
}

// RejectBookingCommand
type RejectBookingCommand struct {
	db *gorm.DB
	id uint

	Booking *models.Booking
}

func NewRejectBookingCommand(db *gorm.DB, id uint) *RejectBookingCommand {
	return &RejectBookingCommand{db: db, id: id}
}

func (c *RejectBookingCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := loadBooking(tx, c.id)
		if err != nil {
			return err
		}

		if err := models.GetBookingState(booking.Status).Reject(booking); err != nil {
			return transitionError(err)
		}
		if err := tx.Model(booking).Update("status", booking.Status).Error; err != nil {
			return err
		}

		c.Booking = booking
		return nil
	})
}

// DeleteBookingCommand removes a booking. For an approved one the stay is
// freed first with the safe rule, while the record is still visible to the
// claim check as excluded, then the row goes.
type DeleteBookingCommand struct {
	db    *gorm.DB
	id    uint
	loc   *time.Location
	actor string

	Booking  *models.Booking
	Removed  []string
	Retained []string
}

func NewDeleteBookingCommand(db *gorm.DB, id uint, loc *time.Location, actor string) *DeleteBookingCommand {
	return &DeleteBookingCommand{db: db, id: id, loc: loc, actor: actor}
}

func (c *DeleteBookingCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := loadBooking(tx, c.id)
		if err != nil {
			return err
		}

		if err := models.GetBookingState(booking.Status).Delete(booking); err != nil {
			return transitionError(err)
		}

		if booking.Status == models.BookingStatusApproved && booking.HasValidRange() {
			dates := utils.EnumerateRange(booking.CheckIn, booking.CheckOut, c.loc)
			removed, retained, err := removeBooked(tx, dates, false, booking.ID)
			if err != nil {
				return err
			}
			c.Removed, c.Retained = removed, retained
			if err := writeLog(tx, models.ActionBookedRemoved, removed, c.actor, &booking.ID); err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.Booking{}, booking.ID).Error; err != nil {
			return err
		}

		c.Booking = booking
		return nil
	})
}

// ImportBookingsCommand inserts normalized historical records. Approved ones
// also claim their stay.
type ImportBookingsCommand struct {
	db       *gorm.DB
	bookings []models.Booking
	loc      *time.Location
	actor    string

	Added []string
}

func NewImportBookingsCommand(db *gorm.DB, bookings []models.Booking, loc *time.Location, actor string) *ImportBookingsCommand {
	return &ImportBookingsCommand{db: db, bookings: bookings, loc: loc, actor: actor}
}

func (c *ImportBookingsCommand) Execute(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(c.bookings) == 0 {
			return nil
		}
		if err := tx.Create(&c.bookings).Error; err != nil {
			return err
		}

		var dates []string
		for i := range c.bookings {
			b := &c.bookings[i]
			if b.Status == models.BookingStatusApproved && b.HasValidRange() {
				dates = append(dates, utils.EnumerateRange(b.CheckIn, b.CheckOut, c.loc)...)
			}
		}

		added, err := addDates(tx, Booked, dates)
		if err != nil {
			return err
		}
		c.Added = added
		return writeLog(tx, models.ActionBookedAdded, added, c.actor, nil)
	})
}

// Bookings returns the inserted records with their ids
func (c *ImportBookingsCommand) Bookings() []models.Booking {
	return c.bookings
}

func loadBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.First(&booking, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func transitionError(err error) error {
	return errors.NewAppError(errors.ErrCodeInvalidTransition, err.Error(), errors.ErrInvalidTransition)
}
