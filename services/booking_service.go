package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"ngi/commands"
	"ngi/constants"
	"ngi/dto"
	"ngi/errors"
	"ngi/models"
	"ngi/services/logger"
	"ngi/services/notification"
	"ngi/validator"

	"gorm.io/gorm"
)

const (
	DefaultBookingLimit = 50
	MaxBookingLimit     = 500
)

type BookingServiceOptions struct {
	DB       *gorm.DB
	Bus      notification.Bus
	Logger   logger.Logger
	Location *time.Location
	Now      func() time.Time
}

// BookingService runs the booking lifecycle over the persistence boundary
type BookingService struct {
	db     *gorm.DB
	bus    notification.Bus
	logger logger.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	s := &BookingService{
		db:     opts.DB,
		bus:    opts.Bus,
		logger: opts.Logger,
		loc:    opts.Location,
		now:    opts.Now,
	}
	if s.bus == nil {
		s.bus = notification.NewMemoryBus()
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// BookingFilter narrows a listing. Page counts from 0.
type BookingFilter struct {
	Status string
	Query  string
	Page   int
	Limit  int
}

// BookingPage is one page of a listing, newest first
type BookingPage struct {
	Bookings   []models.Booking
	Total      int
	Page       int
	Limit      int
	Suggestion string
}

// Create stores a new pending booking priced for its check-in day
func (s *BookingService) Create(ctx context.Context, booking *models.Booking) error {
	prepareBooking(booking)
	booking.Status = models.BookingStatusPending

	if err := validator.ValidateBooking(booking); err != nil {
		return err
	}

	booking.Price = ComputePrice(GuestTier(booking.Guests), booking.CheckIn, s.now(), s.loc)

	if err := commands.NewCreateBookingCommand(booking, s.db).Execute(ctx); err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to create booking", err)
	}

	s.logger.Info("booking %d created for %s..%s", booking.ID, booking.CheckIn, booking.CheckOut)
	s.publishBooking(ctx, booking.ID)
	return nil
}

// prepareBooking trims text fields and fills defaults
func prepareBooking(b *models.Booking) {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	b.CheckIn = strings.TrimSpace(b.CheckIn)
	b.CheckOut = strings.TrimSpace(b.CheckOut)
	b.Message = strings.TrimSpace(b.Message)
	b.IdentityDocument = strings.TrimSpace(b.IdentityDocument)
	if b.Guests == 0 {
		b.Guests = int(TierBelow10)
	}
	if b.Source == "" {
		b.Source = constants.BookingSourceWeb
	}
}

// List returns bookings by id descending. A query is matched against
// guest details in memory, so it pages after filtering.
func (s *BookingService) List(ctx context.Context, f BookingFilter) (BookingPage, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultBookingLimit
	}
	if f.Limit > MaxBookingLimit {
		f.Limit = MaxBookingLimit
	}
	if f.Page < 0 {
		f.Page = 0
	}
	if f.Status != "" && !models.IsBookingStatus(f.Status) {
		return BookingPage{}, errors.NewAppError(errors.ErrCodeInvalidStatus, "Unknown booking status", nil)
	}

	page := BookingPage{Page: f.Page, Limit: f.Limit, Bookings: []models.Booking{}}

	query := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.Booking{})
		if f.Status != "" {
			tx = tx.Where("status = ?", f.Status)
		}
		return tx
	}

	if strings.TrimSpace(f.Query) == "" {
		var total int64
		if err := query().Count(&total).Error; err != nil {
			return page, errors.NewAppError(errors.ErrCodeDBError, "Failed to count bookings", err)
		}
		if err := query().Order("id desc").Offset(f.Page * f.Limit).Limit(f.Limit).Find(&page.Bookings).Error; err != nil {
			return page, errors.NewAppError(errors.ErrCodeDBError, "Failed to list bookings", err)
		}
		page.Total = int(total)
		return page, nil
	}

	var all []models.Booking
	if err := query().Order("id desc").Find(&all).Error; err != nil {
		return page, errors.NewAppError(errors.ErrCodeDBError, "Failed to list bookings", err)
	}

	matched := FilterBookings(f.Query, all)
	page.Total = len(matched)
	if len(matched) == 0 {
		page.Suggestion = SuggestName(f.Query, all)
		return page, nil
	}

	start := f.Page * f.Limit
	if start >= len(matched) {
		return page, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page.Bookings = matched[start:end]
	return page, nil
}

// GetByID
func (s *BookingService) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to read booking", err)
	}
	return &booking, nil
}

// Approve marks the booking approved and books its stay in one transaction
func (s *BookingService) Approve(ctx context.Context, id uint, actor string) (*models.Booking, error) {
	cmd := commands.NewApproveBookingCommand(s.db, id, s.loc, actor)
	if err := cmd.Execute(ctx); err != nil {
		return nil, commandError(err, "Failed to approve booking")
	}

	s.logger.Info("booking %d approved by %s, %d dates booked", id, actor, len(cmd.Added))
	s.publishDates(ctx, notification.BookedUpdated, cmd.Added)
	s.publishBooking(ctx, id)
	return cmd.Booking, nil
}

// Reject leaves availability untouched
func (s *BookingService) Reject(ctx context.Context, id uint) (*models.Booking, error) {
	cmd := commands.NewRejectBookingCommand(s.db, id)
	if err := cmd.Execute(ctx); err != nil {
		return nil, commandError(err, "Failed to reject booking")
	}

	s.publishBooking(ctx, id)
	return cmd.Booking, nil
}

// UpdateStatus dispatches to Approve or Reject
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status, actor string) (*models.Booking, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.BookingStatusApproved:
		return s.Approve(ctx, id, actor)
	case models.BookingStatusRejected:
		return s.Reject(ctx, id)
	case models.BookingStatusPending:
		return nil, errors.NewAppError(errors.ErrCodeInvalidTransition, "A booking cannot go back to pending", errors.ErrInvalidTransition)
	}
	return nil, errors.NewAppError(errors.ErrCodeInvalidStatus, "Status must be approved or rejected", nil)
}

// Delete removes the record. An approved booking frees the days no other
// approved booking still covers.
func (s *BookingService) Delete(ctx context.Context, id uint, actor string) (dto.RemovalResult, error) {
	cmd := commands.NewDeleteBookingCommand(s.db, id, s.loc, actor)
	if err := cmd.Execute(ctx); err != nil {
		return dto.RemovalResult{}, commandError(err, "Failed to delete booking")
	}

	s.logger.Info("booking %d deleted by %s, freed %v kept %v", id, actor, cmd.Removed, cmd.Retained)
	s.publishDates(ctx, notification.BookedRemoved, cmd.Removed)
	s.publishBooking(ctx, id)
	return dto.RemovalResult{
		Removed:  nonNil(cmd.Removed),
		Retained: nonNil(cmd.Retained),
	}, nil
}

// Import stores normalized historical records. Approved ones book their stay.
func (s *BookingService) Import(ctx context.Context, bookings []models.Booking, actor string) ([]models.Booking, error) {
	now := s.now()
	for i := range bookings {
		b := &bookings[i]
		prepareBooking(b)
		if err := validator.ValidateDateRange(b.CheckIn, b.CheckOut); err != nil {
			return nil, errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("Record %d: %s", i, appMessage(err)), err)
		}
		if b.Price == 0 {
			b.Price = ComputePrice(GuestTier(b.Guests), b.CheckIn, now, s.loc)
		}
	}

	cmd := commands.NewImportBookingsCommand(s.db, bookings, s.loc, actor)
	if err := cmd.Execute(ctx); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to import bookings", err)
	}

	s.logger.Info("imported %d bookings, %d dates booked", len(bookings), len(cmd.Added))
	s.publishDates(ctx, notification.BookedUpdated, cmd.Added)
	if len(bookings) > 0 {
		s.publish(ctx, notification.Event{Type: notification.BookingsUpdated, Time: now.UnixMilli()})
	}
	return cmd.Bookings(), nil
}

func (s *BookingService) publishBooking(ctx context.Context, id uint) {
	s.publish(ctx, notification.BookingEvent(id, s.now()))
}

func (s *BookingService) publishDates(ctx context.Context, t notification.EventType, dates []string) {
	if len(dates) == 0 {
		return
	}
	s.publish(ctx, notification.DatesEvent(t, dates, s.now()))
}

func (s *BookingService) publish(ctx context.Context, e notification.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		s.logger.Error("publish %s: %v", e.Type, err)
	}
}

// commandError keeps AppErrors and sentinels, wraps the rest as DB errors
func commandError(err error, message string) error {
	if errors.IsAppError(err) || errors.Is(err, errors.ErrBookingNotFound) {
		return err
	}
	return errors.NewAppError(errors.ErrCodeDBError, message, err)
}
