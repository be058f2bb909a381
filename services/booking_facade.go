package services

import (
	"context"
	"time"

	"ngi/constants"
	"ngi/errors"
	"ngi/models"
	"ngi/services/logger"
	"ngi/validator"

	"gorm.io/datatypes"
)

// BookingFacade runs the public submission flow: identity upload, advance
// payment info, booking creation and the queue fallback
type BookingFacade struct {
	bookings *BookingService
	uploader Uploader
	queue    *FallbackQueue
	logger   logger.Logger
	now      func() time.Time
}

func NewBookingFacade(bookings *BookingService, uploader Uploader, queue *FallbackQueue, log logger.Logger) *BookingFacade {
	if log == nil {
		log = logger.Nop{}
	}
	return &BookingFacade{
		bookings: bookings,
		uploader: uploader,
		queue:    queue,
		logger:   log,
		now:      bookings.now,
	}
}

// SubmitResult tells the visitor what happened to their request
type SubmitResult struct {
	Booking   *models.Booking `json:"booking"`
	Reference string          `json:"reference"`
	Queued    bool            `json:"queued"`
	Identity  UploadResult    `json:"identity"`
}

// Submit creates a booking from the public form. identity is the uploaded
// document, nil when the form already carries a reference.
func (f *BookingFacade) Submit(ctx context.Context, booking *models.Booking, identity interface{}) (SubmitResult, error) {
	var result SubmitResult
	now := f.now()

	// a refused booking never uploads its identity document
	prepareBooking(booking)
	if err := validator.ValidateBooking(booking); err != nil {
		return result, err
	}

	switch {
	case identity != nil:
		result.Identity = f.uploadIdentity(ctx, identity, now)
		booking.IdentityDocument = result.Identity.URL
		if booking.IdentityDocument == "" {
			booking.IdentityDocument = result.Identity.FileID
		}
	case booking.IdentityDocument == "":
		return result, errors.NewAppError(errors.ErrCodeRequiredField, "Identity document is required", nil)
	default:
		result.Identity = UploadResult{FileID: booking.IdentityDocument}
	}

	if booking.Payment.Data().Method == "" {
		booking.Payment = datatypes.NewJSONType(models.PaymentInfo{
			Method: constants.PaymentMethodUPI,
			Amount: constants.AdvanceAmount,
			Time:   now.UTC().Format(time.RFC3339),
		})
	}

	err := f.bookings.Create(ctx, booking)
	if err == nil {
		result.Booking = booking
		result.Reference = booking.Reference
		return result, nil
	}

	if !isTransient(err) || f.queue == nil {
		return result, err
	}

	ref, qerr := f.queue.Push(ctx, booking, now)
	if qerr != nil {
		f.logger.Error("booking not stored and not queued: %v / %v", err, qerr)
		return result, err
	}

	f.logger.Error("booking queued as %s after store failure: %v", ref, err)
	result.Booking = booking
	result.Reference = ref
	result.Queued = true
	return result, nil
}

func (f *BookingFacade) uploadIdentity(ctx context.Context, file interface{}, now time.Time) UploadResult {
	if f.uploader == nil {
		return PlaceholderIdentity(now)
	}
	res, err := f.uploader.Upload(ctx, file, constants.IdentityUploadFolder)
	if err != nil {
		f.logger.Error("identity upload failed, using placeholder: %v", err)
		return PlaceholderIdentity(now)
	}
	return res
}

// ReplayQueued moves queued bookings into the store. Bookings that fail
// validation are dropped rather than retried forever.
func (f *BookingFacade) ReplayQueued(ctx context.Context) (int, error) {
	if f.queue == nil {
		return 0, nil
	}
	return f.queue.Drain(ctx, func(ctx context.Context, b *models.Booking) error {
		err := f.bookings.Create(ctx, b)
		if err != nil && !isTransient(err) {
			f.logger.Error("dropping queued booking %s: %v", b.Reference, err)
			return nil
		}
		return err
	})
}

// isTransient is true for store failures, false for anything the caller
// has to fix
func isTransient(err error) bool {
	appErr := errors.GetAppError(err)
	return appErr != nil && appErr.Code == errors.ErrCodeDBError
}
