package validator

import (
	"regexp"
	"strings"

	"ngi/errors"
	"ngi/models"
	"ngi/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate   = newValidate()
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,17}$`)
)

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("datekey", isDateKey)
	return v
}

func isDateKey(fl validator.FieldLevel) bool {
	return utils.IsDateKey(fl.Field().String())
}

// RegisterGinValidations makes the datekey tag usable in binding tags
func RegisterGinValidations() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("datekey", isDateKey)
	}
	return nil
}

// ValidateDateRange checks both keys and that end is not before start
func ValidateDateRange(start, end string) error {
	if !utils.IsDateKey(start) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Start date must be a real day as YYYY-MM-DD", nil)
	}
	if !utils.IsDateKey(end) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "End date must be a real day as YYYY-MM-DD", nil)
	}
	if end < start {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, "End date must not be before start date", errors.ErrInvalidDateRange)
	}
	return nil
}

// ValidateDateKey checks a single day
func ValidateDateKey(day string) error {
	if !utils.IsDateKey(day) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Date must be a real day as YYYY-MM-DD", nil)
	}
	return nil
}

// ValidateBooking runs before a booking reaches the store
func ValidateBooking(booking *models.Booking) error {
	if strings.TrimSpace(booking.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Name is required", nil)
	}

	if booking.Email == "" && booking.Phone == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email or phone is required", nil)
	}

	if booking.Email != "" {
		if err := ValidateEmail(booking.Email); err != nil {
			return err
		}
	}

	if booking.Phone != "" {
		if err := ValidatePhone(booking.Phone); err != nil {
			return err
		}
	}

	if booking.CheckIn == "" || booking.CheckOut == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Check-in and check-out dates are required", nil)
	}

	if !utils.IsDateKey(booking.CheckIn) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Check-in must be a real day as YYYY-MM-DD", nil)
	}

	if !utils.IsDateKey(booking.CheckOut) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Check-out must be a real day as YYYY-MM-DD", nil)
	}

	if booking.CheckOut < booking.CheckIn {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, "Check-out must not be before check-in", errors.ErrInvalidDateRange)
	}

	if booking.Guests < 1 || booking.Guests > 4 {
		return errors.NewAppError(errors.ErrCodeValidation, "Guests must be a tier between 1 and 4", nil)
	}

	return nil
}

// ValidateReview
func ValidateReview(review *models.Review) error {
	if strings.TrimSpace(review.Text) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Review text is required", nil)
	}
	if err := validate.Var(review.Rating, "min=1,max=5"); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Rating must be between 1 and 5", err)
	}
	return nil
}

// ValidateContact needs all three fields
func ValidateContact(msg *models.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Message) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Name, email and message are required", nil)
	}
	return ValidateEmail(msg.Email)
}

// ValidateGalleryItem
func ValidateGalleryItem(item *models.GalleryItem) error {
	if err := validate.Var(item.Image, "required,url"); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Image must be a URL", err)
	}
	return nil
}

// ValidateAmount rejects zero and negative amounts
func ValidateAmount(amount int) error {
	if amount <= 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Amount must be positive", nil)
	}
	return nil
}

// ValidateEmail
func ValidateEmail(email string) error {
	if err := validate.Var(email, "email"); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email", err)
	}
	return nil
}

// ValidatePhone
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Invalid phone number", nil)
	}
	return nil
}
