package services

import (
	"fmt"
	"strconv"
	"strings"

	"ngi/constants"
	"ngi/errors"
	"ngi/models"
	"ngi/utils"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// Aliases seen in historical exports, in lookup order
var (
	checkInKeys  = []string{"checkIn", "checkin", "check_in", "date"}
	checkOutKeys = []string{"checkOut", "checkout", "check_out"}
	identityKeys = []string{
		"identityDocument", "identity_document",
		"aadhaarImage", "aadhaar_image", "aadhaarUrl", "aadhaar_url",
		"aadhaar", "aadhaarId", "aadhaar_id", "aadhaarFile", "aadhaar_file",
	}
	guestKeys   = []string{"guests", "guestCount", "guest_count", "tier"}
	nameKeys    = []string{"name", "fullName", "full_name"}
	emailKeys   = []string{"email", "emailAddress", "email_address"}
	phoneKeys   = []string{"phone", "phoneNumber", "phone_number", "mobile"}
	messageKeys = []string{"message", "notes", "note"}
	statusKeys  = []string{"status", "bookingStatus", "booking_status"}
	amountKeys  = []string{"amount", "paymentAmount", "payment_amount", "orderAmount", "order_amount"}
	txnKeys     = []string{"txnId", "txn_id", "paymentId", "payment_id"}
	timeKeys    = []string{"createdAt", "created_at", "time"}
)

// DecodeLegacyBookings parses a JSON array of historical records
func DecodeLegacyBookings(data []byte) ([]models.Booking, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "Expected a JSON array of bookings", err)
	}

	out := make([]models.Booking, 0, len(raw))
	for i, r := range raw {
		b, err := NormalizeLegacyBooking(r)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("Record %d: %s", i, appMessage(err)), err)
		}
		out = append(out, b)
	}
	return out, nil
}

// NormalizeLegacyBooking maps one record with any of the historical field
// names onto the canonical Booking. It is the only place those names are
// known.
func NormalizeLegacyBooking(raw map[string]interface{}) (models.Booking, error) {
	b := models.Booking{
		Name:             pickString(raw, nameKeys),
		Email:            pickString(raw, emailKeys),
		Phone:            pickString(raw, phoneKeys),
		CheckIn:          cutTimestamp(pickString(raw, checkInKeys)),
		CheckOut:         cutTimestamp(pickString(raw, checkOutKeys)),
		Message:          pickString(raw, messageKeys),
		IdentityDocument: pickIdentity(raw),
		Guests:           int(pickTier(raw)),
		Status:           strings.ToLower(pickString(raw, statusKeys)),
		Source:           constants.BookingSourceLegacy,
	}

	if b.CheckOut == "" {
		b.CheckOut = b.CheckIn
	}
	if !models.IsBookingStatus(b.Status) {
		b.Status = models.BookingStatusPending
	}
	b.Payment = datatypes.NewJSONType(pickPayment(raw))

	if b.Name == "" {
		b.Name = "Guest"
	}
	if b.CheckIn == "" {
		return b, errors.NewAppError(errors.ErrCodeRequiredField, "Check-in date is missing", nil)
	}
	checkIn, ok := utils.CanonicalDateKey(b.CheckIn)
	if !ok {
		return b, errors.NewAppError(errors.ErrCodeInvalidFormat, fmt.Sprintf("Check-in %q is not a YYYY-MM-DD day", b.CheckIn), nil)
	}
	checkOut, ok := utils.CanonicalDateKey(b.CheckOut)
	if !ok {
		return b, errors.NewAppError(errors.ErrCodeInvalidFormat, fmt.Sprintf("Check-out %q is not a YYYY-MM-DD day", b.CheckOut), nil)
	}
	b.CheckIn, b.CheckOut = checkIn, checkOut

	if b.CheckOut < b.CheckIn {
		return b, errors.NewAppError(errors.ErrCodeInvalidDateRange, "Check-out must not be before check-in", errors.ErrInvalidDateRange)
	}
	return b, nil
}

func pickString(raw map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if s := stringOf(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringOf(v interface{}) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// cutTimestamp keeps the date part of an ISO timestamp
func cutTimestamp(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// pickIdentity also accepts {url} or {path} objects under the aadhaar key
func pickIdentity(raw map[string]interface{}) string {
	if s := pickString(raw, identityKeys); s != "" {
		return s
	}
	if obj, ok := raw["aadhaar"].(map[string]interface{}); ok {
		return pickString(obj, []string{"url", "path"})
	}
	return ""
}

func pickTier(raw map[string]interface{}) GuestTier {
	for _, k := range guestKeys {
		if t := ParseGuestTier(stringOf(raw[k])); t.Valid() {
			return t
		}
	}
	return TierBelow10
}

func pickPayment(raw map[string]interface{}) models.PaymentInfo {
	src := raw
	if obj, ok := raw["payment"].(map[string]interface{}); ok {
		src = obj
	}

	info := models.PaymentInfo{
		Method: pickString(src, []string{"method", "paymentMethod", "payment_method"}),
		Time:   pickString(src, timeKeys),
		Ref:    pickString(src, txnKeys),
	}
	if n, err := strconv.Atoi(pickString(src, amountKeys)); err == nil {
		info.Amount = n
	}
	if info.Ref == "" {
		info.Ref = pickString(raw, txnKeys)
	}
	return info
}

func appMessage(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
