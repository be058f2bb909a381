package constants

// Review status
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Gallery status
const (
	GalleryStatusActive   = "active"
	GalleryStatusInactive = "inactive"
)

// Payment status
const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment method
const (
	PaymentMethodUPI     = "UPI"
	PaymentMethodGateway = "gateway"
)

// Booking source
const (
	BookingSourceWeb      = "web"
	BookingSourceLegacy   = "legacy"
	BookingSourceFallback = "fallback"
)

const (
	AdvanceAmount   = 2000
	DefaultCurrency = "INR"
)

// Redis keys and channel
const (
	EventChannel         = "ngi_channel"
	BookedSentinelKey    = "ngi_booked_updated"
	BlockedSentinelKey   = "ngi_blocked_updated"
	BookingsSentinelKey  = "ngi_bookings_updated"
	AvailabilityCacheKey = "availability:snapshot"
	BookingFallbackQueue = "bookings:fallback"
)

// Cloudinary folders
const (
	IdentityUploadFolder = "identity"
	ProofUploadFolder    = "proofs"
	GalleryUploadFolder  = "gallery"
)

const (
	PlaceholderIdentityFormat = "dev_aadhaar_%d"
	LocalBookingRefFormat     = "local_%d"
	ReceiptFormat             = "order_rcptid_%d"
	UPIPaymentIDFormat        = "pay_%d"
)
