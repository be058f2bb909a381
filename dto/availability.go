package dto

import "ngi/models"

// AvailabilitySnapshot is the full state of both date sets, sorted
type AvailabilitySnapshot struct {
	Booked  []string `json:"booked"`
	Blocked []string `json:"blocked"`
}

// DayStatus describes one calendar day
type DayStatus struct {
	Date      string          `json:"date"`
	State     models.DayState `json:"state"`
	Available bool            `json:"available"`
	Today     bool            `json:"today"`
	Weekend   bool            `json:"weekend"`
	Price     int             `json:"price,omitempty"`
}

// CalendarMonthResponse is one rendered month
type CalendarMonthResponse struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Tier  int         `json:"tier"`
	Days  []DayStatus `json:"days"`
}

// RemovalResult tells the operator what a booked-date removal did.
// Retained dates are still held by another approved booking.
type RemovalResult struct {
	Removed  []string `json:"removedDates"`
	Retained []string `json:"retainedDates"`
	Forced   bool     `json:"forced"`
}

// DateRangeRequest is an inclusive range. End defaults to Start.
type DateRangeRequest struct {
	Start string `json:"start" binding:"required,datekey"`
	End   string `json:"end" binding:"omitempty,datekey"`
}

// RemoveBookedRequest needs Force for the unconditional variant
type RemoveBookedRequest struct {
	DateRangeRequest
	Force bool `json:"force"`
}

// DatesChangedResponse lists the dates a mutation actually changed
type DatesChangedResponse struct {
	Dates []string `json:"dates"`
}

// VersionResponse carries the last-updated unix-ms stamps
type VersionResponse struct {
	Booked   int64 `json:"booked"`
	Blocked  int64 `json:"blocked"`
	Bookings int64 `json:"bookings"`
}

// TierPrice is one tier's price for a day
type TierPrice struct {
	Tier  int    `json:"tier"`
	Label string `json:"label"`
	Price int    `json:"price"`
}

// DayAvailability answers the single-day lookup
type DayAvailability struct {
	DayStatus
	Prices []TierPrice `json:"prices"`
}

// HistoryQuery bounds the availability log listing
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// CalendarQuery selects one month. Zero values mean the current month.
type CalendarQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Tier  int `form:"tier" binding:"omitempty,min=1,max=4"`
}
