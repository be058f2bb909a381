package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// BookedDate is one day consumed by an approved booking
type BookedDate struct {
	Date      string    `json:"date" gorm:"column:day;primaryKey;type:varchar(10)"` // YYYY-MM-DD
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// BlockedDate is one day withheld by an admin
type BlockedDate struct {
	Date      string    `json:"date" gorm:"column:day;primaryKey;type:varchar(10)"` // YYYY-MM-DD
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Availability log actions
const (
	ActionBookedAdded    = "booked:add"
	ActionBookedRemoved  = "booked:remove"
	ActionBookedForced   = "booked:force-remove"
	ActionBookedCleared  = "booked:clear"
	ActionBlockedAdded   = "blocked:add"
	ActionBlockedRemoved = "blocked:remove"
)

// AvailabilityLog records every effective change to the date sets
type AvailabilityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Action    string    `json:"action" gorm:"index"`
	Dates     DateList  `json:"dates"`
	BookingID *uint     `json:"bookingId,omitempty"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// DayState is the single visual state of a calendar day
type DayState string

const (
	DayBooked    DayState = "booked"
	DayBlocked   DayState = "blocked"
	DayPast      DayState = "past"
	DayAvailable DayState = "available"
)

// ResolveDayState applies the precedence booked > blocked > past > available.
// A day present in both sets is booked.
func ResolveDayState(booked, blocked, past bool) DayState {
	switch {
	case booked:
		return DayBooked
	case blocked:
		return DayBlocked
	case past:
		return DayPast
	default:
		return DayAvailable
	}
}

// DateList is a text[] column on postgres, an array literal string elsewhere
type DateList []string

func (DateList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l DateList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *DateList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*l = DateList(arr)
	return nil
}
