package models

import "errors"

// BookingState is one node of the booking status machine.
// There is no way back from approved or rejected.
type BookingState interface {
	Approve(booking *Booking) error
	Reject(booking *Booking) error
	Delete(booking *Booking) error
}

// PendingState waits for an admin decision
type PendingState struct{}

func (s *PendingState) Approve(booking *Booking) error {
	booking.Status = BookingStatusApproved
	return nil
}

func (s *PendingState) Reject(booking *Booking) error {
	booking.Status = BookingStatusRejected
	return nil
}

func (s *PendingState) Delete(booking *Booking) error {
	return nil
}

// ApprovedState holds dates in the booked set
type ApprovedState struct{}

func (s *ApprovedState) Approve(booking *Booking) error {
	return errors.New("booking already approved")
}

func (s *ApprovedState) Reject(booking *Booking) error {
	return errors.New("cannot reject approved booking")
}

func (s *ApprovedState) Delete(booking *Booking) error {
	return nil
}

// RejectedState
type RejectedState struct{}

func (s *RejectedState) Approve(booking *Booking) error {
	return errors.New("cannot approve rejected booking")
}

func (s *RejectedState) Reject(booking *Booking) error {
	return errors.New("booking already rejected")
}

func (s *RejectedState) Delete(booking *Booking) error {
	return nil
}

// GetBookingState returns the state for status, unknown values are pending
func GetBookingState(status string) BookingState {
	switch status {
	case BookingStatusApproved:
		return &ApprovedState{}
	case BookingStatusRejected:
		return &RejectedState{}
	default:
		return &PendingState{}
	}
}

// IsBookingStatus reports whether s is one of the three stored statuses
func IsBookingStatus(s string) bool {
	return s == BookingStatusPending || s == BookingStatusApproved || s == BookingStatusRejected
}
