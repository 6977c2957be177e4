package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	ErrInvalidStatus     = errors.New("operation not valid in current status")
	ErrBookingNotPayable = errors.New("booking is not awaiting payment")
	ErrBookingNotOpen    = errors.New("booking can no longer be changed")
	ErrScheduleConflict  = errors.New("stylist is not available at that time")
	ErrRescheduleTooLate = errors.New("reschedule requires at least 2 hours notice")
	ErrTipBeforeComplete = errors.New("tips can only be added after the session completes")

	ErrChairUnavailable  = errors.New("chair is not available")
	ErrRequestNotPending = errors.New("rental request is not pending")
	ErrInvalidDateRange  = errors.New("end date must be on or after start date")

	ErrAlreadyFavorite = errors.New("already in favorites")
	ErrNotAccepting    = errors.New("stylist is not accepting bookings")
)
