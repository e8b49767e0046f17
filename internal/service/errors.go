package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrStorage         = errors.New("storage failure")
)

// InsufficientTicketsError reports a booking request that exceeds the event's
// remaining inventory. It carries the actual availability so the caller can
// tell the user exactly how many tickets are left.
type InsufficientTicketsError struct {
	EventName string
	Available int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("only %d tickets remaining for %s", e.Available, e.EventName)
}
