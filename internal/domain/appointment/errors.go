package appointment

import "errors"

var (
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrAppointmentAlreadyClosed = errors.New("appointment is already completed or canceled")
	ErrNoServicesSelected       = errors.New("at least one service must be selected")
	ErrStartTimeRequired        = errors.New("start time is required")
	ErrInvalidStatus            = errors.New("invalid appointment status")
	ErrInvalidStatusTransition  = errors.New("appointment can only be completed or canceled")
)
