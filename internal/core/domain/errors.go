package domain

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrIncompleteAppointment = errors.New("appointment data is incomplete")
	ErrInvalidAppointment    = errors.New("appointment data is invalid")
	ErrInvalidAmount         = errors.New("invoice amount must be positive")
	ErrInvoiceAlreadyPaid    = errors.New("invoice is already paid")
)
