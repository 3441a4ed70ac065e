package services

import "errors"

// Shared service errors, mapped to HTTP responses in the handlers layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed       = errors.New("validation failed")
	ErrScheduleNameRequired   = errors.New("schedule name is required")
	ErrScheduleTypeInvalid    = errors.New("unsupported schedule type")
	ErrScheduleStartRequired  = errors.New("schedule start date is required")
	ErrMatchStatusInvalid     = errors.New("invalid match status provided")
	ErrMatchAlreadyCompleted  = errors.New("match is already completed")
	ErrStartTimeFormatInvalid = errors.New("start time must be in HH:MM format")

	ErrSportNotFound    = errors.New("sport not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrMatchNotFound    = errors.New("match not found")
)
