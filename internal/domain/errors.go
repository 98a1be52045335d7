package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidTitle            = errors.New("invalid title")
	ErrInvalidDate             = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime             = errors.New("invalid time format, use HH:MM")
	ErrEndBeforeStart          = errors.New("end time is before start time")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidAttendance       = errors.New("invalid attendance value")
	ErrInvalidRole             = errors.New("role must be boss or secretary")
	ErrAlreadyExists           = errors.New("already exists")
	ErrInvalidCategory         = errors.New("unknown category")
	ErrInvalidNotificationType = errors.New("notification type must be daily or tomorrow")
)
