package schedule

import "errors"

var (
	// ErrWorkdayExists is returned when a workday already exists for the
	// staff member and date
	ErrWorkdayExists = errors.New("workday already exists for this staff member and date")

	// ErrWorkdayNotFound is returned when the workday does not exist
	ErrWorkdayNotFound = errors.New("workday not found")

	// ErrEntryNotFound is returned when the booking or break does not exist
	ErrEntryNotFound = errors.New("calendar entry not found")

	// ErrInvalidRange is returned when a time range ends at or before its start
	ErrInvalidRange = errors.New("end time must be after start time")

	// ErrServiceNotFound is returned when the booking references a service
	// that does not exist
	ErrServiceNotFound = errors.New("service not found")
)
