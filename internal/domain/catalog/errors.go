package catalog

import "errors"

var (
	// ErrCategoryNotFound is returned when the category does not exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrServiceNotFound is returned when the service does not exist
	ErrServiceNotFound = errors.New("service not found")

	// ErrExtraServiceNotFound is returned when the extra service does not exist
	ErrExtraServiceNotFound = errors.New("extra service not found")

	// ErrCategoryInUse is returned when deleting a category that still has services
	ErrCategoryInUse = errors.New("category still has services")

	// ErrServiceInUse is returned when deleting a service referenced by bookings
	ErrServiceInUse = errors.New("service is referenced by existing bookings")
)
