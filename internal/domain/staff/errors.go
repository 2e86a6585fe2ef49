package staff

import "errors"

var (
	// ErrMemberNotFound is returned when the staff member does not exist
	ErrMemberNotFound = errors.New("staff member not found")

	// ErrMemberHasBookings is returned when deleting a member who still has bookings
	ErrMemberHasBookings = errors.New("staff member has existing bookings")
)
