package schedule

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// Kind discriminates the two shapes sharing the calendar entries table
type Kind string

const (
	// KindBooking is a guest appointment for a service
	KindBooking Kind = "booking"
	// KindBreak is a booking-shaped absence (lunch, sickness) with a
	// free-text reason instead of a service
	KindBreak Kind = "break"
)

// Workday bounds where bookings may be placed for one staff member on one
// date. At most one exists per (staff, date).
type Workday struct {
	ID        int64              `db:"id" json:"id"`
	StaffID   int64              `db:"staff_id" json:"staff_id"`
	Date      timegrid.Date      `db:"date" json:"date"`
	Start     timegrid.TimeOfDay `db:"start_time" json:"start"`
	End       timegrid.TimeOfDay `db:"end_time" json:"end"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// Entry is a persisted calendar record: a booking or a break, discriminated
// by Kind.
type Entry struct {
	ID              int64              `db:"id" json:"id"`
	Kind            Kind               `db:"kind" json:"kind"`
	StaffID         int64              `db:"staff_id" json:"staff_id"`
	Date            timegrid.Date      `db:"date" json:"date"`
	Start           timegrid.TimeOfDay `db:"start_time" json:"start"`
	End             timegrid.TimeOfDay `db:"end_time" json:"end"`
	DurationMinutes int                `db:"duration_minutes" json:"duration_minutes"`
	CategoryID      sql.NullInt64      `db:"category_id" json:"category_id,omitempty"`
	ServiceID       sql.NullInt64      `db:"service_id" json:"service_id,omitempty"`
	ExtraServiceIDs pq.Int64Array      `db:"extra_service_ids" json:"extra_service_ids"`
	Price           float64            `db:"price" json:"price"`
	GuestName       string             `db:"guest_name" json:"guest_name"`
	GuestEmail      string             `db:"guest_email" json:"guest_email"`
	GuestPhone      string             `db:"guest_phone" json:"guest_phone"`
	Observations    string             `db:"observations" json:"observations"`
	Reason          string             `db:"reason" json:"reason"`
	Canceled        bool               `db:"canceled" json:"canceled"`
	CreatedAt       time.Time          `db:"created_at" json:"created_at"`
}

// IsActive reports whether the entry still occupies calendar time
func (e *Entry) IsActive() bool {
	return !e.Canceled
}

// Guest is the booked customer's contact info
type Guest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Observations string `json:"observations,omitempty"`
}

// BookingInfo is the booking metadata attached to projected events
type BookingInfo struct {
	Price           float64   `json:"price"`
	ServiceID       int64     `json:"service_id"`
	ExtraServiceIDs []int64   `json:"extra_service_ids"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// CalendarEvent is the derived, render-ready form consumed by the console's
// calendar surface. Never persisted; recomputed whenever the underlying
// collections change.
type CalendarEvent struct {
	ID         string       `json:"id"`
	Subject    string       `json:"subject"`
	Start      time.Time    `json:"start"`
	End        time.Time    `json:"end"`
	StaffID    int64        `json:"staff_id"`
	IsBreak    bool         `json:"is_break"`
	IsBoundary bool         `json:"is_boundary"`
	Guest      *Guest       `json:"guest,omitempty"`
	Info       *BookingInfo `json:"info,omitempty"`
}
