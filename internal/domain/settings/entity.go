package settings

import (
	"time"

	"github.com/lib/pq"

	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// BookingSettings is the salon-wide opening-hours policy consumed read-only
// by the availability validator and the console's calendar surface. Singleton:
// exactly one row exists.
type BookingSettings struct {
	ID                 int64              `db:"id" json:"-"`
	VisibleWeekdays    pq.Int64Array      `db:"visible_weekdays" json:"visible_weekdays"`
	DayStart           timegrid.TimeOfDay `db:"day_start" json:"day_start"`
	DayEnd             timegrid.TimeOfDay `db:"day_end" json:"day_end"`
	SlotMinutes        int                `db:"slot_minutes" json:"slot_minutes"`
	CancellationPolicy string             `db:"cancellation_policy" json:"cancellation_policy"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// Default returns the policy used before the salon has saved its own:
// Monday–Saturday, 08:00–19:00, quarter-hour grid.
func Default() *BookingSettings {
	return &BookingSettings{
		VisibleWeekdays:    pq.Int64Array{1, 2, 3, 4, 5, 6},
		DayStart:           timegrid.MustParse("08:00"),
		DayEnd:             timegrid.MustParse("19:00"),
		SlotMinutes:        timegrid.Step,
		CancellationPolicy: "",
	}
}
