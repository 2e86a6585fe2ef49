package settings

import (
	"github.com/lib/pq"

	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// UpdateRequest represents the settings form submission
type UpdateRequest struct {
	VisibleWeekdays    []int64 `json:"visible_weekdays" validate:"required,min=1,max=7,dive,weekday"`
	DayStart           string  `json:"day_start" validate:"required,hhmm"`
	DayEnd             string  `json:"day_end" validate:"required,hhmm"`
	SlotMinutes        int     `json:"slot_minutes" validate:"required,gte=5,lte=120"`
	CancellationPolicy string  `json:"cancellation_policy" validate:"omitempty,max=2000"`
}

func (req *UpdateRequest) toEntity() *BookingSettings {
	return &BookingSettings{
		VisibleWeekdays:    pq.Int64Array(req.VisibleWeekdays),
		DayStart:           timegrid.MustParse(req.DayStart),
		DayEnd:             timegrid.MustParse(req.DayEnd),
		SlotMinutes:        req.SlotMinutes,
		CancellationPolicy: req.CancellationPolicy,
	}
}
