package schedule

import (
	"github.com/glowdesk/glowdesk-api/internal/domain/settings"
	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// Range is a proposed start/end pair on one day
type Range struct {
	Start timegrid.TimeOfDay `json:"start"`
	End   timegrid.TimeOfDay `json:"end"`
}

// Duration returns the range length in minutes
func (r Range) Duration() int {
	return r.End.Sub(r.Start)
}

// Assessment classifies a proposed range against the opening-hours policy.
// Openness violations are advisory: the console renders them as inline
// warnings but the submission still goes through.
type Assessment struct {
	BeforeOpening bool     `json:"before_opening"`
	AfterClosing  bool     `json:"after_closing"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Valid reports whether no violation was detected for the checked conditions
func (a Assessment) Valid() bool {
	return !a.BeforeOpening && !a.AfterClosing
}

// CheckOpeningHours classifies a proposed range against the salon's
// opening-hours policy.
//
// Overlap with other non-canceled bookings for the same staff member and date
// is deliberately not checked here: the calendar surface lays conflicting
// events out side by side, and double-booking a busy stylist on purpose is a
// supported front-desk move. See DESIGN.md before "fixing" this.
func CheckOpeningHours(r Range, policy *settings.BookingSettings) Assessment {
	a := Assessment{}

	if r.Start.Before(policy.DayStart) {
		a.BeforeOpening = true
		a.Warnings = append(a.Warnings, "Starts before opening time ("+policy.DayStart.String()+")")
	}
	if r.End.After(policy.DayEnd) {
		a.AfterClosing = true
		a.Warnings = append(a.Warnings, "Ends after closing time ("+policy.DayEnd.String()+")")
	}

	return a
}

// HasWorkday reports whether a workday already exists for the date among the
// staff member's loaded workdays. Creating a second one is blocked before any
// store call is made.
func HasWorkday(workdays []*Workday, date timegrid.Date) bool {
	for _, w := range workdays {
		if w.Date.Equal(date) {
			return true
		}
	}
	return false
}

// AdjustRange keeps a proposed range consistent with the computed total
// duration while the user edits either endpoint:
//
//   - moving the start preserves duration by shifting the end by the same
//     delta;
//   - moving the end recomputes the start as end − totalDuration;
//   - otherwise the end is pinned to start + totalDuration, so a stale range
//     snaps back to the service's length.
//
// Validation re-runs on the adjusted range after every such change.
func AdjustRange(prev, next Range, totalDuration int) Range {
	switch {
	case next.Start != prev.Start:
		return Range{Start: next.Start, End: prev.End.Shift(next.Start.Sub(prev.Start))}
	case next.End != prev.End:
		return Range{Start: next.End.Shift(-totalDuration), End: next.End}
	default:
		return Range{Start: next.Start, End: next.Start.Shift(totalDuration)}
	}
}
