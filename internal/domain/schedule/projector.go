package schedule

import "fmt"

// boundaryStripMinutes is the height of the synthetic strips marking a
// workday's edges on the calendar grid.
const boundaryStripMinutes = 7

// Project transforms one staff member's raw workdays and entries into the
// render-ready event list for the calendar surface.
//
// Each workday yields two synthetic boundary strips: a start-of-day marker
// ending at the workday's start and an end-of-day marker beginning at its
// end. They bound the bookable window visually and carry no booking
// semantics. Each non-canceled entry yields one event with absolute
// timestamps.
//
// The projection is pure and order-stable: the same inputs always produce
// the same list, boundary events first, in input order. The calendar surface
// sorts by time; no sorting happens here.
func Project(staffID int64, workdays []*Workday, entries []*Entry) []CalendarEvent {
	projected := make([]CalendarEvent, 0, 2*len(workdays)+len(entries))

	for _, w := range workdays {
		dayStart := w.Start.At(w.Date.Time)
		dayEnd := w.End.At(w.Date.Time)

		projected = append(projected,
			CalendarEvent{
				ID:         fmt.Sprintf("workday-%d-start", w.ID),
				Subject:    "Start of day",
				Start:      w.Start.Shift(-boundaryStripMinutes).At(w.Date.Time),
				End:        dayStart,
				StaffID:    w.StaffID,
				IsBoundary: true,
			},
			CalendarEvent{
				ID:         fmt.Sprintf("workday-%d-end", w.ID),
				Subject:    "End of day",
				Start:      dayEnd,
				End:        w.End.Shift(boundaryStripMinutes).At(w.Date.Time),
				StaffID:    w.StaffID,
				IsBoundary: true,
			},
		)
	}

	for _, e := range entries {
		if !e.IsActive() {
			continue
		}

		event := CalendarEvent{
			ID:      fmt.Sprintf("entry-%d", e.ID),
			Start:   e.Start.At(e.Date.Time),
			End:     e.End.At(e.Date.Time),
			StaffID: staffID,
			IsBreak: e.Kind == KindBreak,
			Guest: &Guest{
				Name:         e.GuestName,
				Email:        e.GuestEmail,
				Phone:        e.GuestPhone,
				Observations: e.Observations,
			},
		}

		if e.Kind == KindBreak {
			event.Subject = e.Reason
		} else {
			event.Subject = e.GuestName
			event.Info = &BookingInfo{
				Price:           e.Price,
				ServiceID:       e.ServiceID.Int64,
				ExtraServiceIDs: e.ExtraServiceIDs,
				DurationMinutes: e.DurationMinutes,
				CreatedAt:       e.CreatedAt,
			}
		}

		projected = append(projected, event)
	}

	return projected
}
