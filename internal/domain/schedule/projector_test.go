package schedule

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

func TestProjectWorkdayBoundaries(t *testing.T) {
	workday := &Workday{
		ID:      7,
		StaffID: 3,
		Date:    timegrid.MustParseDate("2026-03-02"),
		Start:   timegrid.MustParse("09:00"),
		End:     timegrid.MustParse("17:00"),
	}

	events := Project(3, []*Workday{workday}, nil)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 boundary strips", len(events))
	}

	start, end := events[0], events[1]

	if start.ID != "workday-7-start" || end.ID != "workday-7-end" {
		t.Fatalf("ids = %q, %q", start.ID, end.ID)
	}
	if !start.IsBoundary || !end.IsBoundary {
		t.Fatal("boundary strips not flagged as boundaries")
	}

	if got := start.End.Sub(start.Start).Minutes(); got != boundaryStripMinutes {
		t.Fatalf("start strip is %v minutes, want %d", got, boundaryStripMinutes)
	}
	if got := end.End.Sub(end.Start).Minutes(); got != boundaryStripMinutes {
		t.Fatalf("end strip is %v minutes, want %d", got, boundaryStripMinutes)
	}

	if !start.End.Equal(workday.Start.At(workday.Date.Time)) {
		t.Fatalf("start strip ends at %v, want workday start", start.End)
	}
	if !end.Start.Equal(workday.End.At(workday.Date.Time)) {
		t.Fatalf("end strip begins at %v, want workday end", end.Start)
	}
}

func TestProjectSkipsCanceled(t *testing.T) {
	date := timegrid.MustParseDate("2026-03-02")
	entries := []*Entry{
		{ID: 1, Kind: KindBooking, Date: date, Start: timegrid.MustParse("10:00"), End: timegrid.MustParse("11:00"), GuestName: "Ana"},
		{ID: 2, Kind: KindBooking, Date: date, Start: timegrid.MustParse("11:00"), End: timegrid.MustParse("12:00"), GuestName: "Bea", Canceled: true},
	}

	events := Project(3, nil, entries)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (canceled excluded)", len(events))
	}
	if events[0].ID != "entry-1" {
		t.Fatalf("surviving event = %q, want entry-1", events[0].ID)
	}
}

func TestProjectBreak(t *testing.T) {
	entry := &Entry{
		ID:     4,
		Kind:   KindBreak,
		Date:   timegrid.MustParseDate("2026-03-02"),
		Start:  timegrid.MustParse("13:00"),
		End:    timegrid.MustParse("14:00"),
		Reason: "Lunch",
	}

	events := Project(3, nil, []*Entry{entry})
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if !e.IsBreak {
		t.Fatal("break not flagged")
	}
	if e.Subject != "Lunch" {
		t.Fatalf("subject = %q, want the reason", e.Subject)
	}
	if e.Info != nil {
		t.Fatal("break carries booking info")
	}
}

func TestProjectBooking(t *testing.T) {
	entry := &Entry{
		ID:              9,
		Kind:            KindBooking,
		Date:            timegrid.MustParseDate("2026-03-02"),
		Start:           timegrid.MustParse("10:00"),
		End:             timegrid.MustParse("11:15"),
		DurationMinutes: 75,
		ServiceID:       sql.NullInt64{Int64: 5, Valid: true},
		Price:           85,
		GuestName:       "Carla",
		GuestPhone:      "555-0101",
	}

	events := Project(3, nil, []*Entry{entry})
	e := events[0]

	if e.Subject != "Carla" {
		t.Fatalf("subject = %q, want the guest name", e.Subject)
	}
	if e.IsBreak || e.IsBoundary {
		t.Fatalf("booking flagged as break/boundary: %+v", e)
	}
	if e.Info == nil {
		t.Fatal("booking info missing")
	}
	if e.Info.Price != 85 || e.Info.ServiceID != 5 || e.Info.DurationMinutes != 75 {
		t.Fatalf("info = %+v", e.Info)
	}
	if e.Guest == nil || e.Guest.Phone != "555-0101" {
		t.Fatalf("guest = %+v", e.Guest)
	}
}

func TestProjectDeterministic(t *testing.T) {
	date := timegrid.MustParseDate("2026-03-02")
	workdays := []*Workday{
		{ID: 1, StaffID: 3, Date: date, Start: timegrid.MustParse("09:00"), End: timegrid.MustParse("17:00")},
	}
	entries := []*Entry{
		{ID: 1, Kind: KindBooking, Date: date, Start: timegrid.MustParse("10:00"), End: timegrid.MustParse("11:00"), GuestName: "Ana"},
		{ID: 2, Kind: KindBreak, Date: date, Start: timegrid.MustParse("13:00"), End: timegrid.MustParse("14:00"), Reason: "Lunch"},
	}

	a := Project(3, workdays, entries)
	b := Project(3, workdays, entries)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("projection not stable across runs")
	}
}
