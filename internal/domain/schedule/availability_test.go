package schedule

import (
	"testing"

	"github.com/glowdesk/glowdesk-api/internal/domain/settings"
	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

func testRange(start, end string) Range {
	return Range{Start: timegrid.MustParse(start), End: timegrid.MustParse(end)}
}

func TestCheckOpeningHoursInside(t *testing.T) {
	a := CheckOpeningHours(testRange("09:00", "10:30"), settings.Default())
	if !a.Valid() {
		t.Fatalf("range inside opening hours flagged: %+v", a)
	}
	if len(a.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", a.Warnings)
	}
}

func TestCheckOpeningHoursBeforeOpening(t *testing.T) {
	a := CheckOpeningHours(testRange("07:30", "08:15"), settings.Default())
	if !a.BeforeOpening {
		t.Fatal("expected BeforeOpening")
	}
	if a.AfterClosing {
		t.Fatal("AfterClosing flagged for a morning range")
	}
	if len(a.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", a.Warnings)
	}
}

func TestCheckOpeningHoursAfterClosing(t *testing.T) {
	a := CheckOpeningHours(testRange("18:30", "19:45"), settings.Default())
	if a.BeforeOpening || !a.AfterClosing {
		t.Fatalf("flags = %+v, want AfterClosing only", a)
	}
}

func TestCheckOpeningHoursBothEnds(t *testing.T) {
	a := CheckOpeningHours(testRange("07:00", "20:00"), settings.Default())
	if !a.BeforeOpening || !a.AfterClosing {
		t.Fatalf("flags = %+v, want both", a)
	}
	if len(a.Warnings) != 2 {
		t.Fatalf("warnings = %v, want two", a.Warnings)
	}
}

func TestCheckOpeningHoursExactBoundaries(t *testing.T) {
	// Starting at opening and ending at closing is fully inside
	a := CheckOpeningHours(testRange("08:00", "19:00"), settings.Default())
	if !a.Valid() {
		t.Fatalf("boundary-exact range flagged: %+v", a)
	}
}

func TestHasWorkday(t *testing.T) {
	monday := timegrid.MustParseDate("2026-03-02")
	tuesday := timegrid.MustParseDate("2026-03-03")

	workdays := []*Workday{
		{ID: 1, StaffID: 3, Date: monday},
	}

	if !HasWorkday(workdays, monday) {
		t.Fatal("existing workday not found")
	}
	if HasWorkday(workdays, tuesday) {
		t.Fatal("workday reported for a free date")
	}
	if HasWorkday(nil, monday) {
		t.Fatal("workday reported against an empty collection")
	}
}

func TestAdjustRangeStartMovedPreservesDuration(t *testing.T) {
	prev := testRange("09:00", "10:30")
	next := testRange("08:45", "10:30")

	got := AdjustRange(prev, next, 90)
	want := testRange("08:45", "10:15")
	if got != want {
		t.Fatalf("AdjustRange = %s-%s, want %s-%s", got.Start, got.End, want.Start, want.End)
	}
	if got.Duration() != prev.Duration() {
		t.Fatalf("duration changed: %d -> %d", prev.Duration(), got.Duration())
	}
}

func TestAdjustRangeEndMovedRecomputesStart(t *testing.T) {
	prev := testRange("09:00", "10:30")
	next := testRange("09:00", "10:45")

	got := AdjustRange(prev, next, 90)
	want := testRange("09:15", "10:45")
	if got != want {
		t.Fatalf("AdjustRange = %s-%s, want %s-%s", got.Start, got.End, want.Start, want.End)
	}
}

func TestAdjustRangeStaleSnapsToDuration(t *testing.T) {
	// Neither endpoint moved but the selection changed the total: the end is
	// pinned to start + total.
	prev := testRange("09:00", "10:00")

	got := AdjustRange(prev, prev, 90)
	want := testRange("09:00", "10:30")
	if got != want {
		t.Fatalf("AdjustRange = %s-%s, want %s-%s", got.Start, got.End, want.Start, want.End)
	}
}
