package catalog

import "testing"

var (
	testBase = Service{ID: 1, Name: "Cut & style", DurationMinutes: 45, Price: 60}

	testExtras = []ExtraService{
		{ID: 10, Name: "Deep conditioning", DurationMinutes: 15, Price: 20},
		{ID: 11, Name: "Scalp massage", DurationMinutes: 10, Price: 15},
		{ID: 12, Name: "Gloss treatment", DurationMinutes: 30, Price: 35},
	}
)

func TestTotalDurationNoExtras(t *testing.T) {
	if got := TotalDuration(testBase, nil, testExtras); got != 45 {
		t.Fatalf("TotalDuration with no extras = %d, want base 45", got)
	}
	if got := TotalDuration(testBase, []int64{}, testExtras); got != 45 {
		t.Fatalf("TotalDuration with empty selection = %d, want base 45", got)
	}
}

func TestTotalDurationSumsSelected(t *testing.T) {
	if got := TotalDuration(testBase, []int64{10, 12}, testExtras); got != 45+15+30 {
		t.Fatalf("TotalDuration = %d, want 90", got)
	}
}

func TestTotalDurationOrderInsensitive(t *testing.T) {
	a := TotalDuration(testBase, []int64{10, 11, 12}, testExtras)
	b := TotalDuration(testBase, []int64{12, 10, 11}, testExtras)
	c := TotalDuration(testBase, []int64{11, 12, 10}, testExtras)
	if a != b || b != c {
		t.Fatalf("TotalDuration not order-insensitive: %d %d %d", a, b, c)
	}
}

func TestTotalDurationUnknownIDsExcluded(t *testing.T) {
	// An id that no longer resolves is treated as "not currently offered",
	// never an error.
	if got := TotalDuration(testBase, []int64{10, 999}, testExtras); got != 60 {
		t.Fatalf("TotalDuration with unknown id = %d, want 60", got)
	}
}

func TestTotalPrice(t *testing.T) {
	if got := TotalPrice(testBase, []int64{10, 11}, testExtras); got != 60+20+15 {
		t.Fatalf("TotalPrice = %.2f, want 95.00", got)
	}
	if got := TotalPrice(testBase, nil, testExtras); got != 60 {
		t.Fatalf("TotalPrice with no extras = %.2f, want 60.00", got)
	}
}
