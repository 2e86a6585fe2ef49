package schedule

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRoutesRegistered(t *testing.T) {
	h := NewHandler(NewScheduler(&stubWorkdayRepo{}, &stubEntryRepo{}, &stubCatalog{}, stubPolicy{}, newStubCache(), nil))
	passthrough := func(next http.Handler) http.Handler { return next }

	router := h.Routes(passthrough)

	want := map[string]bool{
		"GET /events":                 false,
		"POST /proposals":             false,
		"GET /bookings":               false,
		"POST /bookings":              false,
		"PUT /bookings/{id}":          false,
		"PATCH /bookings/{id}/cancel": false,
		"DELETE /bookings/{id}":       false,
		"POST /breaks":                false,
		"PUT /breaks/{id}":            false,
		"GET /workdays":               false,
		"POST /workdays":              false,
		"PUT /workdays/{id}":          false,
		"DELETE /workdays":            false,
	}

	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		key := method + " " + route
		if _, expected := want[key]; expected {
			want[key] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking routes: %v", err)
	}

	for route, seen := range want {
		if !seen {
			t.Errorf("route not registered: %s", route)
		}
	}
}
