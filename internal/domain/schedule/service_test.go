package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/glowdesk/glowdesk-api/internal/domain/catalog"
	"github.com/glowdesk/glowdesk-api/internal/domain/settings"
	"github.com/glowdesk/glowdesk-api/internal/pkg/readmodel"
	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

type stubWorkdayRepo struct {
	listed    []*Workday
	listErr   error
	created   []*Workday
	createErr error
	updated   []*Workday
	deleted   int
	deleteErr error
}

func (s *stubWorkdayRepo) ListByStaffRange(ctx context.Context, staffID int64, from, to timegrid.Date) ([]*Workday, error) {
	return s.listed, s.listErr
}

func (s *stubWorkdayRepo) GetByStaffDate(ctx context.Context, staffID int64, date timegrid.Date) (*Workday, error) {
	for _, w := range s.listed {
		if w.Date.Equal(date) {
			return w, nil
		}
	}
	return nil, ErrWorkdayNotFound
}

func (s *stubWorkdayRepo) Create(ctx context.Context, w *Workday) error {
	if s.createErr != nil {
		return s.createErr
	}
	w.ID = int64(len(s.created) + 1)
	s.created = append(s.created, w)
	return nil
}

func (s *stubWorkdayRepo) Update(ctx context.Context, w *Workday) error {
	s.updated = append(s.updated, w)
	return nil
}

func (s *stubWorkdayRepo) DeleteByStaffDate(ctx context.Context, staffID int64, date timegrid.Date) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted++
	return nil
}

type stubEntryRepo struct {
	listed    []*Entry
	byID      map[int64]*Entry
	created   []*Entry
	createErr error
	updated   []*Entry
	canceled  []int64
	deleted   []int64
}

func (s *stubEntryRepo) ListByStaffRange(ctx context.Context, staffID int64, from, to timegrid.Date, includeCanceled bool) ([]*Entry, error) {
	if includeCanceled {
		return s.listed, nil
	}
	active := make([]*Entry, 0, len(s.listed))
	for _, e := range s.listed {
		if e.IsActive() {
			active = append(active, e)
		}
	}
	return active, nil
}

func (s *stubEntryRepo) GetByID(ctx context.Context, id int64) (*Entry, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

func (s *stubEntryRepo) Create(ctx context.Context, e *Entry) error {
	if s.createErr != nil {
		return s.createErr
	}
	e.ID = int64(len(s.created) + 1)
	s.created = append(s.created, e)
	return nil
}

func (s *stubEntryRepo) Update(ctx context.Context, e *Entry) error {
	s.updated = append(s.updated, e)
	return nil
}

func (s *stubEntryRepo) SetCanceled(ctx context.Context, id int64, canceled bool) error {
	s.canceled = append(s.canceled, id)
	return nil
}

func (s *stubEntryRepo) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCatalog struct {
	service    *catalog.Service
	serviceErr error
	extras     []*catalog.ExtraService
}

func (s *stubCatalog) GetService(ctx context.Context, id int64) (*catalog.Service, error) {
	if s.serviceErr != nil {
		return nil, s.serviceErr
	}
	return s.service, nil
}

func (s *stubCatalog) ListExtraServices(ctx context.Context) ([]*catalog.ExtraService, error) {
	return s.extras, nil
}

type stubPolicy struct{}

func (stubPolicy) Get(ctx context.Context) (*settings.BookingSettings, error) {
	return settings.Default(), nil
}

type stubCache struct {
	store       map[string][]byte
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[string][]byte)}
}

func (s *stubCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, ok := s.store[key]
	return payload, ok
}

func (s *stubCache) Set(ctx context.Context, key string, payload []byte, groups ...string) {
	s.store[key] = payload
}

func (s *stubCache) Invalidate(ctx context.Context, groups ...string) {
	s.invalidated = append(s.invalidated, groups...)
}

type notice struct {
	kind  string
	title string
}

type stubNotifier struct {
	notices []notice
}

func (s *stubNotifier) Notify(ctx context.Context, kind, title, message string) {
	s.notices = append(s.notices, notice{kind: kind, title: title})
}

func (s *stubNotifier) lastKind(t *testing.T) string {
	t.Helper()
	if len(s.notices) == 0 {
		t.Fatal("no notices sent")
	}
	return s.notices[len(s.notices)-1].kind
}

type testDeps struct {
	workdays *stubWorkdayRepo
	entries  *stubEntryRepo
	catalog  *stubCatalog
	cache    *stubCache
	notifier *stubNotifier
}

func newTestScheduler() (*Scheduler, *testDeps) {
	deps := &testDeps{
		workdays: &stubWorkdayRepo{},
		entries:  &stubEntryRepo{byID: make(map[int64]*Entry)},
		catalog: &stubCatalog{
			service: &catalog.Service{ID: 5, CategoryID: 2, Name: "Cut & style", DurationMinutes: 45, Price: 60},
			extras: []*catalog.ExtraService{
				{ID: 10, Name: "Deep conditioning", DurationMinutes: 15, Price: 20},
			},
		},
		cache:    newStubCache(),
		notifier: &stubNotifier{},
	}

	s := NewScheduler(deps.workdays, deps.entries, deps.catalog, stubPolicy{}, deps.cache, deps.notifier)
	return s, deps
}

func bookingInput(id int64) BookingInput {
	return BookingInput{
		ID:              id,
		StaffID:         3,
		Date:            timegrid.MustParseDate("2026-03-02"),
		Start:           timegrid.MustParse("10:00"),
		CategoryID:      2,
		ServiceID:       5,
		ExtraServiceIDs: []int64{10},
		Guest:           Guest{Name: "Ana", Email: "ana@example.com"},
	}
}

func TestSaveBookingDerivesEndAndPrice(t *testing.T) {
	s, deps := newTestScheduler()

	entry, assessment, err := s.SaveBooking(context.Background(), bookingInput(0))
	if err != nil {
		t.Fatalf("SaveBooking: %v", err)
	}
	if !assessment.Valid() {
		t.Fatalf("assessment = %+v", assessment)
	}

	// 45 base + 15 extra
	if entry.DurationMinutes != 60 {
		t.Fatalf("duration = %d, want 60", entry.DurationMinutes)
	}
	if entry.End.String() != "11:00" {
		t.Fatalf("end = %s, want 11:00 derived from start + total", entry.End)
	}
	if entry.Price != 80 {
		t.Fatalf("price = %.2f, want 80.00", entry.Price)
	}
	if len(deps.entries.created) != 1 || len(deps.entries.updated) != 0 {
		t.Fatalf("created=%d updated=%d, want create only", len(deps.entries.created), len(deps.entries.updated))
	}
	if len(deps.cache.invalidated) != 1 || deps.cache.invalidated[0] != readmodel.GroupBookings {
		t.Fatalf("invalidated = %v, want bookings group", deps.cache.invalidated)
	}
	if deps.notifier.lastKind(t) != "success" {
		t.Fatal("expected success notice")
	}
}

func TestSaveBookingNonzeroIDUpdates(t *testing.T) {
	s, deps := newTestScheduler()

	if _, _, err := s.SaveBooking(context.Background(), bookingInput(42)); err != nil {
		t.Fatalf("SaveBooking: %v", err)
	}
	if len(deps.entries.created) != 0 || len(deps.entries.updated) != 1 {
		t.Fatalf("created=%d updated=%d, want update only", len(deps.entries.created), len(deps.entries.updated))
	}
	if deps.entries.updated[0].ID != 42 {
		t.Fatalf("updated id = %d, want 42", deps.entries.updated[0].ID)
	}
}

func TestSaveBookingOutsideHoursStillSaves(t *testing.T) {
	s, deps := newTestScheduler()

	in := bookingInput(0)
	in.Start = timegrid.MustParse("07:30")

	entry, assessment, err := s.SaveBooking(context.Background(), in)
	if err != nil {
		t.Fatalf("SaveBooking: %v", err)
	}
	if !assessment.BeforeOpening {
		t.Fatal("expected BeforeOpening warning")
	}
	if len(deps.entries.created) != 1 {
		t.Fatal("openness warning blocked the save")
	}
	if entry.ID == 0 {
		t.Fatal("entry not persisted")
	}
}

func TestSaveBookingUnknownService(t *testing.T) {
	s, deps := newTestScheduler()
	deps.catalog.serviceErr = catalog.ErrServiceNotFound

	_, _, err := s.SaveBooking(context.Background(), bookingInput(0))
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("err = %v, want ErrServiceNotFound", err)
	}
	if len(deps.entries.created) != 0 {
		t.Fatal("entry created despite missing service")
	}
	if deps.notifier.lastKind(t) != "failure" {
		t.Fatal("expected failure notice")
	}
}

func TestSaveBookingStoreFailure(t *testing.T) {
	s, deps := newTestScheduler()
	deps.entries.createErr = errors.New("connection reset")

	_, _, err := s.SaveBooking(context.Background(), bookingInput(0))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(deps.cache.invalidated) != 0 {
		t.Fatal("cache invalidated despite failed save")
	}
	if deps.notifier.lastKind(t) != "failure" {
		t.Fatal("expected failure notice")
	}
}

func TestCancelBookingKeepsRecord(t *testing.T) {
	s, deps := newTestScheduler()
	deps.entries.byID[9] = &Entry{ID: 9, Kind: KindBooking, GuestName: "Ana"}

	entry, err := s.CancelBooking(context.Background(), 9)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if !entry.Canceled {
		t.Fatal("entry not marked canceled")
	}
	if len(deps.entries.canceled) != 1 || deps.entries.canceled[0] != 9 {
		t.Fatalf("canceled calls = %v", deps.entries.canceled)
	}
	if len(deps.entries.deleted) != 0 {
		t.Fatal("cancel must not delete the record")
	}
	if len(deps.cache.invalidated) != 1 || deps.cache.invalidated[0] != readmodel.GroupBookings {
		t.Fatalf("invalidated = %v", deps.cache.invalidated)
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	s, deps := newTestScheduler()

	_, err := s.CancelBooking(context.Background(), 404)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
	if len(deps.entries.canceled) != 0 {
		t.Fatal("cancel attempted on missing entry")
	}
}

func workdayInput() WorkdayInput {
	return WorkdayInput{
		StaffID: 3,
		Date:    timegrid.MustParseDate("2026-03-02"),
		Start:   timegrid.MustParse("09:00"),
		End:     timegrid.MustParse("17:00"),
	}
}

func TestCreateWorkday(t *testing.T) {
	s, deps := newTestScheduler()

	workday, assessment, err := s.CreateWorkday(context.Background(), workdayInput())
	if err != nil {
		t.Fatalf("CreateWorkday: %v", err)
	}
	if !assessment.Valid() {
		t.Fatalf("assessment = %+v", assessment)
	}
	if workday.ID == 0 {
		t.Fatal("workday not persisted")
	}
	if len(deps.cache.invalidated) != 1 || deps.cache.invalidated[0] != readmodel.GroupWorkdays {
		t.Fatalf("invalidated = %v, want workdays group", deps.cache.invalidated)
	}
}

func TestCreateWorkdayDuplicateRejectedBeforeStore(t *testing.T) {
	s, deps := newTestScheduler()
	in := workdayInput()
	deps.workdays.listed = []*Workday{{ID: 1, StaffID: in.StaffID, Date: in.Date}}

	_, _, err := s.CreateWorkday(context.Background(), in)
	if !errors.Is(err, ErrWorkdayExists) {
		t.Fatalf("err = %v, want ErrWorkdayExists", err)
	}
	if len(deps.workdays.created) != 0 {
		t.Fatal("store write attempted for a duplicate workday")
	}
	if deps.notifier.lastKind(t) != "failure" {
		t.Fatal("expected failure notice")
	}
}

func TestCreateWorkdayInvalidRange(t *testing.T) {
	s, deps := newTestScheduler()
	in := workdayInput()
	in.End = timegrid.MustParse("08:00")

	_, _, err := s.CreateWorkday(context.Background(), in)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	if len(deps.workdays.created) != 0 {
		t.Fatal("store write attempted for an inverted range")
	}
}

func TestDeleteWorkdayLeavesEntries(t *testing.T) {
	s, deps := newTestScheduler()

	err := s.DeleteWorkday(context.Background(), 3, timegrid.MustParseDate("2026-03-02"))
	if err != nil {
		t.Fatalf("DeleteWorkday: %v", err)
	}
	if deps.workdays.deleted != 1 {
		t.Fatalf("workday deletes = %d, want 1", deps.workdays.deleted)
	}
	if len(deps.entries.deleted) != 0 || len(deps.entries.canceled) != 0 {
		t.Fatal("deleting a workday must not touch bookings on that date")
	}
	if len(deps.cache.invalidated) != 1 || deps.cache.invalidated[0] != readmodel.GroupWorkdays {
		t.Fatalf("invalidated = %v, want workdays group only", deps.cache.invalidated)
	}
}

func TestSaveBreakUsesRangeDuration(t *testing.T) {
	s, deps := newTestScheduler()

	entry, _, err := s.SaveBreak(context.Background(), BreakInput{
		StaffID: 3,
		Date:    timegrid.MustParseDate("2026-03-02"),
		Start:   timegrid.MustParse("13:00"),
		End:     timegrid.MustParse("14:00"),
		Reason:  "Lunch",
	})
	if err != nil {
		t.Fatalf("SaveBreak: %v", err)
	}
	if entry.Kind != KindBreak {
		t.Fatalf("kind = %s", entry.Kind)
	}
	if entry.DurationMinutes != 60 {
		t.Fatalf("duration = %d, want 60 from the range itself", entry.DurationMinutes)
	}
	if entry.Price != 0 || entry.ServiceID.Valid {
		t.Fatalf("break carries booking fields: price=%.2f service=%+v", entry.Price, entry.ServiceID)
	}
	if len(deps.entries.created) != 1 {
		t.Fatal("break not persisted")
	}
}

func TestSaveBreakInvalidRange(t *testing.T) {
	s, deps := newTestScheduler()

	_, _, err := s.SaveBreak(context.Background(), BreakInput{
		StaffID: 3,
		Date:    timegrid.MustParseDate("2026-03-02"),
		Start:   timegrid.MustParse("14:00"),
		End:     timegrid.MustParse("14:00"),
		Reason:  "Lunch",
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	if len(deps.entries.created) != 0 {
		t.Fatal("zero-length break persisted")
	}
}

func TestEventsCachesProjection(t *testing.T) {
	s, deps := newTestScheduler()
	from := timegrid.MustParseDate("2026-03-02")
	to := timegrid.MustParseDate("2026-03-08")
	deps.workdays.listed = []*Workday{
		{ID: 1, StaffID: 3, Date: from, Start: timegrid.MustParse("09:00"), End: timegrid.MustParse("17:00")},
	}

	first, err := s.Events(context.Background(), 3, from, to)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d events, want 2 boundary strips", len(first))
	}
	if len(deps.cache.store) != 1 {
		t.Fatal("projection not cached")
	}

	// Second call must be served from cache even if the store changes
	deps.workdays.listErr = errors.New("store down")
	second, err := s.Events(context.Background(), 3, from, to)
	if err != nil {
		t.Fatalf("Events from cache: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached projection differs: %d vs %d", len(second), len(first))
	}
}

func TestProposeAdjustsEndForServiceDuration(t *testing.T) {
	s, _ := newTestScheduler()

	prev := testRange("09:00", "09:45")
	next := testRange("09:00", "10:15")

	// base 45 + extra 15 = 60; moving the end recomputes the start
	adjusted, _, err := s.Propose(context.Background(), prev, next, 5, []int64{10})
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	want := testRange("09:15", "10:15")
	if adjusted != want {
		t.Fatalf("adjusted = %s-%s, want %s-%s", adjusted.Start, adjusted.End, want.Start, want.End)
	}
}

func TestProposeWithoutServicePassesThrough(t *testing.T) {
	s, _ := newTestScheduler()

	next := testRange("07:00", "08:30")
	adjusted, assessment, err := s.Propose(context.Background(), testRange("07:00", "08:00"), next, 0, nil)
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	if adjusted != next {
		t.Fatalf("adjusted = %s-%s, want unchanged", adjusted.Start, adjusted.End)
	}
	if !assessment.BeforeOpening {
		t.Fatal("expected BeforeOpening on the submitted range")
	}
}
