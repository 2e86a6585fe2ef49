package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/glowdesk/glowdesk-api/internal/domain/catalog"
	"github.com/glowdesk/glowdesk-api/internal/domain/settings"
	"github.com/glowdesk/glowdesk-api/internal/events"
	"github.com/glowdesk/glowdesk-api/internal/pkg/readmodel"
	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// Catalog is the slice of the service catalog the coordinator resolves
// durations and prices from.
type Catalog interface {
	GetService(ctx context.Context, id int64) (*catalog.Service, error)
	ListExtraServices(ctx context.Context) ([]*catalog.ExtraService, error)
}

// Policy provides the salon's booking settings
type Policy interface {
	Get(ctx context.Context) (*settings.BookingSettings, error)
}

// Notifier pushes outcome notices to connected console sessions
type Notifier interface {
	Notify(ctx context.Context, kind, title, message string)
}

// Cache stores serialized projections tagged by read-model group
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, groups ...string)
	Invalidate(ctx context.Context, groups ...string)
}

// Scheduler coordinates the booking lifecycle: it resolves durations and
// prices from the catalog, assesses ranges against opening hours, persists
// workdays and entries, invalidates stale projections and notifies console
// sessions of the outcome.
type Scheduler struct {
	workdays WorkdayRepository
	entries  EntryRepository
	catalog  Catalog
	policy   Policy
	cache    Cache
	notifier Notifier
}

// NewScheduler creates the booking coordinator
func NewScheduler(
	workdays WorkdayRepository,
	entries EntryRepository,
	cat Catalog,
	policy Policy,
	cache Cache,
	notifier Notifier,
) *Scheduler {
	return &Scheduler{
		workdays: workdays,
		entries:  entries,
		catalog:  cat,
		policy:   policy,
		cache:    cache,
		notifier: notifier,
	}
}

// SaveBooking creates or updates a booking. An input ID of 0 means "new";
// anything else targets an existing entry. The end time and price are always
// recomputed from the catalog, never trusted from the submission.
//
// Openness violations are returned as advisory warnings alongside the saved
// entry; they never block the save.
func (s *Scheduler) SaveBooking(ctx context.Context, in BookingInput) (*Entry, Assessment, error) {
	svc, err := s.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			s.fail(ctx, "Booking not saved", "The selected service no longer exists")
			return nil, Assessment{}, ErrServiceNotFound
		}
		return nil, Assessment{}, fmt.Errorf("resolving service: %w", err)
	}

	extras, err := s.listExtras(ctx)
	if err != nil {
		return nil, Assessment{}, fmt.Errorf("resolving extra services: %w", err)
	}

	duration := catalog.TotalDuration(*svc, in.ExtraServiceIDs, extras)
	price := catalog.TotalPrice(*svc, in.ExtraServiceIDs, extras)
	rng := Range{Start: in.Start, End: in.Start.Shift(duration)}

	assessment, err := s.assess(ctx, rng)
	if err != nil {
		return nil, Assessment{}, err
	}

	entry := &Entry{
		ID:              in.ID,
		Kind:            KindBooking,
		StaffID:         in.StaffID,
		Date:            in.Date,
		Start:           rng.Start,
		End:             rng.End,
		DurationMinutes: duration,
		CategoryID:      sql.NullInt64{Int64: in.CategoryID, Valid: true},
		ServiceID:       sql.NullInt64{Int64: in.ServiceID, Valid: true},
		ExtraServiceIDs: int64Array(in.ExtraServiceIDs),
		Price:           price,
		GuestName:       in.Guest.Name,
		GuestEmail:      in.Guest.Email,
		GuestPhone:      in.Guest.Phone,
		Observations:    in.Guest.Observations,
	}

	if in.ID == 0 {
		err = s.entries.Create(ctx, entry)
	} else {
		err = s.entries.Update(ctx, entry)
	}
	if err != nil {
		s.fail(ctx, "Booking not saved", "The booking could not be stored")
		return nil, assessment, err
	}

	s.cache.Invalidate(ctx, readmodel.GroupBookings)
	s.succeed(ctx, "Booking saved", fmt.Sprintf("Booking for %s on %s at %s", in.Guest.Name, in.Date, rng.Start))

	return entry, assessment, nil
}

// CancelBooking marks a booking canceled. The record stays in the store for
// the booking-history view; it only disappears from the active projection.
func (s *Scheduler) CancelBooking(ctx context.Context, id int64) (*Entry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.entries.SetCanceled(ctx, id, true); err != nil {
		s.fail(ctx, "Booking not canceled", "The booking could not be updated")
		return nil, err
	}
	entry.Canceled = true

	s.cache.Invalidate(ctx, readmodel.GroupBookings)
	s.succeed(ctx, "Booking canceled", fmt.Sprintf("Booking for %s was canceled", entry.GuestName))

	return entry, nil
}

// DeleteEntry hard-removes a booking or break. Cancellation is the normal
// path; this exists for administrative correction.
func (s *Scheduler) DeleteEntry(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrEntryNotFound) {
			s.fail(ctx, "Entry not deleted", "The calendar entry could not be removed")
		}
		return err
	}

	s.cache.Invalidate(ctx, readmodel.GroupBookings)
	s.succeed(ctx, "Entry deleted", "The calendar entry was removed")
	return nil
}

// SaveBreak creates or updates a break. Breaks take their duration straight
// from the submitted range; the catalog is not consulted.
func (s *Scheduler) SaveBreak(ctx context.Context, in BreakInput) (*Entry, Assessment, error) {
	if !in.End.After(in.Start) {
		return nil, Assessment{}, ErrInvalidRange
	}

	rng := Range{Start: in.Start, End: in.End}
	assessment, err := s.assess(ctx, rng)
	if err != nil {
		return nil, Assessment{}, err
	}

	entry := &Entry{
		ID:              in.ID,
		Kind:            KindBreak,
		StaffID:         in.StaffID,
		Date:            in.Date,
		Start:           in.Start,
		End:             in.End,
		DurationMinutes: rng.Duration(),
		ExtraServiceIDs: int64Array(nil),
		Reason:          in.Reason,
	}

	if in.ID == 0 {
		err = s.entries.Create(ctx, entry)
	} else {
		err = s.entries.Update(ctx, entry)
	}
	if err != nil {
		s.fail(ctx, "Break not saved", "The break could not be stored")
		return nil, assessment, err
	}

	s.cache.Invalidate(ctx, readmodel.GroupBookings)
	s.succeed(ctx, "Break saved", fmt.Sprintf("%s on %s at %s", in.Reason, in.Date, in.Start))

	return entry, assessment, nil
}

// CreateWorkday opens a workday for (staff, date). A second workday for the
// same pair is rejected against the already-loaded collection, before any
// store write; the unique index only backs this up against racing sessions.
func (s *Scheduler) CreateWorkday(ctx context.Context, in WorkdayInput) (*Workday, Assessment, error) {
	if !in.End.After(in.Start) {
		return nil, Assessment{}, ErrInvalidRange
	}

	loaded, err := s.workdays.ListByStaffRange(ctx, in.StaffID, in.Date, in.Date)
	if err != nil {
		return nil, Assessment{}, fmt.Errorf("loading workdays: %w", err)
	}
	if HasWorkday(loaded, in.Date) {
		s.fail(ctx, "Workday not created", fmt.Sprintf("A workday already exists on %s", in.Date))
		return nil, Assessment{}, ErrWorkdayExists
	}

	assessment, err := s.assess(ctx, Range{Start: in.Start, End: in.End})
	if err != nil {
		return nil, Assessment{}, err
	}

	workday := &Workday{
		StaffID: in.StaffID,
		Date:    in.Date,
		Start:   in.Start,
		End:     in.End,
	}
	if err := s.workdays.Create(ctx, workday); err != nil {
		if errors.Is(err, ErrWorkdayExists) {
			s.fail(ctx, "Workday not created", fmt.Sprintf("A workday already exists on %s", in.Date))
		} else {
			s.fail(ctx, "Workday not created", "The workday could not be stored")
		}
		return nil, assessment, err
	}

	s.cache.Invalidate(ctx, readmodel.GroupWorkdays)
	s.succeed(ctx, "Workday created", fmt.Sprintf("Workday on %s from %s to %s", in.Date, in.Start, in.End))

	return workday, assessment, nil
}

// UpdateWorkday changes an existing workday's hours
func (s *Scheduler) UpdateWorkday(ctx context.Context, in WorkdayInput) (*Workday, Assessment, error) {
	if !in.End.After(in.Start) {
		return nil, Assessment{}, ErrInvalidRange
	}

	assessment, err := s.assess(ctx, Range{Start: in.Start, End: in.End})
	if err != nil {
		return nil, Assessment{}, err
	}

	workday := &Workday{
		ID:      in.ID,
		StaffID: in.StaffID,
		Date:    in.Date,
		Start:   in.Start,
		End:     in.End,
	}
	if err := s.workdays.Update(ctx, workday); err != nil {
		if !errors.Is(err, ErrWorkdayNotFound) {
			s.fail(ctx, "Workday not updated", "The workday could not be stored")
		}
		return nil, assessment, err
	}

	s.cache.Invalidate(ctx, readmodel.GroupWorkdays)
	s.succeed(ctx, "Workday updated", fmt.Sprintf("Workday on %s from %s to %s", in.Date, in.Start, in.End))

	return workday, assessment, nil
}

// DeleteWorkday removes the workday for (staff, date). Bookings on that date
// are left untouched: only the boundary strips disappear from the projection.
func (s *Scheduler) DeleteWorkday(ctx context.Context, staffID int64, date timegrid.Date) error {
	if err := s.workdays.DeleteByStaffDate(ctx, staffID, date); err != nil {
		if !errors.Is(err, ErrWorkdayNotFound) {
			s.fail(ctx, "Workday not deleted", "The workday could not be removed")
		}
		return err
	}

	s.cache.Invalidate(ctx, readmodel.GroupWorkdays)
	s.succeed(ctx, "Workday deleted", fmt.Sprintf("Workday on %s was removed", date))
	return nil
}

// Events returns the render-ready calendar projection for one staff member
// over a date range. Projections are cached per (staff, range) and tagged with
// the booking and workday groups, so any mutation on either collection drops
// them.
func (s *Scheduler) Events(ctx context.Context, staffID int64, from, to timegrid.Date) ([]CalendarEvent, error) {
	key := fmt.Sprintf("events:%d:%s:%s", staffID, from, to)

	if payload, ok := s.cache.Get(ctx, key); ok {
		var cached []CalendarEvent
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	workdays, err := s.workdays.ListByStaffRange(ctx, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading workdays: %w", err)
	}
	entries, err := s.entries.ListByStaffRange(ctx, staffID, from, to, false)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	projected := Project(staffID, workdays, entries)

	if payload, err := json.Marshal(projected); err == nil {
		s.cache.Set(ctx, key, payload, readmodel.GroupBookings, readmodel.GroupWorkdays)
	}

	return projected, nil
}

// History returns raw entries for the range, optionally keeping canceled
// bookings in the listing.
func (s *Scheduler) History(ctx context.Context, staffID int64, from, to timegrid.Date, includeCanceled bool) ([]*Entry, error) {
	return s.entries.ListByStaffRange(ctx, staffID, from, to, includeCanceled)
}

// Propose adjusts an edited range so it stays consistent with the selected
// service's total duration, then re-assesses the result. With no service
// selected (break editing) the range passes through unadjusted.
func (s *Scheduler) Propose(ctx context.Context, prev, next Range, serviceID int64, extraIDs []int64) (Range, Assessment, error) {
	adjusted := next

	if serviceID > 0 {
		svc, err := s.catalog.GetService(ctx, serviceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				return Range{}, Assessment{}, ErrServiceNotFound
			}
			return Range{}, Assessment{}, fmt.Errorf("resolving service: %w", err)
		}
		extras, err := s.listExtras(ctx)
		if err != nil {
			return Range{}, Assessment{}, fmt.Errorf("resolving extra services: %w", err)
		}
		adjusted = AdjustRange(prev, next, catalog.TotalDuration(*svc, extraIDs, extras))
	}

	assessment, err := s.assess(ctx, adjusted)
	if err != nil {
		return Range{}, Assessment{}, err
	}

	return adjusted, assessment, nil
}

func (s *Scheduler) assess(ctx context.Context, rng Range) (Assessment, error) {
	policy, err := s.policy.Get(ctx)
	if err != nil {
		return Assessment{}, fmt.Errorf("loading booking settings: %w", err)
	}
	return CheckOpeningHours(rng, policy), nil
}

func (s *Scheduler) listExtras(ctx context.Context) ([]catalog.ExtraService, error) {
	listed, err := s.catalog.ListExtraServices(ctx)
	if err != nil {
		return nil, err
	}
	extras := make([]catalog.ExtraService, 0, len(listed))
	for _, e := range listed {
		extras = append(extras, *e)
	}
	return extras, nil
}

func (s *Scheduler) succeed(ctx context.Context, title, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, events.NoticeSuccess, title, message)
	}
}

func (s *Scheduler) fail(ctx context.Context, title, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, events.NoticeFailure, title, message)
	}
}

// int64Array never stores NULL for the extras column
func int64Array(ids []int64) pq.Int64Array {
	if ids == nil {
		return pq.Int64Array{}
	}
	return pq.Int64Array(ids)
}
