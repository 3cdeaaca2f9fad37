// Package events owns user-created events and the two-phase creation flow
// that materializes them from an hour-range selection on a city column.
package events

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/domain"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/tzmath"
)

// DefaultTitle is the title a freshly finalized event carries into the edit
// step.
const DefaultTitle = "New Event"

type Store struct {
	mu      sync.Mutex
	events  []domain.Event
	session domain.CreationSession
	log     *slog.Logger
	newID   func() string
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{log: logger, newID: uuid.NewString}
}

// StartCreation opens a session anchored at hour on the given city's column.
// Any prior session is superseded.
func (s *Store) StartCreation(city domain.City, hour int) {
	s.mu.Lock()
	s.session = domain.CreationSession{Active: true, City: city, StartHour: hour, EndHour: hour}
	s.mu.Unlock()
}

// ExtendCreation drags the selection's end. The start never moves and the
// end never drops below it, so the selection stays a contiguous non-empty
// range.
func (s *Store) ExtendCreation(hour int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Active {
		return
	}
	if hour < s.session.StartHour {
		hour = s.session.StartHour
	}
	s.session.EndHour = hour
}

func (s *Store) IsHourSelected(hour int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.IsHourSelected(hour)
}

func (s *Store) Session() domain.CreationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Store) CancelCreation() {
	s.mu.Lock()
	s.session = domain.CreationSession{}
	s.mu.Unlock()
}

// FinalizeCreation materializes the session into a stored event spanning the
// selected hours of the grid anchored at anchor: start at the first selected
// slot, end one civil hour past the last, both in the session city's zone.
// An incomplete session is silently discarded and no event is produced.
func (s *Store) FinalizeCreation(anchor time.Time) (domain.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session
	s.session = domain.CreationSession{}
	if !sess.Active || sess.City.TimezoneID == "" || anchor.IsZero() {
		s.log.Debug("creation session discarded", "active", sess.Active)
		return domain.Event{}, false
	}

	loc := sess.City.Zone()
	ev := domain.Event{
		ID:         s.newID(),
		Title:      DefaultTitle,
		Start:      tzmath.HourSlot(anchor, sess.StartHour, loc),
		End:        tzmath.HourSlot(anchor, sess.EndHour+1, loc),
		TimezoneID: sess.City.TimezoneID,
	}
	s.upsert(ev)
	return ev, true
}

// Save upserts by id: an existing event with the same id is replaced, an
// unknown id is appended. Events whose end does not follow their start are
// dropped silently.
func (s *Store) Save(ev domain.Event) {
	if !ev.End.After(ev.Start) {
		s.log.Warn("dropping event with non-positive span", "id", ev.ID, "title", ev.Title)
		return
	}
	s.mu.Lock()
	s.upsert(ev)
	s.mu.Unlock()
}

// Delete removes by id, a no-op when absent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ev := range s.events {
		if ev.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return
		}
	}
}

// EventsForSlot returns the events drawn on the given city's column that
// overlap row hour of the grid anchored at anchor. Intervals are half-open:
// an event ending exactly on a slot boundary does not appear in that slot.
func (s *Store) EventsForSlot(anchor time.Time, hour int, city domain.City) []domain.Event {
	loc := city.Zone()
	slotStart := tzmath.HourSlot(anchor, hour, loc)
	slotEnd := tzmath.HourSlot(anchor, hour+1, loc)

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Event
	for _, ev := range s.events {
		if ev.TimezoneID != city.TimezoneID {
			continue
		}
		if ev.Start.Before(slotEnd) && ev.End.After(slotStart) {
			out = append(out, ev)
		}
	}
	return out
}

// Events returns a snapshot ordered by start instant.
func (s *Store) Events() []domain.Event {
	s.mu.Lock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (s *Store) upsert(ev domain.Event) {
	for i := range s.events {
		if s.events[i].ID == ev.ID {
			s.events[i] = ev
			return
		}
	}
	s.events = append(s.events, ev)
}
