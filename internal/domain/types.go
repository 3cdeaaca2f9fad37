package domain

import (
	"time"

	"github.com/google/uuid"
)

// City is one tracked column of the timeline grid. Home is positional (index
// 0 of the tracked list); IsHome is a projection recomputed from position and
// never an independent source of truth.
type City struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TimezoneID string `json:"timezone_id"`
	IsHome     bool   `json:"is_home"`
}

func NewCity(name string, loc *time.Location) City {
	return City{
		ID:         uuid.New().String(),
		Name:       name,
		TimezoneID: loc.String(),
	}
}

// Zone resolves the city's IANA identifier, falling back to the system zone
// when the identifier no longer resolves.
func (c City) Zone() *time.Location {
	return zoneOrLocal(c.TimezoneID)
}

// Event is a user-created timed entry anchored to the city grid it was drawn
// on. Start and End are absolute instants; TimezoneID records the zone the
// event is displayed and exported in.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Location   string    `json:"location,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	TimezoneID string    `json:"timezone_id"`
}

func (e Event) Zone() *time.Location {
	return zoneOrLocal(e.TimezoneID)
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// CreationSession is the ephemeral state of an in-progress event selection:
// a contiguous hour range on one city's column. It is discarded on cancel,
// consumed on finalize, and superseded by starting a new one.
type CreationSession struct {
	Active    bool
	City      City
	StartHour int
	EndHour   int
}

// IsHourSelected reports whether hour falls in the inclusive selected range.
func (s CreationSession) IsHourSelected(hour int) bool {
	if !s.Active {
		return false
	}
	lo, hi := s.StartHour, s.EndHour
	if hi < lo {
		lo, hi = hi, lo
	}
	return hour >= lo && hour <= hi
}

func zoneOrLocal(id string) *time.Location {
	loc, err := time.LoadLocation(id)
	if err != nil {
		return time.Local
	}
	return loc
}
