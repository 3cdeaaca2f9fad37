// Package timeline owns the tracked city list, the viewed calendar date and
// the live clock tick, and derives everything the grid shows from a single
// anchor: local midnight of the viewed date in the home city's zone.
package timeline

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/domain"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/haptics"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/tzmath"
)

// HoursPerDay is the number of hour rows rendered per viewed day.
const HoursPerDay = 24

// RippleDuration is how long the set-home ripple flag stays raised.
const RippleDuration = 800 * time.Millisecond

type Options struct {
	Clock     Clock
	Haptics   haptics.Driver
	Logger    *slog.Logger
	Use24Hour bool
}

type Model struct {
	mu      sync.Mutex
	cities  []domain.City
	viewed  tzmath.CivilDate
	now     time.Time
	use24   bool
	ripple  bool
	clock   Clock
	haptics haptics.Driver
	log     *slog.Logger
}

func New(opts Options) *Model {
	clock := opts.Clock
	if clock == nil {
		clock = NewRealClock()
	}
	drv := opts.Haptics
	if drv == nil {
		drv = haptics.NewNoop()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		now:     clock.Now(),
		use24:   opts.Use24Hour,
		clock:   clock,
		haptics: drv,
		log:     logger,
	}
}

// AddCity appends a city, resolving the timezone identifier against the IANA
// database. Unknown identifiers degrade to the system zone rather than
// failing the add. Adding an identical (name, timezone) pair is a no-op.
// The first city added becomes home and pins the viewed date to its today.
func (m *Model) AddCity(name, timezoneID string) {
	loc, err := time.LoadLocation(timezoneID)
	if err != nil {
		m.log.Warn("unknown timezone, using system zone", "timezone", timezoneID, "city", name)
		loc = time.Local
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.cities {
		if c.Name == name && c.TimezoneID == loc.String() {
			return
		}
	}
	m.cities = append(m.cities, domain.NewCity(name, loc))
	if len(m.cities) == 1 {
		m.viewed = tzmath.CivilDayOf(m.now, loc)
	}
	m.rehome()
}

// RemoveCity drops a tracked city, preserving the order of the rest. Removing
// the home city or an unknown id is a no-op.
func (m *Model) RemoveCity(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx <= 0 {
		return
	}
	m.cities = append(m.cities[:idx], m.cities[idx+1:]...)
	m.rehome()
}

// SetHome swaps the target city with the current home, a single pairwise
// exchange that leaves every other city in place. It raises the ripple flag
// for RippleDuration and fires one haptic pulse; re-triggering while a ripple
// is live simply restarts the visual, whichever deferred clear fires last
// lowers the flag.
func (m *Model) SetHome(id string) {
	m.mu.Lock()

	idx := m.indexOf(id)
	if idx <= 0 {
		m.mu.Unlock()
		return
	}
	m.cities[0], m.cities[idx] = m.cities[idx], m.cities[0]
	m.rehome()
	m.ripple = true
	m.log.Debug("home changed", "city", m.cities[0].Name)
	m.mu.Unlock()

	m.clock.AfterFunc(RippleDuration, func() {
		m.mu.Lock()
		m.ripple = false
		m.mu.Unlock()
	})
	m.haptics.Pulse()
}

// Tick records the current instant. Derived state is recomputed on read, so
// nothing else needs updating here.
func (m *Model) Tick(now time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Model) GoToToday() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.cities) == 0 {
		return
	}
	m.viewed = tzmath.CivilDayOf(m.now, m.cities[0].Zone())
}

func (m *Model) GoToPreviousDay() { m.stepDays(-1) }

func (m *Model) GoToNextDay() { m.stepDays(1) }

func (m *Model) stepDays(n int) {
	m.mu.Lock()
	m.viewed = m.viewed.AddDays(n)
	m.mu.Unlock()
}

func (m *Model) SelectDate(d tzmath.CivilDate) {
	m.mu.Lock()
	m.viewed = d
	m.mu.Unlock()
}

// GridAnchor is local midnight of the viewed date in the home zone. Every
// hour slot of every city is a civil-hour offset from this one instant, so
// row h means "h civil hours after home's midnight" in every column.
func (m *Model) GridAnchor() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.cities) == 0 {
		return time.Time{}
	}
	return tzmath.StartOfDay(m.viewed, m.cities[0].Zone())
}

// SlotInstant is the instant of row hour for the given city: the grid anchor
// advanced by hour civil hours in the city's own zone.
func (m *Model) SlotInstant(hour int, city domain.City) time.Time {
	return tzmath.HourSlot(m.GridAnchor(), hour, city.Zone())
}

// IsCurrentHourRow reports whether the row should carry the "now" marker.
// Only true while the viewed date is today in the home zone.
func (m *Model) IsCurrentHourRow(hour int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.cities) == 0 {
		return false
	}
	home := m.cities[0].Zone()
	if m.viewed != tzmath.CivilDayOf(m.now, home) {
		return false
	}
	return hour == tzmath.CivilHourOf(m.now, home)
}

func (m *Model) Cities() []domain.City {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.City, len(m.cities))
	copy(out, m.cities)
	return out
}

func (m *Model) HomeCity() (domain.City, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.cities) == 0 {
		return domain.City{}, false
	}
	return m.cities[0], true
}

// FindCity looks a city up by name, exact match.
func (m *Model) FindCity(name string) (domain.City, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cities {
		if c.Name == name {
			return c, true
		}
	}
	return domain.City{}, false
}

func (m *Model) Viewed() tzmath.CivilDate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewed
}

func (m *Model) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Model) Ripple() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ripple
}

func (m *Model) Use24Hour() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.use24
}

func (m *Model) Toggle24Hour() {
	m.mu.Lock()
	m.use24 = !m.use24
	m.mu.Unlock()
}

func (m *Model) SetUse24Hour(v bool) {
	m.mu.Lock()
	m.use24 = v
	m.mu.Unlock()
}

// FormatTime renders an instant on a city's wall clock, honoring the 12/24
// hour preference.
func (m *Model) FormatTime(t time.Time, city domain.City) string {
	return t.In(city.Zone()).Format(m.clockLayout())
}

// TimeString is the city's current wall-clock reading.
func (m *Model) TimeString(city domain.City) string {
	return m.FormatTime(m.Now(), city)
}

// DateString is the city's current date header, e.g. "Mon, Jan 5".
func (m *Model) DateString(city domain.City) string {
	return m.Now().In(city.Zone()).Format("Mon, Jan 2")
}

// Abbreviation is the city's zone abbreviation at the current instant.
func (m *Model) Abbreviation(city domain.City) string {
	return tzmath.Abbreviation(m.Now(), city.Zone())
}

// IsDifferentDay reports whether the city's current civil day differs from
// home's, used to flag cross-midnight columns.
func (m *Model) IsDifferentDay(city domain.City) bool {
	home, ok := m.HomeCity()
	if !ok {
		return false
	}
	now := m.Now()
	return tzmath.DayRelationship(now, city.Zone(), now, home.Zone()) != tzmath.Same
}

func (m *Model) clockLayout() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ClockLayout(m.use24)
}

// ClockLayout is the time.Format layout for the given hour preference.
func ClockLayout(use24 bool) string {
	if use24 {
		return "15:04"
	}
	return "3:04 PM"
}

// indexOf and rehome expect m.mu held.

func (m *Model) indexOf(id string) int {
	for i, c := range m.cities {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// rehome recomputes every IsHome flag from position.
func (m *Model) rehome() {
	for i := range m.cities {
		m.cities[i].IsHome = i == 0
	}
}
