package timeline

import (
	"testing"
	"time"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/tzmath"
)

type fakeClock struct {
	now      time.Time
	deferred []deferredCall
}

type deferredCall struct {
	at time.Time
	f  func()
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) {
	c.deferred = append(c.deferred, deferredCall{at: c.now.Add(d), f: f})
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
	remaining := c.deferred[:0]
	for _, call := range c.deferred {
		if !call.at.After(c.now) {
			call.f()
			continue
		}
		remaining = append(remaining, call)
	}
	c.deferred = remaining
}

type recordingHaptics struct {
	pulses int
}

func (r *recordingHaptics) Pulse() { r.pulses++ }

func vancouver(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return loc
}

func newSeededModel(t *testing.T) (*Model, *fakeClock, *recordingHaptics) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 5, 10, 30, 0, 0, vancouver(t))}
	drv := &recordingHaptics{}
	m := New(Options{Clock: clock, Haptics: drv})
	m.AddCity("Vancouver", "America/Vancouver")
	m.AddCity("London", "Europe/London")
	m.AddCity("Tokyo", "Asia/Tokyo")
	return m, clock, drv
}

func assertHomeInvariant(t *testing.T, m *Model) {
	t.Helper()
	cities := m.Cities()
	if len(cities) == 0 {
		t.Fatal("expected non-empty city list")
	}
	for i, c := range cities {
		if c.IsHome != (i == 0) {
			t.Fatalf("home flag out of place at %d: %+v", i, cities)
		}
	}
}

func TestSeededList(t *testing.T) {
	m, _, _ := newSeededModel(t)
	cities := m.Cities()
	if len(cities) != 3 || cities[0].Name != "Vancouver" {
		t.Fatalf("unexpected cities: %+v", cities)
	}
	assertHomeInvariant(t, m)
}

func TestAddCityDuplicateSuppressed(t *testing.T) {
	m, _, _ := newSeededModel(t)
	m.AddCity("Tokyo", "Asia/Tokyo")
	if got := len(m.Cities()); got != 3 {
		t.Fatalf("expected duplicate suppression, got %d cities", got)
	}
	// Same name in a different zone is a distinct city.
	m.AddCity("Tokyo", "Asia/Seoul")
	if got := len(m.Cities()); got != 4 {
		t.Fatalf("expected distinct add, got %d cities", got)
	}
}

func TestAddCityUnknownTimezoneFallsBack(t *testing.T) {
	m, _, _ := newSeededModel(t)
	m.AddCity("Atlantis", "Atlantic/Atlantis")
	cities := m.Cities()
	last := cities[len(cities)-1]
	if last.Name != "Atlantis" {
		t.Fatalf("expected city added despite bad zone: %+v", cities)
	}
	if last.Zone() == nil {
		t.Fatal("expected a usable fallback zone")
	}
	assertHomeInvariant(t, m)
}

func TestRemoveCity(t *testing.T) {
	m, _, _ := newSeededModel(t)
	cities := m.Cities()

	m.RemoveCity(cities[0].ID) // home: no-op
	if got := m.Cities(); len(got) != 3 || got[0].ID != cities[0].ID {
		t.Fatalf("expected remove-home no-op, got %+v", got)
	}

	m.RemoveCity("no-such-id")
	if got := len(m.Cities()); got != 3 {
		t.Fatalf("expected unknown-id no-op, got %d", got)
	}

	m.RemoveCity(cities[1].ID)
	got := m.Cities()
	if len(got) != 2 || got[0].Name != "Vancouver" || got[1].Name != "Tokyo" {
		t.Fatalf("unexpected list after remove: %+v", got)
	}
	assertHomeInvariant(t, m)
}

func TestSetHomePairwiseSwap(t *testing.T) {
	m, _, _ := newSeededModel(t)
	cities := m.Cities() // [Vancouver, London, Tokyo]

	m.SetHome(cities[2].ID)
	got := m.Cities()
	if got[0].Name != "Tokyo" || got[1].Name != "London" || got[2].Name != "Vancouver" {
		t.Fatalf("expected pairwise swap, got %+v", got)
	}
	assertHomeInvariant(t, m)

	// Setting the current home again is a no-op.
	m.SetHome(got[0].ID)
	if again := m.Cities(); again[0].ID != got[0].ID || again[2].ID != got[2].ID {
		t.Fatalf("expected no-op, got %+v", again)
	}
}

func TestHomeInvariantUnderMutationSequence(t *testing.T) {
	m, _, _ := newSeededModel(t)
	m.AddCity("Paris", "Europe/Paris")
	cities := m.Cities()
	m.SetHome(cities[3].ID)
	assertHomeInvariant(t, m)
	m.RemoveCity(m.Cities()[2].ID)
	assertHomeInvariant(t, m)
	m.SetHome(m.Cities()[1].ID)
	assertHomeInvariant(t, m)
}

func TestSetHomeRippleAndHaptic(t *testing.T) {
	m, clock, drv := newSeededModel(t)
	cities := m.Cities()

	m.SetHome(cities[1].ID)
	if !m.Ripple() {
		t.Fatal("expected ripple raised")
	}
	if drv.pulses != 1 {
		t.Fatalf("expected one haptic pulse, got %d", drv.pulses)
	}

	clock.Advance(RippleDuration / 2)
	if !m.Ripple() {
		t.Fatal("ripple cleared too early")
	}
	clock.Advance(RippleDuration)
	if m.Ripple() {
		t.Fatal("expected ripple cleared")
	}

	// Re-trigger restarts the visual without canceling the prior timer.
	m.SetHome(m.Cities()[1].ID)
	clock.Advance(RippleDuration / 4)
	m.SetHome(m.Cities()[1].ID)
	if !m.Ripple() {
		t.Fatal("expected ripple raised on re-trigger")
	}
	clock.Advance(2 * RippleDuration)
	if m.Ripple() {
		t.Fatal("expected ripple cleared after all timers fired")
	}
}

func TestGridAnchorAndSlots(t *testing.T) {
	m, _, _ := newSeededModel(t)
	van := vancouver(t)

	anchor := m.GridAnchor()
	if want := time.Date(2026, 1, 5, 0, 0, 0, 0, van); !anchor.Equal(want) {
		t.Fatalf("unexpected anchor: %v", anchor)
	}

	home, _ := m.HomeCity()
	slot := m.SlotInstant(9, home)
	if slot.In(van).Hour() != 9 {
		t.Fatalf("unexpected home slot: %v", slot)
	}

	tokyo, ok := m.FindCity("Tokyo")
	if !ok {
		t.Fatal("missing Tokyo")
	}
	// Home midnight is 17:00 in Tokyo; row 9 reads 02:00 the next day.
	tslot := m.SlotInstant(9, tokyo)
	if got := tslot.In(tokyo.Zone()); got.Hour() != 2 || got.Day() != 6 {
		t.Fatalf("unexpected tokyo slot: %v", got)
	}
}

func TestDayNavigationAcrossSpringForward(t *testing.T) {
	m, _, _ := newSeededModel(t)
	m.SelectDate(tzmath.CivilDate{Year: 2026, Month: time.March, Day: 7})
	start := m.GridAnchor()

	m.GoToNextDay()
	m.GoToNextDay()
	m.GoToNextDay()

	if got := m.Viewed(); got != (tzmath.CivilDate{Year: 2026, Month: time.March, Day: 10}) {
		t.Fatalf("unexpected viewed date: %v", got)
	}
	// March 8 is only 23 real hours long in the home zone.
	if d := m.GridAnchor().Sub(start); d != 71*time.Hour {
		t.Fatalf("expected 71h elapsed, got %v", d)
	}

	m.GoToPreviousDay()
	if got := m.Viewed(); got != (tzmath.CivilDate{Year: 2026, Month: time.March, Day: 9}) {
		t.Fatalf("unexpected viewed date: %v", got)
	}
}

func TestGoToToday(t *testing.T) {
	m, _, _ := newSeededModel(t)
	m.GoToNextDay()
	m.GoToToday()
	if got := m.Viewed(); got != (tzmath.CivilDate{Year: 2026, Month: time.January, Day: 5}) {
		t.Fatalf("unexpected viewed date: %v", got)
	}
}

func TestIsCurrentHourRow(t *testing.T) {
	m, clock, _ := newSeededModel(t)

	if !m.IsCurrentHourRow(10) {
		t.Fatal("expected current-hour row at 10")
	}
	if m.IsCurrentHourRow(9) || m.IsCurrentHourRow(11) {
		t.Fatal("unexpected current-hour row")
	}

	clock.Advance(time.Hour)
	m.Tick(clock.Now())
	if !m.IsCurrentHourRow(11) {
		t.Fatal("expected marker to follow the tick")
	}

	// The marker never shows while browsing another day.
	m.GoToNextDay()
	for h := 0; h < HoursPerDay; h++ {
		if m.IsCurrentHourRow(h) {
			t.Fatalf("unexpected marker at %d while browsing", h)
		}
	}
}

func TestDisplayStrings(t *testing.T) {
	m, _, _ := newSeededModel(t)
	home, _ := m.HomeCity()
	tokyo, _ := m.FindCity("Tokyo")

	if got := m.TimeString(home); got != "10:30 AM" {
		t.Fatalf("unexpected 12h time: %q", got)
	}
	m.Toggle24Hour()
	if got := m.TimeString(home); got != "10:30" {
		t.Fatalf("unexpected 24h time: %q", got)
	}
	if got := m.DateString(home); got != "Mon, Jan 5" {
		t.Fatalf("unexpected date string: %q", got)
	}
	if got := m.Abbreviation(home); got != "PST" {
		t.Fatalf("unexpected abbreviation: %q", got)
	}

	// 10:30 Vancouver is 03:30 next day in Tokyo.
	if !m.IsDifferentDay(tokyo) {
		t.Fatal("expected Tokyo on a different day")
	}
	if m.IsDifferentDay(home) {
		t.Fatal("home is never on a different day than itself")
	}
}
