// Package tzmath provides the civil-calendar arithmetic behind the timeline
// grid: start-of-day anchors, wall-clock hour stepping and day identity, all
// computed per IANA timezone rather than by elapsed-seconds offsets.
package tzmath

import (
	"fmt"
	"time"
)

// CivilDate is a calendar day with no time-of-day component. It only gains a
// meaning as an instant when paired with a timezone.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func CivilDayOf(t time.Time, loc *time.Location) CivilDate {
	y, m, d := t.In(loc).Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// AddDays steps by whole calendar days, normalizing across month and year
// boundaries. DST never enters here; it only matters when the date is turned
// back into an instant.
func (d CivilDate) AddDays(n int) CivilDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("parse civil date: %w", err)
	}
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// StartOfDay returns midnight of the given calendar day as observed in loc.
// On days where midnight does not exist (a DST jump at 00:00), the result is
// the normalized instant the zone actually observes.
func StartOfDay(d CivilDate, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// HourSlot advances anchor by hourOffset civil hours as observed in loc.
// The stepping is wall-clock based: the anchor's local date and clock reading
// are taken in loc and the hour field is advanced. A reading that falls in a
// spring-forward gap is moved past the transition, so a skipped hour lands on
// the same instant as the hour after it and the elapsed time between adjacent
// slots may be 0, 1 or 2 real hours.
func HourSlot(anchor time.Time, hourOffset int, loc *time.Location) time.Time {
	a := anchor.In(loc)
	want := time.Date(a.Year(), a.Month(), a.Day(), a.Hour()+hourOffset, a.Minute(), a.Second(), 0, time.UTC)
	got := time.Date(want.Year(), want.Month(), want.Day(), want.Hour(), want.Minute(), want.Second(), 0, loc)
	// A reading inside a gap resolves to a wall clock on either side of the
	// transition. When it falls short of the requested reading, the
	// shortfall is the gap width and adding it lands on the instant the
	// zone jumps to; the other side already is that instant.
	if skip := want.Sub(wallClock(got)); skip > 0 {
		got = got.Add(skip)
	}
	return got
}

// wallClock re-reads t's local calendar fields as a UTC instant, giving a
// zone-free value usable for comparing wall-clock readings.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// CivilHourOf is the hour-of-day (0-23) of t as observed in loc.
func CivilHourOf(t time.Time, loc *time.Location) int {
	return t.In(loc).Hour()
}

// Relationship classifies one instant's civil day against another's.
type Relationship int

const (
	Previous Relationship = iota - 1
	Same
	Next
)

func (r Relationship) String() string {
	switch r {
	case Previous:
		return "previous"
	case Next:
		return "next"
	default:
		return "same"
	}
}

// DayRelationship compares the civil day of a (observed in locA) against the
// civil day of b (observed in locB). Real zone offsets keep any two zones
// within one civil day of each other, so the result is clamped to
// Previous/Same/Next.
func DayRelationship(a time.Time, locA *time.Location, b time.Time, locB *time.Location) Relationship {
	da := CivilDayOf(a, locA)
	db := CivilDayOf(b, locB)
	switch ta, tb := StartOfDay(da, time.UTC), StartOfDay(db, time.UTC); {
	case ta.After(tb):
		return Next
	case ta.Before(tb):
		return Previous
	default:
		return Same
	}
}

// Abbreviation is the short zone name (e.g. "PST", "JST") in effect at t.
func Abbreviation(t time.Time, loc *time.Location) string {
	name, _ := t.In(loc).Zone()
	return name
}
