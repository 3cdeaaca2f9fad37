// Package ics writes the calendar interchange text GlorifiedClock has always
// emitted, byte for byte, and reads such files back into domain events.
//
// Timestamps are floating local times (no trailing Z, no TZID parameter)
// rendered in each event's own zone. That layout is a compatibility contract,
// which is why the writer is hand-rolled; the reader interprets floating
// times in a caller-supplied fallback zone.
package ics

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/domain"
)

const (
	prodID     = "-//Glorified Clock//EN"
	timeLayout = "20060102T150405"
	dateLayout = "20060102"
)

// Export serializes events into the calendar text. now becomes each VEVENT's
// DTSTAMP, rendered in that event's zone like every other timestamp.
func Export(events []domain.Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
	}
	for _, ev := range events {
		loc := ev.Zone()
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+ev.ID,
			"DTSTAMP:"+now.In(loc).Format(timeLayout),
			"DTSTART:"+ev.Start.In(loc).Format(timeLayout),
			"DTEND:"+ev.End.In(loc).Format(timeLayout),
			"SUMMARY:"+escape(ev.Title),
			"LOCATION:"+escape(ev.Location),
			"DESCRIPTION:"+escape(ev.Notes),
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\n")
}

// WriteFile exports events to path. Failures are logged and returned; the
// caller decides whether to surface them, an export that cannot be written
// is not fatal to the app.
func WriteFile(path string, events []domain.Event, now time.Time, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.WriteFile(path, []byte(Export(events, now)), 0o644); err != nil {
		logger.Error("ics export failed", "path", path, "err", err)
		return fmt.Errorf("write ics: %w", err)
	}
	logger.Info("ics exported", "path", path, "events", len(events))
	return nil
}

// Parse reads a calendar stream back into events. Floating local timestamps
// are interpreted in fallback; events without a UID or DTSTART are skipped.
func Parse(r io.Reader, fallback *time.Location) ([]domain.Event, error) {
	if fallback == nil {
		fallback = time.Local
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ics: %w", err)
	}
	// The upstream parser expects CRLF-terminated content lines.
	normalized := strings.ReplaceAll(string(raw), "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\n", "\r\n")

	cal, err := ical.ParseCalendar(strings.NewReader(normalized))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var out []domain.Event
	for _, ve := range cal.Events() {
		uid := propValue(ve, ical.ComponentPropertyUniqueId)
		startRaw := propValue(ve, ical.ComponentPropertyDtStart)
		if uid == "" || startRaw == "" {
			continue
		}
		start, err := parseStamp(startRaw, fallback)
		if err != nil {
			continue
		}
		end := start
		if endRaw := propValue(ve, ical.ComponentPropertyDtEnd); endRaw != "" {
			if parsed, err := parseStamp(endRaw, fallback); err == nil {
				end = parsed
			}
		}
		out = append(out, domain.Event{
			ID:         uid,
			Title:      unescape(propValue(ve, ical.ComponentPropertySummary)),
			Start:      start,
			End:        end,
			Location:   unescape(propValue(ve, ical.ComponentPropertyLocation)),
			Notes:      unescape(propValue(ve, ical.ComponentPropertyDescription)),
			TimezoneID: fallback.String(),
		})
	}
	return out, nil
}

// ReadFile parses a previously exported calendar file.
func ReadFile(path string, fallback *time.Location) ([]domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ics: %w", err)
	}
	defer f.Close()
	return Parse(f, fallback)
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

func parseStamp(v string, fallback *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "Z") {
		return time.Parse(timeLayout+"Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation(timeLayout, v, fallback)
	}
	return time.ParseInLocation(dateLayout, v, fallback)
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
