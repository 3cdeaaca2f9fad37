package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/events"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/timeline"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/tzmath"
)

// renderGrid writes the 24-row timeline for the viewed date. Row h is "h
// civil hours after home midnight" in every column; guest cells that fall on
// another civil day than home's same-row cell carry a +1d/-1d marker, and
// cells with events carry a * per event.
func renderGrid(w io.Writer, m *timeline.Model, s *events.Store) {
	cities := m.Cities()
	if len(cities) == 0 {
		fmt.Fprintln(w, "no cities configured")
		return
	}
	home := cities[0]

	fmt.Fprintf(w, "Viewing %s (%s)\n\n", m.Viewed(), home.Name)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, " ")
	for i, c := range cities {
		name := c.Name
		if i == 0 {
			name = "⌂ " + name
		}
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprint(tw, "\n ")
	for _, c := range cities {
		fmt.Fprintf(tw, "\t%s", m.Abbreviation(c))
	}
	fmt.Fprintln(tw)

	anchor := m.GridAnchor()
	for h := 0; h < timeline.HoursPerDay; h++ {
		marker := " "
		if m.IsCurrentHourRow(h) {
			marker = "●"
		}
		fmt.Fprint(tw, marker)

		homeSlot := m.SlotInstant(h, home)
		for _, c := range cities {
			slot := m.SlotInstant(h, c)
			cell := m.FormatTime(slot, c)
			switch tzmath.DayRelationship(slot, c.Zone(), homeSlot, home.Zone()) {
			case tzmath.Next:
				cell += " +1d"
			case tzmath.Previous:
				cell += " -1d"
			}
			for range s.EventsForSlot(anchor, h, c) {
				cell += " *"
			}
			fmt.Fprintf(tw, "\t%s", cell)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// renderHeader writes the per-city clock strip shown above the live grid.
func renderHeader(w io.Writer, m *timeline.Model) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, c := range m.Cities() {
		name := c.Name
		if i == 0 {
			name = "⌂ " + name
		}
		day := ""
		if i > 0 && m.IsDifferentDay(c) {
			day = " (" + m.DateString(c) + ")"
		}
		fmt.Fprintf(tw, "%s\t%s %s%s\n", name, m.TimeString(c), m.Abbreviation(c), day)
	}
	tw.Flush()
}
