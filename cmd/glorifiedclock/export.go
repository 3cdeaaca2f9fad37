package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/events"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/ics"
)

func exportCmd() *cobra.Command {
	var (
		cityName string
		dateStr  string
		start    int
		end      int
		title    string
		location string
		notes    string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Create an event on a city's hour grid and write it as .ics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if start < 0 || start > 23 {
				return fmt.Errorf("start hour must be 0-23, got %d", start)
			}
			if end < 0 {
				end = start
			}

			a := newApp(cfg, logger, nil, nil)
			m, store := a.Model(), a.Store()
			m.Tick(time.Now())
			if err := selectDate(m, dateStr); err != nil {
				return err
			}

			if cityName == "" {
				home, _ := m.HomeCity()
				cityName = home.Name
			}
			city, ok := m.FindCity(cityName)
			if !ok {
				return fmt.Errorf("unknown city %q", cityName)
			}

			store.StartCreation(city, start)
			store.ExtendCreation(end)
			ev, ok := store.FinalizeCreation(m.GridAnchor())
			if !ok {
				return fmt.Errorf("event selection incomplete")
			}

			// The edit step of the creation flow.
			if title != "" {
				ev.Title = title
			}
			ev.Location = location
			ev.Notes = notes
			store.Save(ev)

			path := filepath.Join(cfg.ExportDir, out)
			if err := ics.WriteFile(path, store.Events(), time.Now(), logger); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s – %s (%s)\nwrote %s\n",
				ev.Title,
				m.FormatTime(ev.Start, city),
				m.FormatTime(ev.End, city),
				events.FormatDuration(ev.Duration()),
				path,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&cityName, "city", "", "city column to draw the event on (default home)")
	cmd.Flags().StringVar(&dateStr, "date", "", "civil date YYYY-MM-DD (default today in the home zone)")
	cmd.Flags().IntVar(&start, "start", 9, "first selected hour slot (0-23)")
	cmd.Flags().IntVar(&end, "end", -1, "last selected hour slot, inclusive (default start)")
	cmd.Flags().StringVar(&title, "title", "", "event title (default \"New Event\")")
	cmd.Flags().StringVar(&location, "location", "", "event location")
	cmd.Flags().StringVar(&notes, "notes", "", "event notes")
	cmd.Flags().StringVar(&out, "out", "events.ics", "output file name inside export_dir")
	return cmd
}
