package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/events"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/ics"
)

func showCmd() *cobra.Command {
	var cityName string

	cmd := &cobra.Command{
		Use:   "show <file.ics>",
		Short: "Read an exported calendar back and list its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			a := newApp(cfg, logger, nil, nil)
			m := a.Model()
			m.Tick(time.Now())

			if cityName == "" {
				home, _ := m.HomeCity()
				cityName = home.Name
			}
			city, ok := m.FindCity(cityName)
			if !ok {
				return fmt.Errorf("unknown city %q", cityName)
			}

			evs, err := ics.ReadFile(args[0], city.Zone())
			if err != nil {
				return err
			}
			if len(evs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no events")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, ev := range evs {
				fmt.Fprintf(tw, "%s\t%s – %s\t%s\t%s\n",
					ev.Title,
					m.FormatTime(ev.Start, city),
					m.FormatTime(ev.End, city),
					events.FormatDuration(ev.Duration()),
					ev.Location,
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&cityName, "city", "", "interpret floating times in this city's zone (default home)")
	return cmd
}
