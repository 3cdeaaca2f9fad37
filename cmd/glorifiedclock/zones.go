package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/timeline"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/tzmath"
)

type citySuggestion struct {
	Name string
	Zone string
}

// The popular-city catalog offered by the add-city flow.
var featuredCities = []citySuggestion{
	{"Tamil Nadu (Chennai)", "Asia/Kolkata"},
	{"Bangalore", "Asia/Kolkata"},
	{"Dubai", "Asia/Dubai"},
	{"Cupertino", "America/Los_Angeles"},
	{"New York", "America/New_York"},
	{"Paris", "Europe/Paris"},
	{"Singapore", "Asia/Singapore"},
	{"Sydney", "Australia/Sydney"},
}

func zonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones [filter]",
		Short: "Search the city catalog and check timezone identifiers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			layout := timeline.ClockLayout(cfg.HourFormat == 24)

			now := time.Now()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			matched := false
			for _, s := range matchFeatured(filter) {
				loc, err := time.LoadLocation(s.Zone)
				if err != nil {
					continue
				}
				matched = true
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					s.Name, s.Zone, tzmath.Abbreviation(now, loc), now.In(loc).Format(layout))
			}

			// Any loadable IANA identifier works too, not just the catalog.
			if filter != "" {
				if loc, err := time.LoadLocation(filter); err == nil {
					matched = true
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						filter, loc.String(), tzmath.Abbreviation(now, loc), now.In(loc).Format(layout))
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if !matched {
				fmt.Fprintf(cmd.OutOrStdout(), "no match for %q; try a full IANA identifier like Europe/Paris\n", filter)
			}
			return nil
		},
	}
}

func matchFeatured(filter string) []citySuggestion {
	if filter == "" {
		return featuredCities
	}
	var out []citySuggestion
	for _, s := range featuredCities {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter)) ||
			strings.Contains(strings.ToLower(s.Zone), strings.ToLower(filter)) {
			out = append(out, s)
		}
	}
	return out
}
