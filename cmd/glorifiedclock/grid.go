package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/app"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/events"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/haptics"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/timeline"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/tzmath"
)

func gridCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render the 24-hour grid for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			a := newApp(cfg, logger, nil, nil)
			m := a.Model()
			m.Tick(time.Now())
			if err := selectDate(m, dateStr); err != nil {
				return err
			}
			renderGrid(cmd.OutOrStdout(), m, a.Store())
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "civil date YYYY-MM-DD (default today in the home zone)")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live grid, redrawn every tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			r := &terminalRenderer{out: cmd.OutOrStdout()}
			a := newApp(cfg, logger, r, haptics.NewConsole(cmd.OutOrStdout()))
			r.model = a.Model()
			r.store = a.Store()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
}

type terminalRenderer struct {
	out   io.Writer
	model *timeline.Model
	store *events.Store
}

func (r *terminalRenderer) Render() error {
	fmt.Fprint(r.out, "\033[2J\033[H")
	renderHeader(r.out, r.model)
	fmt.Fprintln(r.out)
	renderGrid(r.out, r.model, r.store)
	return nil
}

func selectDate(m *timeline.Model, dateStr string) error {
	if dateStr == "" {
		return nil
	}
	d, err := tzmath.ParseCivilDate(dateStr)
	if err != nil {
		return err
	}
	m.SelectDate(d)
	return nil
}

var _ app.Renderer = (*terminalRenderer)(nil)
