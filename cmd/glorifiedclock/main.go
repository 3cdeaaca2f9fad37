package main

import (
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/app"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/config"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/haptics"
)

var (
	configPath string
	hourFormat int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glorifiedclock",
		Short: "Multi-city timeline clock with calendar export",
		Long:  "Glorified Clock renders the current time of several cities on one shared 24-hour grid, anchored to the home city's day, and exports timed events as iCalendar files.",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default $GLC_CONFIG)")
	rootCmd.PersistentFlags().IntVar(&hourFormat, "hour-format", 0, "12 or 24 hour clock (default from config)")

	rootCmd.AddCommand(gridCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(zonesCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(showCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if hourFormat != 0 {
		if hourFormat != 12 && hourFormat != 24 {
			return config.Config{}, nil, fmt.Errorf("hour-format must be 12 or 24, got %d", hourFormat)
		}
		cfg.HourFormat = hourFormat
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level(cfg.LogLevel)}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newApp(cfg config.Config, logger *slog.Logger, r app.Renderer, drv haptics.Driver) *app.Application {
	return app.New(cfg, app.Options{Renderer: r, Logger: logger, Haptics: drv})
}

func level(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
