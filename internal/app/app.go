// Package app wires the timeline model, event store and clock tick into one
// runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Ahilan-Bucket/GlorifiedClock/internal/config"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/events"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/haptics"
	"github.com/Ahilan-Bucket/GlorifiedClock/internal/timeline"
)

// Renderer receives a frame callback after every clock tick.
type Renderer interface {
	Render() error
}

type noopRenderer struct{}

func (noopRenderer) Render() error { return nil }

func NewNoopRenderer() Renderer { return noopRenderer{} }

type Options struct {
	Renderer Renderer
	Logger   *slog.Logger
	Clock    timeline.Clock
	Haptics  haptics.Driver
}

type Application struct {
	cfg      config.Config
	model    *timeline.Model
	store    *events.Store
	renderer Renderer
	log      *slog.Logger
}

// New builds the application and seeds the tracked city list from config;
// the first configured city becomes home.
func New(cfg config.Config, opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewNoopRenderer()
	}

	model := timeline.New(timeline.Options{
		Clock:     opts.Clock,
		Haptics:   opts.Haptics,
		Logger:    logger,
		Use24Hour: cfg.HourFormat == 24,
	})
	for _, city := range cfg.Cities {
		model.AddCity(city.Name, city.Timezone)
	}

	return &Application{
		cfg:      cfg,
		model:    model,
		store:    events.NewStore(logger),
		renderer: renderer,
		log:      logger,
	}
}

func (a *Application) Model() *timeline.Model { return a.model }

func (a *Application) Store() *events.Store { return a.store }

// Run renders one frame, then ticks the model and re-renders every cfg.Tick
// until the context is canceled or the renderer fails.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.renderer.Render(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	errCh := make(chan error, 1)
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(a.cfg.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				a.model.Tick(now)
				if err := a.renderer.Render(); err != nil {
					errCh <- fmt.Errorf("render: %w", err)
					return
				}
			}
		}
	}()

	select {
	case err := <-errCh:
		cancel()
		wg.Wait()
		return err
	case <-ctx.Done():
		wg.Wait()
		return nil
	}
}
