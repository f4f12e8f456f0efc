package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"newsdeck/internal/config"
	"newsdeck/internal/refresh"
	"newsdeck/internal/session"
	"newsdeck/internal/source"
	"newsdeck/internal/state"
	"newsdeck/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// slog would fight the TUI for the terminal; send it to a file.
	closeLog := redirectLog()
	defer closeLog()

	store, err := state.Open(config.StatePath())
	if err != nil {
		return fmt.Errorf("opening state: %w", err)
	}
	defer store.Close()

	snap, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading saved state: %w", err)
	}

	reg := session.NewRegistry()
	if err := reg.Restore(snap); err != nil {
		if !errors.Is(err, session.ErrMalformedState) {
			return err
		}
		// keep going with whatever was valid
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	interval := store.RefreshInterval()
	if interval == 0 {
		interval = cfg.RefreshDuration()
	}

	coord := refresh.New(reg, newFetcher(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.Run(ctx, interval)

	return tui.Run(tui.RunOpts{
		Ctx:      ctx,
		Registry: reg,
		Coord:    coord,
		Store:    store,
	})
}

func newFetcher(cfg *config.Config) refresh.Fetcher {
	if cfg.Source == config.SourceNaver {
		return source.NewNaver(cfg.NaverClientID(), cfg.NaverClientSecret())
	}
	return source.NewGoogleNews()
}

func redirectLog() func() {
	path := filepath.Join(xdg.StateHome, "newsdeck", "newsdeck.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { f.Close() }
}
