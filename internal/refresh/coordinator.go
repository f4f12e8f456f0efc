// Package refresh schedules fetches for registered feeds and applies their
// results back to the session registry. It owns the at-most-one-in-flight
// rule; it does not own the network.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"newsdeck/internal/news"
	"newsdeck/internal/session"
)

const fetchTimeout = 20 * time.Second

// Fetcher is the external news source. Implementations handle transport,
// auth and retries; the coordinator only sees items or an error.
type Fetcher interface {
	Fetch(ctx context.Context, include string, excludes []string) ([]news.Item, error)
}

// Event is the tagged outcome of one fetch attempt, consumed exactly once
// by the presentation layer. Err is nil on success. Auto distinguishes
// timer-driven refreshes from user-initiated ones for notification policy.
type Event struct {
	Feed     string
	NewCount int
	Err      error
	Auto     bool
}

type Coordinator struct {
	reg     *session.Registry
	fetcher Fetcher
	events  chan Event
}

func New(reg *session.Registry, fetcher Fetcher) *Coordinator {
	return &Coordinator{
		reg:     reg,
		fetcher: fetcher,
		events:  make(chan Event, 64),
	}
}

// Events delivers fetch outcomes in completion order.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Refresh requests a fetch for one feed. A request for a feed whose fetch
// is already in flight is dropped, not queued. The fetch runs off the
// calling goroutine; its result lands in the registry and on the events
// channel.
func (c *Coordinator) Refresh(ctx context.Context, label string, auto bool) {
	f, ok := c.reg.Feed(label)
	if !ok {
		c.emit(Event{Feed: label, Err: session.ErrFeedNotFound, Auto: auto})
		return
	}
	started, err := c.reg.BeginFetch(label)
	if err != nil {
		c.emit(Event{Feed: label, Err: err, Auto: auto})
		return
	}
	if !started {
		slog.Debug("refresh already in flight, dropping request", "feed", label)
		return
	}

	go func() {
		fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		start := time.Now()
		items, err := c.fetcher.Fetch(fctx, f.Include, f.Excludes)
		c.reg.EndFetch(label)

		if err != nil {
			slog.Error("feed fetch failed",
				"feed", label,
				"duration_ms", time.Since(start).Milliseconds(),
				"err", err,
			)
			c.emit(Event{Feed: label, Err: err, Auto: auto})
			return
		}

		n, err := c.reg.ReplaceItems(label, items)
		if err != nil {
			if errors.Is(err, session.ErrFeedNotFound) {
				// Feed was removed (or renamed away) while the fetch
				// was in flight. Discard the result, no resurrection.
				slog.Debug("discarding result for removed feed", "feed", label)
				return
			}
			c.emit(Event{Feed: label, Err: err, Auto: auto})
			return
		}

		slog.Info("feed refreshed",
			"feed", label,
			"items", len(items),
			"new", n,
			"auto", auto,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		c.emit(Event{Feed: label, NewCount: n, Auto: auto})
	}()
}

// RefreshAll issues one independent refresh per registered feed. One
// feed's failure never blocks the others. The bookmarks view is not a
// registered feed and is never fetched.
func (c *Coordinator) RefreshAll(ctx context.Context, auto bool) {
	for _, label := range c.reg.Labels() {
		c.Refresh(ctx, label, auto)
	}
}

// Run drives periodic batch refresh until ctx is cancelled. A
// non-positive interval disables the timer.
func (c *Coordinator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RefreshAll(ctx, true)
		}
	}
}

func (c *Coordinator) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		slog.Warn("event channel full, dropping", "feed", ev.Feed)
	}
}
