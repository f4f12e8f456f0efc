package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newsdeck/internal/config"
	"newsdeck/internal/session"
	"newsdeck/internal/state"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Manage the saved feed set without launching the TUI",
}

func init() {
	feedsCmd.AddCommand(feedsListCmd)
	feedsCmd.AddCommand(feedsAddCmd)
	feedsCmd.AddCommand(feedsRemoveCmd)
	feedsCmd.AddCommand(feedsRenameCmd)
	feedsCmd.AddCommand(feedsIntervalCmd)
}

// withRegistry loads the saved snapshot into a registry, runs fn, and
// saves the result back when fn reports a change.
func withRegistry(fn func(reg *session.Registry) (changed bool, err error)) error {
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
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	changed, err := fn(reg)
	if err != nil {
		return err
	}
	if changed {
		return store.Save(reg.Snapshot())
	}
	return nil
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved feeds in tab order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(reg *session.Registry) (bool, error) {
			labels := reg.Labels()
			if len(labels) == 0 {
				fmt.Println("No feeds saved. Add one with: newsdeck feeds add \"keyword -exclude\"")
				return false, nil
			}
			for i, label := range labels {
				fmt.Printf("%2d. %s\n", i+1, label)
			}
			return false, nil
		})
	},
}

var feedsAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a feed (label doubles as the search query)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(reg *session.Registry) (bool, error) {
			if err := reg.CreateFeed(args[0]); err != nil {
				return false, err
			}
			fmt.Printf("Added %q.\n", args[0])
			return true, nil
		})
	},
}

var feedsRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(reg *session.Registry) (bool, error) {
			if err := reg.RemoveFeed(args[0]); err != nil {
				return false, err
			}
			fmt.Printf("Removed %q.\n", args[0])
			return true, nil
		})
	},
}

var feedsRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a feed, keeping its tab position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(reg *session.Registry) (bool, error) {
			if err := reg.RenameFeed(args[0], args[1]); err != nil {
				return false, err
			}
			fmt.Printf("Renamed %q to %q.\n", args[0], args[1])
			return true, nil
		})
	},
}

var feedsIntervalCmd = &cobra.Command{
	Use:   "interval [duration]",
	Short: "Show or set the auto-refresh interval (e.g. 30m, 1h)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := state.Open(config.StatePath())
		if err != nil {
			return fmt.Errorf("opening state: %w", err)
		}
		defer store.Close()

		if len(args) == 0 {
			if d := store.RefreshInterval(); d > 0 {
				fmt.Println(d)
			} else {
				fmt.Println("not set (config default applies)")
			}
			return nil
		}

		d, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", args[0], err)
		}
		if err := store.SetRefreshInterval(d); err != nil {
			return err
		}
		fmt.Printf("Auto-refresh interval set to %s.\n", d)
		return nil
	},
}
