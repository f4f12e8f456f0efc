package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newsdeck/internal/config"
	"newsdeck/internal/export"
	"newsdeck/internal/session"
	"newsdeck/internal/view"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <label>",
	Short: "Search a label once and save the results as plain text",
	Long: `Run a one-shot search for a feed label ("keyword -exclude1 -exclude2")
and write the results to a numbered plain-text file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		include, excludes := session.ParseLabel(label)
		if include == "" {
			return fmt.Errorf("label %q has no search term", label)
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := newFetcher(cfg).Fetch(ctx, include, excludes)
		if err != nil {
			return fmt.Errorf("searching %q: %w", include, err)
		}
		items = view.Project(items, "", view.NewestFirst)

		out := flagExportOut
		if out == "" {
			out = export.DefaultFilename(label, time.Now())
		}
		if err := export.ToFile(out, items); err != nil {
			return err
		}
		fmt.Printf("Exported %d article(s) to %s.\n", len(items), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "output file (default derived from the label)")
}
