// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/FlechaMaker/scholar-alert-digest/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Show recent digest runs from the archive",
	Long: `Archive prints the most recent recorded runs as YAML: stats per run and
the ranked papers each run found. Requires archive.path to be configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := digestConfig().Archive
		if cfg.Path == "" {
			return fmt.Errorf("archive.path is not configured")
		}

		store, err := archive.Open(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		last, _ := cmd.Flags().GetInt("last")
		runs, err := store.Recent(last)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "no runs recorded yet")
			return nil
		}

		out, err := yaml.Marshal(runs)
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
		return nil
	},
}

func init() {
	archiveCmd.Flags().Int("last", 10, "number of runs to show")

	rootCmd.AddCommand(archiveCmd)
}
