// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FlechaMaker/scholar-alert-digest/internal/gmail"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the Gmail labels of the authorized account",
	Long: `Labels prints every label on the account, useful for finding the exact
name to put in the gmail.label config entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := gmail.NewClient(ctx, digestConfig().Gmail)
		if err != nil {
			return err
		}

		names, err := client.Labels(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No labels found in Gmail.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
