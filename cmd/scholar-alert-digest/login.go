// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FlechaMaker/scholar-alert-digest/internal/gmail"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize Gmail access and cache the OAuth token",
	Long: `Login runs the OAuth2 consent flow on the terminal and caches the
resulting token next to the credentials file. Required once before the
first run, and again whenever the token is revoked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := digestConfig().Gmail
		if err := gmail.Authorize(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
			return err
		}
		fmt.Println("Token saved to", cfg.TokenFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
