// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-alert-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FlechaMaker/scholar-alert-digest/internal/secrets"
	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the scholar-alert-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-alert-digest",
	Short: "Digest Google Scholar alert mail into a Slack report",
	Long: `scholar-alert-digest reads the unread Google Scholar alert mails under a
Gmail label, extracts the announced papers, deduplicates them across alerts,
and posts a ranked digest to Slack with save-to-notes links. Messages that
yielded papers are marked read so the next run picks up where this one left
off.

Subcommands: run performs a digest pass, labels and login manage Gmail
access, and archive inspects the history of past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; a missing file is not an error.
		godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-alert-digest.yaml or ~/.config/scholar-alert-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-alert-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-alert-digest"))
		}
	}

	viper.SetDefault("gmail.label", "scholar-alert")
	viper.SetDefault("gmail.credentials_file", "credentials.json")
	viper.SetDefault("gmail.token_file", "token.json")
	viper.SetDefault("slack.timeout", 30*time.Second)
	viper.SetDefault("slack.message_delay", time.Second)
	viper.SetDefault("notes.backend", string(types.NotesScrapbox))
	viper.SetDefault("notes.timeout", 30*time.Second)

	viper.SetEnvPrefix("SCHOLAR_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// digestConfig assembles the run configuration from the config file and the
// secrets directory. Deeper packages never read viper or the environment;
// everything they need is in the returned struct.
func digestConfig() types.Config {
	return types.Config{
		Gmail: types.GmailConfig{
			Label:           viper.GetString("gmail.label"),
			CredentialsFile: viper.GetString("gmail.credentials_file"),
			TokenFile:       viper.GetString("gmail.token_file"),
		},
		Extract: types.ExtractConfig{
			IncludeAuthors:       viper.GetBool("extract.include_authors"),
			AbstractFirstLineLen: viper.GetInt("extract.abstract_first_line_len"),
			AbstractLookahead:    viper.GetInt("extract.abstract_lookahead"),
		},
		Slack: types.SlackConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("slack.timeout"),
				UserAgent: "scholar-alert-digest/" + version,
			},
			Token:        secrets.Get(loadedSecrets, "slack-token"),
			Channel:      firstNonEmpty(secrets.Get(loadedSecrets, "slack-channel"), viper.GetString("slack.channel")),
			MessageDelay: viper.GetDuration("slack.message_delay"),
		},
		Notes: types.NotesConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("notes.timeout"),
				UserAgent: "scholar-alert-digest/" + version,
			},
			Backend:          types.NotesBackend(viper.GetString("notes.backend")),
			ScrapboxProject:  viper.GetString("notes.scrapbox_project"),
			NotionToken:      secrets.Get(loadedSecrets, "notion-token"),
			NotionDatabaseID: firstNonEmpty(secrets.Get(loadedSecrets, "notion-database-id"), viper.GetString("notes.notion_database_id")),
			EnrichACM:        viper.GetBool("notes.enrich_acm"),
		},
		Archive: types.ArchiveConfig{
			Path: viper.GetString("archive.path"),
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
