// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-alert-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GmailConfig holds settings for the mailbox collaborator.
type GmailConfig struct {
	// Label is the Gmail label whose unread messages are processed.
	Label string `json:"label" yaml:"label"`

	// CredentialsFile is the path to the OAuth client credentials JSON.
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`

	// TokenFile is the path where the OAuth token is cached.
	TokenFile string `json:"token_file" yaml:"token_file"`
}

// ExtractConfig holds settings for paper extraction and assembly.
type ExtractConfig struct {
	// IncludeAuthors controls whether author names are parsed out of the
	// venue line of each paper.
	IncludeAuthors bool `json:"include_authors" yaml:"include_authors"`

	// AbstractFirstLineLen is the target length of the abstract headline
	// (default 80).
	AbstractFirstLineLen int `json:"abstract_first_line_len" yaml:"abstract_first_line_len"`

	// AbstractLookahead is the slack allowed past the target length before
	// the headline is cut (default 10).
	AbstractLookahead int `json:"abstract_lookahead" yaml:"abstract_lookahead"`
}

// SlackConfig holds settings for the notification collaborator.
type SlackConfig struct {
	HTTPConfig `yaml:",inline"`

	// Token is the bot token used for chat.postMessage.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Channel is the conversation ID the digest is posted to.
	Channel string `json:"channel" yaml:"channel"`

	// MessageDelay is the pause between consecutive paper posts (default 1s).
	MessageDelay time.Duration `json:"message_delay" yaml:"message_delay"`
}

// NotesBackend identifies the note-taking service papers are saved to.
type NotesBackend string

const (
	NotesScrapbox NotesBackend = "scrapbox"
	NotesNotion   NotesBackend = "notion"
)

// NotesConfig holds settings for the note-service collaborator.
type NotesConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the note service: scrapbox or notion.
	Backend NotesBackend `json:"backend" yaml:"backend"`

	// ScrapboxProject is the Scrapbox project name used in composed page URLs.
	ScrapboxProject string `json:"scrapbox_project" yaml:"scrapbox_project"`

	// NotionToken is the Notion integration token.
	NotionToken string `json:"notion_token,omitempty" yaml:"notion_token,omitempty"`

	// NotionDatabaseID is the database papers are clipped into.
	NotionDatabaseID string `json:"notion_database_id" yaml:"notion_database_id"`

	// EnrichACM controls whether dl.acm.org links are enriched through the
	// ACM citation export endpoint.
	EnrichACM bool `json:"enrich_acm" yaml:"enrich_acm"`
}

// ArchiveConfig holds settings for the run-history store.
type ArchiveConfig struct {
	// Path is the SQLite database file. Empty disables archiving.
	Path string `json:"path" yaml:"path"`
}

// Config groups all stage configurations for one digest run.
type Config struct {
	Gmail   GmailConfig   `json:"gmail" yaml:"gmail"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Slack   SlackConfig   `json:"slack" yaml:"slack"`
	Notes   NotesConfig   `json:"notes" yaml:"notes"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}
