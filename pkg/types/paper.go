// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-alert-digest
// pipeline: alert classification, extracted papers, aggregation results, and
// the configuration passed from the CLI into each stage.
package types

// AlertType is the taxonomy value assigned to an alert subject line.
type AlertType string

const (
	TypeNewPaper           AlertType = "new paper"
	TypeNewRelatedResearch AlertType = "new related research"
	TypeCitation           AlertType = "citation"
	TypeRecommendedPaper   AlertType = "recommended paper"
	TypeNewResults         AlertType = "new results"
	TypeUnknown            AlertType = "unknown"
)

// SourceInfo records why an alert fired and for whom or for which query.
// Keys is category-specific: an author name, the literal "me", or the
// quoted terms of a saved search, in order of appearance.
type SourceInfo struct {
	Type AlertType `json:"type" yaml:"type"`
	Keys []string  `json:"keys" yaml:"keys"`
}

// Ref links a paper to one originating message and the reason it appeared.
// Immutable once created.
type Ref struct {
	// MessageID is the mailbox identifier of the originating message.
	MessageID string `json:"message_id" yaml:"message_id"`

	// Subject is the originating message's subject line.
	Subject string `json:"subject" yaml:"subject"`

	// Source is the classification of the originating message, possibly
	// extended with the cited-paper name for citation alerts.
	Source SourceInfo `json:"source" yaml:"source"`
}

// Abstract is a view of a paper abstract split into a short first line and
// the untouched remainder.
type Abstract struct {
	FirstLine string `json:"first_line" yaml:"first_line"`
	Rest      string `json:"rest" yaml:"rest"`
}

// Paper is one extracted paper record. Aggregation identity is the Title
// string exactly as extracted (trimmed and entity-decoded); differing case
// or whitespace makes two distinct papers.
type Paper struct {
	Title string `json:"title" yaml:"title"`

	// URL is the resolved article URL, unwrapped from the redirect link.
	URL string `json:"url" yaml:"url"`

	// Authors lists cleaned-up author names in source order. Empty when
	// author extraction is disabled.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the publication year, or 0 when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	Abstract Abstract `json:"abstract" yaml:"abstract"`

	// Refs holds one entry per originating message, in processing order.
	Refs []Ref `json:"refs" yaml:"refs"`

	// Frequency counts the messages that produced a paper with this title.
	Frequency int `json:"frequency" yaml:"frequency"`
}

// Stats is a set of counters describing one extraction pass.
type Stats struct {
	// Messages is the number of messages supplied to the pass.
	Messages int `json:"messages" yaml:"messages"`

	// Titles is the total number of papers assembled, before deduplication.
	Titles int `json:"titles" yaml:"titles"`

	// Errors is the number of messages that failed extraction.
	Errors int `json:"errors" yaml:"errors"`
}
