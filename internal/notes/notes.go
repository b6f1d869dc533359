// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes turns digest papers into note-service save targets. Two
// back-ends are supported: Scrapbox, where saving is a pre-filled page URL
// the reader clicks, and Notion, where a page is created through the API
// and its URL returned.
package notes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// Linker provides the save target for one paper in the digest report.
type Linker interface {
	// Link returns the save-to-notes URL for the paper and the abstract
	// text to show alongside it. The abstract may be richer than the mail
	// snippet when enrichment succeeded. Link never fails: on any backend
	// trouble it falls back to the plain snippet-based target.
	Link(ctx context.Context, p *types.Paper) (saveURL, abstract string)
}

// New builds the Linker selected by cfg.Backend. Warnings from the linker
// go to log.
func New(cfg types.NotesConfig, client *http.Client, log io.Writer) (Linker, error) {
	switch cfg.Backend {
	case types.NotesScrapbox, "":
		if cfg.ScrapboxProject == "" {
			return nil, fmt.Errorf("scrapbox backend requires a project name")
		}
		return NewScrapbox(cfg, client, log), nil
	case types.NotesNotion:
		return NewNotion(cfg, log)
	default:
		return nil, fmt.Errorf("unknown notes backend %q", cfg.Backend)
	}
}

// LinkAuthors renders author names as a comma-separated list of Scrapbox
// bracket links: "[Jane Doe], [John Smith]".
func LinkAuthors(authors []string) string {
	linked := make([]string, len(authors))
	for i, a := range authors {
		linked[i] = "[" + a + "]"
	}
	return strings.Join(linked, ", ")
}

// joinAbstract flattens the split abstract back into one paragraph.
func joinAbstract(a types.Abstract) string {
	return strings.TrimSpace(a.FirstLine + " " + a.Rest)
}

// encodeComponent percent-encodes s for use inside a URL path or query
// component, with spaces as %20 rather than "+".
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
