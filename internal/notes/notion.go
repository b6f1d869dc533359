// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"context"
	"fmt"
	"io"

	"github.com/jomei/notionapi"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// notionTextLimit is Notion's per-rich-text content limit.
const notionTextLimit = 2000

// Notion saves papers as pages in a Notion database. Unlike Scrapbox the
// page is created eagerly; the returned save URL points at the created
// page.
type Notion struct {
	client *notionapi.Client
	dbID   notionapi.DatabaseID
	log    io.Writer
}

// NewNotion returns a Notion linker for the configured database.
func NewNotion(cfg types.NotesConfig, log io.Writer) (*Notion, error) {
	if cfg.NotionToken == "" {
		return nil, fmt.Errorf("notion backend requires a token")
	}
	if cfg.NotionDatabaseID == "" {
		return nil, fmt.Errorf("notion backend requires a database id")
	}
	return &Notion{
		client: notionapi.NewClient(notionapi.Token(cfg.NotionToken)),
		dbID:   notionapi.DatabaseID(cfg.NotionDatabaseID),
		log:    log,
	}, nil
}

// Link implements Linker: it creates the page and returns its URL. On
// failure the paper's own URL is returned so the report still renders.
func (n *Notion) Link(ctx context.Context, p *types.Paper) (string, string) {
	abstract := joinAbstract(p.Abstract)

	page, err := n.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: n.dbID,
		},
		Properties: paperProperties(p, abstract),
	})
	if err != nil {
		fmt.Fprintf(n.log, "creating notion page for %q: %v\n", p.Title, err)
		return p.URL, abstract
	}
	return page.URL, abstract
}

// paperProperties maps a paper onto the digest database's columns: Title,
// URL, Authors, Year, Alerts, and Abstract.
func paperProperties(p *types.Paper, abstract string) notionapi.Properties {
	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: richText(p.Title),
		},
		"URL": notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  p.URL,
		},
		"Alerts": notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(p.Frequency),
		},
	}

	if len(p.Authors) > 0 {
		properties["Authors"] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(LinkAuthors(p.Authors)),
		}
	}
	if p.Year != 0 {
		properties["Year"] = notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(p.Year),
		}
	}
	if abstract != "" {
		properties["Abstract"] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(truncate(abstract, notionTextLimit)),
		}
	}
	return properties
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
