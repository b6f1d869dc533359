// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

const scrapboxBase = "https://scrapbox.io"

// Scrapbox composes pre-filled page URLs for a Scrapbox project. Opening
// the URL creates the note; nothing is posted from here. For dl.acm.org
// papers the page body is enriched with exported citation metadata when the
// export succeeds.
type Scrapbox struct {
	project string
	acm     *ACMClient
	log     io.Writer
}

// NewScrapbox returns a Scrapbox linker for cfg.ScrapboxProject. ACM
// enrichment is attached when cfg.EnrichACM is set.
func NewScrapbox(cfg types.NotesConfig, client *http.Client, log io.Writer) *Scrapbox {
	s := &Scrapbox{project: cfg.ScrapboxProject, log: log}
	if cfg.EnrichACM {
		s.acm = NewACMClient(client, cfg.UserAgent)
	}
	return s
}

// Link implements Linker.
func (s *Scrapbox) Link(ctx context.Context, p *types.Paper) (string, string) {
	if s.acm != nil {
		cit, err := s.acm.Export(ctx, p.URL)
		if err != nil {
			fmt.Fprintf(s.log, "citation export for %s failed: %v\n", p.URL, err)
		}
		if cit != nil {
			return s.pageURL(cit.PageTitle(), cit.ScrapboxBody(p.URL)), cit.Abstract
		}
	}

	abstract := joinAbstract(p.Abstract)
	body := LinkAuthors(p.Authors) + "\n" + p.URL + "\n\n[** Abstract]\n" + abstract + "\n\n[** Memo]\n"
	return s.pageURL(p.Title, body), abstract
}

func (s *Scrapbox) pageURL(title, body string) string {
	return scrapboxBase + "/" + s.project + "/" + encodeComponent(title) + "?body=" + encodeComponent(body)
}
