// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/FlechaMaker/scholar-alert-digest/internal/subject"
	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// Defaults for the abstract first-line split.
const (
	defaultFirstLineLen = 80
	defaultLookahead    = 10
)

// lineBreakRe matches the inline <br> markup embedded in abstract snippets.
var lineBreakRe = regexp.MustCompile(`<br\s*/?>`)

// CountMismatchError reports a document whose title and link scans came
// back with different lengths. The positional alignment is broken, so the
// whole message is abandoned without partial results.
type CountMismatchError struct {
	Titles  int
	URLs    int
	Subject string
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%d titles but only %d URLs found in email: %s", e.Titles, e.URLs, e.Subject)
}

// ShortScanError reports a document whose venue or snippet scan came back
// shorter than the title scan. Alignment cannot be trusted past the shorter
// sequence, so the whole message is abandoned, same as a title/link
// mismatch.
type ShortScanError struct {
	Field   string
	Count   int
	Titles  int
	Subject string
}

func (e *ShortScanError) Error() string {
	return fmt.Sprintf("%d titles but only %d %s found in email: %s", e.Titles, e.Count, e.Field, e.Subject)
}

// FromMessage extracts the papers announced by one alert message.
//
// Messages whose subject classifies as unknown contribute zero papers and
// no error. A title/link count mismatch fails the whole message, as do
// venue or snippet scans shorter than the title scan. All other failures
// are per-paper: the offending index is logged to w and skipped while
// assembly continues, so a nil error with an empty result is normal.
func FromMessage(msg types.MessageSource, cfg types.ExtractConfig, w io.Writer) ([]types.Paper, error) {
	subj := msg.Subject()
	body := msg.Body()

	sourceInfo := subject.Classify(subj)
	if sourceInfo.Type == types.TypeUnknown {
		return nil, nil
	}

	titles := decodeAll(ScanTitles(body))
	urls := ScanLinks(body)
	if len(titles) != len(urls) {
		return nil, &CountMismatchError{Titles: len(titles), URLs: len(urls), Subject: subj}
	}

	// Cited-paper names pair with titles by index, but only when the
	// counts agree; otherwise pairing is skipped without complaint. That
	// asymmetry with the hard title/link check above is deliberate.
	var citedTitles []string
	if sourceInfo.Type == types.TypeCitation {
		citedTitles = decodeAll(ScanCitedTitles(body))
	}
	pairCited := len(citedTitles) == len(titles)

	venues := decodeAll(ScanVenueLines(body))
	snippets := decodeAll(ScanSnippets(body))
	if len(venues) < len(titles) {
		return nil, &ShortScanError{Field: "venue lines", Count: len(venues), Titles: len(titles), Subject: subj}
	}
	if len(snippets) < len(titles) {
		return nil, &ShortScanError{Field: "abstract snippets", Count: len(snippets), Titles: len(titles), Subject: subj}
	}

	maxChars := cfg.AbstractFirstLineLen
	if maxChars <= 0 {
		maxChars = defaultFirstLineLen
	}
	lookahead := cfg.AbstractLookahead
	if lookahead <= 0 {
		lookahead = defaultLookahead
	}

	var papers []types.Paper
	for i, rawTitle := range titles {
		title := strings.TrimSpace(rawTitle)
		venue := venues[i]
		snippet := snippets[i]

		url, err := ResolveURL(urls[i])
		if err != nil {
			fmt.Fprintf(w, "skipping paper %q in %q: %v\n", title, subj, err)
			continue
		}

		var authors []string
		if cfg.IncludeAuthors {
			authors = ParseAuthors(venue)
		}

		abstractText := lineBreakRe.ReplaceAllString(strings.TrimSpace(snippet), "")

		refSource := sourceInfo
		if pairCited {
			keys := append(append([]string{}, sourceInfo.Keys...), citedTitles[i])
			refSource = types.SourceInfo{Type: sourceInfo.Type, Keys: keys}
		}

		papers = append(papers, types.Paper{
			Title:     title,
			URL:       url,
			Authors:   authors,
			Year:      ParseYear(venue),
			Abstract:  SeparateFirstLine(abstractText, maxChars, lookahead),
			Refs:      []types.Ref{{MessageID: msg.ID(), Subject: subj, Source: refSource}},
			Frequency: 1,
		})
	}

	return papers, nil
}
