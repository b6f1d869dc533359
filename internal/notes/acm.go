// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/FlechaMaker/scholar-alert-digest/internal/httputil"
)

// acmDOIRe pulls the DOI out of a dl.acm.org article URL, tolerating the
// /doi/abs/ and /doi/pdf/ variants.
var acmDOIRe = regexp.MustCompile(`acm\.org.*doi/(?:[a-z]+/)?((.*)/(.*))$`)

// ACMClient exports citation metadata from the ACM Digital Library. The
// export endpoint returns CSL JSON keyed by DOI.
type ACMClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewACMClient returns a client against dl.acm.org. A nil http client uses
// http.DefaultClient.
func NewACMClient(client *http.Client, userAgent string) *ACMClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ACMClient{client: client, baseURL: "https://dl.acm.org", userAgent: userAgent}
}

// Citation is the exported metadata for one ACM paper.
type Citation struct {
	Title     string
	Authors   []string
	Venue     string
	Year      string
	Pages     string
	Abstract  string
	DOI       string
	URL       string
	Keywords  string
	Publisher string
}

type cslName struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type cslEntry struct {
	Title          string    `json:"title"`
	Author         []cslName `json:"author"`
	ContainerTitle string    `json:"container-title"`
	Issued         struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
	Page      string `json:"page"`
	Abstract  string `json:"abstract"`
	DOI       string `json:"DOI"`
	URL       string `json:"URL"`
	Keyword   string `json:"keyword"`
	Publisher string `json:"publisher"`
}

type cslResponse struct {
	Items []map[string]cslEntry `json:"items"`
}

// Export fetches citation metadata for a dl.acm.org article URL. A URL
// without a recognizable DOI returns (nil, nil): not an ACM paper, not an
// error.
func (c *ACMClient) Export(ctx context.Context, paperURL string) (*Citation, error) {
	m := acmDOIRe.FindStringSubmatch(paperURL)
	if m == nil {
		return nil, nil
	}
	doi := m[1]

	form := url.Values{
		"dois":       {doi},
		"targetFile": {"custom-endNote"},
		"format":     {"endNote"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/action/exportCiteProcCitation", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("citation export for %s: HTTP %d", doi, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed cslResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing citation export for %s: %w", doi, err)
	}
	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("citation export for %s: empty response", doi)
	}
	entry, ok := parsed.Items[0][doi]
	if !ok {
		return nil, fmt.Errorf("citation export for %s: DOI missing from response", doi)
	}

	authors := make([]string, 0, len(entry.Author))
	for _, a := range entry.Author {
		authors = append(authors, strings.TrimSpace(a.Given+" "+a.Family))
	}

	var yearParts []string
	for _, parts := range entry.Issued.DateParts {
		for _, p := range parts {
			yearParts = append(yearParts, strconv.Itoa(p))
		}
	}

	return &Citation{
		Title:     entry.Title,
		Authors:   authors,
		Venue:     entry.ContainerTitle,
		Year:      strings.Join(yearParts, ","),
		Pages:     entry.Page,
		Abstract:  entry.Abstract,
		DOI:       entry.DOI,
		URL:       entry.URL,
		Keywords:  entry.Keyword,
		Publisher: entry.Publisher,
	}, nil
}

// PageTitle is the note title for an exported citation: first author
// followed by the paper title.
func (c *Citation) PageTitle() string {
	if len(c.Authors) == 0 {
		return c.Title
	}
	return c.Authors[0] + ": " + c.Title
}

// ScrapboxBody renders the citation as a Scrapbox page body using the
// Japanese section labels the notes project uses.
func (c *Citation) ScrapboxBody(paperURL string) string {
	var b strings.Builder
	line := func(s string) { b.WriteString(s + "\n") }

	line("[[タイトル]]")
	line(" [" + c.Title + " " + paperURL + "]")
	line("[[著者]]")
	for _, a := range c.Authors {
		line(" [" + a + "]")
	}
	line("[[ソース]]")
	line(" " + c.Venue)
	line("[[年]]")
	line(" " + c.Year)
	line("[[ページ]]")
	line(" " + c.Pages)
	line("[[概要]]")
	line(" " + c.Abstract)
	line("[[DOI]]")
	line(" " + c.DOI)
	line("[[URL]]")
	line(" " + c.URL)
	line("[[キーワード]]")
	line(" " + c.Keywords)
	line("[[出版社]]")
	line(" " + c.Publisher)
	line("[[本文]]")
	line("  [" + c.Title + "_EN]")
	line("  [" + c.Title + "_JP]")
	b.WriteString("[[コメント]]")
	return b.String()
}
