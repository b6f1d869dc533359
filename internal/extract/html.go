// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "regexp"

// Field scan patterns. Each scans the whole document left to right for
// repeated non-overlapping matches, so results come back in document order
// and the per-field sequences align by index. The equivalent XPath is noted
// next to each, but the mails are not reliable XML so no tree is built.
var (
	// titleRe captures the anchor text inside each heading block (//h3/a).
	titleRe = regexp.MustCompile(`(?is)<h3[^>]*>.*?<a.*?>(.*?)</a>.*?</h3>`)

	// linkRe captures the same anchor's href attribute (//h3/a/@href).
	linkRe = regexp.MustCompile(`(?is)<h3[^>]*>.*?<a.*?href="([^"]+)".*?>.*?</a>.*?</h3>`)

	// venueRe captures the first sibling block after each heading — the
	// green author/venue/year line (//h3/following-sibling::div[1]).
	venueRe = regexp.MustCompile(`(?is)<h3[^>]*?>.*?</h3>.*?<div[^>]*?>(.*?)</div>`)

	// snippetRe captures the second sibling block after each heading — the
	// abstract snippet (//h3/following-sibling::div[2]).
	snippetRe = regexp.MustCompile(`(?is)<h3[^>]*?>.*?</h3>.*?<div[^>]*?>.*?</div>.*?<div[^>]*?>(.*?)</div>`)

	// citedRe captures the cited-paper name from citation alerts. The name
	// follows either a "Cites:" / "引用:" label or the tagged first-citation
	// span, and may be wrapped in directional formatting marks (U+202A /
	// U+202C) which stay outside the capture.
	citedRe = regexp.MustCompile(`(?is)(?:Cites: |引用: |1 件目の引用.*?</span>.*?<span[^>]*>)\x{202A}?(.+?)\x{202C}?&nbsp;&nbsp;</span>`)
)

// matchAll returns the first capture group of every non-overlapping match
// of re in s, in document order.
func matchAll(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// ScanTitles returns the raw inner text of each heading anchor.
func ScanTitles(html string) []string { return matchAll(titleRe, html) }

// ScanLinks returns the raw href of each heading anchor. The values keep
// their HTML entity escaping: the redirect-URL resolver relies on the first
// literal "&" marking the start of the tracking query suffix.
func ScanLinks(html string) []string { return matchAll(linkRe, html) }

// ScanVenueLines returns the raw author/venue/year line below each heading.
func ScanVenueLines(html string) []string { return matchAll(venueRe, html) }

// ScanSnippets returns the raw abstract snippet below each heading.
func ScanSnippets(html string) []string { return matchAll(snippetRe, html) }

// ScanCitedTitles returns the cited-paper names. Only citation alerts carry
// them; on other documents the scan finds nothing.
func ScanCitedTitles(html string) []string { return matchAll(citedRe, html) }
