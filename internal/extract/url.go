// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// redirectPrefix matches the redirect-wrapper prefix of alert links. The
// host TLD varies with the account locale (scholar.google.com, .co.jp,
// .com.au, .рф, ...), hence the unicode letter classes.
var redirectPrefix = regexp.MustCompile(`http(s)?://scholar\.google\.[\p{L}]+(\.[\p{L}]+)?/scholar_url\?url=`)

// ErrNoRedirectPrefix reports a link that is not wrapped in the expected
// redirect prefix. Resolution failures are per-paper: the caller logs,
// drops that paper, and keeps going.
var ErrNoRedirectPrefix = errors.New("missing redirect prefix")

// ResolveURL unwraps an article URL from a redirect-wrapped alert link.
// It does not validate the embedded URL: it drops the redirect prefix,
// truncates the tracking suffix at the first "&" (the embedded URL's own
// separators are percent-encoded inside the url= value, so only wrapper
// parameters are cut), and percent-decodes the remainder.
func ResolveURL(wrapped string) (string, error) {
	loc := redirectPrefix.FindStringIndex(wrapped)
	if loc == nil {
		return "", fmt.Errorf("url %q: %w", wrapped, ErrNoRedirectPrefix)
	}

	longURL := wrapped[loc[1]:]
	if i := strings.Index(longURL, "&"); i >= 0 {
		longURL = longURL[:i]
	}

	decoded, err := url.PathUnescape(longURL)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", longURL, err)
	}
	return decoded, nil
}
