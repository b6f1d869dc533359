// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// authorSeparatorRe normalizes the delimiters publishers use between
	// author names: comma, ampersand, semicolon, "and", newline.
	authorSeparatorRe = regexp.MustCompile(`(?i)[,&;]|and|\n`)

	// authorNoiseRe strips the non-name residue that rides along in venue
	// lines: digits, footnote marks, trailing single-letter annotations,
	// ORCID boilerplate, and bare URLs.
	authorNoiseRe = regexp.MustCompile(`(?i)[\d†*…]|(\s[a-z])+(\s*$)|ORCID|View ORCID Profile|Author links open overlay panel|https?://\S+`)

	// trailingYearRe matches a 4-digit year at the very end of a venue line.
	trailingYearRe = regexp.MustCompile(`(\d{4})$`)
)

// ParseAuthors pulls cleaned-up author names out of a venue line such as
// "B Xie, P Sarin, J Wolf… - Proceedings of the 8th ACM …, 2024". The
// segment before the first "-" is treated as the author list; names are
// split on normalized commas, stripped of noise, and title-cased. Cleaned
// names of one rune or less are dropped.
func ParseAuthors(venue string) []string {
	authorsStr := strings.TrimRightFunc(strings.SplitN(venue, "-", 2)[0], unicode.IsSpace)

	var authors []string
	for _, part := range strings.Split(authorSeparatorRe.ReplaceAllString(authorsStr, ","), ",") {
		name := strings.TrimSpace(authorNoiseRe.ReplaceAllString(part, ""))
		if utf8.RuneCountInString(name) <= 1 {
			continue
		}
		authors = append(authors, Capitalize(name))
	}
	return authors
}

// ParseYear returns the publication year ending a venue line, or 0 when the
// line does not end in a 4-digit run.
func ParseYear(venue string) int {
	m := trailingYearRe.FindStringSubmatch(venue)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}
