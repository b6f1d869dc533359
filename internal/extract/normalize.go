// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract scrapes paper fields out of alert HTML bodies and
// assembles them into Paper records. The alert mails are not guaranteed to
// be well-formed markup, so extraction works by positional regex scanning
// over the raw document rather than by building a parse tree; the per-field
// scans stay aligned by shared index.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

var (
	numericEntityRe = regexp.MustCompile(`&#(\d+);`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// DecodeEntities resolves the HTML escapes the alert mails actually use:
// numeric character references plus the named quot/amp/lt/gt entities.
// Replacements run in that order, matching the upstream mail format rather
// than a general entity table.
func DecodeEntities(s string) string {
	s = numericEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil || n < 0 || n > 0x10FFFF {
			return m
		}
		return string(rune(n))
	})
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	return s
}

func decodeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = DecodeEntities(s)
	}
	return out
}

// SeparateFirstLine splits text into a short first line and the rest.
// Words (whitespace-separated) are accumulated greedily into the first line
// while its length plus the next word stays within n + lookahead; the first
// word is always taken even when it alone exceeds the bound. The rest is
// the original text with the first line's length cut off the front and then
// trimmed, so the remainder keeps its original spacing verbatim. Lengths
// are counted in runes.
func SeparateFirstLine(text string, n, lookahead int) types.Abstract {
	words := whitespaceRe.Split(text, -1)

	firstLine := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(firstLine)+utf8.RuneCountInString(w) > n+lookahead {
			break
		}
		firstLine += " " + w
	}

	runes := []rune(text)
	cut := utf8.RuneCountInString(firstLine)
	rest := ""
	if cut < len(runes) {
		rest = strings.TrimSpace(string(runes[cut:]))
	}

	return types.Abstract{FirstLine: firstLine, Rest: rest}
}

// Capitalize lowercases s and upcases the first rune of every
// space-separated word.
func Capitalize(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
