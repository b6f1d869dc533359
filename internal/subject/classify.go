// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package subject classifies alert subject lines into an alert category and
// its associated keys. Classification is an ordered rule table evaluated
// top to bottom; the first matching rule wins and later rules are never
// consulted, so rule order is load-bearing and must not be rearranged.
package subject

import (
	"regexp"
	"strings"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// countedCitationRe matches the counted English citation form, e.g.
// "2 new citations to articles by Yoonji Kim". Group 2 is the author.
var countedCitationRe = regexp.MustCompile(`(\d+) new citations? to articles by (.+)$`)

// quotedTermRe matches one double-quoted saved-search term.
var quotedTermRe = regexp.MustCompile(`"([^"]+)"`)

// rule pairs a subject predicate with a key extractor. extract runs only
// when match reported true.
type rule struct {
	match   func(subject string) bool
	extract func(subject string) types.SourceInfo
}

// rules is the classification table. Subjects arrive in Japanese, English,
// or Russian depending on the alert account's locale; each rule checks the
// markers of all three. Earlier rules take priority even when a later
// pattern would also match (the own-profile marker contains the plain
// new-paper marker, for example).
var rules = []rule{
	// New papers in the reader's own profile.
	{
		match: contains("自分のプロフィールの新しい論文"),
		extract: func(string) types.SourceInfo {
			return types.SourceInfo{Type: types.TypeNewPaper, Keys: []string{"me"}}
		},
	},
	// New papers by a followed author.
	{
		match: contains("新しい論文", "new articles", "Новые статьи пользователя"),
		extract: func(subject string) types.SourceInfo {
			return types.SourceInfo{Type: types.TypeNewPaper, Keys: []string{before(subject, " - ")}}
		},
	},
	// New research related to a followed author.
	{
		match: contains("関連する新しい研究", "new related research", "Новые статьи, связанные с работами автора"),
		extract: func(subject string) types.SourceInfo {
			return types.SourceInfo{Type: types.TypeNewRelatedResearch, Keys: []string{before(subject, " - ")}}
		},
	},
	// Citations to the reader's own papers.
	{
		match: contains("自分の論文からの引用"),
		extract: func(string) types.SourceInfo {
			return types.SourceInfo{Type: types.TypeCitation, Keys: []string{"me"}}
		},
	},
	// Citations to articles by a named author. Two sub-forms: the Japanese
	// possessive suffix and the counted English form. When neither yields
	// an author the keys stay empty.
	{
		match: contains("の論文からの引用", "to articles by"),
		extract: func(subject string) types.SourceInfo {
			keys := []string{}
			if strings.Contains(subject, "さんの論文からの引用") {
				keys = append(keys, before(subject, " さんの論文からの引用"))
			} else if m := countedCitationRe.FindStringSubmatch(subject); m != nil {
				keys = append(keys, m[2])
			}
			return types.SourceInfo{Type: types.TypeCitation, Keys: keys}
		},
	},
	// Generic new-citation alerts keyed by the tracked paper title.
	{
		match: contains("新しい引用", "new citations", ": новые ссылки"),
		extract: func(subject string) types.SourceInfo {
			key := strings.Replace(before(subject, ";"), "「", "", 1)
			return types.SourceInfo{Type: types.TypeCitation, Keys: []string{key}}
		},
	},
	// Recommended papers carry no key.
	{
		match: contains("おすすめの論文", "Рекомендуемые статьи"),
		extract: func(string) types.SourceInfo {
			return types.SourceInfo{Type: types.TypeRecommendedPaper, Keys: []string{}}
		},
	},
	// New results for a saved search: every double-quoted term before the
	// first semicolon becomes a key.
	{
		match: contains("新しい結果", "new results", "Новые результаты по запросу"),
		extract: func(subject string) types.SourceInfo {
			keys := []string{}
			for _, m := range quotedTermRe.FindAllStringSubmatch(before(subject, ";"), -1) {
				keys = append(keys, m[1])
			}
			return types.SourceInfo{Type: types.TypeNewResults, Keys: keys}
		},
	},
}

// Classify maps a subject line to its alert category and keys. It never
// fails: a subject matching no rule is classified as TypeUnknown with no
// keys, and the caller must skip field extraction for such messages.
func Classify(subjectLine string) types.SourceInfo {
	for _, r := range rules {
		if r.match(subjectLine) {
			return r.extract(subjectLine)
		}
	}
	return types.SourceInfo{Type: types.TypeUnknown, Keys: []string{}}
}

// contains builds a predicate true when the subject contains any marker.
func contains(markers ...string) func(string) bool {
	return func(subject string) bool {
		for _, m := range markers {
			if strings.Contains(subject, m) {
				return true
			}
		}
		return false
	}
}

// before returns the subject segment preceding the first occurrence of sep,
// or the whole subject when sep is absent.
func before(subject, sep string) string {
	return strings.SplitN(subject, sep, 2)[0]
}
