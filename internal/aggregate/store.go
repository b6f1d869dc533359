// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate deduplicates papers across alert messages and ranks
// them by how many messages mentioned each one.
package aggregate

import (
	"sort"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// AggregatedPapers is a title-keyed collection of papers. Insertion order
// is tracked so that ranking ties break deterministically on first-seen
// order. Identity is the exact title string; the store never normalizes.
type AggregatedPapers struct {
	papers map[string]*types.Paper
	order  []string
}

// NewAggregatedPapers returns an empty collection.
func NewAggregatedPapers() *AggregatedPapers {
	return &AggregatedPapers{papers: make(map[string]*types.Paper)}
}

// AddPaper inserts paper under title, or merges it into the existing record
// with that title: the frequency is incremented and the incoming refs are
// appended. Merging never touches the existing title, URL, authors, year,
// or abstract — the first-seen extraction wins.
func (a *AggregatedPapers) AddPaper(title string, paper types.Paper) {
	if existing, ok := a.papers[title]; ok {
		existing.Frequency++
		existing.Refs = append(existing.Refs, paper.Refs...)
		return
	}
	p := paper
	a.papers[title] = &p
	a.order = append(a.order, title)
}

// Len returns the number of distinct titles.
func (a *AggregatedPapers) Len() int {
	return len(a.papers)
}

// Ranked returns all papers sorted by frequency, highest first. Papers with
// equal frequency keep their insertion order; the sort is explicitly stable
// so the tie-break does not depend on the runtime's sort algorithm.
func (a *AggregatedPapers) Ranked() []*types.Paper {
	ranked := make([]*types.Paper, 0, len(a.order))
	for _, title := range a.order {
		ranked = append(ranked, a.papers[title])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Frequency > ranked[j].Frequency
	})
	return ranked
}
