// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"fmt"
	"io"

	"github.com/FlechaMaker/scholar-alert-digest/internal/extract"
	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// Result is the outcome of one aggregation pass.
type Result struct {
	// Stats counts messages, assembled titles, and failed messages.
	Stats types.Stats

	// Papers holds the deduplicated papers.
	Papers *AggregatedPapers

	// ProcessedIDs lists the messages that produced at least one paper, in
	// input order. Only these are safe to mark as read: a failed or
	// unrecognized message stays unread and is retried on the next run.
	ProcessedIDs []string
}

// Run extracts and aggregates papers from messages, strictly in input
// order. Extraction failures are confined to their message: the error is
// counted and logged to w, and the pass continues. Run itself never fails.
//
// Processing is deliberately sequential; the frequency ranking's tie-break
// depends on first-seen order across messages.
func Run(messages []types.MessageSource, cfg types.ExtractConfig, w io.Writer) Result {
	result := Result{
		Stats:  types.Stats{Messages: len(messages)},
		Papers: NewAggregatedPapers(),
	}

	for _, msg := range messages {
		papers, err := extract.FromMessage(msg, cfg, w)
		if err != nil {
			result.Stats.Errors++
			fmt.Fprintf(w, "message %s: %v\n", msg.ID(), err)
			continue
		}

		result.Stats.Titles += len(papers)
		for _, p := range papers {
			result.Papers.AddPaper(p.Title, p)
		}
		if len(papers) > 0 {
			result.ProcessedIDs = append(result.ProcessedIDs, msg.ID())
		}
	}

	return result
}
