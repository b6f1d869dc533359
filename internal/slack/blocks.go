// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// headerTitleLimit is Slack's length limit for header block text.
const headerTitleLimit = 150

// block is a Block Kit block. Elements holds text objects for context
// blocks and buttons for actions blocks.
type block struct {
	Type     string `json:"type"`
	Text     *text  `json:"text,omitempty"`
	Elements []any  `json:"elements,omitempty"`
}

type text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type button struct {
	Type string `json:"type"`
	Text text   `json:"text"`
	URL  string `json:"url"`
}

func headerBlock(s string) block {
	return block{Type: "header", Text: &text{Type: "plain_text", Text: s, Emoji: true}}
}

func sectionBlock(s string) block {
	return block{Type: "section", Text: &text{Type: "mrkdwn", Text: s}}
}

func contextBlock(lines ...string) block {
	elements := make([]any, len(lines))
	for i, l := range lines {
		elements[i] = text{Type: "mrkdwn", Text: l}
	}
	return block{Type: "context", Elements: elements}
}

// headerBlocks builds the report's lead message: date, paper count, and
// message/error counts.
func headerBlocks(now time.Time, paperCount int, stats types.Stats) []block {
	return []block{
		headerBlock("Scholar Alert - " + now.Format("Mon Jan 2 2006")),
		sectionBlock(fmt.Sprintf("%d new %s", paperCount, plural(paperCount, "paper"))),
		contextBlock(fmt.Sprintf("%d %s, %d %s",
			stats.Messages, plural(stats.Messages, "message"),
			stats.Errors, plural(stats.Errors, "error"))),
		{Type: "divider"},
	}
}

// paperBlocks builds one paper's threaded message: truncated title header,
// authors, link, alert-count and source context, and the save button.
func paperBlocks(p *types.Paper, saveURL string) []block {
	blocks := []block{
		headerBlock(truncateTitle(p.Title)),
	}
	if len(p.Authors) > 0 {
		blocks = append(blocks, sectionBlock(strings.Join(p.Authors, ", ")))
	}
	blocks = append(blocks,
		sectionBlock(":link: "+p.URL),
		contextBlock(
			fmt.Sprintf(":bell: *%d %s*", p.Frequency, plural(p.Frequency, "alert")),
			sourcesText(p.Refs),
		),
		block{Type: "actions", Elements: []any{button{
			Type: "button",
			Text: text{Type: "plain_text", Text: ":inbox_tray: Save to notes", Emoji: true},
			URL:  saveURL,
		}}},
		block{Type: "divider"},
	)
	return blocks
}

// truncateTitle fits a title into Slack's header limit, ellipsizing when
// needed.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= headerTitleLimit-3 {
		return title
	}
	return string(runes[:headerTitleLimit-3]) + "..."
}

// sourcesText renders the alert sources grouped by category, keys joined
// with " | ". Categories keep first-seen order across the refs.
func sourcesText(refs []types.Ref) string {
	keysByType := make(map[types.AlertType][]string)
	var order []types.AlertType
	for _, ref := range refs {
		if _, ok := keysByType[ref.Source.Type]; !ok {
			order = append(order, ref.Source.Type)
		}
		keysByType[ref.Source.Type] = append(keysByType[ref.Source.Type], ref.Source.Keys...)
	}

	var lines []string
	for _, typ := range order {
		label := "*" + capitalizeWords(string(typ)) + "*"
		if keys := keysByType[typ]; len(keys) > 0 {
			lines = append(lines, label+": "+strings.Join(keys, " | "))
		} else {
			lines = append(lines, label)
		}
	}
	return strings.Join(lines, "\n")
}

func capitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
