// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slack posts the digest report to a Slack channel with the Block
// Kit API: one header message summarizing the run, then one threaded
// message per ranked paper.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/FlechaMaker/scholar-alert-digest/internal/httputil"
	"github.com/FlechaMaker/scholar-alert-digest/internal/notes"
	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

const defaultBaseURL = "https://slack.com/api"

// Client posts messages through chat.postMessage.
type Client struct {
	client    *http.Client
	baseURL   string
	token     string
	channel   string
	userAgent string
	delay     time.Duration
	log       io.Writer
}

// NewClient builds a Slack client from cfg. Progress and warnings are
// written to log.
func NewClient(cfg types.SlackConfig, client *http.Client, log io.Writer) *Client {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		client:    client,
		baseURL:   defaultBaseURL,
		token:     cfg.Token,
		channel:   cfg.Channel,
		userAgent: cfg.UserAgent,
		delay:     cfg.MessageDelay,
		log:       log,
	}
}

// postPayload is the chat.postMessage request body.
type postPayload struct {
	Channel     string       `json:"channel"`
	Blocks      []block      `json:"blocks"`
	Attachments []attachment `json:"attachments,omitempty"`
	ThreadTS    string       `json:"thread_ts,omitempty"`
}

type attachment struct {
	Blocks []block `json:"blocks"`
}

// postResponse is the subset of the chat.postMessage response we read.
type postResponse struct {
	OK    bool   `json:"ok"`
	TS    string `json:"ts"`
	Error string `json:"error"`
}

// PostReport sends the digest to the channel: the header first, then each
// paper as a reply in the header's thread, pausing between papers to stay
// inside Slack's rate limits. An empty paper list posts nothing. The notes
// linker supplies each paper's save button target and abstract.
func (c *Client) PostReport(ctx context.Context, papers []*types.Paper, stats types.Stats, linker notes.Linker) error {
	if len(papers) == 0 {
		return nil
	}

	headerTS, err := c.post(ctx, postPayload{
		Channel: c.channel,
		Blocks:  headerBlocks(time.Now(), len(papers), stats),
	})
	if err != nil {
		return fmt.Errorf("posting report header: %w", err)
	}

	for i, p := range papers {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.delay):
			}
		}

		saveURL, abstract := linker.Link(ctx, p)
		payload := postPayload{
			Channel:  c.channel,
			Blocks:   paperBlocks(p, saveURL),
			ThreadTS: headerTS,
		}
		if abstract != "" {
			payload.Attachments = []attachment{{Blocks: []block{sectionBlock(abstract)}}}
		}

		if _, err := c.post(ctx, payload); err != nil {
			return fmt.Errorf("posting paper %q: %w", p.Title, err)
		}
		fmt.Fprintf(c.log, "posted %q\n", p.Title)
	}
	return nil
}

func (c *Client) post(ctx context.Context, payload postPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat.postMessage: HTTP %d", resp.StatusCode)
	}

	var parsed postResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("parsing chat.postMessage response: %w", err)
	}
	if !parsed.OK {
		return "", fmt.Errorf("chat.postMessage: %s", parsed.Error)
	}
	return parsed.TS, nil
}
