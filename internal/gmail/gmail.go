// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gmail fetches alert mails over the Gmail REST API. It covers the
// four mailbox operations the digest needs: OAuth2 authorization, listing
// unread messages under a label, listing label names, and batch-marking
// messages as read.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// gmailUser addresses the authorized account in API calls.
const gmailUser = "me"

// batchModifyLimit is the API's maximum number of ids per batchModify call.
const batchModifyLimit = 1000

// Message is one fetched mail: id, subject header, and decoded HTML body.
// It satisfies types.MessageSource.
type Message struct {
	id      string
	subject string
	body    string
}

func (m Message) ID() string      { return m.id }
func (m Message) Subject() string { return m.subject }
func (m Message) Body() string    { return m.body }

// Client wraps an authorized Gmail service.
type Client struct {
	svc *gmailapi.Service
}

// NewClient builds a Gmail client from the OAuth2 credentials and token
// files named in cfg. A missing or unreadable token is an error telling the
// user to run the login command first.
func NewClient(ctx context.Context, cfg types.GmailConfig) (*Client, error) {
	conf, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tok, err := readToken(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("loading token %s (run the login command first): %w", cfg.TokenFile, err)
	}

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Authorize runs the OAuth2 authorization-code flow on the terminal: it
// prints the consent URL to out, reads the code from in, exchanges it, and
// writes the token to cfg.TokenFile.
func Authorize(ctx context.Context, cfg types.GmailConfig, in io.Reader, out io.Writer) error {
	conf, err := oauthConfig(cfg)
	if err != nil {
		return err
	}

	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "Open the following link in your browser, then paste the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	return saveToken(cfg.TokenFile, tok)
}

// UnreadMessages fetches every unread message carrying the named label, in
// the order the API lists them. The label is matched by name; an unknown
// label is an error rather than an empty result.
func (c *Client) UnreadMessages(ctx context.Context, labelName string) ([]types.MessageSource, error) {
	labelID, err := c.labelID(ctx, labelName)
	if err != nil {
		return nil, err
	}

	var messages []types.MessageSource
	pageToken := ""
	for {
		call := c.svc.Users.Messages.List(gmailUser).
			LabelIds(labelID, "UNREAD").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing messages for label %q: %w", labelName, err)
		}

		for _, ref := range resp.Messages {
			msg, err := c.svc.Users.Messages.Get(gmailUser, ref.Id).Format("full").Context(ctx).Do()
			if err != nil {
				return nil, fmt.Errorf("fetching message %s: %w", ref.Id, err)
			}
			messages = append(messages, Message{
				id:      msg.Id,
				subject: headerValue(msg.Payload, "Subject"),
				body:    htmlBody(msg.Payload),
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return messages, nil
		}
	}
}

// Labels returns the names of all labels on the account.
func (c *Client) Labels(ctx context.Context) ([]string, error) {
	resp, err := c.svc.Users.Labels.List(gmailUser).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	names := make([]string, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		names = append(names, l.Name)
	}
	return names, nil
}

// MarkRead removes the UNREAD label from the given message ids, batching to
// the API limit.
func (c *Client) MarkRead(ctx context.Context, ids []string) error {
	for len(ids) > 0 {
		chunk := ids
		if len(chunk) > batchModifyLimit {
			chunk = chunk[:batchModifyLimit]
		}
		ids = ids[len(chunk):]

		req := &gmailapi.BatchModifyMessagesRequest{
			Ids:            chunk,
			RemoveLabelIds: []string{"UNREAD"},
		}
		if err := c.svc.Users.Messages.BatchModify(gmailUser, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("marking %d messages read: %w", len(chunk), err)
		}
	}
	return nil
}

func (c *Client) labelID(ctx context.Context, name string) (string, error) {
	resp, err := c.svc.Users.Labels.List(gmailUser).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing labels: %w", err)
	}
	for _, l := range resp.Labels {
		if l.Name == name {
			return l.Id, nil
		}
	}
	return "", fmt.Errorf("label %q not found", name)
}

func oauthConfig(cfg types.GmailConfig) (*oauth2.Config, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials %s: %w", cfg.CredentialsFile, err)
	}
	conf, err := google.ConfigFromJSON(b, gmailapi.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials %s: %w", cfg.CredentialsFile, err)
	}
	return conf, nil
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("saving token %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

// headerValue returns the named header from a message part, or "".
func headerValue(p *gmailapi.MessagePart, name string) string {
	if p == nil {
		return ""
	}
	for _, h := range p.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// htmlBody returns the decoded text/html body of a message, walking nested
// multipart containers depth-first. An empty string means no HTML part.
func htmlBody(p *gmailapi.MessagePart) string {
	if p == nil {
		return ""
	}
	if p.MimeType == "text/html" && p.Body != nil && p.Body.Data != "" {
		return decodeBody(p.Body.Data)
	}
	for _, part := range p.Parts {
		if body := htmlBody(part); body != "" {
			return body
		}
	}
	return ""
}

// decodeBody decodes the API's base64url body data, tolerating both padded
// and unpadded forms.
func decodeBody(data string) string {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(b)
}
