// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	gmailapi "google.golang.org/api/gmail/v1"
)

func TestHeaderValue(t *testing.T) {
	part := &gmailapi.MessagePart{
		Headers: []*gmailapi.MessagePartHeader{
			{Name: "From", Value: "scholaralerts-noreply@google.com"},
			{Name: "Subject", Value: "新しい結果 - 「mid-air haptics」"},
		},
	}

	assert.Equal(t, "新しい結果 - 「mid-air haptics」", headerValue(part, "Subject"))
	assert.Equal(t, "新しい結果 - 「mid-air haptics」", headerValue(part, "subject"))
	assert.Equal(t, "", headerValue(part, "To"))
	assert.Equal(t, "", headerValue(nil, "Subject"))
}

func TestHTMLBody(t *testing.T) {
	html := `<h3><a href="x">Title</a></h3>`
	plain := "plain text fallback"

	encode := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	part := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: encode(plain)},
			},
			{
				MimeType: "multipart/related",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "text/html",
						Body:     &gmailapi.MessagePartBody{Data: encode(html)},
					},
				},
			},
		},
	}

	assert.Equal(t, html, htmlBody(part))
	assert.Equal(t, "", htmlBody(&gmailapi.MessagePart{MimeType: "text/plain"}))
}

func TestDecodeBody(t *testing.T) {
	// Unpadded and padded base64url both decode.
	assert.Equal(t, "hello", decodeBody("aGVsbG8"))
	assert.Equal(t, "hello", decodeBody("aGVsbG8="))
	assert.Equal(t, "", decodeBody("%%%"))
}
