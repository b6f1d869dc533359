// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

type fakeMessage struct {
	id      string
	subject string
	body    string
}

func (m fakeMessage) ID() string      { return m.id }
func (m fakeMessage) Subject() string { return m.subject }
func (m fakeMessage) Body() string    { return m.body }

func TestFromMessageSinglePaper(t *testing.T) {
	msg := fakeMessage{
		id:      "msg-1",
		subject: "Yoonji Kim - new articles",
		body:    singlePaperMail,
	}

	var log bytes.Buffer
	papers, err := FromMessage(msg, types.ExtractConfig{IncludeAuthors: true}, &log)
	require.NoError(t, err)
	require.Len(t, papers, 1)

	p := papers[0]
	assert.Equal(t, "From Consumers to Critical Users: Prompty, an AI Literacy Tool For High School Students", p.Title)
	assert.Equal(t, "https://www.example.edu/pub/prompty.pdf", p.URL)
	assert.Equal(t, []string{"Dv Dennison", "Rcc Garcia", "P Sarin", "J Wolf", "C Bywater"}, p.Authors)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, "In an age where Large Language Models (LLMs) expedite the generation of text, the skills", p.Abstract.FirstLine)
	assert.Equal(t, "are often lacking …", p.Abstract.Rest)
	assert.Equal(t, 1, p.Frequency)

	require.Len(t, p.Refs, 1)
	assert.Equal(t, "msg-1", p.Refs[0].MessageID)
	assert.Equal(t, "Yoonji Kim - new articles", p.Refs[0].Subject)
	assert.Equal(t, types.SourceInfo{Type: types.TypeNewPaper, Keys: []string{"Yoonji Kim"}}, p.Refs[0].Source)

	assert.Empty(t, log.String())
}

func TestFromMessageUnknownSubject(t *testing.T) {
	msg := fakeMessage{
		id:      "msg-2",
		subject: "Your weekly newsletter",
		body:    singlePaperMail,
	}

	papers, err := FromMessage(msg, types.ExtractConfig{}, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.Nil(t, papers)
}

func TestFromMessageCountMismatch(t *testing.T) {
	msg := fakeMessage{
		id:      "msg-3",
		subject: "Yoonji Kim - new articles",
		body:    `<h3><a>No Href Here</a></h3><h3><a href="https://example.com">Has Href</a></h3>`,
	}

	papers, err := FromMessage(msg, types.ExtractConfig{}, &bytes.Buffer{})
	assert.Nil(t, papers)

	var mismatch *CountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Titles)
	assert.Equal(t, 1, mismatch.URLs)
	assert.Equal(t, "2 titles but only 1 URLs found in email: Yoonji Kim - new articles", err.Error())
}

func TestFromMessageShortScanFails(t *testing.T) {
	// The second heading has no sibling divs, so the venue and snippet
	// scans come back one short. Alignment is broken: the message must
	// fail as a whole, not yield papers with empty fields, so it stays
	// unread and is retried next run.
	body := `<h3><a href="https://scholar.google.com/scholar_url?url=https://example.com/a.pdf&amp;hl=en">Paper A</a></h3>` +
		`<div>A Author - 2024</div><div>Snippet A</div>` +
		`<h3><a href="https://scholar.google.com/scholar_url?url=https://example.com/b.pdf&amp;hl=en">Paper B</a></h3>`

	msg := fakeMessage{
		id:      "msg-7",
		subject: "Yoonji Kim - new articles",
		body:    body,
	}

	papers, err := FromMessage(msg, types.ExtractConfig{}, &bytes.Buffer{})
	assert.Nil(t, papers)

	var short *ShortScanError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 2, short.Titles)
	assert.Equal(t, 1, short.Count)
	assert.Equal(t, "2 titles but only 1 venue lines found in email: Yoonji Kim - new articles", err.Error())
}

func TestFromMessageBadLinkSkipped(t *testing.T) {
	msg := fakeMessage{
		id:      "msg-4",
		subject: "Yoonji Kim - new articles",
		body: `<h3><a href="https://example.com/direct-link">Unwrapped Paper</a></h3>` +
			`<div>U Author - 2024</div><div>Snippet U</div>`,
	}

	var log bytes.Buffer
	papers, err := FromMessage(msg, types.ExtractConfig{}, &log)
	require.NoError(t, err)
	assert.Empty(t, papers)
	assert.Contains(t, log.String(), `skipping paper "Unwrapped Paper"`)
}

func TestFromMessageCitationPairing(t *testing.T) {
	msg := fakeMessage{
		id:      "msg-5",
		subject: "矢野裕 さんの論文からの引用",
		body:    citationMailJa,
	}

	papers, err := FromMessage(msg, types.ExtractConfig{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, "https://dl.acm.org/doi/abs/10.1145/3610541.3614568", papers[0].URL)
	assert.Equal(t, 2023, papers[0].Year)
	require.Len(t, papers[0].Refs, 1)
	assert.Equal(t, types.SourceInfo{
		Type: types.TypeCitation,
		Keys: []string{"矢野裕", "ReQTable: Square tabletop display that provides …"},
	}, papers[0].Refs[0].Source)

	assert.Equal(t, "https://dl.acm.org/doi/abs/10.1145/3623263.3623361", papers[1].URL)
	require.Len(t, papers[1].Refs, 1)
	assert.Equal(t, types.SourceInfo{
		Type: types.TypeCitation,
		Keys: []string{"矢野裕", "3D Printing Firm Inflatables with Internal Tethers"},
	}, papers[1].Refs[0].Source)
}

func TestFromMessageCitedCountMismatchSkipsPairing(t *testing.T) {
	// Two papers but only one cited-title span: pairing is skipped without
	// an error, unlike the hard title/link count check.
	body := `<h3><a href="https://scholar.google.com/scholar_url?url=https://example.com/a.pdf&amp;hl=en">Paper A</a></h3>` +
		`<div>A Author - 2024</div><div>Snippet A</div>` +
		`<h3><a href="https://scholar.google.com/scholar_url?url=https://example.com/b.pdf&amp;hl=en">Paper B</a></h3>` +
		`<div>B Author - 2024</div><div>Snippet B</div>` +
		`<table><tr><td><span>Cites: ` + "‪" + `Only One Cited Title` + "‬" + `&nbsp;&nbsp;</span></td></tr></table>`

	msg := fakeMessage{
		id:      "msg-6",
		subject: "矢野裕 さんの論文からの引用",
		body:    body,
	}

	papers, err := FromMessage(msg, types.ExtractConfig{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, papers, 2)
	for _, p := range papers {
		require.Len(t, p.Refs, 1)
		assert.Equal(t, []string{"矢野裕"}, p.Refs[0].Source.Keys)
	}
}
