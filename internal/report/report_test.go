// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

func samplePapers() []*types.Paper {
	return []*types.Paper{
		{
			Title:     "Shared Paper",
			URL:       "https://example.com/shared.pdf",
			Authors:   []string{"Jane Doe", "John Smith"},
			Year:      2024,
			Abstract:  types.Abstract{FirstLine: "A first line.", Rest: "The rest."},
			Frequency: 2,
			Refs: []types.Ref{
				{MessageID: "m1", Subject: "s1", Source: types.SourceInfo{Type: types.TypeNewPaper, Keys: []string{"Jane Doe"}}},
			},
		},
		{Title: "Solo Paper", URL: "https://example.com/solo.pdf", Frequency: 1},
	}
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.yaml")
	stats := types.Stats{Messages: 4, Titles: 3, Errors: 1}

	require.NoError(t, Write(path, stats, samplePapers()))

	d, err := Read(path)
	require.NoError(t, err)

	assert.False(t, d.GeneratedAt.IsZero())
	assert.Equal(t, stats, d.Stats)
	require.Len(t, d.Papers, 2)
	assert.Equal(t, "Shared Paper", d.Papers[0].Title)
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, d.Papers[0].Authors)
	assert.Equal(t, 2, d.Papers[0].Frequency)
	require.Len(t, d.Papers[0].Refs, 1)
	assert.Equal(t, types.TypeNewPaper, d.Papers[0].Refs[0].Source.Type)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, types.Stats{Messages: 4, Errors: 1}, samplePapers())

	out := buf.String()
	assert.Contains(t, out, "2 papers from 4 messages (1 errors)")
	assert.Contains(t, out, "1. Shared Paper")
	assert.Contains(t, out, "Jane Doe, John Smith")
	assert.Contains(t, out, "2 alerts, 2024")
	assert.Contains(t, out, "A first line.")
	assert.Contains(t, out, "2. Solo Paper")
	assert.Contains(t, out, "1 alert\n")
}
