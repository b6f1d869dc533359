// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.ArchiveConfig{Path: filepath.Join(t.TempDir(), "digest.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	first := []*types.Paper{
		{
			Title:     "Shared Paper",
			URL:       "https://example.com/shared.pdf",
			Frequency: 2,
			Refs: []types.Ref{
				{MessageID: "m1", Subject: "s1", Source: types.SourceInfo{Type: types.TypeNewPaper, Keys: []string{"Jane Doe"}}},
			},
		},
		{Title: "Solo Paper", URL: "https://example.com/solo.pdf", Frequency: 1},
	}

	started := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	runID, err := s.RecordRun(started, types.Stats{Messages: 4, Titles: 3, Errors: 1}, first)
	require.NoError(t, err)
	assert.Positive(t, runID)

	_, err = s.RecordRun(started.Add(24*time.Hour), types.Stats{Messages: 1}, nil)
	require.NoError(t, err)

	runs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, started.Add(24*time.Hour), runs[0].StartedAt)
	assert.Empty(t, runs[0].Papers)

	older := runs[1]
	assert.Equal(t, started, older.StartedAt)
	assert.Equal(t, types.Stats{Messages: 4, Titles: 3, Errors: 1}, older.Stats)
	require.Len(t, older.Papers, 2)

	// Ranking order survives the round trip.
	assert.Equal(t, "Shared Paper", older.Papers[0].Title)
	assert.Equal(t, 2, older.Papers[0].Frequency)
	require.Len(t, older.Papers[0].Refs, 1)
	assert.Equal(t, "m1", older.Papers[0].Refs[0].MessageID)
	assert.Equal(t, types.TypeNewPaper, older.Papers[0].Refs[0].Source.Type)
	assert.Equal(t, "Solo Paper", older.Papers[1].Title)
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.RecordRun(base.AddDate(0, 0, i), types.Stats{Messages: i}, nil)
		require.NoError(t, err)
	}

	runs, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 4, runs[0].Stats.Messages)
	assert.Equal(t, 3, runs[1].Stats.Messages)
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	runs, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
