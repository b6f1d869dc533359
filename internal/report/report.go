// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a digest run for offline use: a YAML file that can
// be reloaded later, and a plain-text rendering for dry runs.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// Digest is the on-disk representation of one digest run.
type Digest struct {
	GeneratedAt time.Time      `yaml:"generated_at"`
	Stats       types.Stats    `yaml:"stats"`
	Papers      []*types.Paper `yaml:"papers"`
}

// Write saves the ranked papers and run stats to a YAML file.
func Write(path string, stats types.Stats, papers []*types.Paper) error {
	d := Digest{
		GeneratedAt: time.Now(),
		Stats:       stats,
		Papers:      papers,
	}

	data, err := yaml.Marshal(&d)
	if err != nil {
		return fmt.Errorf("marshaling digest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously saved digest file.
func Read(path string) (*Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading digest file: %w", err)
	}
	var d Digest
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing digest file: %w", err)
	}
	return &d, nil
}

// Render writes a human-readable digest to w, papers in ranking order.
func Render(w io.Writer, stats types.Stats, papers []*types.Paper) {
	fmt.Fprintf(w, "%d papers from %d messages (%d errors)\n\n",
		len(papers), stats.Messages, stats.Errors)

	for i, p := range papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		if len(p.Authors) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(p.Authors, ", "))
		}
		fmt.Fprintf(w, "   %s\n", p.URL)
		fmt.Fprintf(w, "   %d alert%s", p.Frequency, pluralSuffix(p.Frequency))
		if p.Year != 0 {
			fmt.Fprintf(w, ", %d", p.Year)
		}
		fmt.Fprintln(w)
		if p.Abstract.FirstLine != "" {
			fmt.Fprintf(w, "   %s\n", p.Abstract.FirstLine)
		}
		fmt.Fprintln(w)
	}
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
