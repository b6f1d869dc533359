// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"reflect"
	"testing"
)

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name  string
		venue string
		want  []string
	}{
		{
			name:  "comma separated with trailing ellipsis",
			venue: "DV Dennison, RCC Garcia, P Sarin… - 2024",
			want:  []string{"Dv Dennison", "Rcc Garcia", "P Sarin"},
		},
		{
			name:  "ampersand and semicolon separators",
			venue: "Jane Doe & John Smith; Mary Major - Nature, 2023",
			want:  []string{"Jane Doe", "John Smith", "Mary Major"},
		},
		{
			name:  "orcid boilerplate stripped",
			venue: "Jane Doe View ORCID Profile, John Smith - Journal of Tests, 2020",
			want:  []string{"Jane Doe", "John Smith"},
		},
		{
			name:  "footnote digits and daggers stripped",
			venue: "A Author1†, B Brown2 - arXiv preprint, 2022",
			want:  []string{"A Author", "B Brown"},
		},
		{
			name:  "bare urls dropped",
			venue: "C Clark https://example.com/c, D Davis - 2021",
			want:  []string{"C Clark", "D Davis"},
		},
		{
			name:  "singletons dropped",
			venue: "X, Ada Lovelace - 1843",
			want:  []string{"Ada Lovelace"},
		},
		{
			name:  "no venue separator",
			venue: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAuthors(tt.venue); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAuthors(%q) = %#v, want %#v", tt.venue, got, tt.want)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		venue string
		want  int
	}{
		{"B Xie, P Sarin - 2024", 2024},
		{"J Xu - Academic Journal of Science and Technology, 2023", 2023},
		{"Y Yano, N Koizumi - SIGGRAPH Asia 2023 Emerging Technologies", 0},
		{"no year at all", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseYear(tt.venue); got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.venue, got, tt.want)
		}
	}
}
