// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package subject

import (
	"reflect"
	"testing"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		subject  string
		wantType types.AlertType
		wantKeys []string
	}{
		{"Victor R. Lee - 新しい論文", types.TypeNewPaper, []string{"Victor R. Lee"}},
		{"Yoichi Ochiai (落合陽一) - new articles", types.TypeNewPaper, []string{"Yoichi Ochiai (落合陽一)"}},
		{"堀田龍也 - 新しい論文", types.TypeNewPaper, []string{"堀田龍也"}},
		{"自分のプロフィールの新しい論文", types.TypeNewPaper, []string{"me"}},

		{"Will McGrath - 関連する新しい研究", types.TypeNewRelatedResearch, []string{"Will McGrath"}},
		{"Will McGrath - new related research", types.TypeNewRelatedResearch, []string{"Will McGrath"}},

		{"Stacey Kuznetsov さんの論文からの引用: 1 件", types.TypeCitation, []string{"Stacey Kuznetsov"}},
		{"「TangibleCircuits: An Interactive 3D ...; 言語: 英語, 日本語」 - 新しい引用", types.TypeCitation, []string{"TangibleCircuits: An Interactive 3D ..."}},
		{"1 new citation to articles by Yoonji Kim", types.TypeCitation, []string{"Yoonji Kim"}},
		{"2 new citations to articles by Yoonji Kim", types.TypeCitation, []string{"Yoonji Kim"}},
		{"自分の論文からの引用: 1 件", types.TypeCitation, []string{"me"}},

		{"おすすめの論文", types.TypeRecommendedPaper, []string{}},

		{`"Ayano Ohsaki" OR "大崎理乃"; 言語: 英語, 日本語 - 新しい結果`, types.TypeNewResults, []string{"Ayano Ohsaki", "大崎理乃"}},
		{`"Ayano Ohsaki" OR "大崎理乃"; language: English, Japanese - new results`, types.TypeNewResults, []string{"Ayano Ohsaki", "大崎理乃"}},

		{"Yiannis Georgiou さんの論文をフォローしましょう", types.TypeUnknown, []string{}},
		{"", types.TypeUnknown, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			got := Classify(tt.subject)
			if got.Type != tt.wantType {
				t.Errorf("Classify(%q).Type = %q, want %q", tt.subject, got.Type, tt.wantType)
			}
			if !reflect.DeepEqual(got.Keys, tt.wantKeys) {
				t.Errorf("Classify(%q).Keys = %#v, want %#v", tt.subject, got.Keys, tt.wantKeys)
			}
		})
	}
}

// The own-profile marker contains the generic new-paper marker; the earlier
// rule must win even though the later one also matches.
func TestClassifyRuleOrder(t *testing.T) {
	got := Classify("自分のプロフィールの新しい論文")
	if got.Type != types.TypeNewPaper || len(got.Keys) != 1 || got.Keys[0] != "me" {
		t.Errorf("own-profile subject classified as %+v, want new paper / [me]", got)
	}

	// A counted English citation subject also contains "new citation", which a
	// later rule matches with different keys.
	got = Classify("3 new citations to articles by Ada Lovelace")
	if got.Type != types.TypeCitation {
		t.Fatalf("Type = %q, want citation", got.Type)
	}
	if len(got.Keys) != 1 || got.Keys[0] != "Ada Lovelace" {
		t.Errorf("Keys = %#v, want the author captured by the earlier rule", got.Keys)
	}
}

// A named-citation subject matching neither sub-form keeps empty keys.
func TestClassifyCitationNoAuthor(t *testing.T) {
	got := Classify("new citation to articles by")
	if got.Type != types.TypeCitation {
		t.Fatalf("Type = %q, want citation", got.Type)
	}
	if len(got.Keys) != 0 {
		t.Errorf("Keys = %#v, want empty", got.Keys)
	}
}
