package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zappabad/lojistik/internal/news"
)

func TestClassify(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		title string
		want  news.Classification
	}{
		{"Houthi attack on tanker in Red Sea", news.ClassRisk},
		{"Container rates climb again", news.ClassCargo},
		{"Carrier posts record quarter", news.ClassPositive},
		{"Port authority names new chair", news.ClassNeutral},
		// risk beats cargo when both match
		{"Strike halts container terminal", news.ClassRisk},
		// cargo beats positive
		{"Grain exports surge", news.ClassCargo},
		// substring containment, not word match
		{"Global warehouse reopens", news.ClassRisk},
		{"Spoiled milk recall", news.ClassCargo}, // "oil" inside "spoiled"
		{"HOUTHI THREAT", news.ClassRisk},
		{"", news.ClassNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := c.Classify(tt.title).Class; got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestVerdictPresentation(t *testing.T) {
	c := New(DefaultRules())

	got := []Verdict{
		c.Classify("war"),
		c.Classify("lng"),
		c.Classify("deal"),
		c.Classify("hello"),
	}
	want := []Verdict{
		{Class: news.ClassRisk, Icon: "⚠", Style: "bold red"},
		{Class: news.ClassCargo, Icon: "📦", Style: "bold yellow"},
		{Class: news.ClassPositive, Icon: "💰", Style: "bold green"},
		{Class: news.ClassNeutral, Icon: "•", Style: "white"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("verdicts mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomRulesAreNormalized(t *testing.T) {
	c := New(map[news.Classification]Rule{
		news.ClassCargo: {Keywords: []string{"  Bunker ", ""}, Icon: "B", Style: "blue"},
	})

	if got := c.Classify("bunker prices").Class; got != news.ClassCargo {
		t.Errorf("expected cargo, got %v", got)
	}
	// empty keyword must not match everything
	if got := c.Classify("nothing here").Class; got != news.ClassNeutral {
		t.Errorf("expected neutral, got %v", got)
	}
	if v := c.Classify("nothing here"); v.Icon != "•" {
		t.Errorf("expected default neutral icon, got %q", v.Icon)
	}
}
