package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSectionJSONKeys(t *testing.T) {
	section := Section{
		Description:  "XYZ generates value through staking.",
		Title:        "Value Generation",
		Heading:      "How XYZ Generates Value",
		ReadTime:     3,
		DificultyTag: "Beginner friendly",
	}

	data, err := json.Marshal(section)
	if err != nil {
		t.Fatalf("Failed to marshal section: %v", err)
	}
	// Downstream schema expects this exact (misspelled) key.
	if !strings.Contains(string(data), `"dificultyTag"`) {
		t.Errorf("Expected dificultyTag key, got %s", string(data))
	}
}

func TestContentRecordJSONKeys(t *testing.T) {
	rec := ContentRecord{}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Failed to marshal record: %v", err)
	}
	s := string(data)

	for _, key := range []string{`"valueGeneration"`, `"marketPosition"`, `"projectSize"`, `"RealWorldImpact"`, `"founders"`, `"problemSolving"`, `"strengths"`, `"weaknesses"`, `"whitepaper"`} {
		if !strings.Contains(s, key) {
			t.Errorf("Expected key %s in record JSON", key)
		}
	}
	if strings.Contains(s, "Degraded") || strings.Contains(s, "degraded") {
		t.Error("Degradation flags must not serialize")
	}
}

func TestStatSectionEmbedsKeyStats(t *testing.T) {
	ss := StatSection{
		Section:  Section{Title: "Project Size"},
		KeyStats: MarketStats{MarketCap: "$1.00 billion"},
	}
	data, err := json.Marshal(ss)
	if err != nil {
		t.Fatalf("Failed to marshal stat section: %v", err)
	}
	if !strings.Contains(string(data), `"keyStats"`) {
		t.Errorf("Expected keyStats key, got %s", string(data))
	}
	if !strings.Contains(string(data), `"title":"Project Size"`) {
		t.Errorf("Expected embedded section fields flattened, got %s", string(data))
	}
}

func TestScoreProfileDefaults(t *testing.T) {
	if ProfileFriendly.DefaultScore() != 50 {
		t.Errorf("Expected friendly default 50, got %v", ProfileFriendly.DefaultScore())
	}
	if ProfileStrict.DefaultScore() != 0 {
		t.Errorf("Expected strict default 0, got %v", ProfileStrict.DefaultScore())
	}
	if ProfileFriendly.String() != "friendly" || ProfileStrict.String() != "strict" {
		t.Error("Unexpected profile names")
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		in      string
		want    ScoreProfile
		wantErr bool
	}{
		{"", ProfileFriendly, false},
		{"friendly", ProfileFriendly, false},
		{"strict", ProfileStrict, false},
		{"harsh", ProfileFriendly, true},
	}
	for _, tt := range tests {
		got, err := ParseProfile(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseProfile(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProfile(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseProfile(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
