package roster

import (
	"os"
	"path/filepath"
	"testing"

	"coinbrief/internal/core"
)

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "score-sheet.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write sheet: %v", err)
	}
	return path
}

func TestLoadScoreSheet(t *testing.T) {
	sheet := `Project,Symbol,Market Sector,UGS,EQS,FVS,SS
Solana,SOL,Smart Contract Platform,82,40,61,77
Aptos,APT,Smart Contract Platform,55,30,48,60
`
	entries, err := Load(writeSheet(t, sheet), core.ProfileFriendly)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	sol := entries[0]
	if sol.Name != "Solana" {
		t.Errorf("Expected name 'Solana', got %q", sol.Name)
	}
	if sol.Symbol != "sol" {
		t.Errorf("Expected lower-cased symbol 'sol', got %q", sol.Symbol)
	}
	if sol.Sector != "Smart Contract Platform" {
		t.Errorf("Unexpected sector: %q", sol.Sector)
	}
	if sol.Scores == nil || sol.Scores.Growth != 82 || sol.Scores.Safety != 77 {
		t.Errorf("Unexpected scores: %+v", sol.Scores)
	}
}

func TestLoadSkipsBlankAndDuplicateSymbols(t *testing.T) {
	sheet := `Project,Symbol,Market Sector,UGS,EQS,FVS,SS
Solana,SOL,Layer 1,82,40,61,77
Nameless,,Layer 1,10,10,10,10
Solana Again,sol,Layer 1,1,2,3,4
`
	entries, err := Load(writeSheet(t, sheet), core.ProfileFriendly)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Scores.Growth != 82 {
		t.Error("Expected first occurrence kept on duplicate symbol")
	}
}

func TestLoadMissingScoresUseProfileDefault(t *testing.T) {
	sheet := `Project,Symbol,Market Sector,UGS,EQS,FVS,SS
Solana,SOL,Layer 1,82,,not-a-number,
`
	tests := []struct {
		name    string
		profile core.ScoreProfile
		want    float64
	}{
		{"friendly", core.ProfileFriendly, 50},
		{"strict", core.ProfileStrict, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Load(writeSheet(t, sheet), tt.profile)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			s := entries[0].Scores
			if s.Growth != 82 {
				t.Errorf("Expected parsed score kept, got %v", s.Growth)
			}
			if s.Earning != tt.want || s.FairValue != tt.want || s.Safety != tt.want {
				t.Errorf("Expected defaults %v, got %+v", tt.want, s)
			}
		})
	}
}

func TestLoadDefaultsSector(t *testing.T) {
	sheet := `Project,Symbol
Solana,SOL
`
	entries, err := Load(writeSheet(t, sheet), core.ProfileFriendly)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if entries[0].Sector != "Cryptocurrency" {
		t.Errorf("Expected default sector, got %q", entries[0].Sector)
	}
}

func TestLoadNumericSymbolFlattened(t *testing.T) {
	sheet := `Project,Symbol,Market Sector,UGS,EQS,FVS,SS
The 42 Coin,42.0,Layer 1,10,20,30,40
`
	entries, err := Load(writeSheet(t, sheet), core.ProfileFriendly)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if entries[0].Symbol != "42" {
		t.Errorf("Expected numeric symbol flattened to '42', got %q", entries[0].Symbol)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	// A bare quote makes one row unparsable; the rows after it must
	// still load.
	sheet := `Project,Symbol,Market Sector,UGS,EQS,FVS,SS
Solana,SOL,Layer 1,82,40,61,77
Bro"ken,BAD,Layer 1,1,2,3,4
Aptos,APT,Layer 1,55,30,48,60
Celo,CELO,Layer 1,44,25,39,51
`
	entries, err := Load(writeSheet(t, sheet), core.ProfileFriendly)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[1].Symbol != "apt" || entries[2].Symbol != "celo" {
		t.Errorf("Expected rows after the malformed one kept, got %q and %q", entries[1].Symbol, entries[2].Symbol)
	}
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	sheet := `Project,Ticker
Solana,SOL
`
	_, err := Load(writeSheet(t, sheet), core.ProfileFriendly)
	if err == nil {
		t.Fatal("Expected error for missing Symbol column")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), core.ProfileFriendly)
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
