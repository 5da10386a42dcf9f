package core

import "fmt"

// Section represents a titled block of narrative content with display metadata.
type Section struct {
	Description  string `json:"description"`  // Narrative text for the section
	Title        string `json:"title"`        // Fixed display label
	Heading      string `json:"heading"`      // Display heading, templated on the project symbol
	ReadTime     int    `json:"readTime"`     // Estimated read time in minutes
	DificultyTag string `json:"dificultyTag"` // Difficulty label; downstream schema expects this spelling
}

// StatSection is a Section carrying the market statistics block.
// Used for the project-size slot of a ContentRecord.
type StatSection struct {
	Section
	KeyStats MarketStats `json:"keyStats"`
}

// ListItem is a (title, description) pair used for strengths/weaknesses entries.
type ListItem struct {
	Title       string `json:"title"`       // Short label
	Description string `json:"description"` // One or more sentences
}

// Whitepaper summarizes the project's whitepaper with display metadata.
type Whitepaper struct {
	Summary      string `json:"summary"`
	Title        string `json:"title"`
	LastUpdated  string `json:"lastUpdated"` // YYYY-MM-DD, supplied by the caller
	ReadTime     int    `json:"readTime"`
	DificultyTag string `json:"dificultyTag"`
}

// MarketStats holds pre-formatted display figures for a project.
// Fields that could not be fetched carry the "N/A" sentinel, never empty.
type MarketStats struct {
	MarketCap         string `json:"marketCap"`
	TradingVolume     string `json:"tradingVolume"`
	CirculatingSupply string `json:"circulatingSupply"`
	TotalSupply       string `json:"totalSupply"`
}

// ScoreSet holds the four benchmark scores for a project.
type ScoreSet struct {
	Growth    float64 `json:"growth"`
	Earning   float64 `json:"earning"`
	FairValue float64 `json:"fairValue"`
	Safety    float64 `json:"safety"`
}

// BarEntry is one bar of the benchmark score chart.
type BarEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// BenchmarkScores renders a ScoreSet for display.
type BenchmarkScores struct {
	Growth    float64    `json:"growth"`
	Earning   float64    `json:"earning"`
	FairValue float64    `json:"fairValue"`
	Safety    float64    `json:"safety"`
	BarData   []BarEntry `json:"barData"`
}

// ContentRecord is the fully assembled, display-ready content for one project.
// All sections are always present; strengths and weaknesses always hold
// exactly three items.
type ContentRecord struct {
	ValueGeneration Section         `json:"valueGeneration"`
	MarketPosition  Section         `json:"marketPosition"`
	ProjectSize     StatSection     `json:"projectSize"`
	RealWorldImpact Section         `json:"RealWorldImpact"`
	Founders        Section         `json:"founders"`
	ProblemSolving  Section         `json:"problemSolving"`
	Strengths       []ListItem      `json:"strengths"`
	Weaknesses      []ListItem      `json:"weaknesses"`
	Whitepaper      Whitepaper      `json:"whitepaper"`
	BenchmarkScores BenchmarkScores `json:"benchmarkScores"`

	// Degraded lists the record parts that fell back to default content
	// (section keys, "strengths[1]", etc.). Diagnostic only, not serialized.
	Degraded []string `json:"-"`
}

// AssetOverview groups the market-facing sections of a Project document.
type AssetOverview struct {
	ValueGeneration Section     `json:"valueGeneration"`
	MarketPosition  Section     `json:"marketPosition"`
	ProjectSize     StatSection `json:"projectSize"`
	RealWorldImpact Section     `json:"RealWorldImpact"`
}

// ProjectNarrative groups the story-facing sections of a Project document.
type ProjectNarrative struct {
	Founders       Section `json:"founders"`
	ProblemSolving Section `json:"problemSolving"`
}

// ResearchAnalysis groups the strengths/weaknesses lists of a Project document.
type ResearchAnalysis struct {
	Strengths  []ListItem `json:"strengths"`
	Weaknesses []ListItem `json:"weaknesses"`
}

// MarketBenchmark carries the explanatory blurb shown next to benchmark scores.
type MarketBenchmark struct {
	Description string `json:"description"`
}

// Project is the complete document persisted per project, wrapping a
// ContentRecord in the layout the analytics page consumes.
type Project struct {
	ID               string           `json:"id"`
	CoinID           string           `json:"coinId"`
	Name             string           `json:"name"`
	Title            string           `json:"title"`
	Logo             string           `json:"logo"`
	Description      string           `json:"description"`
	AssetOverview    AssetOverview    `json:"assetOverview"`
	ProjectNarrative ProjectNarrative `json:"projectNarrative"`
	ResearchAnalysis ResearchAnalysis `json:"researchAnalysis"`
	BenchmarkScores  BenchmarkScores  `json:"benchmarkScores"`
	Whitepaper       Whitepaper       `json:"whitepaper"`
	MarketBenchmark  MarketBenchmark  `json:"marketBenchmarkScores"`
}

// ScoreProfile selects the default used for missing or invalid scores.
type ScoreProfile int

const (
	// ProfileFriendly treats a missing score as neutral (50).
	ProfileFriendly ScoreProfile = iota
	// ProfileStrict treats a missing score as absent (0).
	ProfileStrict
)

// DefaultScore returns the fallback value for the profile.
func (p ScoreProfile) DefaultScore() float64 {
	if p == ProfileStrict {
		return 0
	}
	return 50
}

func (p ScoreProfile) String() string {
	if p == ProfileStrict {
		return "strict"
	}
	return "friendly"
}

// ParseProfile maps a profile name to its ScoreProfile. The empty string
// resolves to ProfileFriendly.
func ParseProfile(name string) (ScoreProfile, error) {
	switch name {
	case "", "friendly":
		return ProfileFriendly, nil
	case "strict":
		return ProfileStrict, nil
	default:
		return ProfileFriendly, fmt.Errorf("unknown score profile %q: must be \"friendly\" or \"strict\"", name)
	}
}

// RosterEntry is one row of the project score sheet.
type RosterEntry struct {
	Name   string    // Project name as listed in the sheet
	Symbol string    // Lower-cased ticker symbol
	Sector string    // Market sector label
	Scores *ScoreSet // Nil when the sheet carried no usable scores
}
