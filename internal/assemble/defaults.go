package assemble

import "coinbrief/internal/core"

// SymbolPlaceholder is the token in template headings that gets replaced
// with the upper-cased project symbol during assembly.
const SymbolPlaceholder = "{symbol}"

// Template is the fallback content shape. Values are always produced by the
// functions below, which build fresh copies, so no caller can contaminate
// another's template.
type Template struct {
	ValueGeneration core.Section
	MarketPosition  core.Section
	ProjectSize     core.Section
	RealWorldImpact core.Section
	Founders        core.Section
	ProblemSolving  core.Section
	Strengths       []core.ListItem
	Weaknesses      []core.ListItem
	Whitepaper      core.Whitepaper
}

// DefaultTemplate returns an independent copy of the fallback content used
// whenever extraction fails or comes back incomplete. Headings still carry
// the symbol placeholder.
func DefaultTemplate() Template {
	return Template{
		ValueGeneration: core.Section{
			Description:  "This project generates value by providing a valuable service in the cryptocurrency ecosystem. Users benefit from its utility while token holders receive a portion of the fees generated.",
			Title:        "Value Generation",
			Heading:      "How " + SymbolPlaceholder + " Generates Value",
			ReadTime:     3,
			DificultyTag: "Beginner friendly",
		},
		MarketPosition: core.Section{
			Description:  "The project is known for innovation in its sector. It addresses key challenges and offers unique solutions that differentiate it from competitors in the blockchain space.",
			Title:        "Market Position",
			Heading:      "What is " + SymbolPlaceholder + " Best Known For",
			ReadTime:     3,
			DificultyTag: "Beginner friendly",
		},
		ProjectSize: core.Section{
			Description:  "This project has established itself as a notable player in the cryptocurrency ecosystem. It has gained recognition for its technology and utility.",
			Title:        "Project Size",
			Heading:      "How Significant is " + SymbolPlaceholder + " in the Crypto Space",
			ReadTime:     3,
			DificultyTag: "Beginner friendly",
		},
		RealWorldImpact: core.Section{
			Description:  "The project has applications across various geographic regions and industries. It provides solutions to real-world problems and has influenced the broader blockchain ecosystem.",
			Title:        "Real World Impact",
			Heading:      "Where Does " + SymbolPlaceholder + " Have Influence",
			ReadTime:     3,
			DificultyTag: "Beginner friendly",
		},
		Founders: core.Section{
			Description:  "The project was created by a team of blockchain experts with backgrounds in technology and finance. They launched the project with a vision to address key challenges in the sector.",
			Title:        "Founders",
			Heading:      "Who Created " + SymbolPlaceholder,
			ReadTime:     3,
			DificultyTag: "Beginner friendly",
		},
		ProblemSolving: core.Section{
			Description:  "This project solves fundamental challenges in the blockchain space by providing innovative solutions. Its approach addresses inefficiencies and creates new opportunities for users.",
			Title:        "Problem Solving",
			Heading:      "What challenges does " + SymbolPlaceholder + " solve?",
			ReadTime:     3,
			DificultyTag: "Beginner friendly",
		},
		Strengths: []core.ListItem{
			{Title: "Technical Innovation", Description: "The project utilizes cutting-edge technology to deliver its services. This technical foundation provides a competitive advantage in the market."},
			{Title: "Strong Community", Description: "The project has built a dedicated user base that supports its development. This community engagement helps drive adoption and improvement."},
			{Title: "Practical Utility", Description: "The project offers real-world applications that solve tangible problems. This utility creates sustainable demand for its services."},
		},
		Weaknesses: []core.ListItem{
			{Title: "Market Competition", Description: "The project faces competition from established players in the space. This competitive landscape could impact its growth potential."},
			{Title: "Technical Complexity", Description: "Some aspects of the project may be difficult for beginners to understand. This complexity could limit mainstream adoption."},
			{Title: "Regulatory Considerations", Description: "The project operates in an evolving regulatory environment. Changes in regulations could affect its operations in certain regions."},
		},
		Whitepaper: core.Whitepaper{
			Summary:      "The project provides a blockchain-based solution that addresses key challenges in its sector. It utilizes innovative technology to create value for users and token holders while maintaining security and efficiency.",
			Title:        "Whitepaper Summary",
			LastUpdated:  "2024-01-01",
			ReadTime:     5,
			DificultyTag: "Intermediate",
		},
	}
}

// DefaultStrengths returns the pad list for strengths sections that yielded
// fewer than three items. Distinct from the template list so a partially
// extracted section does not repeat full-fallback content.
func DefaultStrengths() []core.ListItem {
	return []core.ListItem{
		{Title: "Strong Ecosystem Integration", Description: "The project effectively integrates with other blockchain protocols. This connectivity enhances its utility and user experience."},
		{Title: "Active Development", Description: "The project maintains an active development roadmap with regular updates. This ongoing development helps keep the technology relevant."},
		{Title: "User-Focused Design", Description: "The platform is designed with user experience as a priority. This user-centric approach helps drive adoption and retention."},
	}
}

// DefaultWeaknesses returns the pad list for weaknesses sections.
func DefaultWeaknesses() []core.ListItem {
	return []core.ListItem{
		{Title: "Market Competition", Description: "The project faces competition from other protocols in the same space. This competitive environment could limit growth potential."},
		{Title: "Technical Complexity", Description: "Some aspects of the system may be difficult for new users to understand. This learning curve could slow mainstream adoption."},
		{Title: "Regulatory Uncertainty", Description: "Like many blockchain projects, it operates in an evolving regulatory landscape. Future regulatory changes could impact operations."},
	}
}

// statsNotAvailable is the per-field sentinel for missing market data.
const statsNotAvailable = "N/A"

// defaultMarketStats returns a MarketStats with every field set to the
// not-available sentinel.
func defaultMarketStats() core.MarketStats {
	return core.MarketStats{
		MarketCap:         statsNotAvailable,
		TradingVolume:     statsNotAvailable,
		CirculatingSupply: statsNotAvailable,
		TotalSupply:       statsNotAvailable,
	}
}
