package llm

import "strings"

// PromptData parameterizes the content prompts for one project.
type PromptData struct {
	Name        string
	Symbol      string // Substituted upper-cased
	Sector      string
	Description string
}

// prosePromptTemplate asks for plain-text output with labeled section
// headers, which sidesteps most JSON formatting failures from smaller
// models.
const prosePromptTemplate = `You are creating content for a crypto analytics platform for retail investors transitioning from traditional finance. Generate jargon-free, beginner-friendly content for a cryptocurrency project. Use simple language, avoid technical terms, and make it engaging.

**Project Details**:
- Name: {name}
- Symbol: {symbol}
- Sector: {sector}
- Description: {description}

For each section below, provide concise and informative content:

1. **Value Generation (50-70 words)**:
   Explain how the project makes money or creates value for its users and token holders.

2. **Market Position (70-100 words)**:
   Highlight what the project is best known for and its main innovation.

3. **Project Size (70-100 words)**:
   Describe the project's importance in the crypto space (e.g., market rank, adoption). Do not include specific stats (these will be added separately).

4. **Real World Impact (70-100 words)**:
   Explain where the project is used (regions, industries) and its influence.

5. **Founders (70-100 words)**:
   Describe who created the project, when, and their background.

6. **Problem Solving (70-100 words)**:
   Explain the main problem the project solves and why it matters.

7. **Strengths**:
   List 3 key strengths, each with a title and 2 sentences of description.
   Format each as: **Title**: Description.

8. **Weaknesses**:
   List 3 potential concerns, each with a title and 2 sentences of description.
   Format each as: **Title**: Description.

9. **Whitepaper Summary (100-200 words)**:
   Summarize the project's core idea, innovation, token use, and problem solved. Use an analogy to make it relatable.

FORMAT YOUR RESPONSE WITH CLEAR SECTION HEADERS.`

// jsonPromptTemplate asks for the structured record directly. Output quality
// is higher with capable models but requires the JSON repair path for the
// rest.
const jsonPromptTemplate = `You are creating content for a crypto analytics platform for retail investors transitioning from traditional finance. Generate jargon-free, beginner-friendly content for a cryptocurrency project. Use simple language, avoid technical terms, and make it engaging.

**Project Details**:
- Name: {name}
- Symbol: {symbol}
- Sector: {sector}
- Description: {description}

Generate the following sections:
1. Value Generation (50-70 words): how the project makes money or creates value for its users and token holders.
2. Market Position (70-100 words): what the project is best known for and its main innovation.
3. Project Size (70-100 words): the project's importance in the crypto space. Do not include specific stats (these will be added separately).
4. Real World Impact (70-100 words): where the project is used (regions, industries) and its influence.
5. Founders (70-100 words): who created the project, when, and their background.
6. Problem Solving (70-100 words): the main problem the project solves and why it matters.
7. Strengths: 3 key strengths, each with a title and 2 sentences of description.
8. Weaknesses: 3 potential concerns, each with a title and 2 sentences of description.
9. Whitepaper Summary (100-200 words): the project's core idea, innovation, token use, and problem solved.

**Output Format**:
Return a JSON object with the following structure:
` + "```json" + `
{
  "valueGeneration": {"description": "...", "title": "Value Generation", "heading": "How {symbol} Generates Value", "readTime": 3, "dificultyTag": "Beginner friendly"},
  "marketPosition": {"description": "...", "title": "Market Position", "heading": "What is {symbol} Best Known For", "readTime": 3, "dificultyTag": "Beginner friendly"},
  "projectSize": {"description": "...", "title": "Project Size", "heading": "How Significant is {symbol} in the Crypto Space", "readTime": 3, "dificultyTag": "Beginner friendly"},
  "RealWorldImpact": {"description": "...", "title": "Real World Impact", "heading": "Where Does {symbol} Have Influence", "readTime": 3, "dificultyTag": "Beginner friendly"},
  "founders": {"description": "...", "title": "Founders", "heading": "Who Created {symbol}", "readTime": 3, "dificultyTag": "Beginner friendly"},
  "problemSolving": {"description": "...", "title": "Problem Solving", "heading": "What challenges does {symbol} solve?", "readTime": 3, "dificultyTag": "Beginner friendly"},
  "strengths": [
    {"title": "...", "description": "..."}
  ],
  "weaknesses": [
    {"title": "...", "description": "..."}
  ],
  "whitepaper": {"summary": "...", "lastUpdated": "2024-01-01", "readTime": 5, "dificultyTag": "Intermediate"}
}
` + "```"

func fillPrompt(template string, data PromptData) string {
	return strings.NewReplacer(
		"{name}", data.Name,
		"{symbol}", strings.ToUpper(data.Symbol),
		"{sector}", data.Sector,
		"{description}", data.Description,
	).Replace(template)
}

// ProsePrompt builds the plain-text content prompt for a project.
func ProsePrompt(data PromptData) string {
	return fillPrompt(prosePromptTemplate, data)
}

// JSONPrompt builds the JSON-format content prompt for a project.
func JSONPrompt(data PromptData) string {
	return fillPrompt(jsonPromptTemplate, data)
}
