package prompts

import (
	"fmt"
	"strings"

	"newsbrief-backend/models"
)

// SelectionSystemPrompt is the system prompt for top-article selection
const SelectionSystemPrompt = "You are a professional news curator who selects the most important and relevant news articles."

// SummarySystemPrompt is the system prompt for article summarization
const SummarySystemPrompt = "You are a professional news summarizer who creates concise, informative summaries."

// BuildSelectionPrompt renders the user prompt asking the model to pick the
// topCount most important articles from the numbered candidate list
func BuildSelectionPrompt(articles []models.RawArticle, category string, topCount int) string {
	var candidates strings.Builder
	for i, article := range articles {
		fmt.Fprintf(&candidates, "%d. Title: %s\n", i+1, article.Title)
		fmt.Fprintf(&candidates, "   Description: %s\n", article.Description)
		fmt.Fprintf(&candidates, "   URL: %s\n\n", article.URL)
	}

	return fmt.Sprintf(`You are a news curator. From the following %d %s news articles,
select the %d most important, newsworthy, and recent articles.

Consider:
- Breaking news and recent developments
- Impact and significance
- Relevance to the %s category
- Credibility of the source

Articles:
%s
Respond with ONLY a JSON array containing the numbers of the selected articles.
Example: [1, 3, 7]`, len(articles), category, topCount, category, candidates.String())
}

// BuildSummaryPrompt renders the user prompt asking for a 2-3 sentence summary
func BuildSummaryPrompt(title, description, url, category string) string {
	return fmt.Sprintf(`Summarize this %s news article in exactly 2-3 concise sentences.
Focus on the key facts, impact, and significance.

Title: %s
Description: %s
URL: %s

Provide a clear, informative summary that captures the essence of the article.`, category, title, description, url)
}
