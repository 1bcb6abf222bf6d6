package generator

import (
	"fmt"

	"futurenews/internal/model"
)

const (
	batchTemperature  = 0.9
	batchMaxTokens    = 8000
	detailTemperature = 0.8
	detailMaxTokens   = 3000
	detailComments    = 5
)

const batchPrompt = `Generate exactly %[1]d Hacker News front page stories from the year %[2]d.
These should be realistic, creative predictions of what tech news might look like in %[2]d.
Include a mix of: AI breakthroughs, startup launches, open source projects, Show HN posts,
Ask HN posts, scientific discoveries, tech policy, and cultural tech moments.%[3]s

Return a JSON array with exactly %[1]d items. Each item must have:
- "id": integer (1-%[1]d)
- "title": string (HN-style title)
- "url": string (realistic future URL)
- "domain": string (domain from URL)
- "score": integer (100-3000, realistic distribution)
- "author": string (HN-style username)
- "time": string (e.g. "3 hours ago", "1 day ago")
- "comments": integer (10-800)

Return ONLY the JSON array, no other text.`

const detailPrompt = `For this Hacker News story from the future:
Title: %s
URL: %s

Generate a detailed article summary and top comments as if this were a real HN thread.

Return a JSON object with:
- "summary": string (2-3 paragraph article summary, written as if the article exists)
- "comments": array of %d comment objects, each with:
  - "author": string (HN username)
  - "text": string (realistic HN comment, 1-3 sentences)
  - "score": integer (1-200)
  - "time": string (e.g. "1 hour ago")

Return ONLY the JSON object, no other text.`

func languageInstruction(lang string) string {
	if lang == "" || lang == model.DefaultLang {
		return ""
	}

	name, ok := model.Languages[lang]
	if !ok {
		name = lang
	}
	return fmt.Sprintf(" Write ALL titles and content in %s.", name)
}

func buildBatchPrompt(year int, lang string) string {
	return fmt.Sprintf(batchPrompt, model.BatchSize, year, languageInstruction(lang))
}

func buildDetailPrompt(story model.Story) string {
	title := story.Title
	if title == "" {
		title = "Unknown"
	}
	return fmt.Sprintf(detailPrompt, title, story.URL, detailComments)
}
