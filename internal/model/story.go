package model

const (
	BatchSize      = 30
	DefaultLang    = "en"
	PlaceholderURL = "https://example.com"
)

type Story struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	Score    int    `json:"score"`
	Author   string `json:"author"`
	Time     string `json:"time"`
	Comments int    `json:"comments"`
}

type StoryDetail struct {
	Summary  string    `json:"summary"`
	Comments []Comment `json:"comments"`
}

type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Score  int    `json:"score"`
	Time   string `json:"time"`
}

// Languages maps each supported language code to the name used in prompts.
var Languages = map[string]string{
	"en": "English",
	"zh": "Chinese (Simplified)",
	"ja": "Japanese",
	"de": "German",
	"fr": "French",
	"ko": "Korean",
	"es": "Spanish",
}
