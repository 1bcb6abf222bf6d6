package generator

import "futurenews/internal/model"

const (
	defaultScore    = 100
	defaultComments = 10
	defaultTime     = "2 hours ago"
	defaultAuthor   = "anonymous"
	defaultDomain   = "example.com"
)

// rawStory is a story as the model returned it. Nil fields were omitted.
// The model's id is ignored.
type rawStory struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Domain   *string `json:"domain"`
	Score    *int    `json:"score"`
	Author   *string `json:"author"`
	Time     *string `json:"time"`
	Comments *int    `json:"comments"`
}

// normalizeStories numbers stories by position, fills omitted fields and
// keeps at most model.BatchSize of them.
func normalizeStories(raw []rawStory) []model.Story {
	n := min(len(raw), model.BatchSize)
	stories := make([]model.Story, n)

	for i, r := range raw[:n] {
		s := model.Story{
			ID:       i + 1,
			Title:    deref(r.Title, ""),
			Domain:   deref(r.Domain, defaultDomain),
			Score:    deref(r.Score, defaultScore),
			Author:   deref(r.Author, defaultAuthor),
			Time:     deref(r.Time, defaultTime),
			Comments: deref(r.Comments, defaultComments),
		}
		s.URL = deref(r.URL, "https://"+s.Domain)
		stories[i] = s
	}

	return stories
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
