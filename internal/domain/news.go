package domain

// NewsItem is a normalized feed entry. It only lives for the duration of one pipeline run.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// ScoredNewsItem is a NewsItem annotated with its relevance score.
type ScoredNewsItem struct {
	NewsItem
	Score int
}
