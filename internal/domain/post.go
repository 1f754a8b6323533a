package domain

import "time"

// DateLayout is the calendar date format used for post ids, filenames and the date field.
const DateLayout = "2006-01-02"

// AutoPostPrefix prefixes the id of every automatically generated post.
const AutoPostPrefix = "daily-"

type SourceNews struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}

// Post is the persisted artifact consumed by the site renderer.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Date          string     `json:"date"`
	Image         string     `json:"image"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	AutoGenerated bool       `json:"autoGenerated"`
	SourceNews    SourceNews `json:"sourceNews"`
}

// DraftContent is the article body produced before it becomes a Post.
type DraftContent struct {
	Title   string
	Excerpt string
	Content string
}

// AutoPostID returns the post id for the automatic post of the given day.
func AutoPostID(day time.Time) string {
	return AutoPostPrefix + day.Format(DateLayout)
}

// Filename returns the artifact name of the post.
func (p *Post) Filename() string {
	return p.ID + ".json"
}
