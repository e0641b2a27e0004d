package types

import "time"

// Post is a blog article.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Content     string    `json:"content,omitempty"`
	Category    string    `json:"category,omitempty"`
	Author      string    `json:"author,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}

// PostQuery filters the blog listing. Zero values are omitted.
type PostQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
}
