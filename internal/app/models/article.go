package models

import "time"

// Article is a published prevention/awareness piece
type Article struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
	IsDisabled  bool      `json:"isDisabled" db:"is_disabled"`

	// Related entities
	Author *Account `json:"author,omitempty"`
}
