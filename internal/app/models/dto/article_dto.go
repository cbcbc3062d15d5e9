package dto

import "time"

// ArticleResponse is the public shape of an article
type ArticleResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    int64     `json:"authorId"`
	AuthorName  string    `json:"authorName,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	IsDisabled  bool      `json:"isDisabled"`
}

// ArticleListResponse is a paginated article listing
type ArticleListResponse struct {
	Articles       []ArticleResponse `json:"articles"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// CreateArticleRequest creates an article
type CreateArticleRequest struct {
	Title   string `json:"title" binding:"required,min=2,max=300"`
	Content string `json:"content" binding:"required"`
}

// UpdateArticleRequest edits an article
type UpdateArticleRequest struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=2,max=300"`
	Content *string `json:"content,omitempty"`
}
