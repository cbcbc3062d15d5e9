package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/helpers"
)

// ArticleService handles article publishing
type ArticleService struct {
	articleRepo *repositories.ArticleRepository
	logger      zerolog.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo *repositories.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		logger:      logger,
	}
}

func toArticleResponse(a *models.Article) dto.ArticleResponse {
	resp := dto.ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		AuthorID:    a.AuthorID,
		PublishedAt: a.PublishedAt,
		IsDisabled:  a.IsDisabled,
	}
	if a.Author != nil {
		resp.AuthorName = a.Author.FullName
	}
	return resp
}

// List retrieves articles with pagination.
func (s *ArticleService) List(ctx context.Context, includeDisabled bool, page, pageSize int) (*dto.ArticleListResponse, error) {
	articles, total, err := s.articleRepo.List(ctx, includeDisabled, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		responses = append(responses, toArticleResponse(a))
	}

	return &dto.ArticleListResponse{
		Articles:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetByID retrieves a single article.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (*dto.ArticleResponse, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toArticleResponse(article)
	return &response, nil
}

// Create publishes an article authored by the caller.
func (s *ArticleService) Create(ctx context.Context, authorID int64, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	article := &models.Article{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		AuthorID:    authorID,
		PublishedAt: time.Now(),
	}

	articleID, err := s.articleRepo.Create(ctx, article)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("articleId", articleID).Int64("authorId", authorID).Msg("Article published")
	return s.GetByID(ctx, articleID)
}

// Update edits an article.
func (s *ArticleService) Update(ctx context.Context, id int64, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		article.Content = *req.Content
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// SetDisabled soft-deletes or restores an article.
func (s *ArticleService) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	if err := s.articleRepo.SetDisabled(ctx, id, disabled); err != nil {
		return err
	}
	s.logger.Info().Int64("articleId", id).Bool("disabled", disabled).Msg("Article disabled flag updated")
	return nil
}
