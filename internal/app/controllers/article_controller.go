package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/services"
	"github.com/trananh/clearpath/internal/middleware"
	"github.com/trananh/clearpath/internal/pkg/helpers"
)

// ArticleController handles article publishing operations
type ArticleController struct {
	articleService *services.ArticleService
	logger         zerolog.Logger
}

// NewArticleController creates a new ArticleController
func NewArticleController(articleService *services.ArticleService, logger zerolog.Logger) *ArticleController {
	return &ArticleController{
		articleService: articleService,
		logger:         logger,
	}
}

// List retrieves articles
// @Summary List articles
// @Tags articles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param includeDisabled query bool false "Include disabled articles"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleListResponse} "Articles"
// @Router /articles [get]
func (c *ArticleController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	includeDisabled := ctx.Query("includeDisabled") == "true"

	articles, err := c.articleService.List(ctx.Request.Context(), includeDisabled, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(articles))
}

// GetByID retrieves one article
// @Summary Get article by id
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleResponse} "Article"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [get]
func (c *ArticleController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	article, err := c.articleService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article))
}

// Create publishes an article
// @Summary Publish an article
// @Description Publishes an article authored by the caller.
// @Tags articles
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "Article content"
// @Success 201 {object} dto.APIResponse{data=dto.ArticleResponse} "Article published"
// @Security BearerAuth
// @Router /articles [post]
func (c *ArticleController) Create(ctx *gin.Context) {
	var req dto.CreateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	article, err := c.articleService.Create(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(article))
}

// Update edits an article
// @Summary Update an article
// @Tags articles
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body dto.UpdateArticleRequest true "Article fields"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleResponse} "Updated article"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Security BearerAuth
// @Router /articles/{id} [put]
func (c *ArticleController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	article, err := c.articleService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article))
}

// Disable soft-deletes an article
// @Summary Disable an article
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse "Article disabled"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Security BearerAuth
// @Router /articles/{id}/disable [put]
func (c *ArticleController) Disable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.articleService.SetDisabled(ctx.Request.Context(), id, true); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Article disabled"))
}

// Enable restores a disabled article
// @Summary Enable an article
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse "Article enabled"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Security BearerAuth
// @Router /articles/{id}/enable [put]
func (c *ArticleController) Enable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.articleService.SetDisabled(ctx.Request.Context(), id, false); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Article enabled"))
}
