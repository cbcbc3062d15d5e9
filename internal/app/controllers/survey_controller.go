package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/services"
	"github.com/trananh/clearpath/internal/middleware"
)

// SurveyController handles survey definition and submission operations
type SurveyController struct {
	surveyService *services.SurveyService
	logger        zerolog.Logger
}

// NewSurveyController creates a new SurveyController
func NewSurveyController(surveyService *services.SurveyService, logger zerolog.Logger) *SurveyController {
	return &SurveyController{
		surveyService: surveyService,
		logger:        logger,
	}
}

// List retrieves every survey definition
// @Summary List surveys
// @Tags surveys
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SurveyResponse} "Surveys"
// @Security BearerAuth
// @Router /surveys [get]
func (c *SurveyController) List(ctx *gin.Context) {
	surveys, err := c.surveyService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(surveys))
}

// GetByID retrieves one survey definition
// @Summary Get survey by id
// @Tags surveys
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.APIResponse{data=dto.SurveyResponse} "Survey"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Security BearerAuth
// @Router /surveys/{id} [get]
func (c *SurveyController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	survey, err := c.surveyService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(survey))
}

// Create adds a survey definition
// @Summary Create a survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param request body dto.CreateSurveyRequest true "Survey definition"
// @Success 201 {object} dto.APIResponse{data=dto.SurveyResponse} "Survey created"
// @Failure 400 {object} dto.ErrorResponse "Questions are not valid JSON"
// @Security BearerAuth
// @Router /surveys [post]
func (c *SurveyController) Create(ctx *gin.Context) {
	var req dto.CreateSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	survey, err := c.surveyService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(survey))
}

// Update edits a survey definition
// @Summary Update a survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param request body dto.UpdateSurveyRequest true "Survey fields"
// @Success 200 {object} dto.APIResponse{data=dto.SurveyResponse} "Updated survey"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Security BearerAuth
// @Router /surveys/{id} [put]
func (c *SurveyController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	survey, err := c.surveyService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(survey))
}

// Delete removes a survey definition
// @Summary Delete a survey
// @Tags surveys
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.APIResponse "Survey deleted"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Security BearerAuth
// @Router /surveys/{id} [delete]
func (c *SurveyController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.surveyService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Survey deleted"))
}

// ProgramSurveys retrieves the before/after surveys of a program
// @Summary Get a program's surveys
// @Description Returns exactly one before and one after survey for the program, mapping the defaults on first access.
// @Tags surveys
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ProgramSurveyResponse} "Program surveys"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id}/surveys [get]
func (c *SurveyController) ProgramSurveys(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	surveys, err := c.surveyService.ProgramSurveys(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(surveys))
}

// SubmitResponse records a survey submission for a program
// @Summary Submit a survey response
// @Description Records a before or after survey submission and marks the matching completion flag on the caller's registration.
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param request body dto.SubmitSurveyRequest true "Survey answers"
// @Success 200 {object} dto.APIResponse "Response recorded"
// @Failure 404 {object} dto.ErrorResponse "Caller is not registered for the program"
// @Security BearerAuth
// @Router /programs/{id}/surveys/responses [post]
func (c *SurveyController) SubmitResponse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	if err := c.surveyService.SubmitResponse(ctx.Request.Context(), id, accountID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Survey response recorded"))
}
