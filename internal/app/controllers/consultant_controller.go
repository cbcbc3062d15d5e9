package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/services"
	"github.com/trananh/clearpath/internal/middleware"
)

// ConsultantController handles consultant profile and schedule operations
type ConsultantController struct {
	consultantService *services.ConsultantService
	scheduleService   *services.ScheduleService
	logger            zerolog.Logger
}

// NewConsultantController creates a new ConsultantController
func NewConsultantController(consultantService *services.ConsultantService, scheduleService *services.ScheduleService, logger zerolog.Logger) *ConsultantController {
	return &ConsultantController{
		consultantService: consultantService,
		scheduleService:   scheduleService,
		logger:            logger,
	}
}

// List retrieves consultant profiles
// @Summary List consultants
// @Tags consultants
// @Produce json
// @Param includeDisabled query bool false "Include disabled consultants"
// @Success 200 {object} dto.APIResponse{data=[]dto.ConsultantResponse} "Consultants"
// @Router /consultants [get]
func (c *ConsultantController) List(ctx *gin.Context) {
	includeDisabled := ctx.Query("includeDisabled") == "true"

	consultants, err := c.consultantService.List(ctx.Request.Context(), includeDisabled)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(consultants))
}

// GetByID retrieves one consultant profile
// @Summary Get consultant by id
// @Tags consultants
// @Produce json
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=dto.ConsultantResponse} "Consultant"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id} [get]
func (c *ConsultantController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	consultant, err := c.consultantService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(consultant))
}

// Create promotes an account to consultant
// @Summary Create a consultant profile
// @Description Creates a consultant profile for an existing account and moves the account to the Consultant role.
// @Tags consultants
// @Accept json
// @Produce json
// @Param request body dto.CreateConsultantRequest true "Consultant profile"
// @Success 201 {object} dto.APIResponse{data=dto.ConsultantResponse} "Consultant created"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /consultants [post]
func (c *ConsultantController) Create(ctx *gin.Context) {
	var req dto.CreateConsultantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	consultant, err := c.consultantService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(consultant))
}

// Update edits a consultant profile
// @Summary Update a consultant profile
// @Tags consultants
// @Accept json
// @Produce json
// @Param id path int true "Consultant ID"
// @Param request body dto.UpdateConsultantRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.ConsultantResponse} "Updated consultant"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Security BearerAuth
// @Router /consultants/{id} [put]
func (c *ConsultantController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateConsultantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	consultant, err := c.consultantService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(consultant))
}

// Disable soft-deletes a consultant profile
// @Summary Disable a consultant
// @Tags consultants
// @Produce json
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse "Consultant disabled"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Security BearerAuth
// @Router /consultants/{id}/disable [put]
func (c *ConsultantController) Disable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.consultantService.SetDisabled(ctx.Request.Context(), id, true); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Consultant disabled"))
}

// Enable restores a disabled consultant profile
// @Summary Enable a consultant
// @Tags consultants
// @Produce json
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse "Consultant enabled"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Security BearerAuth
// @Router /consultants/{id}/enable [put]
func (c *ConsultantController) Enable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.consultantService.SetDisabled(ctx.Request.Context(), id, false); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Consultant enabled"))
}

// WeeklySchedule renders a consultant's weekly grid
// @Summary Get a consultant's weekly schedule
// @Description Returns the 7 slots x 7 days grid for the week containing the given date. Defaults to the current week.
// @Tags consultants
// @Produce json
// @Param id path int true "Consultant ID"
// @Param date query string false "Any day of the requested week (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.WeeklyScheduleResponse} "Weekly schedule"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id}/schedule [get]
func (c *ConsultantController) WeeklySchedule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	day := time.Now()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "date must be YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		day = parsed
	}

	grid, err := c.scheduleService.WeeklySchedule(ctx.Request.Context(), id, day)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grid))
}

// AddScheduleSlot adds an availability slot
// @Summary Add an availability slot
// @Description Adds a dated availability window for a consultant. The date must be in the future.
// @Tags consultants
// @Accept json
// @Produce json
// @Param id path int true "Consultant ID"
// @Param request body dto.CreateScheduleSlotRequest true "Availability slot"
// @Success 201 {object} dto.APIResponse "Slot added"
// @Failure 400 {object} dto.ErrorResponse "Invalid date or time"
// @Security BearerAuth
// @Router /consultants/{id}/schedule [post]
func (c *ConsultantController) AddScheduleSlot(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateScheduleSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	slot, err := c.consultantService.AddScheduleSlot(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(slot))
}

// RemoveScheduleSlot deletes an availability slot
// @Summary Remove an availability slot
// @Tags consultants
// @Produce json
// @Param id path int true "Consultant ID"
// @Param slotId path int true "Slot ID"
// @Success 200 {object} dto.APIResponse "Slot removed"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Security BearerAuth
// @Router /consultants/{id}/schedule/{slotId} [delete]
func (c *ConsultantController) RemoveScheduleSlot(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	slotID, ok := pathID(ctx, "slotId")
	if !ok {
		return
	}

	if err := c.consultantService.RemoveScheduleSlot(ctx.Request.Context(), id, slotID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Slot removed"))
}
