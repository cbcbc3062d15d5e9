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

// ProgramController handles community program operations
type ProgramController struct {
	programService *services.ProgramService
	logger         zerolog.Logger
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService, logger zerolog.Logger) *ProgramController {
	return &ProgramController{
		programService: programService,
		logger:         logger,
	}
}

// List handles program listing
// @Summary List community programs
// @Tags programs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param includeDisabled query bool false "Include disabled programs"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramListResponse} "Programs"
// @Router /programs [get]
func (c *ProgramController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	includeDisabled := ctx.Query("includeDisabled") == "true"

	programs, err := c.programService.List(ctx.Request.Context(), includeDisabled, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(programs))
}

// GetByID retrieves one program
// @Summary Get program by id
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramResponse} "Program"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *ProgramController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	program, err := c.programService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(program))
}

// Create adds a community program
// @Summary Create a community program
// @Description Creates a program. Online and hybrid programs get a meeting room; the default before/after surveys are attached.
// @Tags programs
// @Accept json
// @Produce json
// @Param request body dto.CreateProgramRequest true "Program information"
// @Success 201 {object} dto.APIResponse{data=dto.ProgramResponse} "Program created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or past date"
// @Security BearerAuth
// @Router /programs [post]
func (c *ProgramController) Create(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program, err := c.programService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(program))
}

// Update edits a program
// @Summary Update a community program
// @Tags programs
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Program fields"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramResponse} "Updated program"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id} [put]
func (c *ProgramController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program, err := c.programService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(program))
}

// Disable soft-deletes a program
// @Summary Disable a community program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse "Program disabled"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id}/disable [put]
func (c *ProgramController) Disable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.programService.SetDisabled(ctx.Request.Context(), id, true); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Program disabled"))
}

// Enable restores a disabled program
// @Summary Enable a community program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse "Program enabled"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id}/enable [put]
func (c *ProgramController) Enable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.programService.SetDisabled(ctx.Request.Context(), id, false); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Program enabled"))
}

// Register signs the caller up for a program
// @Summary Register for a program
// @Description Registers the caller as an attendee. Completed or disabled programs cannot be joined.
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse "Registered"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Security BearerAuth
// @Router /programs/{id}/register [post]
func (c *ProgramController) Register(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	if err := c.programService.Register(ctx.Request.Context(), id, accountID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Registered for program"))
}

// Unregister removes the caller's registration
// @Summary Unregister from a program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse "Unregistered"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Security BearerAuth
// @Router /programs/{id}/register [delete]
func (c *ProgramController) Unregister(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	if err := c.programService.Unregister(ctx.Request.Context(), id, accountID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Unregistered from program"))
}

// ListAttendees retrieves a program's registrations
// @Summary List program attendees
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendeeResponse} "Attendees"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs/{id}/attendees [get]
func (c *ProgramController) ListAttendees(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attendees, err := c.programService.ListAttendees(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendees))
}

// SendInvitations emails the meeting link to every attendee
// @Summary Send program invitations
// @Description Emails the program's meeting room link to every registered attendee and reports how many sends succeeded.
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationSummary} "Send summary"
// @Failure 409 {object} dto.ErrorResponse "Program has no meeting room"
// @Security BearerAuth
// @Router /programs/{id}/invitations [post]
func (c *ProgramController) SendInvitations(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.programService.SendInvitations(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}
