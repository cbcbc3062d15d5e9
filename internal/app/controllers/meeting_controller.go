package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/services"
	"github.com/trananh/clearpath/internal/middleware"
)

// MeetingController handles meeting room token issuance
type MeetingController struct {
	meetingService *services.MeetingService
	logger         zerolog.Logger
}

// NewMeetingController creates a new MeetingController
func NewMeetingController(meetingService *services.MeetingService, logger zerolog.Logger) *MeetingController {
	return &MeetingController{
		meetingService: meetingService,
		logger:         logger,
	}
}

// IssueToken issues a room-scoped token
// @Summary Issue a meeting room token
// @Description Issues a signed, short-lived token for the meeting room of a program the caller attends or a confirmed appointment the caller belongs to.
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body dto.MeetingTokenRequest true "Program or appointment id"
// @Success 200 {object} dto.APIResponse{data=dto.MeetingTokenResponse} "Room token"
// @Failure 403 {object} dto.ErrorResponse "Caller does not belong to the room"
// @Failure 409 {object} dto.ErrorResponse "No meeting room or appointment not confirmed"
// @Security BearerAuth
// @Router /meetings/token [post]
func (c *MeetingController) IssueToken(ctx *gin.Context) {
	var req dto.MeetingTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	token, err := c.meetingService.IssueToken(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}
