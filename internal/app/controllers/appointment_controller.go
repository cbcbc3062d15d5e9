package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/services"
	"github.com/trananh/clearpath/internal/middleware"
)

// AppointmentController handles consultation appointment operations
type AppointmentController struct {
	appointmentService *services.AppointmentService
	logger             zerolog.Logger
}

// NewAppointmentController creates a new AppointmentController
func NewAppointmentController(appointmentService *services.AppointmentService, logger zerolog.Logger) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

// Book creates a pending appointment
// @Summary Book an appointment
// @Description Books a pending consultation with a consultant on a future date.
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Appointment details"
// @Success 201 {object} dto.APIResponse{data=dto.AppointmentResponse} "Appointment booked"
// @Failure 400 {object} dto.ErrorResponse "Past date or invalid time"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Security BearerAuth
// @Router /appointments [post]
func (c *AppointmentController) Book(ctx *gin.Context) {
	var req dto.BookAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	appointment, err := c.appointmentService.Book(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(appointment))
}

// ListMine retrieves the caller's appointments
// @Summary List own appointments
// @Tags appointments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AppointmentResponse} "Appointments"
// @Security BearerAuth
// @Router /appointments [get]
func (c *AppointmentController) ListMine(ctx *gin.Context) {
	accountID := middleware.AccountIDFromContext(ctx)

	appointments, err := c.appointmentService.ListByAccount(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appointments))
}

// ListAssigned retrieves appointments assigned to the calling consultant
// @Summary List appointments assigned to the calling consultant
// @Tags appointments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AppointmentResponse} "Appointments"
// @Failure 404 {object} dto.ErrorResponse "Caller has no consultant profile"
// @Security BearerAuth
// @Router /appointments/assigned [get]
func (c *AppointmentController) ListAssigned(ctx *gin.Context) {
	accountID := middleware.AccountIDFromContext(ctx)

	appointments, err := c.appointmentService.ListForConsultantAccount(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appointments))
}

// Confirm confirms a pending appointment
// @Summary Confirm an appointment
// @Description Confirms a pending appointment assigned to the calling consultant and mints its meeting room.
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AppointmentResponse} "Confirmed appointment"
// @Failure 403 {object} dto.ErrorResponse "Appointment belongs to another consultant"
// @Failure 409 {object} dto.ErrorResponse "Appointment is not pending"
// @Security BearerAuth
// @Router /appointments/{id}/confirm [put]
func (c *AppointmentController) Confirm(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	appointment, err := c.appointmentService.Confirm(ctx.Request.Context(), accountID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appointment))
}

// Reject rejects a pending appointment
// @Summary Reject an appointment
// @Description Rejects a pending appointment with a required reason.
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.RejectAppointmentRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.AppointmentResponse} "Rejected appointment"
// @Failure 400 {object} dto.ErrorResponse "Missing rejection reason"
// @Failure 409 {object} dto.ErrorResponse "Appointment is not pending"
// @Security BearerAuth
// @Router /appointments/{id}/reject [put]
func (c *AppointmentController) Reject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	appointment, err := c.appointmentService.Reject(ctx.Request.Context(), accountID, id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appointment))
}

// Cancel cancels the caller's own appointment
// @Summary Cancel an appointment
// @Description Cancels the caller's own pending or confirmed appointment.
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AppointmentResponse} "Cancelled appointment"
// @Failure 403 {object} dto.ErrorResponse "Appointment belongs to another account"
// @Failure 409 {object} dto.ErrorResponse "Appointment already finished"
// @Security BearerAuth
// @Router /appointments/{id}/cancel [put]
func (c *AppointmentController) Cancel(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	appointment, err := c.appointmentService.Cancel(ctx.Request.Context(), accountID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appointment))
}
