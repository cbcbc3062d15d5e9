package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/services"
	"github.com/trananh/clearpath/internal/middleware"
	"github.com/trananh/clearpath/internal/pkg/helpers"
)

// AccountController handles account management operations
type AccountController struct {
	accountService *services.AccountService
	logger         zerolog.Logger
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService *services.AccountService, logger zerolog.Logger) *AccountController {
	return &AccountController{
		accountService: accountService,
		logger:         logger,
	}
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// List handles account listing
// @Summary List accounts
// @Description Retrieves a paginated account listing. Disabled accounts are included when includeDisabled=true.
// @Tags accounts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param includeDisabled query bool false "Include disabled accounts"
// @Success 200 {object} dto.APIResponse{data=dto.AccountListResponse} "Accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (c *AccountController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	includeDisabled := ctx.Query("includeDisabled") == "true"

	accounts, err := c.accountService.List(ctx.Request.Context(), includeDisabled, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(accounts))
}

// GetMe returns the caller's own account
// @Summary Get own account
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Account"
// @Security BearerAuth
// @Router /accounts/me [get]
func (c *AccountController) GetMe(ctx *gin.Context) {
	accountID := middleware.AccountIDFromContext(ctx)

	account, err := c.accountService.GetByID(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(account))
}

// GetByID retrieves one account
// @Summary Get account by id
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Account"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (c *AccountController) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	account, err := c.accountService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(account))
}

// Create adds an account with an explicit role
// @Summary Create an account
// @Description Creates an account with any role. Restricted to administrators.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.AccountResponse} "Account created"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Security BearerAuth
// @Router /accounts [post]
func (c *AccountController) Create(ctx *gin.Context) {
	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	account, err := c.accountService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(account))
}

// UpdateMe edits the caller's own profile
// @Summary Update own profile
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body dto.UpdateAccountRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Updated account"
// @Security BearerAuth
// @Router /accounts/me [put]
func (c *AccountController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	account, err := c.accountService.Update(ctx.Request.Context(), accountID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(account))
}

// Update edits any account
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Updated account"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (c *AccountController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	account, err := c.accountService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(account))
}

// ChangeRole moves an account to another role
// @Summary Change an account's role
// @Description Changes the role. The new role applies to the account's existing tokens on their next request.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body dto.ChangeRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse "Role changed"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/role [put]
func (c *AccountController) ChangeRole(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.accountService.ChangeRole(ctx.Request.Context(), id, req.RoleName); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Role changed"))
}

// Disable soft-deletes an account
// @Summary Disable an account
// @Description Disables the account and revokes its refresh tokens.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse "Account disabled"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/disable [put]
func (c *AccountController) Disable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.accountService.SetDisabled(ctx.Request.Context(), id, true); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Account disabled"))
}

// Enable restores a disabled account
// @Summary Enable an account
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse "Account enabled"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/enable [put]
func (c *AccountController) Enable(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.accountService.SetDisabled(ctx.Request.Context(), id, false); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Account enabled"))
}

// Delete removes an account permanently
// @Summary Delete an account
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse "Account deleted"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (c *AccountController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.accountService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Account deleted"))
}

// UploadAvatar stores a profile photo for the caller
// @Summary Upload own avatar
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse} "Updated account"
// @Security BearerAuth
// @Router /accounts/me/avatar [post]
func (c *AccountController) UploadAvatar(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "A file upload is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	accountID := middleware.AccountIDFromContext(ctx)
	account, err := c.accountService.UploadAvatar(ctx.Request.Context(), accountID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(account))
}
