package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextAccountID = "accountID"
	ContextUsername  = "username"
	ContextRoleName  = "roleName"
)

// RoleResolver resolves the current role of an account. The role is looked
// up per request so that role changes take effect without re-login.
type RoleResolver interface {
	RoleNameByAccountID(ctx context.Context, accountID int64) (string, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	roles      RoleResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, roles RoleResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		roles:      roles,
	}
}

// RequireRoles guards a route group. Requests without a token are only let
// through when Guest is among the allowed roles; a present but invalid,
// expired or insufficient token is always rejected, even on guest routes.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...models.RoleName) gin.HandlerFunc {
	guestAllowed := false
	for _, role := range allowedRoles {
		if role == models.RoleGuest {
			guestAllowed = true
		}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			if guestAllowed {
				c.Set(ContextRoleName, string(models.RoleGuest))
				c.Next()
				return
			}

			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			// Some clients wrap the token in quotes
			authHeader = strings.Trim(authHeader, "\"'")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			} else {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Access denied")
				errorDetail = errorDetail.WithDetails("Invalid token format")

				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
				return
			}
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			} else if errors.Is(err, auth.ErrInvalidFormat) {
				errorDetails = "Invalid token format"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Access denied")
			errorDetail = errorDetail.WithDetails(errorDetails)
			errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityError)

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		// Role is resolved from the database, not the token, so a role
		// change applies to the account's next request.
		roleName, err := m.roles.RoleNameByAccountID(c.Request.Context(), claims.AccountID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("Account is not active")

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		allowed := false
		for _, role := range allowedRoles {
			if string(role) == roleName {
				allowed = true
				break
			}
		}
		if !allowed {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
			errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityError)

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRoleName, roleName)

		c.Next()
	}
}

// AccountIDFromContext returns the authenticated account id, or 0 for guests.
func AccountIDFromContext(c *gin.Context) int64 {
	value, exists := c.Get(ContextAccountID)
	if !exists {
		return 0
	}
	id, ok := value.(int64)
	if !ok {
		return 0
	}
	return id
}

// RoleNameFromContext returns the resolved role name of the request.
func RoleNameFromContext(c *gin.Context) string {
	value, exists := c.Get(ContextRoleName)
	if !exists {
		return string(models.RoleGuest)
	}
	name, ok := value.(string)
	if !ok {
		return string(models.RoleGuest)
	}
	return name
}
