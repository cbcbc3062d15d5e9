package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/auth"
)

type stubRoleResolver struct {
	roles map[int64]string
}

func (s *stubRoleResolver) RoleNameByAccountID(_ context.Context, accountID int64) (string, error) {
	role, ok := s.roles[accountID]
	if !ok {
		return "", apperrors.ErrAccountNotFound
	}
	return role, nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func setupRouter(m *AuthMiddleware, roles ...models.RoleName) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", m.RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"accountId": AccountIDFromContext(c),
			"role":      RoleNameFromContext(c),
		})
	})
	return r
}

func TestRequireRolesNoTokenReturns401(t *testing.T) {
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, &stubRoleResolver{})
	r := setupRouter(m, models.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for missing token, got %d", w.Code)
	}
}

func TestRequireRolesGuestAllowedWithoutToken(t *testing.T) {
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, &stubRoleResolver{})
	r := setupRouter(m, models.RoleGuest, models.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for guest route without token, got %d", w.Code)
	}
}

func TestRequireRolesInvalidTokenReturns403(t *testing.T) {
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, &stubRoleResolver{})
	// Even guest routes reject a malformed token
	r := setupRouter(m, models.RoleGuest, models.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for invalid token, got %d", w.Code)
	}
}

func TestRequireRolesExpiredTokenReturns403(t *testing.T) {
	expiredService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  -time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	accessToken, _, _, _, err := expiredService.GenerateTokenPair(1, "member1", 5)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	m := NewAuthMiddleware(newTestJWTService(), &stubRoleResolver{roles: map[int64]string{1: "Member"}})
	r := setupRouter(m, models.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for expired token, got %d", w.Code)
	}
}

func TestRequireRolesRoleMismatchReturns403(t *testing.T) {
	jwtService := newTestJWTService()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(1, "member1", 5)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	m := NewAuthMiddleware(jwtService, &stubRoleResolver{roles: map[int64]string{1: "Member"}})
	r := setupRouter(m, models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for insufficient role, got %d", w.Code)
	}
}

func TestRequireRolesResolvesRoleFromDatabase(t *testing.T) {
	jwtService := newTestJWTService()
	// Token was issued while the account was a Member; the account has
	// since been promoted to Staff.
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(7, "promoted", 5)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	m := NewAuthMiddleware(jwtService, &stubRoleResolver{roles: map[int64]string{7: "Staff"}})
	r := setupRouter(m, models.RoleStaff)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 once the database role matches, got %d", w.Code)
	}
}

func TestRequireRolesDisabledAccountReturns403(t *testing.T) {
	jwtService := newTestJWTService()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(9, "ghost", 5)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// Resolver returns no role for disabled or deleted accounts
	m := NewAuthMiddleware(jwtService, &stubRoleResolver{roles: map[int64]string{}})
	r := setupRouter(m, models.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for disabled account, got %d", w.Code)
	}
}
