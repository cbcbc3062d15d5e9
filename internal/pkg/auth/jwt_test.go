package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(42, "member42", 5)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("AccountID = %d, want 42", claims.AccountID)
	}
	if claims.Username != "member42" {
		t.Errorf("Username = %q, want member42", claims.Username)
	}
	if claims.RoleID != 5 {
		t.Errorf("RoleID = %d, want 5", claims.RoleID)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(1, "user", 1)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = svc.ValidateToken(access)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	access, _, _, _, err := svc.GenerateTokenPair(1, "user", 1)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := other.ValidateToken(access); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(time.Hour)
	if _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Error("expected validation to fail for malformed input")
	}
}

func TestGenerateRoomToken(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateRoomToken(7, "room-abc", 2*time.Hour)
	if err != nil {
		t.Fatalf("GenerateRoomToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty room token")
	}

	// Room tokens use a different claim shape and must not pass as access tokens
	second, err := svc.GenerateRoomToken(7, "room-abc", 2*time.Hour)
	if err != nil {
		t.Fatalf("GenerateRoomToken: %v", err)
	}
	if token == second {
		t.Error("room tokens should carry unique IDs")
	}
}
