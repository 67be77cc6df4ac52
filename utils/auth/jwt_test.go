package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "simpdb-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(7, "198501012010", "lecturer", 3, 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "198501012010" || claims.Role != "lecturer" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.LecturerID != 3 {
		t.Errorf("LecturerID = %d, want 3", claims.LecturerID)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 1 {
		t.Errorf("TokenVersion = %d, want 1", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims.ID = %q, want %q", claims.ID, jti)
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := testManager()

	token, _, err := m.GenerateRefreshToken(7, "admin", "admin", 0, 0)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	token, _, err := m.GenerateAccessToken(1, "admin", "admin", 0, 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation with the wrong secret to fail")
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: -time.Minute})
	token, _, err := m.GenerateAccessToken(1, "admin", "admin", 0, 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestGetTokenExpiry(t *testing.T) {
	m := testManager()
	token, _, err := m.GenerateAccessToken(1, "admin", "admin", 0, 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	exp, err := m.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("GetTokenExpiry failed: %v", err)
	}
	remaining := time.Until(exp)
	if remaining <= 55*time.Minute || remaining > time.Hour {
		t.Errorf("unexpected expiry: %v from now", remaining)
	}
}
