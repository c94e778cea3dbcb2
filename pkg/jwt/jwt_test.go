package jwt

import (
	"testing"
	"time"

	"go-hospital-booking/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:       "unit-test-secret",
		Issuer:       "hospital-booking",
		AccessExpiry: time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "doctor")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "doctor" {
		t.Errorf("Role = %q, want doctor", claims.Role)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken(uuid.New(), "patient")
	if err != nil {
		t.Fatal(err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestService().GenerateAccessToken(uuid.New(), "admin")
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "another", Issuer: "hospital-booking", AccessExpiry: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := newTestService().ValidateToken("not-a-jwt"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
