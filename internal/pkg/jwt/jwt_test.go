package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateAccessToken(tok.Value)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID || claims.Role != "admin" || claims.ID != tok.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	tok, err := NewService("one", time.Hour).GenerateAccessToken(uuid.New(), "client")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewService("two", time.Hour).ValidateAccessToken(tok.Value); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateExpired(t *testing.T) {
	svc := NewService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := svc.GenerateAccessToken(uuid.New(), "client")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateAccessToken(tok.Value); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}
