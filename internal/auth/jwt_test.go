package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, "shadowing-test", 15*time.Minute)
	learnerID := uuid.New()

	token, err := manager.GenerateAccessToken(learnerID)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if got != learnerID {
		t.Errorf("expected learnerID %s, got %s", learnerID, got)
	}
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, "shadowing-test", -time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = manager.ValidateToken(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestJWTManager_ValidateToken_InvalidSignature(t *testing.T) {
	issuer := NewJWTManager(testSecret, "shadowing-test", time.Minute)
	verifier := NewJWTManager("another-secret-that-is-also-32-chars-long!", "shadowing-test", time.Minute)

	token, err := issuer.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTManager_ValidateToken_WrongIssuer(t *testing.T) {
	issuer := NewJWTManager(testSecret, "someone-else", time.Minute)
	verifier := NewJWTManager(testSecret, "shadowing-test", time.Minute)

	token, err := issuer.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTManager_ValidateToken_Malformed(t *testing.T) {
	manager := NewJWTManager(testSecret, "shadowing-test", time.Minute)

	for _, token := range []string{"", "not-a-jwt", "a.b.c", strings.Repeat("x", 300)} {
		if _, err := manager.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestJWTManager_ValidateToken_NonUUIDSubject(t *testing.T) {
	manager := NewJWTManager(testSecret, "shadowing-test", time.Minute)

	claims := jwt.RegisteredClaims{
		Subject:   "learner-42",
		Issuer:    "shadowing-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := manager.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTManager_ValidateToken_NoExpiry(t *testing.T) {
	manager := NewJWTManager(testSecret, "shadowing-test", time.Minute)

	claims := jwt.RegisteredClaims{Subject: uuid.NewString(), Issuer: "shadowing-test"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := manager.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
