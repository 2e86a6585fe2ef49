package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestVerifyRoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")
	userID := uuid.New()

	token, err := v.Sign(userID, "manager", time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "manager" {
		t.Fatalf("role = %q, want manager", claims.Role)
	}
}

func TestVerifyExpired(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Sign(uuid.New(), "stylist", -time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := v.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewVerifier("issuer-secret").Sign(uuid.New(), "manager", time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := NewVerifier("other-secret").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}

	if _, err := NewVerifier("issuer-secret").Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
