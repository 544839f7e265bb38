package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "user" {
		t.Errorf("role = %s, want user", claims.Role)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("type = %s, want %s", claims.Type, TokenTypeAccess)
	}
}

func TestValidateAccessTokenErrors(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	userID := uuid.New()

	t.Run("expired token", func(t *testing.T) {
		expired := NewService("test-secret", -time.Hour)
		token, err := expired.GenerateAccessToken(userID, "user")
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}

		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, ErrExpiredToken) {
			t.Errorf("ValidateAccessToken() error = %v, want ErrExpiredToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService("other-secret", time.Hour)
		token, err := other.GenerateAccessToken(userID, "user")
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}

		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateAccessToken() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateAccessToken() error = %v, want ErrInvalidToken", err)
		}
	})
}
