package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenCarriesClaims(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "MANAGER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse failed: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Fatalf("expected sub 42, got %v", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "MANAGER" {
		t.Fatalf("expected role MANAGER, got %v", claims["role"])
	}
	if time.Until(at.Exp) <= 0 {
		t.Fatal("expected a future expiry")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("expected 96 hex chars, got %d", len(rt.Raw))
	}
	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	if h1 != h2 {
		t.Fatal("hash must be deterministic")
	}
	if h1 == rt.Raw {
		t.Fatal("hash must differ from the raw token")
	}
	other, _ := NewRefreshToken(7)
	if HashRefreshRaw(other.Raw) == h1 {
		t.Fatal("distinct tokens must hash differently")
	}
}
