package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/config"
	"github.com/fbranqinho/sportify-studio-sub001/internal/utils"
)

const testRateSecret = "rate-limit-test-secret"

func testRateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{Enabled: true, Rate: 60, Burst: 20, Window: time.Minute, Prefix: "rl"}
}

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBuildRateKey_Anonymous(t *testing.T) {
	c := newTestContext()
	key := buildRateKey("rl", testRateSecret, c)
	if key != "rl:ip:"+c.RealIP() {
		t.Fatalf("got %q", key)
	}
}

func TestBuildRateKey_UserIDInContext(t *testing.T) {
	c := newTestContext()
	c.Set("user_id", float64(31))
	if key := buildRateKey("rl", testRateSecret, c); key != "rl:user:31" {
		t.Fatalf("got %q", key)
	}
}

// The limiter runs before JWTAuth, so the per-user key must come from
// the bearer token itself, not from context state no one has set yet.
func TestBuildRateKey_BearerToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testRateSecret, 7, "PLAYER", 15)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	c := newTestContext()
	c.Request().Header.Set("Authorization", "Bearer "+tok.Token)
	if key := buildRateKey("rl", testRateSecret, c); key != "rl:user:7" {
		t.Fatalf("got %q", key)
	}
}

func TestBuildRateKey_InvalidBearerFallsBackToIP(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", 7, "PLAYER", 15)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	c := newTestContext()
	c.Request().Header.Set("Authorization", "Bearer "+tok.Token)
	if key := buildRateKey("rl", testRateSecret, c); key != "rl:ip:"+c.RealIP() {
		t.Fatalf("got %q", key)
	}
}

func TestAsInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{int64(1), 1},
		{"42", 42},
		{"not a number", 0},
		{nil, 0},
		{3.5, 0},
	}
	for _, tc := range cases {
		if got := asInt64(tc.in); got != tc.want {
			t.Fatalf("asInt64(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNewTokenBucket_NilClientIsNoop(t *testing.T) {
	mw := NewTokenBucket(nil, testRateConfig(), testRateSecret)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(newTestContext()); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}
