package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

func newTestContext(t *testing.T, path string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestGetUserID_ClaimTypes(t *testing.T) {
	c := newTestContext(t, "/")

	c.Set("user_id", float64(42))
	if id, err := getUserID(c); err != nil || id != 42 {
		t.Fatalf("float64 claim: got (%d, %v)", id, err)
	}

	c.Set("user_id", "17")
	if id, err := getUserID(c); err != nil || id != 17 {
		t.Fatalf("string claim: got (%d, %v)", id, err)
	}

	c.Set("user_id", nil)
	if _, err := getUserID(c); err == nil {
		t.Fatal("missing claim: expected error")
	}
}

func TestActorFrom_GuestIsZero(t *testing.T) {
	c := newTestContext(t, "/")
	actor := actorFrom(c)
	if actor.ID != 0 || actor.Role != "" {
		t.Fatalf("guest actor should be zero, got %+v", actor)
	}
}

func TestActorFrom_Authenticated(t *testing.T) {
	c := newTestContext(t, "/")
	c.Set("user_id", float64(9))
	c.Set("role", model.RoleManager)
	actor := actorFrom(c)
	if actor.ID != 9 || actor.Role != model.RoleManager {
		t.Fatalf("got %+v", actor)
	}
}

func TestParseDayQuery(t *testing.T) {
	c := newTestContext(t, "/?date=2026-05-04")
	day, err := parseDayQuery(c)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Fatalf("got %v, want %v", day, want)
	}

	c = newTestContext(t, "/?date=04-05-2026")
	if _, err := parseDayQuery(c); err == nil {
		t.Fatal("expected error for wrong format")
	}

	// Absent day defaults to today at midnight UTC.
	c = newTestContext(t, "/")
	day, err = parseDayQuery(c)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if day.Hour() != 0 || day.Minute() != 0 || day.Location() != time.UTC {
		t.Fatalf("default day not midnight UTC: %v", day)
	}
}

func TestParseIDParam(t *testing.T) {
	c := newTestContext(t, "/")
	c.SetParamNames("id")
	c.SetParamValues("123")
	if id, err := parseIDParam(c, "id"); err != nil || id != 123 {
		t.Fatalf("got (%d, %v)", id, err)
	}

	c.SetParamValues("0")
	if _, err := parseIDParam(c, "id"); err == nil {
		t.Fatal("zero id should be rejected")
	}

	c.SetParamValues("abc")
	if _, err := parseIDParam(c, "id"); err == nil {
		t.Fatal("non-numeric id should be rejected")
	}
}
