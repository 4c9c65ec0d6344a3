package schedule

import (
	"testing"
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

func TestPlayerCapacity(t *testing.T) {
	cases := []struct {
		sport string
		want  int
	}{
		{model.SportFut5, 10},
		{model.SportFutsal, 10},
		{model.SportFut7, 14},
		{model.SportFut11, 22},
		{"PADEL", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := PlayerCapacity(tc.sport); got != tc.want {
			t.Fatalf("PlayerCapacity(%q): expected %d, got %d", tc.sport, tc.want, got)
		}
	}
}

func TestGameDuration(t *testing.T) {
	cases := []struct {
		sport string
		want  time.Duration
	}{
		{model.SportFut11, 90 * time.Minute},
		{model.SportFut7, 50 * time.Minute},
		{model.SportFut5, 40 * time.Minute},
		{model.SportFutsal, 40 * time.Minute},
		{"PADEL", 90 * time.Minute}, // default
	}
	for _, tc := range cases {
		if got := GameDuration(tc.sport); got != tc.want {
			t.Fatalf("GameDuration(%q): expected %v, got %v", tc.sport, tc.want, got)
		}
	}
}

func TestHourLabelRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		label := HourLabel(hour)
		got, ok := ParseHourLabel(label)
		if !ok || got != hour {
			t.Fatalf("round trip failed for hour %d: label %q parsed to (%d, %v)", hour, label, got, ok)
		}
	}
}

func TestParseHourLabelRejectsGarbage(t *testing.T) {
	for _, label := range []string{"", "24:00", "8pm", "18", "99:99"} {
		if _, ok := ParseHourLabel(label); ok {
			t.Fatalf("expected %q to be rejected", label)
		}
	}
}
