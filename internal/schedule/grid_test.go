package schedule

import (
	"testing"
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

func TestBuildDayGrid(t *testing.T) {
	pitch := testPitch(model.SportFut7)
	res := testReservation(model.PaymentPaid)
	grid := BuildDayGrid(testNow, testDay, pitch, Actor{}, []model.Reservation{res}, nil, nil)

	if len(grid) != pitch.OpenTo-pitch.OpenFrom {
		t.Fatalf("expected %d slots, got %d", pitch.OpenTo-pitch.OpenFrom, len(grid))
	}
	if grid[0].Hour != pitch.OpenFrom || grid[0].Label != "08:00" {
		t.Fatalf("unexpected first slot: hour=%d label=%q", grid[0].Hour, grid[0].Label)
	}
	for _, s := range grid {
		if want := s.StartsAt.Add(50 * time.Minute); !s.EndsAt.Equal(want) {
			t.Fatalf("slot %s: expected end %v, got %v", s.Label, want, s.EndsAt)
		}
		switch {
		case s.Hour == 18:
			if s.Status != StatusBooked {
				t.Fatalf("18:00 should be BOOKED, got %s", s.Status)
			}
		default:
			if s.Status != StatusAvailable {
				t.Fatalf("%s should be AVAILABLE, got %s", s.Label, s.Status)
			}
		}
	}
}

func TestBuildDayGrid_MalformedOpeningRange(t *testing.T) {
	pitch := testPitch(model.SportFut5)
	pitch.OpenFrom = 22
	pitch.OpenTo = 8
	if grid := BuildDayGrid(testNow, testDay, pitch, Actor{}, nil, nil, nil); grid != nil {
		t.Fatalf("expected nil grid for inverted range, got %d slots", len(grid))
	}
}
