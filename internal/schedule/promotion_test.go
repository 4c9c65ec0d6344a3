package schedule

import (
	"testing"
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

func weekPromotion() model.Promotion {
	return model.Promotion{
		ID:              1,
		DiscountPercent: 10,
		StartsOn:        time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC),
		EndsOn:          time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC),
		Weekdays:        []time.Weekday{time.Monday, time.Friday},
		Hours:           []int{18, 19},
	}
}

func TestPromotionApplies(t *testing.T) {
	p := weekPromotion()
	monday := time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, time.May, 8, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		day   time.Time
		hour  int
		pitch uint64
		want  bool
	}{
		{"monday 18h", monday, 18, 7, true},
		{"friday 19h", friday, 19, 7, true},
		{"wrong weekday", tuesday, 18, 7, false},
		{"wrong hour", monday, 17, 7, false},
		{"before window", monday.AddDate(0, 0, -7), 18, 7, false},
		{"after window", monday.AddDate(0, 0, 14), 18, 7, false},
		{"first day inclusive", p.StartsOn, 18, 7, true},
		{"last day inclusive", time.Date(2026, time.May, 8, 0, 0, 0, 0, time.UTC), 18, 7, true},
	}
	for _, tc := range cases {
		if got := PromotionApplies(p, tc.day, tc.hour, tc.pitch); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestPromotionApplies_WindowEndsInclusive(t *testing.T) {
	p := weekPromotion()
	p.Weekdays = []time.Weekday{time.Sunday}
	// EndsOn carries a late-in-the-day timestamp; day truncation keeps
	// the whole last day inside the window.
	p.EndsOn = time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(2026, time.May, 10, 23, 0, 0, 0, time.UTC)
	if !PromotionApplies(p, lastDay, 18, 7) {
		t.Fatal("last day of the window must be covered")
	}
}

func TestPromotionApplies_PitchRestriction(t *testing.T) {
	p := weekPromotion()
	monday := p.StartsOn

	// Empty restriction set covers every pitch.
	if !PromotionApplies(p, monday, 18, 99) {
		t.Fatal("empty pitch set must apply to all pitches")
	}

	p.PitchIDs = []uint64{7, 8}
	if !PromotionApplies(p, monday, 18, 7) {
		t.Fatal("restricted promotion must apply to a listed pitch")
	}
	if PromotionApplies(p, monday, 18, 99) {
		t.Fatal("restricted promotion must not apply to an unlisted pitch")
	}
}

func TestBestPromotion_TieKeepsInputOrder(t *testing.T) {
	a := weekPromotion()
	a.ID = 1
	b := weekPromotion()
	b.ID = 2
	monday := a.StartsOn
	got := BestPromotion([]model.Promotion{a, b}, monday, 18, 7)
	if got == nil || got.ID != 1 {
		t.Fatalf("equal discounts must keep the first promotion, got %+v", got)
	}
}

func TestBestPromotion_NoneApplicable(t *testing.T) {
	p := weekPromotion()
	tuesday := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)
	if got := BestPromotion([]model.Promotion{p}, tuesday, 18, 7); got != nil {
		t.Fatalf("expected nil when nothing applies, got %+v", got)
	}
	if got := BestPromotion(nil, tuesday, 18, 7); got != nil {
		t.Fatalf("expected nil for empty promotion list, got %+v", got)
	}
}

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		base uint32
		pct  uint8
		want uint32
	}{
		{5000, 0, 5000},
		{5000, 20, 4000},
		{5000, 25, 3750},
		{5000, 100, 0},
		{333, 10, 299}, // rounds down
	}
	for _, tc := range cases {
		if got := DiscountedPrice(tc.base, tc.pct); got != tc.want {
			t.Fatalf("DiscountedPrice(%d, %d): expected %d, got %d", tc.base, tc.pct, tc.want, got)
		}
	}
}
