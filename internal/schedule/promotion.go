package schedule

import (
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// PromotionApplies reports whether the promotion covers the given day,
// hour and pitch.  The validity window is inclusive at both ends and
// compared with day granularity; an empty pitch restriction set means
// the promotion covers every pitch.
func PromotionApplies(p model.Promotion, day time.Time, hour int, pitchID uint64) bool {
	d := truncateDay(day)
	if d.Before(truncateDay(p.StartsOn)) || d.After(truncateDay(p.EndsOn)) {
		return false
	}
	if !containsWeekday(p.Weekdays, d.Weekday()) {
		return false
	}
	if !containsInt(p.Hours, hour) {
		return false
	}
	if len(p.PitchIDs) > 0 && !containsID(p.PitchIDs, pitchID) {
		return false
	}
	return true
}

// BestPromotion selects the applicable promotion with the highest
// discount percentage for the given slot.  Ties keep the earliest
// promotion in input order.  It returns nil when none applies.
func BestPromotion(promos []model.Promotion, day time.Time, hour int, pitchID uint64) *model.Promotion {
	var best *model.Promotion
	for i := range promos {
		if !PromotionApplies(promos[i], day, hour, pitchID) {
			continue
		}
		if best == nil || promos[i].DiscountPercent > best.DiscountPercent {
			best = &promos[i]
		}
	}
	return best
}

// DiscountedPrice applies a percentage discount to a price in cents,
// rounding down.
func DiscountedPrice(baseCents uint32, discountPercent uint8) uint32 {
	if discountPercent == 0 {
		return baseCents
	}
	if discountPercent >= 100 {
		return 0
	}
	return uint32(uint64(baseCents) * uint64(100-discountPercent) / 100)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsWeekday(set []time.Weekday, wd time.Weekday) bool {
	for _, w := range set {
		if w == wd {
			return true
		}
	}
	return false
}

func containsInt(set []int, n int) bool {
	for _, v := range set {
		if v == n {
			return true
		}
	}
	return false
}

func containsID(set []uint64, id uint64) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
