package model

import "time"

// Promotion is a time-windowed percentage discount on pitch bookings.
// The validity window is inclusive at both ends with day granularity.
// Weekdays and Hours restrict when the discount applies; PitchIDs
// restricts where; an empty PitchIDs set means the promotion applies
// to every pitch.
//
// Fields:
//  ID              – primary key identifier.
//  CreatorID       – promoter or owner who created the promotion.
//  Name            – display name of the campaign.
//  DiscountPercent – percentage taken off the base price (1-100).
//  StartsOn        – first day of validity (inclusive).
//  EndsOn          – last day of validity (inclusive).
//  Weekdays        – weekdays on which the discount applies.
//  Hours           – hours of the day (0-23) on which it applies.
//  PitchIDs        – restricted pitch set; empty means all pitches.
//  CreatedAt       – creation timestamp.
type Promotion struct {
	ID              uint64         // promotions.id
	CreatorID       uint64         // promotions.creator_id
	Name            string         // promotions.name
	DiscountPercent uint8          // promotions.discount_percent
	StartsOn        time.Time      // promotions.starts_on
	EndsOn          time.Time      // promotions.ends_on
	Weekdays        []time.Weekday // promotion_weekdays rows
	Hours           []int          // promotion_hours rows
	PitchIDs        []uint64       // promotion_pitches rows (empty = all)
	CreatedAt       time.Time      // promotions.created_at
}
