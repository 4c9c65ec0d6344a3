// Package schedule classifies pitch calendar slots.  Given a snapshot
// of reservations, matches and promotions already loaded by the caller,
// it derives for each (pitch, day, hour) slot exactly one status, the
// price to display and the records backing that decision.  Everything
// in this package is pure: no I/O, no clock reads, no mutation of the
// input collections.
package schedule

import (
	"fmt"
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// SlotStatus is the discrete classification of one calendar slot.  The
// statuses are mutually exclusive; Resolve returns exactly one.
type SlotStatus string

const (
	StatusPast           SlotStatus = "PAST"             // slot start is before now
	StatusLive           SlotStatus = "LIVE"             // a match is in progress on the slot
	StatusOpenForTeam    SlotStatus = "OPEN_FOR_TEAM"    // practice match accepting a challenge from the viewing manager
	StatusOpenForPlayers SlotStatus = "OPEN_FOR_PLAYERS" // practice match accepting the viewing player
	StatusBooked         SlotStatus = "BOOKED"           // reserved and fully paid
	StatusPending        SlotStatus = "PENDING"          // reserved, payment outstanding
	StatusAvailable      SlotStatus = "AVAILABLE"        // free to book
)

// Actor is the role-tagged user the slot is being resolved for.  A
// guest viewer has a zero ID and an empty role, which disables every
// role-gated status.
type Actor struct {
	ID   uint64
	Role string
}

// SlotInfo is the result of resolving one slot.  Reservation, Match and
// Promotion point into the caller's snapshot and are nil when the
// status does not involve them.
type SlotInfo struct {
	Status      SlotStatus         `json:"status"`
	PriceCents  uint32             `json:"price_cents"`
	Reservation *model.Reservation `json:"-"`
	Match       *model.Match       `json:"-"`
	Promotion   *model.Promotion   `json:"-"`
}

// slotQuery bundles the slot coordinates with the records found for it.
// The rule list below reads from it; rules never write.
type slotQuery struct {
	now         time.Time
	day         time.Time
	hour        int
	pitch       model.Pitch
	actor       Actor
	reservation *model.Reservation
	match       *model.Match
}

// rule inspects a reserved slot and either claims it, returning the
// resulting SlotInfo, or passes to the next rule.
type rule func(q *slotQuery) (SlotInfo, bool)

// reservedSlotRules is the ordered rule list applied once an active
// reservation has been found for the slot.  Order is the priority
// contract: live beats the open-for offers, which beat booked, which
// beats pending.  pendingRule always fires, so the walk is total.
var reservedSlotRules = []rule{
	liveRule,
	openForTeamRule,
	openForPlayersRule,
	bookedRule,
	pendingRule,
}

// Resolve classifies the slot at (day, hour) on the given pitch as seen
// by actor.  now supplies the current instant so that callers control
// the clock; reservations, matches and promotions are the snapshot the
// decision is made over.  The function is total: it returns exactly one
// status for any well-formed input.
func Resolve(now, day time.Time, hour int, pitch model.Pitch, actor Actor,
	reservations []model.Reservation, matches []model.Match, promotions []model.Promotion) SlotInfo {

	// Past short-circuits everything else.  The slot instant is the day
	// at the given hour with zero minutes and seconds.
	start := slotStart(day, hour)
	if start.Before(now) {
		return SlotInfo{Status: StatusPast, PriceCents: pitch.BasePriceCents}
	}

	q := &slotQuery{now: now, day: day, hour: hour, pitch: pitch, actor: actor}
	q.reservation = findReservation(reservations, pitch.ID, day, hour)
	if q.reservation == nil {
		return availableSlot(promotions, day, hour, pitch)
	}
	q.match = findMatch(matches, q.reservation.ID)

	for _, r := range reservedSlotRules {
		if info, ok := r(q); ok {
			return info
		}
	}
	// Unreachable: pendingRule claims every reserved slot.
	return SlotInfo{Status: StatusPending, PriceCents: q.reservation.TotalAmountCents, Reservation: q.reservation}
}

// liveRule claims the slot when its match is in progress.
func liveRule(q *slotQuery) (SlotInfo, bool) {
	if q.match == nil || q.match.Status != model.MatchInProgress {
		return SlotInfo{}, false
	}
	return SlotInfo{
		Status:      StatusLive,
		PriceCents:  q.reservation.TotalAmountCents,
		Reservation: q.reservation,
		Match:       q.match,
	}, true
}

// openForTeamRule offers a practice match to a manager who may
// challenge it.  The match's own manager never sees the offer.  The
// price is reported as zero: challenge terms are negotiated elsewhere.
func openForTeamRule(q *slotQuery) (SlotInfo, bool) {
	if q.match == nil || !q.match.Practice() {
		return SlotInfo{}, false
	}
	if q.actor.Role != model.RoleManager || !q.match.AllowChallenges || q.actor.ID == q.match.ManagerID {
		return SlotInfo{}, false
	}
	return SlotInfo{
		Status:      StatusOpenForTeam,
		PriceCents:  0,
		Reservation: q.reservation,
		Match:       q.match,
	}, true
}

// openForPlayersRule offers a practice match to a player while the
// roster is below the sport's capacity.  A zero capacity (unknown
// sport) disables the offer.  The price is the per-player share of the
// reservation total, split evenly over the capacity.
func openForPlayersRule(q *slotQuery) (SlotInfo, bool) {
	if q.match == nil || !q.match.Practice() {
		return SlotInfo{}, false
	}
	if q.actor.Role != model.RolePlayer || !q.match.AllowExternalPlayers {
		return SlotInfo{}, false
	}
	capacity := PlayerCapacity(q.pitch.Sport)
	if capacity == 0 || q.match.RosterSize() >= capacity {
		return SlotInfo{}, false
	}
	return SlotInfo{
		Status:      StatusOpenForPlayers,
		PriceCents:  q.reservation.TotalAmountCents / uint32(capacity),
		Reservation: q.reservation,
		Match:       q.match,
	}, true
}

// bookedRule claims fully paid reservations.
func bookedRule(q *slotQuery) (SlotInfo, bool) {
	if !q.reservation.Paid() {
		return SlotInfo{}, false
	}
	return SlotInfo{
		Status:      StatusBooked,
		PriceCents:  q.reservation.TotalAmountCents,
		Reservation: q.reservation,
		Match:       q.match,
	}, true
}

// pendingRule is the fallback for any active reservation.
func pendingRule(q *slotQuery) (SlotInfo, bool) {
	return SlotInfo{
		Status:      StatusPending,
		PriceCents:  q.reservation.TotalAmountCents,
		Reservation: q.reservation,
		Match:       q.match,
	}, true
}

// availableSlot prices a free slot, applying the best promotion that
// covers it.
func availableSlot(promotions []model.Promotion, day time.Time, hour int, pitch model.Pitch) SlotInfo {
	price := pitch.BasePriceCents
	promo := BestPromotion(promotions, day, hour, pitch.ID)
	if promo != nil {
		price = DiscountedPrice(price, promo.DiscountPercent)
	}
	return SlotInfo{Status: StatusAvailable, PriceCents: price, Promotion: promo}
}

// findReservation returns the first active reservation occupying the
// slot.  Stored start times may carry sub-hour drift, so year, month,
// day and hour are compared independently rather than as one timestamp.
// At most one active reservation per slot is a data invariant enforced
// by the booking path; the first hit wins.
func findReservation(reservations []model.Reservation, pitchID uint64, day time.Time, hour int) *model.Reservation {
	for i := range reservations {
		r := &reservations[i]
		if r.PitchID != pitchID || !r.Active() {
			continue
		}
		if sameSlot(r.StartsAt, day, hour) {
			return r
		}
	}
	return nil
}

// findMatch returns the first match in input order referencing the
// reservation.  The data model does not forbid several matches on one
// reservation; when that happens the earliest stored one is used.
func findMatch(matches []model.Match, reservationID uint64) *model.Match {
	for i := range matches {
		if matches[i].ReservationID == reservationID {
			return &matches[i]
		}
	}
	return nil
}

// sameSlot reports whether t falls on the given day and hour.
func sameSlot(t, day time.Time, hour int) bool {
	return t.Year() == day.Year() && t.Month() == day.Month() && t.Day() == day.Day() && t.Hour() == hour
}

// slotStart builds the instant a slot begins: the day at the given hour
// with minutes and seconds zeroed.
func slotStart(day time.Time, hour int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, day.Location())
}

// HourLabel formats an hour of the day as the HH:MM label used on the
// schedule grid.
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseHourLabel parses an HH:MM label back into an hour of the day.
// Minutes are ignored; labels outside 00-23 are rejected.
func ParseHourLabel(label string) (int, bool) {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}
