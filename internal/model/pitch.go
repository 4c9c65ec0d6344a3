package model

import "time"

// Sport codes recognised by the scheduling rules.  The code determines
// both the player capacity of a match and its regulation duration.
const (
	SportFut5   = "FUT5"
	SportFut7   = "FUT7"
	SportFut11  = "FUT11"
	SportFutsal = "FUTSAL"
)

// ValidSport reports whether the given code is one of the supported sports.
func ValidSport(sport string) bool {
	switch sport {
	case SportFut5, SportFut7, SportFut11, SportFutsal:
		return true
	}
	return false
}

// Pitch is a bookable physical field belonging to an owner.  Prices are
// stored per hour in cents.  OpenFrom/OpenTo bound the hours shown on
// the daily schedule grid (OpenTo is exclusive).
//
// Fields:
//  ID             – primary key identifier.
//  OwnerID        – user who owns the pitch.
//  Name           – display name of the pitch.
//  Sport          – sport code (FUT5, FUT7, FUT11, FUTSAL).
//  BasePriceCents – base price for one hour, in cents.
//  OpenFrom       – first bookable hour of the day (0-23).
//  OpenTo         – hour the pitch closes (exclusive, 1-24).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Pitch struct {
	ID             uint64    // pitches.id
	OwnerID        uint64    // pitches.owner_id
	Name           string    // pitches.name
	Sport          string    // pitches.sport
	BasePriceCents uint32    // pitches.base_price_cents
	OpenFrom       int       // pitches.open_from
	OpenTo         int       // pitches.open_to
	CreatedAt      time.Time // pitches.created_at
	UpdatedAt      time.Time // pitches.updated_at
}
