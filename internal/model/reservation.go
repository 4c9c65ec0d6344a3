package model

import "time"

// Reservation lifecycle statuses.  CANCELED is terminal: a canceled
// reservation no longer occupies its slot and is invisible to the
// schedule resolver.  PENDING and CONFIRMED both count as active.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCanceled  = "CANCELED"
)

// Payment statuses for a reservation.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// Reservation records a booked hour-slot on a pitch.  StartsAt is
// stored with hour granularity in UTC; sub-hour drift in stored values
// is tolerated by comparing year/month/day/hour independently when the
// schedule is resolved.
//
// Fields:
//  ID               – primary key identifier.
//  PitchID          – pitch being reserved.
//  UserID           – user who made the reservation.
//  StartsAt         – start of the reserved hour (UTC).
//  Status           – lifecycle status (PENDING, CONFIRMED, CANCELED).
//  PaymentStatus    – PENDING until settled, then PAID.
//  TotalAmountCents – total price charged for the slot, in cents.
//  PaymentRef       – external payment reference once paid, if any.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
	ID               uint64    // reservations.id
	PitchID          uint64    // reservations.pitch_id
	UserID           uint64    // reservations.user_id
	StartsAt         time.Time // reservations.starts_at
	Status           string    // reservations.status
	PaymentStatus    string    // reservations.payment_status
	TotalAmountCents uint32    // reservations.total_amount_cents
	PaymentRef       *string   // reservations.payment_ref (nullable)
	CreatedAt        time.Time // reservations.created_at
	UpdatedAt        time.Time // reservations.updated_at
}

// Active reports whether the reservation still occupies its slot.
func (r Reservation) Active() bool {
	return r.Status != ReservationCanceled
}

// Paid reports whether the reservation has been fully settled.
func (r Reservation) Paid() bool {
	return r.PaymentStatus == PaymentPaid
}
