package queue

import "time"

// PaidQueue is the durable queue carrying reservation payment events.
const PaidQueue = "reservation.paid"

// ReservationPaidEvent is published once a reservation's payment
// settles.  Consumers use it for receipts and owner notifications.
type ReservationPaidEvent struct {
	ReservationID uint64    `json:"reservation_id"`
	UserID        uint64    `json:"user_id"`
	PitchID       uint64    `json:"pitch_id"`
	PitchName     string    `json:"pitch_name"`
	Sport         string    `json:"sport"`
	StartsAt      time.Time `json:"starts_at"`
	AmountCents   uint32    `json:"amount_cents"`
	PaymentRef    string    `json:"payment_ref"`
	PaidAt        time.Time `json:"paid_at"`
}
