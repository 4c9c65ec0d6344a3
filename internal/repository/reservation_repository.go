package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup matches
// no row for the requesting user.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides persistence for reservations.  A slot is
// one pitch-hour; at most one non-canceled reservation may occupy it.
// That invariant is enforced by CreateTx, which must run inside a
// transaction so concurrent bookings of the same slot serialize.  All
// timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = "id, pitch_id, user_id, starts_at, status, payment_status, total_amount_cents, payment_ref, created_at, updated_at"

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var (
		res        model.Reservation
		paymentRef sql.NullString
	)
	err := row.Scan(&res.ID, &res.PitchID, &res.UserID, &res.StartsAt, &res.Status,
		&res.PaymentStatus, &res.TotalAmountCents, &paymentRef, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	if paymentRef.Valid {
		ref := paymentRef.String
		res.PaymentRef = &ref
	}
	return res, nil
}

// CreateTx inserts a reservation within an existing transaction after
// verifying the slot is still free.  The slot check locks matching
// rows (FOR UPDATE) so two concurrent bookings of the same pitch-hour
// cannot both pass it.  Returns ErrConflict when the slot is taken.
// The generated ID is populated on the provided record.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	hourStart := res.StartsAt.Truncate(time.Hour)
	var occupied int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
		  WHERE pitch_id = ? AND status <> ?
			AND starts_at >= ? AND starts_at < ?
		  FOR UPDATE`,
		res.PitchID, model.ReservationCanceled, hourStart, hourStart.Add(time.Hour)).Scan(&occupied)
	if err != nil {
		return err
	}
	if occupied > 0 {
		return ErrConflict
	}
	result, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (pitch_id, user_id, starts_at, status, payment_status, total_amount_cents) VALUES (?,?,?,?,?,?)",
		res.PitchID, res.UserID, res.StartsAt, res.Status, res.PaymentStatus, res.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// GetByID fetches a single reservation regardless of owner.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, err
}

// ListForPitchDay returns every reservation (including canceled ones)
// whose start falls on the given UTC day for one pitch.  The schedule
// resolver filters canceled rows itself.
func (r *ReservationRepo) ListForPitchDay(ctx context.Context, pitchID uint64, day time.Time) ([]model.Reservation, error) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE pitch_id=? AND starts_at >= ? AND starts_at < ? ORDER BY starts_at",
		pitchID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ListByUser returns all reservations booked by the user, most recent
// slot first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id=? ORDER BY starts_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// MarkPaid settles a reservation owned by userID, storing the payment
// reference and confirming the booking.  Paying twice, or paying a
// canceled reservation, yields ErrConflict.
func (r *ReservationRepo) MarkPaid(ctx context.Context, userID, reservationID uint64, paymentRef string) (model.Reservation, error) {
	res, err := r.GetByID(ctx, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.UserID != userID {
		return model.Reservation{}, ErrForbidden
	}
	if res.Status == model.ReservationCanceled || res.Paid() {
		return model.Reservation{}, ErrConflict
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE reservations SET payment_status=?, status=?, payment_ref=? WHERE id=?",
		model.PaymentPaid, model.ReservationConfirmed, paymentRef, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	return r.GetByID(ctx, reservationID)
}

// Cancel marks a reservation canceled.  Only the booking user may
// cancel, and only before the reserved hour has started.
func (r *ReservationRepo) Cancel(ctx context.Context, userID, reservationID uint64, now time.Time) error {
	res, err := r.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.UserID != userID {
		return ErrForbidden
	}
	if res.Status == model.ReservationCanceled || !res.StartsAt.Truncate(time.Hour).After(now) {
		return ErrConflict
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?",
		model.ReservationCanceled, reservationID)
	return err
}
