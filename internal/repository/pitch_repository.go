package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// ErrPitchNotFound is returned when a pitch lookup matches no row.
var ErrPitchNotFound = errors.New("pitch not found")

// PitchRepo encapsulates persistence for pitches.  Ownership checks
// live here so that handlers only translate sentinel errors into
// status codes.
type PitchRepo struct {
	db *sql.DB
}

// NewPitchRepo constructs a PitchRepo given a DB handle.
func NewPitchRepo(db *sql.DB) *PitchRepo { return &PitchRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *PitchRepo) DB() *sql.DB { return r.db }

const pitchColumns = "id, owner_id, name, sport, base_price_cents, open_from, open_to, created_at, updated_at"

func scanPitch(row interface{ Scan(...any) error }) (model.Pitch, error) {
	var p model.Pitch
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Sport, &p.BasePriceCents, &p.OpenFrom, &p.OpenTo, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a pitch and populates the generated ID.
func (r *PitchRepo) Create(ctx context.Context, p *model.Pitch) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO pitches (owner_id, name, sport, base_price_cents, open_from, open_to) VALUES (?,?,?,?,?,?)",
		p.OwnerID, p.Name, p.Sport, p.BasePriceCents, p.OpenFrom, p.OpenTo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a single pitch.  Returns ErrPitchNotFound when no
// row exists.
func (r *PitchRepo) GetByID(ctx context.Context, id uint64) (model.Pitch, error) {
	p, err := scanPitch(r.db.QueryRowContext(ctx,
		"SELECT "+pitchColumns+" FROM pitches WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Pitch{}, ErrPitchNotFound
	}
	return p, err
}

// List returns all pitches ordered by name.
func (r *PitchRepo) List(ctx context.Context) ([]model.Pitch, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+pitchColumns+" FROM pitches ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Pitch
	for rows.Next() {
		p, err := scanPitch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update modifies a pitch owned by ownerID.  Non-owners receive
// ErrForbidden; a missing pitch yields ErrPitchNotFound.
func (r *PitchRepo) Update(ctx context.Context, ownerID uint64, p model.Pitch) error {
	current, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if current.OwnerID != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE pitches SET name=?, sport=?, base_price_cents=?, open_from=?, open_to=? WHERE id=?",
		p.Name, p.Sport, p.BasePriceCents, p.OpenFrom, p.OpenTo, p.ID)
	return err
}

// Delete removes a pitch owned by ownerID.  Deletion is refused with
// ErrConflict while active future reservations exist on the pitch.
func (r *PitchRepo) Delete(ctx context.Context, ownerID, pitchID uint64) error {
	current, err := r.GetByID(ctx, pitchID)
	if err != nil {
		return err
	}
	if current.OwnerID != ownerID {
		return ErrForbidden
	}
	var upcoming int
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE pitch_id=? AND status <> ? AND starts_at >= UTC_TIMESTAMP()",
		pitchID, model.ReservationCanceled).Scan(&upcoming)
	if err != nil {
		return err
	}
	if upcoming > 0 {
		return ErrConflict
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM pitches WHERE id=?", pitchID)
	return err
}
