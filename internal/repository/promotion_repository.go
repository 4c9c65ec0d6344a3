package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// ErrPromotionNotFound is returned when a promotion lookup matches no row.
var ErrPromotionNotFound = errors.New("promotion not found")

// PromotionRepo provides persistence for promotions.  The weekday,
// hour and pitch applicability sets live in side tables keyed by the
// promotion; they are written together with the promotion row in one
// transaction and loaded back as slices on the model.
type PromotionRepo struct {
	db *sql.DB
}

// NewPromotionRepo returns a PromotionRepo bound to the given database.
func NewPromotionRepo(db *sql.DB) *PromotionRepo { return &PromotionRepo{db: db} }

// Create inserts a promotion with its applicability sets.  The
// generated ID is populated on the provided record.
func (r *PromotionRepo) Create(ctx context.Context, p *model.Promotion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO promotions (creator_id, name, discount_percent, starts_on, ends_on) VALUES (?,?,?,?,?)",
		p.CreatorID, p.Name, p.DiscountPercent, p.StartsOn, p.EndsOn)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	for _, wd := range p.Weekdays {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO promotion_weekdays (promotion_id, weekday) VALUES (?,?)", p.ID, int(wd)); err != nil {
			return err
		}
	}
	for _, h := range p.Hours {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO promotion_hours (promotion_id, hour) VALUES (?,?)", p.ID, h); err != nil {
			return err
		}
	}
	for _, pid := range p.PitchIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO promotion_pitches (promotion_id, pitch_id) VALUES (?,?)", p.ID, pid); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListActiveOn returns every promotion whose validity window contains
// the given UTC day, applicability sets loaded.  Weekday/hour/pitch
// filtering is left to the schedule resolver.
func (r *PromotionRepo) ListActiveOn(ctx context.Context, day time.Time) ([]model.Promotion, error) {
	y, m, d := day.Date()
	onDay := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return r.list(ctx,
		"SELECT id, creator_id, name, discount_percent, starts_on, ends_on, created_at FROM promotions WHERE starts_on <= ? AND ends_on >= ? ORDER BY id",
		onDay, onDay)
}

// List returns all promotions with their applicability sets.
func (r *PromotionRepo) List(ctx context.Context) ([]model.Promotion, error) {
	return r.list(ctx,
		"SELECT id, creator_id, name, discount_percent, starts_on, ends_on, created_at FROM promotions ORDER BY id")
}

func (r *PromotionRepo) list(ctx context.Context, query string, args ...any) ([]model.Promotion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Promotion
	for rows.Next() {
		var p model.Promotion
		if err := rows.Scan(&p.ID, &p.CreatorID, &p.Name, &p.DiscountPercent, &p.StartsOn, &p.EndsOn, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Index after scanning; taking element pointers while appending
	// would leave them on a stale backing array.
	byID := make(map[uint64]*model.Promotion, len(out))
	for i := range out {
		byID[out[i].ID] = &out[i]
	}
	if err := r.loadSets(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

// loadSets fills Weekdays, Hours and PitchIDs for the given
// promotions.  Each side table is read in one query scoped to the ids
// at hand.
func (r *PromotionRepo) loadSets(ctx context.Context, byID map[uint64]*model.Promotion) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]any, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	in := "(?" + strings.Repeat(",?", len(ids)-1) + ")"

	if err := r.loadSet(ctx,
		"SELECT promotion_id, weekday FROM promotion_weekdays WHERE promotion_id IN "+in+" ORDER BY promotion_id, weekday",
		ids, func(p *model.Promotion, v int) {
			p.Weekdays = append(p.Weekdays, time.Weekday(v))
		}, byID); err != nil {
		return err
	}
	if err := r.loadSet(ctx,
		"SELECT promotion_id, hour FROM promotion_hours WHERE promotion_id IN "+in+" ORDER BY promotion_id, hour",
		ids, func(p *model.Promotion, v int) {
			p.Hours = append(p.Hours, v)
		}, byID); err != nil {
		return err
	}
	return r.loadSet(ctx,
		"SELECT promotion_id, pitch_id FROM promotion_pitches WHERE promotion_id IN "+in+" ORDER BY promotion_id, pitch_id",
		ids, func(p *model.Promotion, v int) {
			p.PitchIDs = append(p.PitchIDs, uint64(v))
		}, byID)
}

// loadSet runs one side-table query and appends each value onto its
// promotion through add.
func (r *PromotionRepo) loadSet(ctx context.Context, query string, ids []any, add func(*model.Promotion, int), byID map[uint64]*model.Promotion) error {
	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id uint64
			v  int
		)
		if err := rows.Scan(&id, &v); err != nil {
			return err
		}
		if p, ok := byID[id]; ok {
			add(p, v)
		}
	}
	return rows.Err()
}

// Delete removes a promotion created by creatorID.  Side-table rows
// cascade via foreign keys.
func (r *PromotionRepo) Delete(ctx context.Context, creatorID, promotionID uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT creator_id FROM promotions WHERE id=? LIMIT 1", promotionID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPromotionNotFound
	}
	if err != nil {
		return err
	}
	if owner != creatorID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM promotions WHERE id=?", promotionID)
	return err
}
