package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// ErrMatchNotFound is returned when a match lookup matches no row.
var ErrMatchNotFound = errors.New("match not found")

// Sides of a match as stored in match_players.side.
const (
	SideHome = "HOME"
	SideAway = "AWAY"
)

// MatchRepo provides persistence for matches and their rosters.
// Rosters live in the match_players table, one row per confirmed
// player with the side they play on.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo returns a MatchRepo bound to the given database.
func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *MatchRepo) DB() *sql.DB { return r.db }

const matchColumns = "id, reservation_id, manager_id, home_team_id, away_team_id, status, allow_challenges, allow_external_players, created_at, updated_at"

func scanMatch(row interface{ Scan(...any) error }) (model.Match, error) {
	var (
		m          model.Match
		home, away sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.ReservationID, &m.ManagerID, &home, &away, &m.Status,
		&m.AllowChallenges, &m.AllowExternalPlayers, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Match{}, err
	}
	if home.Valid {
		v := uint64(home.Int64)
		m.HomeTeamID = &v
	}
	if away.Valid {
		v := uint64(away.Int64)
		m.AwayTeamID = &v
	}
	return m, nil
}

// Create inserts a match for a reservation.  The unique key on
// reservation_id keeps it to one match per reservation; a duplicate
// insert yields ErrConflict.  The generated ID is populated on the
// provided record.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) error {
	var home, away any
	if m.HomeTeamID != nil {
		home = *m.HomeTeamID
	}
	if m.AwayTeamID != nil {
		away = *m.AwayTeamID
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO matches (reservation_id, manager_id, home_team_id, away_team_id, status, allow_challenges, allow_external_players) VALUES (?,?,?,?,?,?,?)",
		m.ReservationID, m.ManagerID, home, away, m.Status, m.AllowChallenges, m.AllowExternalPlayers)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a match with both rosters loaded.
func (r *MatchRepo) GetByID(ctx context.Context, id uint64) (model.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, ErrMatchNotFound
	}
	if err != nil {
		return model.Match{}, err
	}
	if err := r.loadRosters(ctx, map[uint64]*model.Match{m.ID: &m}); err != nil {
		return model.Match{}, err
	}
	return m, nil
}

// ListForReservations returns the matches attached to any of the given
// reservations, rosters included, preserving insertion order.  An
// empty input returns nil without touching the database.
func (r *MatchRepo) ListForReservations(ctx context.Context, reservationIDs []uint64) ([]model.Match, error) {
	if len(reservationIDs) == 0 {
		return nil, nil
	}
	query := "SELECT " + matchColumns + " FROM matches WHERE reservation_id IN (?" +
		strings.Repeat(",?", len(reservationIDs)-1) + ") ORDER BY id"
	args := make([]any, len(reservationIDs))
	for i, id := range reservationIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Index after scanning; taking element pointers while appending
	// would leave them on a stale backing array.
	byID := make(map[uint64]*model.Match, len(out))
	for i := range out {
		byID[out[i].ID] = &out[i]
	}
	if err := r.loadRosters(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

// loadRosters fills HomePlayerIDs/AwayPlayerIDs for the given matches.
func (r *MatchRepo) loadRosters(ctx context.Context, byID map[uint64]*model.Match) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]any, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	query := "SELECT match_id, user_id, side FROM match_players WHERE match_id IN (?" +
		strings.Repeat(",?", len(ids)-1) + ") ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			matchID, userID uint64
			side            string
		)
		if err := rows.Scan(&matchID, &userID, &side); err != nil {
			return err
		}
		m, ok := byID[matchID]
		if !ok {
			continue
		}
		if side == SideAway {
			m.AwayPlayerIDs = append(m.AwayPlayerIDs, userID)
		} else {
			m.HomePlayerIDs = append(m.HomePlayerIDs, userID)
		}
	}
	return rows.Err()
}

// ClaimAwaySide assigns a challenging team to the away side of an open
// practice match and moves it to SCHEDULED.  The guarded UPDATE keeps
// the claim atomic: when another team already took the away side the
// statement affects no rows and ErrConflict is returned.
func (r *MatchRepo) ClaimAwaySide(ctx context.Context, matchID, teamID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE matches SET away_team_id=?, status=? WHERE id=? AND away_team_id IS NULL",
		teamID, model.MatchScheduled, matchID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// AddPlayerTx adds a player to a match roster inside a transaction.
// The roster is re-counted under a row lock on the match so concurrent
// joins cannot exceed capacity; ErrConflict is returned when the match
// is already full or the player already joined.
func (r *MatchRepo) AddPlayerTx(ctx context.Context, tx *sql.Tx, matchID, userID uint64, side string, capacity int) error {
	// Lock the match row to serialize concurrent joins.
	var id uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM matches WHERE id=? FOR UPDATE", matchID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return err
	}
	var current int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM match_players WHERE match_id=?", matchID).Scan(&current); err != nil {
		return err
	}
	if capacity > 0 && current >= capacity {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO match_players (match_id, user_id, side) VALUES (?,?,?)",
		matchID, userID, side); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// SetStatus transitions a match to the given lifecycle status.
func (r *MatchRepo) SetStatus(ctx context.Context, matchID uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE matches SET status=? WHERE id=?", status, matchID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMatchNotFound
	}
	return nil
}
