package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// ErrTeamNotFound is returned when a team lookup matches no row.
var ErrTeamNotFound = errors.New("team not found")

// TeamRepo provides persistence for teams and their rosters.
type TeamRepo struct {
	db *sql.DB
}

// NewTeamRepo returns a TeamRepo bound to the given database.
func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{db: db} }

// Create inserts a team.  Duplicate team names yield ErrConflict.
func (r *TeamRepo) Create(ctx context.Context, t *model.Team) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO teams (manager_id, name) VALUES (?,?)", t.ManagerID, t.Name)
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
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a team with its roster loaded.
func (r *TeamRepo) GetByID(ctx context.Context, id uint64) (model.Team, error) {
	var t model.Team
	err := r.db.QueryRowContext(ctx,
		"SELECT id, manager_id, name, created_at FROM teams WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.ManagerID, &t.Name, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Team{}, ErrTeamNotFound
	}
	if err != nil {
		return model.Team{}, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id FROM team_players WHERE team_id=? ORDER BY id", id)
	if err != nil {
		return model.Team{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var userID uint64
		if err := rows.Scan(&userID); err != nil {
			return model.Team{}, err
		}
		t.PlayerIDs = append(t.PlayerIDs, userID)
	}
	return t, rows.Err()
}

// ListByManager returns all teams managed by the user.
func (r *TeamRepo) ListByManager(ctx context.Context, managerID uint64) ([]model.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, manager_id, name, created_at FROM teams WHERE manager_id=? ORDER BY name",
		managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.ManagerID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddPlayer puts a user on the team roster.  Adding the same player
// twice yields ErrConflict.
func (r *TeamRepo) AddPlayer(ctx context.Context, teamID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO team_players (team_id, user_id) VALUES (?,?)", teamID, userID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}
