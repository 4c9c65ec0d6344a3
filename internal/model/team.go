package model

import "time"

// Team groups players under a manager.  Teams claim the sides of a
// match: the creating manager's team takes the home side, a challenging
// manager's team the away side.
//
// Fields:
//  ID        – primary key identifier.
//  ManagerID – user managing the team.
//  Name      – unique team name.
//  PlayerIDs – users currently on the roster.
//  CreatedAt – creation timestamp.
type Team struct {
	ID        uint64    // teams.id
	ManagerID uint64    // teams.manager_id
	Name      string    // teams.name
	PlayerIDs []uint64  // team_players rows
	CreatedAt time.Time // teams.created_at
}
