package model

import "time"

// Match lifecycle statuses.
const (
	MatchCollecting = "COLLECTING" // still gathering players or an opponent
	MatchScheduled  = "SCHEDULED"  // both sides settled, waiting for kick-off
	MatchInProgress = "IN_PROGRESS"
	MatchFinished   = "FINISHED"
)

// Match is a game attached to a reservation.  A match always references
// a reservation, but a reservation need not yet carry a match.  When
// only the home team is set the match is a practice match: depending on
// its flags it accepts challenges from other managers' teams or
// applications from individual players.
//
// Fields:
//  ID                   – primary key identifier.
//  ReservationID        – reservation the match is played on.
//  ManagerID            – manager who created the match.
//  HomeTeamID           – home side (nullable in the schema, set in practice).
//  AwayTeamID           – away side; nil while the match is open.
//  Status               – lifecycle status.
//  AllowChallenges      – other managers may claim the away side.
//  AllowExternalPlayers – individual players may join the rosters.
//  HomePlayerIDs        – confirmed players on the home side.
//  AwayPlayerIDs        – confirmed players on the away side.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Match struct {
	ID                   uint64    // matches.id
	ReservationID        uint64    // matches.reservation_id
	ManagerID            uint64    // matches.manager_id
	HomeTeamID           *uint64   // matches.home_team_id (nullable)
	AwayTeamID           *uint64   // matches.away_team_id (nullable)
	Status               string    // matches.status
	AllowChallenges      bool      // matches.allow_challenges
	AllowExternalPlayers bool      // matches.allow_external_players
	HomePlayerIDs        []uint64  // match_players rows, side = HOME
	AwayPlayerIDs        []uint64  // match_players rows, side = AWAY
	CreatedAt            time.Time // matches.created_at
	UpdatedAt            time.Time // matches.updated_at
}

// Practice reports whether the match has only its home side assigned
// and is therefore open for an opponent or individual players.
func (m Match) Practice() bool {
	return m.HomeTeamID != nil && m.AwayTeamID == nil
}

// RosterSize returns the number of confirmed players across both sides.
func (m Match) RosterSize() int {
	return len(m.HomePlayerIDs) + len(m.AwayPlayerIDs)
}
