package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
	"github.com/fbranqinho/sportify-studio-sub001/internal/repository"
	"github.com/fbranqinho/sportify-studio-sub001/internal/schedule"
)

// MatchHandler covers match creation on a reservation, the challenge
// and apply flows for practice matches, and the start/finish
// transitions.
type MatchHandler struct {
	Reservations *repository.ReservationRepo
	Matches      *repository.MatchRepo
	Teams        *repository.TeamRepo
	Pitches      *repository.PitchRepo
}

func NewMatchHandler(r *repository.ReservationRepo, m *repository.MatchRepo,
	t *repository.TeamRepo, p *repository.PitchRepo) *MatchHandler {
	return &MatchHandler{Reservations: r, Matches: m, Teams: t, Pitches: p}
}

type createMatchReq struct {
	TeamID               uint64 `json:"team_id"`
	AllowChallenges      bool   `json:"allow_challenges"`
	AllowExternalPlayers bool   `json:"allow_external_players"`
}

type challengeReq struct {
	TeamID uint64 `json:"team_id"`
}

type matchResp struct {
	ID                   uint64   `json:"id"`
	ReservationID        uint64   `json:"reservation_id"`
	ManagerID            uint64   `json:"manager_id"`
	HomeTeamID           *uint64  `json:"home_team_id"`
	AwayTeamID           *uint64  `json:"away_team_id"`
	Status               string   `json:"status"`
	AllowChallenges      bool     `json:"allow_challenges"`
	AllowExternalPlayers bool     `json:"allow_external_players"`
	HomePlayerIDs        []uint64 `json:"home_player_ids"`
	AwayPlayerIDs        []uint64 `json:"away_player_ids"`
}

func matchPart(m model.Match) matchResp {
	return matchResp{
		ID:                   m.ID,
		ReservationID:        m.ReservationID,
		ManagerID:            m.ManagerID,
		HomeTeamID:           m.HomeTeamID,
		AwayTeamID:           m.AwayTeamID,
		Status:               m.Status,
		AllowChallenges:      m.AllowChallenges,
		AllowExternalPlayers: m.AllowExternalPlayers,
		HomePlayerIDs:        m.HomePlayerIDs,
		AwayPlayerIDs:        m.AwayPlayerIDs,
	}
}

// Create attaches a practice match to one of the manager's own
// reservations, the manager's team taking the home side.  MANAGER.
func (h *MatchHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createMatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.TeamID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "team_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservation, err := h.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return repoError(c, err)
	}
	if reservation.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	}
	if !reservation.Active() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is canceled"})
	}
	team, err := h.Teams.GetByID(ctx, req.TeamID)
	if err != nil {
		return repoError(c, err)
	}
	if team.ManagerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your team"})
	}

	home := req.TeamID
	match := model.Match{
		ReservationID:        reservationID,
		ManagerID:            userID,
		HomeTeamID:           &home,
		Status:               model.MatchCollecting,
		AllowChallenges:      req.AllowChallenges,
		AllowExternalPlayers: req.AllowExternalPlayers,
	}
	if err := h.Matches.Create(ctx, &match); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already has a match"})
		}
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, matchPart(match))
}

// Get returns one match with rosters.
func (h *MatchHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	match, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, matchPart(match))
}

// Challenge lets another manager's team claim the away side of an open
// practice match.  The claim is a guarded update, so two simultaneous
// challengers cannot both win.  MANAGER.
func (h *MatchHandler) Challenge(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	matchID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req challengeReq
	if err := c.Bind(&req); err != nil || req.TeamID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "team_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	match, err := h.Matches.GetByID(ctx, matchID)
	if err != nil {
		return repoError(c, err)
	}
	if !match.Practice() || !match.AllowChallenges {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match is not open for challenges"})
	}
	if match.ManagerID == userID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot challenge your own match"})
	}
	team, err := h.Teams.GetByID(ctx, req.TeamID)
	if err != nil {
		return repoError(c, err)
	}
	if team.ManagerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your team"})
	}

	// ClaimAwaySide flips the match to SCHEDULED in the same guarded
	// UPDATE that sets the away team.
	if err := h.Matches.ClaimAwaySide(ctx, matchID, req.TeamID); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "match already has an opponent"})
		}
		return repoError(c, err)
	}
	match, err = h.Matches.GetByID(ctx, matchID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, matchPart(match))
}

// Apply lets an individual player join a practice match that accepts
// external players, as long as the roster is below the sport's
// capacity.  The roster count runs under a row lock so concurrent
// applications cannot overfill the match.  PLAYER.
func (h *MatchHandler) Apply(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	matchID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	match, err := h.Matches.GetByID(ctx, matchID)
	if err != nil {
		return repoError(c, err)
	}
	if !match.Practice() || !match.AllowExternalPlayers {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match is not open for players"})
	}
	reservation, err := h.Reservations.GetByID(ctx, match.ReservationID)
	if err != nil {
		return repoError(c, err)
	}
	pitch, err := h.Pitches.GetByID(ctx, reservation.PitchID)
	if err != nil {
		return repoError(c, err)
	}
	capacity := schedule.PlayerCapacity(pitch.Sport)
	if capacity == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match is not open for players"})
	}

	tx, err := h.Matches.DB().BeginTx(ctx, nil)
	if err != nil {
		return repoError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Matches.AddPlayerTx(ctx, tx, matchID, userID, repository.SideHome, capacity); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "match is full or you already joined"})
		}
		return repoError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return repoError(c, err)
	}
	committed = true

	share := reservation.TotalAmountCents / uint32(capacity)
	return c.JSON(http.StatusOK, echo.Map{
		"message":           "joined match",
		"match_id":          matchID,
		"price_share_cents": share,
	})
}

// Start transitions a match to IN_PROGRESS.  Allowed for the owning
// manager or a referee.
func (h *MatchHandler) Start(c echo.Context) error {
	return h.transition(c, model.MatchInProgress,
		[]string{model.MatchCollecting, model.MatchScheduled})
}

// Finish transitions a match to FINISHED.  Allowed for the owning
// manager or a referee.
func (h *MatchHandler) Finish(c echo.Context) error {
	return h.transition(c, model.MatchFinished,
		[]string{model.MatchInProgress})
}

func (h *MatchHandler) transition(c echo.Context, target string, allowedFrom []string) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	matchID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	match, err := h.Matches.GetByID(ctx, matchID)
	if err != nil {
		return repoError(c, err)
	}
	if match.ManagerID != userID && getRole(c) != model.RoleReferee {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	ok := false
	for _, s := range allowedFrom {
		if match.Status == s {
			ok = true
			break
		}
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	}
	if err := h.Matches.SetStatus(ctx, matchID, target); err != nil {
		return repoError(c, err)
	}
	match.Status = target
	return c.JSON(http.StatusOK, matchPart(match))
}
