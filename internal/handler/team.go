package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
	"github.com/fbranqinho/sportify-studio-sub001/internal/repository"
)

// TeamHandler serves team management for managers.
type TeamHandler struct {
	Teams *repository.TeamRepo
}

func NewTeamHandler(t *repository.TeamRepo) *TeamHandler {
	return &TeamHandler{Teams: t}
}

type teamReq struct {
	Name string `json:"name"`
}

type addPlayerReq struct {
	UserID uint64 `json:"user_id"`
}

type teamResp struct {
	ID        uint64   `json:"id"`
	ManagerID uint64   `json:"manager_id"`
	Name      string   `json:"name"`
	PlayerIDs []uint64 `json:"player_ids"`
}

func teamPart(t model.Team) teamResp {
	return teamResp{ID: t.ID, ManagerID: t.ManagerID, Name: t.Name, PlayerIDs: t.PlayerIDs}
}

// Create registers a team under the authenticated manager.  MANAGER.
func (h *TeamHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req teamReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	team := model.Team{ManagerID: userID, Name: strings.TrimSpace(req.Name)}
	if err := h.Teams.Create(ctx, &team); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "team name already taken"})
		}
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, teamPart(team))
}

// Mine lists the authenticated manager's teams.  MANAGER.
func (h *TeamHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	teams, err := h.Teams.ListByManager(ctx, userID)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]teamResp, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamPart(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"teams": out})
}

// AddPlayer puts a user on one of the manager's team rosters.  MANAGER.
func (h *TeamHandler) AddPlayer(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	teamID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req addPlayerReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		return repoError(c, err)
	}
	if team.ManagerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your team"})
	}
	if err := h.Teams.AddPlayer(ctx, teamID, req.UserID); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "player already on the roster"})
		}
		return repoError(c, err)
	}
	team, err = h.Teams.GetByID(ctx, teamID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, teamPart(team))
}
