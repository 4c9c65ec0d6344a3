package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
	"github.com/fbranqinho/sportify-studio-sub001/internal/repository"
	"github.com/fbranqinho/sportify-studio-sub001/internal/schedule"
)

// PitchHandler serves the public pitch catalogue and the owner-facing
// management endpoints.
type PitchHandler struct {
	Pitches *repository.PitchRepo
}

func NewPitchHandler(p *repository.PitchRepo) *PitchHandler {
	return &PitchHandler{Pitches: p}
}

type pitchReq struct {
	Name           string `json:"name"`
	Sport          string `json:"sport"`
	BasePriceCents uint32 `json:"base_price_cents"`
	OpenFrom       int    `json:"open_from"`
	OpenTo         int    `json:"open_to"`
}

type pitchResp struct {
	ID             uint64 `json:"id"`
	OwnerID        uint64 `json:"owner_id"`
	Name           string `json:"name"`
	Sport          string `json:"sport"`
	BasePriceCents uint32 `json:"base_price_cents"`
	OpenFrom       int    `json:"open_from"`
	OpenTo         int    `json:"open_to"`
	Capacity       int    `json:"capacity"`
	DurationMin    int    `json:"game_duration_min"`
}

func pitchPart(p model.Pitch) pitchResp {
	return pitchResp{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Name:           p.Name,
		Sport:          p.Sport,
		BasePriceCents: p.BasePriceCents,
		OpenFrom:       p.OpenFrom,
		OpenTo:         p.OpenTo,
		Capacity:       schedule.PlayerCapacity(p.Sport),
		DurationMin:    int(schedule.GameDuration(p.Sport).Minutes()),
	}
}

func (r pitchReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if !model.ValidSport(r.Sport) {
		return "invalid sport"
	}
	if r.BasePriceCents == 0 {
		return "base_price_cents must be positive"
	}
	if r.OpenFrom < 0 || r.OpenTo > 24 || r.OpenFrom >= r.OpenTo {
		return "invalid opening hours"
	}
	return ""
}

// List returns all pitches.  Public.
func (h *PitchHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pitches, err := h.Pitches.List(ctx)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]pitchResp, 0, len(pitches))
	for _, p := range pitches {
		out = append(out, pitchPart(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"pitches": out})
}

// Get returns one pitch.  Public.
func (h *PitchHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pitch, err := h.Pitches.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, pitchPart(pitch))
}

// Create registers a pitch under the authenticated owner.
// OWNER or ADMIN.
func (h *PitchHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req pitchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Sport = strings.ToUpper(strings.TrimSpace(req.Sport))
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pitch := model.Pitch{
		OwnerID:        userID,
		Name:           strings.TrimSpace(req.Name),
		Sport:          req.Sport,
		BasePriceCents: req.BasePriceCents,
		OpenFrom:       req.OpenFrom,
		OpenTo:         req.OpenTo,
	}
	if err := h.Pitches.Create(ctx, &pitch); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, pitchPart(pitch))
}

// Update edits a pitch.  Owners edit their own pitches; admins edit
// any pitch.
func (h *PitchHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req pitchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Sport = strings.ToUpper(strings.TrimSpace(req.Sport))
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Pitches.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	asOwner := userID
	if getRole(c) == model.RoleAdmin {
		asOwner = current.OwnerID
	}
	updated := model.Pitch{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Sport:          req.Sport,
		BasePriceCents: req.BasePriceCents,
		OpenFrom:       req.OpenFrom,
		OpenTo:         req.OpenTo,
	}
	if err := h.Pitches.Update(ctx, asOwner, updated); err != nil {
		return repoError(c, err)
	}
	pitch, err := h.Pitches.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, pitchPart(pitch))
}

// Delete removes a pitch.  Refused while future active reservations
// exist.  Owners delete their own pitches; admins delete any.
func (h *PitchHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	asOwner := userID
	if getRole(c) == model.RoleAdmin {
		current, err := h.Pitches.GetByID(ctx, id)
		if err != nil {
			return repoError(c, err)
		}
		asOwner = current.OwnerID
	}
	if err := h.Pitches.Delete(ctx, asOwner, id); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "pitch deleted"})
}
