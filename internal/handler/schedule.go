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

// ScheduleHandler serves the daily slot grid for a pitch.  The same
// handler backs the public and the authenticated route; the only
// difference is the actor resolved from the request context.
type ScheduleHandler struct {
	Pitches      *repository.PitchRepo
	Reservations *repository.ReservationRepo
	Matches      *repository.MatchRepo
	Promotions   *repository.PromotionRepo
}

func NewScheduleHandler(p *repository.PitchRepo, r *repository.ReservationRepo,
	m *repository.MatchRepo, pr *repository.PromotionRepo) *ScheduleHandler {
	return &ScheduleHandler{Pitches: p, Reservations: r, Matches: m, Promotions: pr}
}

// Day returns the resolved schedule grid for one pitch and one day.
// GET /pitches/:id/schedule?day=YYYY-MM-DD
func (h *ScheduleHandler) Day(c echo.Context) error {
	pitchID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	day, err := parseDayQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pitch, reservations, matches, promotions, err := h.loadSnapshot(ctx, pitchID, day)
	if err != nil {
		return repoError(c, err)
	}

	grid := schedule.BuildDayGrid(time.Now().UTC(), day, pitch, actorFrom(c),
		reservations, matches, promotions)

	return c.JSON(http.StatusOK, echo.Map{
		"pitch": pitchPart(pitch),
		"day":   day.Format("2006-01-02"),
		"slots": grid,
	})
}

// loadSnapshot gathers everything the resolver needs for one
// pitch-day: the pitch itself, the day's reservations, their matches
// and the promotions active on that day.
func (h *ScheduleHandler) loadSnapshot(ctx context.Context, pitchID uint64, day time.Time) (
	model.Pitch, []model.Reservation, []model.Match, []model.Promotion, error) {

	pitch, err := h.Pitches.GetByID(ctx, pitchID)
	if err != nil {
		return model.Pitch{}, nil, nil, nil, err
	}
	reservations, err := h.Reservations.ListForPitchDay(ctx, pitchID, day)
	if err != nil {
		return model.Pitch{}, nil, nil, nil, err
	}
	ids := make([]uint64, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	matches, err := h.Matches.ListForReservations(ctx, ids)
	if err != nil {
		return model.Pitch{}, nil, nil, nil, err
	}
	promotions, err := h.Promotions.ListActiveOn(ctx, day)
	if err != nil {
		return model.Pitch{}, nil, nil, nil, err
	}
	return pitch, reservations, matches, promotions, nil
}
