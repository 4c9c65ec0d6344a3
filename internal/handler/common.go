package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/repository"
	"github.com/fbranqinho/sportify-studio-sub001/internal/schedule"
)

// getUserID extracts the authenticated user ID stored in the Echo
// context by the JWT middleware.  Claims decode numbers as float64, so
// that is the common case; other representations are handled for
// robustness.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), nil
	case uint64:
		return v, nil
	case int64:
		return uint64(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, errors.New("invalid user id in token")
		}
		return id, nil
	default:
		return 0, errors.New("user id not found in context")
	}
}

// getRole returns the role claim set by the JWT middleware, or empty
// for unauthenticated requests.
func getRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	return ""
}

// actorFrom builds the schedule actor for the current request.  Guests
// resolve as the zero actor, which sees only the public statuses.
func actorFrom(c echo.Context) schedule.Actor {
	id, err := getUserID(c)
	if err != nil {
		return schedule.Actor{}
	}
	return schedule.Actor{ID: id, Role: getRole(c)}
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// parseDayQuery parses the ?date=YYYY-MM-DD query parameter as a UTC
// day.  An absent parameter defaults to today.
func parseDayQuery(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	return day, nil
}

// repoError translates repository sentinel errors into HTTP responses.
// Unknown errors become a generic 500 so internals never leak.
func repoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, repository.ErrPitchNotFound),
		errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrMatchNotFound),
		errors.Is(err, repository.ErrPromotionNotFound),
		errors.Is(err, repository.ErrTeamNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
