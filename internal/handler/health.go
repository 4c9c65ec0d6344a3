package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness.  Used by load balancers; no
// database round trip.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
