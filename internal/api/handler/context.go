package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifetrack/stress-tracking-api/internal/api/middleware"
)

// ctxUserID extracts the caller identity injected by the Auth middleware and
// fast-fails before any service call. An empty id means the middleware did
// not run on this route — a wiring bug surfaced as 401, never as a panic.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
