package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSession extracts the claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty
// session_id proves the middleware ran and the token carried a session.
func ctxSession(c echo.Context) (sessionID string, err error) {
	sessionID, _ = c.Get("session_id").(string)
	if sessionID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sessionID, nil
}

// ctxOptionalSession returns the session id when one was injected, or ""
// for anonymous requests. Used by the submission endpoint, where a missing
// session selects the demo-mode path.
func ctxOptionalSession(c echo.Context) string {
	sessionID, _ := c.Get("session_id").(string)
	return sessionID
}
