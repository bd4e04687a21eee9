package middleware

// identity.go holds the context keys the session middleware fills and the
// accessors handlers and other middleware read them through.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/utils"
)

const (
	ctxUserID  = "user_id"
	ctxSession = "session"
)

// SessionFrom returns the claims of the signed-in user, if any.
func SessionFrom(c echo.Context) (utils.SessionClaims, bool) {
	cl, ok := c.Get(ctxSession).(utils.SessionClaims)
	return cl, ok
}

// userID returns the session subject or "anon" for anonymous requests.
func userID(c echo.Context) string {
	if s, ok := c.Get(ctxUserID).(string); ok && s != "" {
		return s
	}
	return "anon"
}
