package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/cheapies/internal/utils"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

type SessionConfig struct {
	Secret    string
	MaxAge    time.Duration
	UpdateAge time.Duration
	Secure    bool
	Now       func() time.Time
}

func (cfg SessionConfig) now() time.Time {
	if cfg.Now != nil {
		return cfg.Now()
	}
	return time.Now()
}

// Session loads the session token from the cookie or a Bearer header and
// stores its claims in the context.  A missing, invalid or expired token
// leaves the request anonymous.  Tokens older than UpdateAge are re-issued
// with a fresh MaxAge.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c)
			if raw == "" {
				return next(c)
			}
			cl, err := utils.ParseSession(cfg.Secret, raw)
			if err != nil {
				return next(c)
			}

			now := cfg.now()
			if utils.NeedsRenewal(cl, now, cfg.UpdateAge) {
				fresh := utils.SessionClaims{Email: cl.Email, Name: cl.Name}
				fresh.Subject = cl.Subject
				if tok, stamped, err := utils.IssueSession(cfg.Secret, fresh, now, cfg.MaxAge); err == nil {
					SetSessionCookie(c, tok, cfg.MaxAge, cfg.Secure)
					cl = stamped
				} else {
					log.Error().Err(err).Msg("session renewal failed")
				}
			}

			c.Set(ctxUserID, cl.Subject)
			c.Set(ctxSession, cl)
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// SetSessionCookie writes the HttpOnly session cookie.
func SetSessionCookie(c echo.Context, token string, maxAge time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
