package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// AdminCookie marks a browser that passed the admin password check.
	AdminCookie = "cmsAuth"
	adminMaxAge = 24 * time.Hour
)

// RequireAdmin rejects requests without the admin cookie with 401.  When
// enforce is false it lets everything through and the routes stay open.
func RequireAdmin(enforce bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !enforce {
			return next
		}
		return func(c echo.Context) error {
			ck, err := c.Cookie(AdminCookie)
			if err != nil || ck.Value != "true" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "admin login required"})
			}
			return next(c)
		}
	}
}

// SetAdminCookie grants the admin gate for one day.
func SetAdminCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:   AdminCookie,
		Value:  "true",
		Path:   "/",
		MaxAge: int(adminMaxAge / time.Second),
	})
}
