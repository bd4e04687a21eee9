package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/handler"
)

// RegisterAdmin registers the console login, the cleanup jobs and user
// management.  gate is middleware.RequireAdmin; it is a no-op unless the
// admin gate is enforced.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, u *handler.UserHandler, gate, limit echo.MiddlewareFunc) {
	e.POST("/api/admin/login", a.Login, limit)

	cleanup := e.Group("/api/admin/cleanup", gate)
	cleanup.DELETE("/gone-cheapies", a.GoneCheapies)
	cleanup.DELETE("/unlinked-files", a.UnlinkedFiles)

	users := e.Group("/api/user", gate)
	users.GET("", u.List)
	users.POST("", u.Create)
	users.GET("/:id", u.Get)
	users.PUT("/:id", u.Update)
	users.DELETE("/:id", u.Delete)
}
