package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/handler"
)

// RegisterRoutes registers the unauthenticated utility routes: the health
// check, the public browser config and the CMS field schema.
func RegisterRoutes(e *echo.Echo, mapToken string) {
	e.GET("/healthz", handler.Health)
	e.GET("/api/config/public", handler.PublicConfig(mapToken))
	e.GET("/api/cms/schema", handler.CMSSchema)
	e.GET("/api/cms/entities", handler.CMSEntities)
	e.GET("/api/cms/schema/:entity", handler.CMSEntity)
}

// RegisterAuth registers the credential sign-in flow.  Session loading is a
// global middleware, so these handlers only issue or clear cookies.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/callback/credentials", a.Credentials, limit)
	g.GET("/session", a.Session)
	g.POST("/signout", a.SignOut)
}

// RegisterSongs registers the songbook.  Reads go through the response
// cache; matching is a POST and is never cached.
func RegisterSongs(e *echo.Echo, s *handler.SongHandler, cache echo.MiddlewareFunc) {
	e.GET("/api/songs", s.List, cache)
	e.GET("/api/songs/:number", s.Get, cache)
	e.POST("/api/songs/:number/match", s.Match)
}
