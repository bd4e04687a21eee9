package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/handler"
)

// RegisterResources registers CRUD for places and listings.  These stay
// open; the front end gates editing behind the admin console.
func RegisterResources(e *echo.Echo, p *handler.PlaceHandler, c *handler.CheapieHandler) {
	places := e.Group("/api/place")
	places.GET("", p.List)
	places.POST("", p.Create)
	places.GET("/:identifier", p.Get)
	places.PUT("/:identifier", p.Update)
	places.DELETE("/:identifier", p.Delete)

	cheapies := e.Group("/api/cheapie")
	cheapies.GET("", c.List)
	cheapies.POST("", c.Create)
	cheapies.GET("/:id", c.Get)
	cheapies.PUT("/:id", c.Update)
	cheapies.DELETE("/:id", c.Delete)
}

// RegisterUpload registers the image upload behind the rate limiter.
func RegisterUpload(e *echo.Echo, u *handler.UploadHandler, limit echo.MiddlewareFunc) {
	e.POST("/api/upload", u.Upload, limit)
}
