package handler

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/cheapies/internal/middleware"
)

// Cleaner runs the admin maintenance jobs.
type Cleaner interface {
	GoneCheapies(ctx context.Context) (int64, error)
	UnlinkedFiles(ctx context.Context) (int, error)
}

// AdminHandler serves the CMS console gate and the cleanup utilities.
type AdminHandler struct {
	Password string
	Cleanup  Cleaner
}

func NewAdminHandler(password string, cleanup Cleaner) *AdminHandler {
	return &AdminHandler{Password: password, Cleanup: cleanup}
}

// Login handles POST /api/admin/login.  The failed-attempt lockout lives in
// the browser; this endpoint is rate limited instead.
func (h *AdminHandler) Login(c echo.Context) error {
	var body struct {
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false})
	}
	if h.Password == "" || subtle.ConstantTimeCompare([]byte(body.Password), []byte(h.Password)) != 1 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false})
	}
	middleware.SetAdminCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GoneCheapies handles DELETE /api/admin/cleanup/gone-cheapies.
func (h *AdminHandler) GoneCheapies(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := h.Cleanup.GoneCheapies(ctx)
	if err != nil {
		log.Error().Err(err).Str("op", "Cleanup.GoneCheapies").Msg("cleanup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"deleted": 0})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

// UnlinkedFiles handles DELETE /api/admin/cleanup/unlinked-files.
func (h *AdminHandler) UnlinkedFiles(c echo.Context) error {
	// Listing a bucket can take longer than a single row lookup.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 4*requestTimeout)
	defer cancel()

	n, err := h.Cleanup.UnlinkedFiles(ctx)
	if err != nil {
		log.Error().Err(err).Str("op", "Cleanup.UnlinkedFiles").Msg("cleanup failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"removed": 0})
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": n})
}
