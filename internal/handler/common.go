package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/cheapies/internal/model"
	"github.com/iliyamo/cheapies/internal/repository"
)

// requestTimeout bounds every store call made on behalf of a request.
const requestTimeout = 5 * time.Second

const msgInternal = "Internal Server Error"

// PlaceStore is the persistence the place endpoints need.
type PlaceStore interface {
	List(ctx context.Context, name string) ([]model.Place, error)
	Get(ctx context.Context, identifier string) (*model.Place, error)
	Exists(ctx context.Context, identifier string) (bool, error)
	Create(ctx context.Context, p *model.Place) error
	Update(ctx context.Context, identifier string, u repository.PlaceUpdate) (*model.Place, error)
	Delete(ctx context.Context, identifier string) error
}

// CheapieStore is the persistence the listing endpoints need.
type CheapieStore interface {
	List(ctx context.Context, f repository.CheapieFilter) ([]model.Cheapie, error)
	Get(ctx context.Context, id uint64) (*model.Cheapie, error)
	Create(ctx context.Context, c *model.Cheapie) error
	Update(ctx context.Context, id uint64, u repository.CheapieUpdate) (*model.Cheapie, error)
	Delete(ctx context.Context, id uint64) error
}

// UserStore is the persistence the user and auth endpoints need.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id string, upd repository.UserUpdate) (model.User, error)
	Delete(ctx context.Context, id string) error
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
}

// internalError logs the failure under op and answers with a generic 500.
func internalError(c echo.Context, op string, err error) error {
	log.Error().Err(err).Str("op", op).Str("path", c.Request().URL.Path).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgInternal})
}
