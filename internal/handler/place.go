package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/model"
	"github.com/iliyamo/cheapies/internal/repository"
)

// PlaceHandler serves /api/place.
type PlaceHandler struct {
	Places PlaceStore
}

func NewPlaceHandler(places PlaceStore) *PlaceHandler {
	return &PlaceHandler{Places: places}
}

type placeBody struct {
	Identifier *string  `json:"identifier"`
	Name       *string  `json:"name"`
	Lng        *float64 `json:"lng"`
	Lat        *float64 `json:"lat"`
}

// List handles GET /api/place[?name=].
func (h *PlaceHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	places, err := h.Places.List(ctx, strings.TrimSpace(c.QueryParam("name")))
	if err != nil {
		return internalError(c, "Place.List", err)
	}
	return c.JSON(http.StatusOK, places)
}

// Create handles POST /api/place.
func (h *PlaceHandler) Create(c echo.Context) error {
	var body placeBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Identifier == nil || strings.TrimSpace(*body.Identifier) == "" ||
		body.Name == nil || strings.TrimSpace(*body.Name) == "" ||
		body.Lng == nil || body.Lat == nil {
		return badRequest(c, "identifier(string), name(string), lng(number) and lat(number) are required")
	}
	p := &model.Place{
		Identifier: strings.TrimSpace(*body.Identifier),
		Name:       strings.TrimSpace(*body.Name),
		Lng:        *body.Lng,
		Lat:        *body.Lat,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Places.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "place identifier already exists"})
		}
		return internalError(c, "Place.Create", err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Get handles GET /api/place/:identifier.
func (h *PlaceHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.Places.Get(ctx, c.Param("identifier"))
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return notFound(c, "place not found")
		}
		return internalError(c, "Place.Get", err)
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/place/:identifier.  Only supplied fields change.
func (h *PlaceHandler) Update(c echo.Context) error {
	var body placeBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	upd := repository.PlaceUpdate{Lng: body.Lng, Lat: body.Lat}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			return badRequest(c, "name must not be empty")
		}
		upd.Name = &name
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.Places.Update(ctx, c.Param("identifier"), upd)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return notFound(c, "place not found")
		}
		return internalError(c, "Place.Update", err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/place/:identifier.  The place's listings go
// with it.
func (h *PlaceHandler) Delete(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Places.Delete(ctx, c.Param("identifier")); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return notFound(c, "place not found")
		}
		return internalError(c, "Place.Delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
