package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/model"
	"github.com/iliyamo/cheapies/internal/queue"
	"github.com/iliyamo/cheapies/internal/repository"
)

// CheapieHandler serves /api/cheapie.
type CheapieHandler struct {
	Cheapies  CheapieStore
	Places    PlaceStore
	Publisher queue.Publisher
}

func NewCheapieHandler(cheapies CheapieStore, places PlaceStore, pub queue.Publisher) *CheapieHandler {
	return &CheapieHandler{Cheapies: cheapies, Places: places, Publisher: pub}
}

type cheapieBody struct {
	Name     *string  `json:"name"`
	Store    *string  `json:"store"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Exp      *string  `json:"exp"`
	Image    *string  `json:"image"`
	Stock    *string  `json:"stock"`
}

const msgCheapieFields = "Please provide name(string), store(string), quantity(integer), price(number), exp(optional date), image(optional)"

// expLayouts are tried in order.  Zone-less values are read as UTC.
var expLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseExp(s string) (time.Time, error) {
	var err error
	for _, layout := range expLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil
}

func (h *CheapieHandler) placeExists(c echo.Context, store string) (bool, error) {
	ctx, cancel := requestContext(c)
	defer cancel()
	return h.Places.Exists(ctx, store)
}

func (h *CheapieHandler) publish(typ string, ch *model.Cheapie) {
	queue.PublishAsync(h.Publisher, queue.ActivityEvent{
		Type:      typ,
		CheapieID: ch.ID,
		Name:      ch.Name,
		Store:     ch.Store,
		Stock:     string(ch.Stock),
		Price:     ch.Price,
	})
}

// List handles GET /api/cheapie[?store=][&name=].
func (h *CheapieHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.Cheapies.List(ctx, repository.CheapieFilter{
		Store: c.QueryParam("store"),
		Name:  strings.TrimSpace(c.QueryParam("name")),
	})
	if err != nil {
		return internalError(c, "Cheapie.List", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/cheapie.
func (h *CheapieHandler) Create(c echo.Context) error {
	var body cheapieBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, msgCheapieFields)
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" ||
		body.Store == nil || strings.TrimSpace(*body.Store) == "" ||
		body.Quantity == nil || body.Price == nil {
		return badRequest(c, msgCheapieFields)
	}
	if *body.Quantity <= 0 || *body.Price < 0 {
		return badRequest(c, "Please make sure quantity is larger than 0 and price is not negative")
	}

	item := &model.Cheapie{
		Name:     strings.TrimSpace(*body.Name),
		Store:    strings.TrimSpace(*body.Store),
		Quantity: *body.Quantity,
		Price:    *body.Price,
		AddBy:    model.DefaultAddBy,
		Stock:    model.StockPlenty,
	}
	if body.Stock != nil && *body.Stock != "" {
		s := model.Stock(*body.Stock)
		if !s.Valid() {
			return badRequest(c, "stock must be one of plenty, mid, low, gone")
		}
		item.Stock = s
	}
	if body.Exp != nil && *body.Exp != "" {
		t, err := parseExp(*body.Exp)
		if err != nil {
			return badRequest(c, "exp must be an ISO date")
		}
		item.Exp = &t
	}
	if body.Image != nil && *body.Image != "" {
		img := *body.Image
		item.Image = &img
	}

	ok, err := h.placeExists(c, item.Store)
	if err != nil {
		return internalError(c, "Cheapie.Create", err)
	}
	if !ok {
		return badRequest(c, "Related Place does not exist")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Cheapies.Create(ctx, item); err != nil {
		return internalError(c, "Cheapie.Create", err)
	}
	h.publish(queue.EventCheapieCreated, item)
	return c.JSON(http.StatusCreated, item)
}

// Get handles GET /api/cheapie/:id.
func (h *CheapieHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Missing or wrong ID")
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.Cheapies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCheapieNotFound) {
			return notFound(c, "Fail to find Cheapie")
		}
		return internalError(c, "Cheapie.Get", err)
	}
	return c.JSON(http.StatusOK, item)
}

// Update handles PUT /api/cheapie/:id.  Only supplied fields are validated
// and written; an empty image clears it.
func (h *CheapieHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Missing or wrong ID")
	}
	var body cheapieBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	upd := repository.CheapieUpdate{Quantity: body.Quantity, Price: body.Price, Image: body.Image}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			return badRequest(c, "name must not be empty")
		}
		upd.Name = &name
	}
	if body.Quantity != nil && *body.Quantity <= 0 {
		return badRequest(c, "quantity must be larger than 0")
	}
	if body.Price != nil && *body.Price < 0 {
		return badRequest(c, "price must not be negative")
	}
	if body.Stock != nil {
		s := model.Stock(*body.Stock)
		if !s.Valid() {
			return badRequest(c, "stock must be one of plenty, mid, low, gone")
		}
		upd.Stock = &s
	}
	if body.Exp != nil && *body.Exp != "" {
		t, err := parseExp(*body.Exp)
		if err != nil {
			return badRequest(c, "exp must be an ISO date")
		}
		upd.Exp = &t
	}
	if body.Store != nil {
		store := strings.TrimSpace(*body.Store)
		if store == "" {
			return badRequest(c, "Related Place does not exist")
		}
		ok, err := h.placeExists(c, store)
		if err != nil {
			return internalError(c, "Cheapie.Update", err)
		}
		if !ok {
			return badRequest(c, "Related Place does not exist")
		}
		upd.Store = &store
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.Cheapies.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrCheapieNotFound) {
			return notFound(c, "Fail to find Cheapie")
		}
		return internalError(c, "Cheapie.Update", err)
	}
	h.publish(queue.EventCheapieUpdated, item)
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/cheapie/:id.
func (h *CheapieHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Missing or wrong ID")
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Cheapies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCheapieNotFound) {
			return notFound(c, "Fail to find Cheapie")
		}
		return internalError(c, "Cheapie.Delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
