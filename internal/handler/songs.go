package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/songbook"
)

// SongHandler serves the songbook catalogue.
type SongHandler struct {
	Catalog *songbook.Catalog
}

func NewSongHandler(catalog *songbook.Catalog) *SongHandler {
	return &SongHandler{Catalog: catalog}
}

func (h *SongHandler) song(c echo.Context) (*songbook.Song, error) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return nil, songbook.ErrSongNotFound
	}
	return h.Catalog.Get(n)
}

// List handles GET /api/songs.
func (h *SongHandler) List(c echo.Context) error {
	songs, err := h.Catalog.List()
	if err != nil {
		return internalError(c, "Song.List", err)
	}
	return c.JSON(http.StatusOK, songs)
}

// Get handles GET /api/songs/:number.
func (h *SongHandler) Get(c echo.Context) error {
	s, err := h.song(c)
	if err != nil {
		if errors.Is(err, songbook.ErrSongNotFound) {
			return notFound(c, "song not found")
		}
		return internalError(c, "Song.Get", err)
	}
	return c.JSON(http.StatusOK, s)
}

// Match handles POST /api/songs/:number/match.
func (h *SongHandler) Match(c echo.Context) error {
	var body struct {
		Transcript string `json:"transcript"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	s, err := h.song(c)
	if err != nil {
		if errors.Is(err, songbook.ErrSongNotFound) {
			return notFound(c, "song not found")
		}
		return internalError(c, "Song.Match", err)
	}
	m, ok := songbook.BestMatch(s.Flatten(), body.Transcript)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"match": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"match": m})
}
