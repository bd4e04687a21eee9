package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cheapies/internal/songbook"
)

const testSong = `{"title":"Row","number":3,"lyrics":[{"id":"v","label":"Verse","lines":[
{"chords":"C","lyrics":"Row row row your boat"},
{"chords":"G","lyrics":"Gently down the stream"}]}],"song":["v"]}`

func newSongServer(t *testing.T) *echo.Echo {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "3.json"), []byte(testSong), 0o644))

	h := NewSongHandler(songbook.NewCatalog(dir))
	e := echo.New()
	e.GET("/api/songs", h.List)
	e.GET("/api/songs/:number", h.Get)
	e.POST("/api/songs/:number/match", h.Match)
	return e
}

func songRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSongs_ListAndGet(t *testing.T) {
	e := newSongServer(t)

	rec := songRequest(e, http.MethodGet, "/api/songs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Row"`)

	rec = songRequest(e, http.MethodGet, "/api/songs/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gently down the stream")

	assert.Equal(t, http.StatusNotFound, songRequest(e, http.MethodGet, "/api/songs/4", "").Code)
	assert.Equal(t, http.StatusNotFound, songRequest(e, http.MethodGet, "/api/songs/x", "").Code)
}

func TestSongs_Match(t *testing.T) {
	e := newSongServer(t)

	rec := songRequest(e, http.MethodPost, "/api/songs/3/match", `{"transcript":"gently down the streem"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"v-1"`)

	rec = songRequest(e, http.MethodPost, "/api/songs/3/match", `{"transcript":"completely unrelated words here"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"match":null}`, rec.Body.String())
}
