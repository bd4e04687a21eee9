package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("cheapies", false, &buf)

	log.Info().Str("k", "v").Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"service":"cheapies"`)
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"message":"hello"`)
}

func TestRequestLogger_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("cheapies", false, &buf)

	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/api/place/:identifier", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "nope"})
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/place/x", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"route":"/api/place/:identifier"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestRequestLogger_HTTPErrorIsWritten(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("cheapies", false, &buf)

	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, buf.String(), `"status":502`)
}
