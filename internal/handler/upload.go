package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/upload"
)

// Receiver stores one uploaded file from a multipart request.
type Receiver interface {
	Receive(ctx context.Context, r *http.Request) (*upload.Result, error)
	MaxBytes() int64
}

// UploadHandler serves POST /api/upload.
type UploadHandler struct {
	Pipeline Receiver
}

func NewUploadHandler(p Receiver) *UploadHandler {
	return &UploadHandler{Pipeline: p}
}

func (h *UploadHandler) Upload(c echo.Context) error {
	res, err := h.Pipeline.Receive(c.Request().Context(), c.Request())
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{
				"error": "File is too big, Maximum " + sizeLabel(h.Pipeline.MaxBytes()),
			})
		case errors.Is(err, upload.ErrNoFile):
			return badRequest(c, "No file uploaded")
		}
		return internalError(c, "Upload.Receive", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"url": res.URL})
}

// sizeLabel renders a byte cap for humans: whole MiB as "10 MB", other caps
// of at least 1 MiB with one decimal, smaller ones in bytes.
func sizeLabel(n int64) string {
	const mib = 1 << 20
	switch {
	case n < mib:
		return fmt.Sprintf("%d bytes", n)
	case n%mib == 0:
		return fmt.Sprintf("%d MB", n/mib)
	}
	return fmt.Sprintf("%.1f MB", float64(n)/mib)
}
