// Package upload receives image uploads from a multipart body, caps their
// size, shrinks large ones and hands the bytes to a storage.Store.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	// decoders for re-encoding
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/iliyamo/cheapies/internal/config"
	"github.com/iliyamo/cheapies/internal/storage"
	"github.com/iliyamo/cheapies/internal/utils"
)

var (
	ErrNoFile   = errors.New("no file uploaded")
	ErrTooLarge = errors.New("file too large")
	ErrReencode = errors.New("image re-encode failed")
)

const defaultExt = ".jpg"

// Result describes a stored upload.
type Result struct {
	URL  string
	Name string
	Size int64
}

// Pipeline is safe for concurrent use.
type Pipeline struct {
	store         storage.Store
	maxBytes      int64
	compressAbove int64
	quality       int
	now           func() time.Time
}

func New(store storage.Store, cfg config.UploadConfig) *Pipeline {
	return &Pipeline{
		store:         store,
		maxBytes:      cfg.MaxBytes,
		compressAbove: cfg.CompressAbove,
		quality:       cfg.JPEGQuality,
		now:           time.Now,
	}
}

// MaxBytes is the configured cap, used for the 413 message.
func (p *Pipeline) MaxBytes() int64 { return p.maxBytes }

// Receive takes the first file part of a multipart request.  The whole body
// is always consumed, including when the file is over the cap, so the client
// sees the error response instead of a reset connection.
func (p *Pipeline) Receive(ctx context.Context, r *http.Request) (*Result, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, ErrNoFile
	}

	var (
		data     []byte
		filename string
		found    bool
		tooLarge bool
	)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart: %w", err)
		}
		if found || tooLarge || part.FileName() == "" {
			drain(part)
			continue
		}
		buf, over, err := readCapped(part, p.maxBytes)
		if err != nil {
			return nil, fmt.Errorf("read file part: %w", err)
		}
		if over {
			tooLarge = true
			continue
		}
		data, filename, found = buf, part.FileName(), true
	}

	if tooLarge {
		return nil, ErrTooLarge
	}
	if !found {
		return nil, ErrNoFile
	}
	return p.Store(ctx, data, filename)
}

// Store shrinks the data when needed and writes it under a fresh name.
func (p *Pipeline) Store(ctx context.Context, data []byte, filename string) (*Result, error) {
	contentType := http.DetectContentType(data)
	if int64(len(data)) > p.compressAbove {
		out, err := Reencode(data, p.quality)
		if err != nil {
			return nil, err
		}
		data, contentType = out, "image/jpeg"
	}

	name, err := p.Filename(filename)
	if err != nil {
		return nil, err
	}
	url, err := p.store.Put(ctx, name, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	return &Result{URL: url, Name: name, Size: int64(len(data))}, nil
}

// Filename builds "<unix millis>-<6 base36 chars><ext>", keeping the
// original extension or falling back to .jpg.
func (p *Pipeline) Filename(original string) (string, error) {
	suffix, err := utils.RandomBase36(6)
	if err != nil {
		return "", err
	}
	ext := filepath.Ext(filepath.Base(original))
	if ext == "" || ext == "." {
		ext = defaultExt
	}
	return fmt.Sprintf("%d-%s%s", p.now().UnixMilli(), suffix, ext), nil
}

// Reencode decodes any registered image format and writes it back as JPEG.
func Reencode(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReencode, err)
	}
	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReencode, err)
	}
	return out.Bytes(), nil
}

// readCapped reads at most limit bytes.  When the part is longer the rest is
// drained, nothing is returned and over is true.
func readCapped(part *multipart.Part, limit int64) ([]byte, bool, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(part, limit+1))
	if err != nil {
		return nil, false, err
	}
	if n > limit {
		drain(part)
		return nil, true, nil
	}
	return buf.Bytes(), false, nil
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, r)
}
