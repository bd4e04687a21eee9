// Package cleanup purges listings marked gone and uploaded files that no
// listing references any more.
package cleanup

import (
	"context"
	"path"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/cheapies/internal/model"
	"github.com/iliyamo/cheapies/internal/queue"
	"github.com/iliyamo/cheapies/internal/storage"
)

// Listings is the slice of the cheapie repository cleanup needs.
type Listings interface {
	DeleteByStock(ctx context.Context, stock model.Stock) (int64, error)
	ListImages(ctx context.Context) ([]string, error)
}

type Service struct {
	listings  Listings
	files     storage.Store
	publisher queue.Publisher
}

func NewService(listings Listings, files storage.Store, publisher queue.Publisher) *Service {
	return &Service{listings: listings, files: files, publisher: publisher}
}

// GoneCheapies deletes every listing whose stock is gone.
func (s *Service) GoneCheapies(ctx context.Context) (int64, error) {
	n, err := s.listings.DeleteByStock(ctx, model.StockGone)
	if err != nil {
		return 0, err
	}
	queue.PublishAsync(s.publisher, queue.ActivityEvent{Type: queue.EventCleanupGoneCheapie, Deleted: n})
	return n, nil
}

// UnlinkedFiles removes stored files whose base name is not the base name of
// any listing image.  A file that fails to delete is logged and skipped; the
// returned count covers only successful removals.
func (s *Service) UnlinkedFiles(ctx context.Context) (int, error) {
	names, err := s.files.List(ctx)
	if err != nil {
		return 0, err
	}
	images, err := s.listings.ListImages(ctx)
	if err != nil {
		return 0, err
	}

	linked := make(map[string]struct{}, len(images))
	for _, img := range images {
		if img == "" {
			continue
		}
		linked[path.Base(img)] = struct{}{}
	}

	removed := 0
	for _, name := range names {
		if _, ok := linked[name]; ok {
			continue
		}
		if err := s.files.Remove(ctx, name); err != nil {
			log.Error().Err(err).Str("file", name).Msg("cleanup: remove unlinked file failed")
			continue
		}
		removed++
	}
	return removed, nil
}
