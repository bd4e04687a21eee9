package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/cheapies/internal/cleanup"
	"github.com/iliyamo/cheapies/internal/config"
	"github.com/iliyamo/cheapies/internal/database"
	"github.com/iliyamo/cheapies/internal/handler"
	"github.com/iliyamo/cheapies/internal/logging"
	"github.com/iliyamo/cheapies/internal/middleware"
	"github.com/iliyamo/cheapies/internal/queue"
	"github.com/iliyamo/cheapies/internal/repository"
	"github.com/iliyamo/cheapies/internal/router"
	"github.com/iliyamo/cheapies/internal/songbook"
	"github.com/iliyamo/cheapies/internal/storage"
	"github.com/iliyamo/cheapies/internal/upload"
)

func main() {
	cfg := config.Load()
	logging.Init("cheapies", cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Settings{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	uploadCfg := config.LoadUploadConfig()
	files, err := newStore(ctx, uploadCfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", uploadCfg.Driver).Msg("upload store init failed")
	}

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = queue.NewAMQPPublisher(cfg.AMQPURL)
		go func() {
			if err := queue.StartActivityConsumer(ctx, cfg.AMQPURL, cfg.ActivityLogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("activity consumer stopped")
			}
		}()
	}

	places := repository.NewPlaceRepo(db)
	cheapies := repository.NewCheapieRepo(db)
	users := repository.NewUserRepo(db)

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	secure := !cfg.IsDevelopment()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger())
	e.Use(middleware.Session(middleware.SessionConfig{
		Secret:    cfg.SessionSecret,
		MaxAge:    cfg.SessionMaxAge,
		UpdateAge: cfg.SessionUpdateAge,
		Secure:    secure,
	}))
	if uploadCfg.Driver == "local" {
		e.Static(uploadCfg.PublicPath, uploadCfg.Dir)
	}

	router.RegisterRoutes(e, cfg.MapToken)
	router.RegisterAuth(e, handler.NewAuthHandler(users, cfg.SessionSecret, cfg.SessionMaxAge, cfg.BcryptCost, secure), limit)
	router.RegisterResources(e,
		handler.NewPlaceHandler(places),
		handler.NewCheapieHandler(cheapies, places, publisher),
	)
	router.RegisterUpload(e, handler.NewUploadHandler(upload.New(files, uploadCfg)), limit)
	router.RegisterAdmin(e,
		handler.NewAdminHandler(cfg.AdminPassword, cleanup.NewService(cheapies, files, publisher)),
		handler.NewUserHandler(users, cfg.BcryptCost),
		middleware.RequireAdmin(cfg.AdminGateEnforce),
		limit,
	)
	router.RegisterSongs(e, handler.NewSongHandler(songbook.NewCatalog(cfg.SongsDir)), cache)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newStore(ctx context.Context, c config.UploadConfig) (storage.Store, error) {
	if c.Driver == "s3" {
		return storage.NewS3Store(ctx, c.S3)
	}
	return storage.NewLocalStore(c.Dir, c.PublicPath)
}
