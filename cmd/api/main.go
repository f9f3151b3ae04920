// Command api serves the venue booking marketplace API.
//
//	@title						VenueHub Booking API
//	@version					1.0
//	@description				Venue booking marketplace: users, providers, venues and categories.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/api"
	"github.com/venuehub/booking-api/internal/api/middleware"
	"github.com/venuehub/booking-api/internal/core/ports"
	"github.com/venuehub/booking-api/internal/core/service"
	"github.com/venuehub/booking-api/internal/infrastructure/config"
	mongodb "github.com/venuehub/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/venuehub/booking-api/internal/infrastructure/db/redis"
	"github.com/venuehub/booking-api/internal/infrastructure/http/handlers"
	"github.com/venuehub/booking-api/internal/infrastructure/notify"
	"github.com/venuehub/booking-api/internal/infrastructure/queue"
	"github.com/venuehub/booking-api/internal/infrastructure/upload"
	"github.com/venuehub/booking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "booking-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	providers := mongodb.NewProviderRepository(db)
	venues := mongodb.NewVenueRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	offerings := mongodb.NewOfferingRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, providers, venues, categories, offerings); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo ready")

	revocations := redisdb.NewRevocationStore(rdb, cfg.TokenTTL)

	// --- Notifications ---
	var mailer notify.Mailer = notify.NewLogMailer(log)
	if cfg.SMTP.Host != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notify.NewAdminNotifier(users, mailer, log), log)
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	hasher := service.NewBcryptHasher(service.PasswordCost)
	tokens, err := service.NewTokenCodec(cfg.JWTSecret)
	if err != nil {
		return err
	}
	files := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes, log)

	authSvc := service.NewAuthService(service.AuthDeps{
		Users:       users,
		Providers:   providers,
		Hasher:      hasher,
		Tokens:      tokens,
		Revocations: revocations,
		Notifier:    dispatcher,
		TokenTTL:    cfg.TokenTTL,
		Logger:      log,
	})
	if cfg.Admin.Email != "" {
		err := authSvc.EnsureAdmin(ctx, ports.AdminSeed{
			FirstName: cfg.Admin.FirstName,
			LastName:  cfg.Admin.LastName,
			Email:     cfg.Admin.Email,
			Phone:     cfg.Admin.Phone,
			Password:  cfg.Admin.Password,
		})
		if err != nil {
			return err
		}
	}

	router := api.NewRouter(api.Deps{
		Logger:     log,
		Auth:       authSvc,
		Users:      service.NewUserAccountService(users, hasher, tokens, revocations, cfg.TokenTTL, log),
		Providers:  service.NewProviderAccountService(providers, hasher, revocations, log),
		Venues:     service.NewVenueService(venues, offerings, providers, files, log),
		Offerings:  service.NewOfferingService(offerings, venues, log),
		Categories: service.NewCategoryService(categories, log),
		Guard: middleware.GuardConfig{
			Tokens:      tokens,
			Users:       users,
			Providers:   providers,
			Revocations: revocations,
			Logger:      log,
		},
		Health: handlers.NewHealthHandler(map[string]handlers.Check{
			"mongo": handlers.MongoCheck(db),
			"redis": handlers.RedisCheck(rdb),
		}),
		UploadDir: cfg.Upload.Dir,
		BodyLimit: cfg.BodyLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
