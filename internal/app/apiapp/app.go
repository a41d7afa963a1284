package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wdhive/photo-gallery/internal/config"
	s3infra "github.com/wdhive/photo-gallery/internal/infra/s3"
	"github.com/wdhive/photo-gallery/internal/jobs/cleanup"
	"github.com/wdhive/photo-gallery/internal/pkg/reqerr"
	pgrepo "github.com/wdhive/photo-gallery/internal/repo/postgres"
	redrepo "github.com/wdhive/photo-gallery/internal/repo/redis"
	authsvc "github.com/wdhive/photo-gallery/internal/services/auth"
	mediasvc "github.com/wdhive/photo-gallery/internal/services/media"
	modlogsvc "github.com/wdhive/photo-gallery/internal/services/modlog"
	ratesvc "github.com/wdhive/photo-gallery/internal/services/rate"
	userssvc "github.com/wdhive/photo-gallery/internal/services/users"
)

const rejectedRetention = 90 * 24 * time.Hour

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	cleanup    *cleanup.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	mediaRepo := pgrepo.NewMediaRepo(pool)
	statusLogRepo := pgrepo.NewStatusLogRepo(pool)
	userRepo := pgrepo.NewUserRepo(pool)

	var storage *s3infra.Storage
	if client, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		storage = s3infra.NewStorage(client, cfg.S3.Bucket)
		if err := storage.EnsureBucket(ctx); err != nil {
			log.Warn("s3 bucket check failed, continuing in degraded mode", zap.Error(err))
			storage = nil
		}
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, cfg.Auth.RefreshTTL)
	mediaService := mediasvc.NewService(mediaRepo)
	modLogService := modlogsvc.NewService(statusLogRepo)
	modLogService.AttachLimiter(ratesvc.NewLimiter(
		rateRepo,
		cfg.Moderation.MessagesPerMinute,
		cfg.Moderation.MessagesPerHour,
	))
	var signer userssvc.URLSigner
	if storage != nil {
		signer = storage
	}
	userService := userssvc.NewService(userRepo, signer)
	classifier := reqerr.NewClassifier(log, cfg.Env)

	RegisterRoutes(r, Dependencies{
		AuthService:   authService,
		MediaService:  mediaService,
		ModLogService: modLogService,
		UserService:   userService,
		Classifier:    classifier,
		Logger:        log,
		Config:        cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	app := &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}
	if storage != nil {
		app.cleanup = cleanup.New(mediaRepo, storage, rejectedRetention, log)
	}

	return app, nil
}

// StartCleanup runs the storage cleanup for stale rejected media on a
// fixed interval until the context is cancelled. Without object storage
// there is nothing to reclaim and no job is started.
func (a *App) StartCleanup(ctx context.Context, interval time.Duration) {
	if a.cleanup == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := a.cleanup.Run(ctx); err != nil {
					a.logger.Error("cleanup job failed", zap.Error(err))
				}
			}
		}
	}()
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
