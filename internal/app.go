package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"users-api/config"
	"users-api/internal/application/ports"
	"users-api/internal/application/services"
	domain "users-api/internal/domain/user"
	memuser "users-api/internal/infrastructure/db/memory/user"
	"users-api/internal/infrastructure/db/postgres"
	pguser "users-api/internal/infrastructure/db/postgres/user"
	"users-api/internal/infrastructure/metrics"
	"users-api/internal/infrastructure/mq"
	"users-api/internal/infrastructure/s3"
	"users-api/internal/infrastructure/storage/local"
	"users-api/internal/interface/api/rest"
	"users-api/internal/interface/api/rest/middleware"
	"users-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	startedAt  time.Time
	db         *pgxpool.Pool
	users      domain.Repository
	storage    ports.FileStorage
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	events     ports.EventPublisher
	mq         *mq.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	startedAt := time.Now()

	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	// config
	if err = godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	r := newRouter(cfg, logger, mCounter)

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a := &App{
		logger:    logger,
		cfg:       cfg,
		startedAt: startedAt,
		httpSrv:   httpSrv,
		router:    r,
		mCounter:  mCounter,
		events:    mq.Nop{},
	}

	if err = a.initUsers(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err = a.initStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err = a.initMQ(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func newRouter(cfg config.Config, logger *zap.Logger, mCounter *prometheus.CounterVec) *gin.Engine {
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(middleware.RecoveryGin(logger))
	r.Use(corsMiddleware(cfg.App.CORSOrigins))
	r.Use(middleware.RequestLogGin(logger, mCounter))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	for _, o := range origins {
		if o == "*" {
			return cors.Default()
		}
	}

	cc := cors.DefaultConfig()
	cc.AllowOrigins = origins
	return cors.New(cc)
}

func (a *App) initUsers(ctx context.Context) error {
	if !a.cfg.PostgresEnabled() {
		a.users = memuser.NewSeededRepository()
		a.logger.Info("using in-memory user store")
		return nil
	}

	dsn, err := a.cfg.DBDSN()
	if err != nil {
		return fmt.Errorf("DB config error: %w", err)
	}
	pool, err := postgres.New(ctx, a.logger, dsn)
	if err != nil {
		return err
	}
	a.db = pool

	repo := pguser.NewRepository(pool)
	if err = repo.Migrate(ctx); err != nil {
		return err
	}
	a.users = repo

	return nil
}

func (a *App) initStorage(ctx context.Context) error {
	if a.cfg.S3Enabled() {
		client, err := s3.New(ctx, a.logger, a.cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to init S3: %w", err)
		}
		a.storage = client
		return nil
	}

	st, err := local.New(a.logger, a.cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("failed to init upload dir: %w", err)
	}
	a.storage = st

	return nil
}

func (a *App) initMQ(ctx context.Context) error {
	if !a.cfg.MQEnabled() {
		a.logger.Info("rabbitmq not configured, user events are discarded")
		return nil
	}

	dsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("RabbitMQ config error: %w", err)
	}

	rbMQ := mq.New(a.cfg.MQ, a.logger)
	if err = rbMQ.Connect(ctx, dsn); err != nil {
		return fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	a.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		return fmt.Errorf("failed init rabbitMQ: %w", err)
	}
	a.events = rbMQ

	// rmqConsumer
	consumer := rmqconsumer.New(a.cfg.MQ, a.logger, rbMQ.GetConn())
	if err = consumer.Connect(dsn); err != nil {
		return fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = consumer.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = consumer

	return nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil {
		a.mq.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// errgroup: goroutine errors surface in Wait and cancel the shared ctx
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.Addr()))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.events.PublisherWorker(ctx)
		return nil
	})

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	userService := services.NewUserService(a.users, a.events, a.mCounter)
	uploadService := services.NewUploadService(a.storage, a.mCounter)

	// controllers
	rest.NewUserController(a.router, userService, a.logger)
	rest.NewUploadController(a.router, uploadService, a.logger)
	rest.NewSystemController(a.router, a.cfg.App.Name, a.startedAt)

	// ops
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
