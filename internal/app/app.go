package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/misshanya/shortlink/internal/config"
	"github.com/misshanya/shortlink/internal/db"
	"github.com/misshanya/shortlink/internal/metrics"
	"github.com/misshanya/shortlink/internal/repository"
	"github.com/misshanya/shortlink/internal/service"
	handler "github.com/misshanya/shortlink/internal/transport/http"
	"github.com/misshanya/shortlink/pkg/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/valkey-io/valkey-go"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	cfg *config.Config
	l   *slog.Logger
	e   *echo.Echo

	pool   *pgxpool.Pool // postgres driver
	sqlite *sql.DB       // sqlite driver

	valkeyClient valkey.Client // optional
	kafkaWriter  *kafka.Writer // optional

	scheduler      *scheduler.Scheduler
	svc            *service.Service
	tracerShutdown func(context.Context) error
}

func New(ctx context.Context, cfg *config.Config, l *slog.Logger) (*App, error) {
	a := &App{
		cfg: cfg,
		l:   l,
	}

	tp, tracerShutdown, err := initTracer(ctx, cfg.Tracing.CollectorAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	store, err := a.initStore(ctx)
	if err != nil {
		return nil, err
	}

	// Valkey cache
	var cache service.Cache
	if cfg.Valkey.Addr != "" {
		a.valkeyClient, err = valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{cfg.Valkey.Addr},
			Password:    cfg.Valkey.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to valkey: %w", err)
		}
		cache = repository.NewValkeyRepo(a.valkeyClient)
	} else {
		a.l.Info("VALKEY_ADDR is empty, running without cache")
	}

	// Kafka writer for mapping events
	var kw service.KafkaWriter
	if cfg.Kafka.Addr != "" {
		a.kafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Kafka.Addr),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		}
		kw = a.kafkaWriter
	} else {
		a.l.Info("KAFKA_ADDR is empty, mapping events are disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	a.svc = service.New(
		store,
		cache,
		kw,
		m,
		a.l,
		tp.Tracer(serviceName),
		service.Config{
			CodeLength: cfg.Shortener.ShortCodeLength,
			BaseURL:    cfg.ShortURLBase(),
			CacheTTL:   cfg.Valkey.CacheTTL,
		},
	)

	a.scheduler, err = scheduler.NewScheduler(cfg.Scheduler.Crontab)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	a.e = a.newEcho(tp)

	return a, nil
}

func (a *App) initStore(ctx context.Context) (repository.MappingRepository, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverSQLite:
		conn, err := repository.OpenSQLite(a.cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		a.sqlite = conn

		if err := db.MigrateSQLite(ctx, conn); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		return repository.NewSQLiteRepo(conn), nil
	default:
		pool, err := initDB(ctx, a.cfg.Postgres.URL, a.cfg.Postgres.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.pool = pool

		sqlDB := stdlib.OpenDBFromPool(pool)
		defer sqlDB.Close()

		if err := db.MigratePostgres(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		return repository.NewPostgresRepo(pool), nil
	}
}

func initDB(ctx context.Context, dbURL string, maxConns int32) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func (a *App) newEcho(tp trace.TracerProvider) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(otelecho.Middleware(serviceName, otelecho.WithTracerProvider(tp)))
	e.Use(echoprometheus.NewMiddleware(serviceName))

	// Logger
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}

			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}

			a.l.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))

	e.GET("/metrics", echoprometheus.NewHandler())

	shortenerHandler := handler.NewHandler(a.svc)
	shortenerHandler.Register(e.Group(a.cfg.RoutePrefix()), a.cfg.Admin.Enabled)

	return e
}

func (a *App) Start(ctx context.Context, errChan chan<- error) {
	a.l.Info("starting server", slog.String("addr", a.cfg.Server.Addr))

	go a.svc.ReportMappings(ctx, a.scheduler.Tick)
	a.scheduler.Start()
	if err := a.scheduler.RunNow(); err != nil {
		a.l.Warn("failed to report mappings on start", slog.Any("error", err))
	}

	if err := a.e.Start(a.cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- err
	}
}

func (a *App) Stop(ctx context.Context) error {
	a.l.Info("[!] Shutting down...")

	var stopErr error

	a.l.Info("Stopping http server...")
	if err := a.e.Shutdown(ctx); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if err := a.scheduler.Shutdown(); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	// Close Kafka connection
	if a.kafkaWriter != nil {
		if err := a.kafkaWriter.Close(); err != nil {
			stopErr = errors.Join(stopErr, err)
		}
	}

	if a.valkeyClient != nil {
		a.valkeyClient.Close()
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			stopErr = errors.Join(stopErr, err)
		}
	}

	if err := a.tracerShutdown(ctx); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if stopErr != nil {
		return stopErr
	}

	a.l.Info("Stopped gracefully")
	return nil
}
