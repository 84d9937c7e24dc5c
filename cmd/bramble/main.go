package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/bramble/config"
	"github.com/Ramsey-B/bramble/internal/database"
	"github.com/Ramsey-B/bramble/internal/logging"
	"github.com/Ramsey-B/bramble/internal/middleware"
	mandaterepo "github.com/Ramsey-B/bramble/internal/repositories/mandate"
	reviewrepo "github.com/Ramsey-B/bramble/internal/repositories/review"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/classify"
	"github.com/Ramsey-B/bramble/pkg/engine"
	"github.com/Ramsey-B/bramble/pkg/events"
	"github.com/Ramsey-B/bramble/pkg/graph"
	"github.com/Ramsey-B/bramble/pkg/kafka"
	"github.com/Ramsey-B/bramble/pkg/planning"
	comparehandler "github.com/Ramsey-B/bramble/pkg/routes/compare"
	enumshandler "github.com/Ramsey-B/bramble/pkg/routes/enums"
	"github.com/Ramsey-B/bramble/pkg/routes/health"
	mandatehandler "github.com/Ramsey-B/bramble/pkg/routes/mandate"
	precedenthandler "github.com/Ramsey-B/bramble/pkg/routes/precedent"
	reviewhandler "github.com/Ramsey-B/bramble/pkg/routes/review"
	searchhandler "github.com/Ramsey-B/bramble/pkg/routes/search"
	"github.com/Ramsey-B/bramble/pkg/validation"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLogs,
	})
	if err != nil {
		return err
	}

	shutdownTracing := tracing.Init(cfg.AppName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.WithError(err).Warn("Failed to shut down tracing")
		}
	}()

	db, sqlxDB, err := database.Connect(database.Config{
		Driver:          cfg.DatabaseDriver,
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		Username:        cfg.DatabaseUserName,
		Password:        cfg.DatabasePassword,
		Name:            cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(sqlxDB, cfg.DatabaseMigrationFolderPath, logger); err != nil {
		return err
	}

	var graphClient *graph.Client
	var precedents *graph.PrecedentStore
	if cfg.GraphDBEnabled {
		graphClient, err = graph.NewClient(graph.Config{
			Host:     cfg.GraphDBHost,
			Port:     cfg.GraphDBPort,
			Username: cfg.GraphDBUser,
			Password: cfg.GraphDBPassword,
		}, logger)
		if err != nil {
			return err
		}
		defer graphClient.Close(context.Background())
		precedents = graph.NewPrecedentStore(graphClient, logger)
	}

	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()
	}
	emitter := events.NewEmitter(producer, logger)

	validator, err := validation.New()
	if err != nil {
		return err
	}

	mandates := mandaterepo.NewRepository(db, logger)
	reviews := reviewrepo.NewRepository(db, logger)

	eng := engine.New(engine.Config{
		GradeCutPoints: classify.GradeCutPoints{
			A: cfg.GradeACutPoint,
			B: cfg.GradeBCutPoint,
			C: cfg.GradeCCutPoint,
			D: cfg.GradeDCutPoint,
		},
		PlanningBlend: planning.BlendWeights{
			Precedent:   cfg.PlanningPrecedentWeight,
			Feasibility: cfg.PlanningFeasibilityWeight,
			Uplift:      cfg.PlanningUpliftWeight,
		},
		Workers: cfg.SearchWorkerCount,
	}, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.ReadHeaderTimeout = time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))

	checker := health.NewChecker(sqlxDB, graphClient, version)
	checker.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	mandateGroup := api.Group("/mandates")
	mandatehandler.NewHandler(mandates, validator, emitter, logger).Register(mandateGroup)
	searchhandler.NewHandler(mandates, reviews, precedents, eng, emitter, logger).Register(mandateGroup)
	comparehandler.NewHandler(mandates, logger).Register(mandateGroup)
	reviewhandler.NewHandler(reviews, emitter, logger).Register(api.Group("/reviews"))
	enumshandler.NewHandler().Register(api.Group("/enums"))
	if precedents != nil {
		precedenthandler.NewHandler(precedents, validator, logger).Register(api.Group("/precedents"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		checker.SetReady(true)
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.WithFields(map[string]any{"addr": addr}).Info("Starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	checker.SetReady(false)
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
