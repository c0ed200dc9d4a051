package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resumatch/docs"
	"resumatch/internal/config"
	"resumatch/internal/database"
	"resumatch/internal/database/migration"
	"resumatch/internal/extract"
	handlers "resumatch/internal/http/handler"
	"resumatch/internal/http/middleware"
	"resumatch/internal/logger"
	"resumatch/internal/match"
	"resumatch/internal/metrics"
	"resumatch/internal/nlp"
	"resumatch/internal/otel"
	"resumatch/internal/repository/postgres"
	"resumatch/internal/resume"
	"resumatch/internal/service"
	"resumatch/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Resumatch API
// @version 1.0
// @description Resume parsing and job description matching.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.Init(cfg.Log, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	rules, err := resume.LoadRulesFile(cfg.Rules.File)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Rules.File).Msg("failed to load parser rules")
	}

	annotator := nlp.NewAnnotator(cfg.Annotator.URL, cfg.Annotator.Timeout())
	if cfg.Annotator.URL == "" {
		log.Info().Msg("annotator: using in-process lexicon")
	} else {
		log.Info().Str("url", cfg.Annotator.URL).Dur("timeout", cfg.Annotator.Timeout()).Msg("annotator: using remote service")
	}

	domainMetrics, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo, cfg.MinIO.PresignExpiry)
	analysisSvc := service.NewAnalysisService(
		extract.New(),
		resume.NewParser(rules),
		match.NewMatcher(annotator),
		docSvc,
		domainMetrics,
		log,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.MaxBytes(),
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, docSvc, analysisSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	log.Info().Str("addr", addr).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
