// Command server runs the café terminal backend: a chat API with an
// AI-powered recipe generation pipeline.
//
// Startup order:
//  1. .env + environment configuration
//  2. zerolog global level (pretty console in dev)
//  3. OpenTelemetry tracing (optional, OTLP/gRPC)
//  4. SQLite storage with an in-memory failover
//  5. Gemini generation client (skipped when no API key is set)
//  6. Gin router + HTTP server with graceful shutdown
//  7. auto-brew loop generating unattended recipes on an interval
package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/neuralbrew/go-brew-backend/internal/config"
	"github.com/neuralbrew/go-brew-backend/internal/gemini"
	httpapi "github.com/neuralbrew/go-brew-backend/internal/http"
	"github.com/neuralbrew/go-brew-backend/internal/observability"
	"github.com/neuralbrew/go-brew-backend/internal/recipe"
	"github.com/neuralbrew/go-brew-backend/internal/repo"
	"github.com/neuralbrew/go-brew-backend/internal/services"
	"github.com/neuralbrew/go-brew-backend/internal/store"
	"github.com/neuralbrew/go-brew-backend/internal/sysutil"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op unless OTEL_ENABLED).
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Storage: durable SQLite primary with an in-memory failover. A broken
	// DB file degrades the service to memory-only instead of refusing to
	// start; the terminal stays usable, history just will not survive.
	var st store.Store
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err == nil {
		err = repo.AutoMigrate(db)
	}
	if err != nil {
		log.Warn().Err(err).Str("db_path", cfg.DBPath).Msg("sqlite unavailable, running memory-only")
		st = store.NewMemory()
	} else {
		st = store.NewFailover(store.NewGorm(db), store.NewMemory())
	}

	// Generation provider. Without credentials the pipeline fails hard on
	// use; the rest of the chat API works normally.
	var generator gemini.Generator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client init failed")
		}
		generator = client
		log.Info().Str("model", cfg.Gemini.Model).Msg("generation provider configured")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, recipe generation disabled")
	}

	recipeSvc := &services.RecipeService{
		Store:     st,
		Generator: generator,
		Timeout:   cfg.Gemini.Timeout,
		Sampler:   recipe.NewSampler(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	chatSvc := &services.ChatService{
		Store:           st,
		Recipes:         recipeSvc,
		MaxContentRunes: cfg.MaxContentRunes,
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, chatSvc, recipeSvc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	if generator != nil && cfg.AutoBrewPeriod > 0 {
		go autoBrew(ctx, recipeSvc, cfg.AutoBrewPeriod)
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// autoBrew periodically generates an unattended recipe until ctx is canceled.
// Failures are logged and the loop keeps ticking.
func autoBrew(ctx context.Context, svc *services.RecipeService, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	log.Info().Dur("interval", period).Msg("auto-brew loop started")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gen, err := svc.GenerateAuto(ctx)
			if err != nil {
				log.Error().Err(err).Msg("auto-brew generation failed")
				continue
			}
			log.Info().Str("recipe_id", gen.Recipe.ID).Str("name", gen.Recipe.Name).Msg("auto-brewed recipe")
		}
	}
}
