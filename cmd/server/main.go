package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"job-board-go/internal/api"
	"job-board-go/internal/auth"
	"job-board-go/internal/config"
	"job-board-go/internal/logger"
	"job-board-go/internal/models"
	"job-board-go/internal/repository"
	"job-board-go/internal/storage"
	"job-board-go/pkg/httpclient"
)

func main() {
	var (
		configFile = flag.String("config", "config.json", "Configuration file path")
		demo       = flag.Bool("demo", false, "Run against an in-memory store with sample jobs")
	)
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Monitoring.LogLevel)
	log := logger.Get()

	var (
		store   storage.Store
		authSvc auth.Service
	)

	if *demo {
		mem := storage.NewMemoryStore()
		mem.Seed(demoJobs())
		store = mem
		authSvc = &auth.Static{User: &auth.User{ID: "demo-admin", Email: "admin@example.com"}}
		log.Info().Msg("running in demo mode with an in-memory store")
	} else {
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("configuration validation failed")
		}

		rest := httpclient.NewHttpClient(cfg.App.RequestTimeout)
		supa, err := storage.NewSupabaseStore(cfg.Database.SupabaseURL, cfg.Database.SupabaseKey, cfg.Database.JobTable, rest)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize storage")
		}
		store = supa
		authSvc = auth.NewSupabase(supa.Client())

		pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("store not reachable at startup")
		}
		cancel()
	}

	// One repository per view: the public listing and the admin panel.
	// The admin view re-lists after writes, matching its live table.
	publicRepo := repository.New(store, authSvc, repository.ModeLocal, log)
	adminRepo := repository.New(store, authSvc, repository.ModeAutoRefresh, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))

	handler := api.NewHandler(publicRepo, adminRepo, store, api.Limits{
		DefaultPageSize: cfg.App.DefaultPageSize,
		MaxPageSize:     cfg.App.MaxPageSize,
	}, log)

	limiter := api.NewRateLimiter(cfg.App.RateLimitPerMinute)
	handler.RegisterRoutes(router, api.RequireAuth(authSvc), api.RateLimit(limiter))

	if cfg.Monitoring.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("job board server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server shutdown complete")
}

// demoJobs seeds the in-memory store with a small, varied dataset.
func demoJobs() []models.Job {
	now := time.Now()
	return []models.Job{
		{
			Title:       "Senior Backend Engineer",
			CompanyName: "Acme Corp",
			Description: "Design and run our Go services.",
			Location:    "Remote",
			JobType:     []string{models.JobTypeFullTime, models.JobTypeRemote},
			UserID:      "demo-admin",
			CreatedAt:   now.Add(-2 * 24 * time.Hour),
		},
		{
			Title:       "Frontend Developer",
			CompanyName: "Initech",
			Description: "Build the customer dashboard.",
			Location:    "New York",
			JobType:     []string{models.JobTypeFullTime, models.JobTypeHybrid},
			UserID:      "demo-admin",
			CreatedAt:   now.Add(-10 * 24 * time.Hour),
		},
		{
			Title:       "Data Engineering Intern",
			CompanyName: "Globex",
			Description: "Support the analytics pipeline team.",
			Location:    "London",
			JobType:     []string{models.JobTypeInternship, models.JobTypeOnSite},
			UserID:      "demo-admin",
			CreatedAt:   now.Add(-20 * 24 * time.Hour),
		},
		{
			Title:       "DevOps Contractor",
			CompanyName: "Umbrella",
			Description: "Six month infrastructure engagement.",
			Location:    "Remote",
			JobType:     []string{models.JobTypeContract, models.JobTypeRemote},
			UserID:      "demo-admin",
			CreatedAt:   now.Add(-45 * 24 * time.Hour),
		},
		{
			Title:       "Part-time QA Analyst",
			CompanyName: "Soylent",
			Description: "Exploratory testing on release candidates.",
			Location:    "Toronto",
			JobType:     []string{models.JobTypePartTime},
			UserID:      "demo-admin",
			CreatedAt:   now.Add(-5 * 24 * time.Hour),
		},
	}
}
