package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"job-board-go/internal/auth"
	"job-board-go/internal/config"
	"job-board-go/internal/logger"
	"job-board-go/internal/models"
	"job-board-go/internal/query"
	"job-board-go/internal/repository"
	"job-board-go/internal/storage"
	"job-board-go/pkg/httpclient"
)

func main() {
	var (
		configFile = flag.String("config", "config.json", "Configuration file path")
		command    = flag.String("cmd", "list", "Command to run: list, get, create, delete, stats, config")
		search     = flag.String("search", "", "Free-text search across title, company, description and location")
		jobTypes   = flag.String("type", "", "Comma-separated job type filter (e.g. Full-time,Remote)")
		location   = flag.String("location", "", "Location substring filter")
		company    = flag.String("company", "", "Company substring filter")
		page       = flag.Int("page", 1, "Page number (1-based)")
		limit      = flag.Int("limit", 10, "Jobs per page")
		id         = flag.String("id", "", "Job id for get/delete")
		file       = flag.String("file", "", "JSON file holding a job draft for create")
		actingUser = flag.String("user", os.Getenv("JOBBOARD_ACTING_USER"), "Acting user id for writes")
		output     = flag.String("output", "console", "Output format: console, json")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fatalf("Failed to load configuration: %v", err)
	}

	if *command == "config" {
		if *output == "json" {
			outputJSON(cfg)
		} else {
			fmt.Printf("Supabase URL: %s\n", cfg.Database.SupabaseURL)
			fmt.Printf("Job table: %s\n", cfg.Database.JobTable)
			fmt.Printf("Default page size: %d\n", cfg.App.DefaultPageSize)
			fmt.Printf("Max page size: %d\n", cfg.App.MaxPageSize)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		fatalf("Configuration validation failed: %v", err)
	}

	logger.Init(cfg.Monitoring.LogLevel)
	log := logger.Get()

	rest := httpclient.NewHttpClient(cfg.App.RequestTimeout)
	store, err := storage.NewSupabaseStore(cfg.Database.SupabaseURL, cfg.Database.SupabaseKey, cfg.Database.JobTable, rest)
	if err != nil {
		fatalf("Failed to initialize storage: %v", err)
	}

	// The CLI runs with service credentials, so the acting user is
	// whoever the operator says it is.
	authSvc := &auth.Static{}
	if *actingUser != "" {
		authSvc.User = &auth.User{ID: *actingUser}
	}

	repo := repository.New(store, authSvc, repository.ModeLocal, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	filters := query.FilterSpec{
		Search:   *search,
		Location: *location,
		Company:  *company,
	}
	if *jobTypes != "" {
		filters.JobTypes = strings.Split(*jobTypes, ",")
	}

	switch *command {
	case "list":
		runListCommand(ctx, repo, filters, *page, *limit, *output)
	case "get":
		runGetCommand(ctx, repo, *id, *output)
	case "create":
		runCreateCommand(ctx, repo, *file, *output)
	case "delete":
		runDeleteCommand(ctx, repo, *id)
	case "stats":
		runStatsCommand(ctx, repo, filters, *limit, *output)
	default:
		fmt.Printf("Unknown command: %s\n", *command)
		printUsage()
		os.Exit(1)
	}
}

func runListCommand(ctx context.Context, repo *repository.Repository, filters query.FilterSpec, page, limit int, output string) {
	jobs, meta, err := repo.List(ctx, filters, page, limit)
	if err != nil {
		fatalf("Failed to list jobs: %v", err)
	}

	if output == "json" {
		outputJSON(map[string]interface{}{"jobs": jobs, "pagination": meta})
		return
	}

	fmt.Printf("Page %d/%d (%d jobs total)\n", meta.Current, meta.TotalPages, meta.TotalItems)
	for _, job := range jobs {
		fmt.Printf("  %s  %-30s  %-20s  %-15s  %s\n",
			job.ID, truncate(job.Title, 30), truncate(job.CompanyName, 20),
			truncate(job.Location, 15), strings.Join(job.JobType, ","))
	}
}

func runGetCommand(ctx context.Context, repo *repository.Repository, id, output string) {
	if id == "" {
		fatalf("get requires -id")
	}
	job, err := repo.Get(ctx, id)
	if err != nil {
		fatalf("Failed to get job: %v", err)
	}

	if output == "json" {
		outputJSON(job)
		return
	}

	fmt.Printf("Title:      %s\n", job.Title)
	fmt.Printf("Company:    %s\n", job.CompanyName)
	fmt.Printf("Location:   %s\n", job.Location)
	fmt.Printf("Types:      %s\n", strings.Join(job.JobType, ", "))
	fmt.Printf("Created:    %s\n", job.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:    %s\n", job.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("\n%s\n", job.Description)
}

func runCreateCommand(ctx context.Context, repo *repository.Repository, file, output string) {
	if file == "" {
		fatalf("create requires -file with a JSON job draft")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("Failed to read draft file: %v", err)
	}

	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		fatalf("Failed to parse draft file: %v", err)
	}

	job, err := repo.Create(ctx, draft)
	if err != nil {
		fatalf("Failed to create job: %v", err)
	}

	if output == "json" {
		outputJSON(job)
		return
	}
	fmt.Printf("Created job %s (%s at %s)\n", job.ID, job.Title, job.CompanyName)
}

func runDeleteCommand(ctx context.Context, repo *repository.Repository, id string) {
	if id == "" {
		fatalf("delete requires -id")
	}
	if err := repo.Delete(ctx, id); err != nil {
		fatalf("Failed to delete job: %v", err)
	}
	fmt.Printf("Deleted job %s\n", id)
}

func runStatsCommand(ctx context.Context, repo *repository.Repository, filters query.FilterSpec, limit int, output string) {
	if _, _, err := repo.List(ctx, filters, 1, limit); err != nil {
		fatalf("Failed to list jobs: %v", err)
	}

	summary := repo.Stats()
	if output == "json" {
		outputJSON(summary)
		return
	}

	fmt.Println("=== Job Stats (loaded page) ===")
	fmt.Printf("Total Jobs:  %d\n", summary.TotalJobs)
	fmt.Printf("Active (30d): %d\n", summary.ActiveJobs)
	fmt.Printf("Remote:      %d\n", summary.RemoteJobs)
	fmt.Printf("Recent (7d): %d\n", summary.RecentJobs)
}

func outputJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fatalf("Failed to encode output: %v", err)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func fatalf(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`jobctl - job board admin CLI

Usage:
  jobctl -cmd list [-search text] [-type Full-time,Remote] [-location text] [-company text] [-page N] [-limit N]
  jobctl -cmd get -id <job-id>
  jobctl -cmd create -file draft.json -user <acting-user-id>
  jobctl -cmd delete -id <job-id>
  jobctl -cmd stats [filters...]
  jobctl -cmd config

Flags:
  -config   Configuration file path (default config.json)
  -output   console or json (default console)
  -user     Acting user id for writes (env JOBBOARD_ACTING_USER)`)
}
