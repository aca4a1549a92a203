package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"rankwatch/internal/config"
	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
	"rankwatch/internal/service"
	syncsvc "rankwatch/internal/service/sync"
)

func main() {
	projectFlag := flag.String("project", "", "sync a single project by ID (default: all active projects)")
	fromFlag := flag.String("from", "", "window start date (YYYY-MM-DD)")
	toFlag := flag.String("to", "", "window end date (YYYY-MM-DD)")
	daysFlag := flag.Int("days", 0, "sync the last N days ending yesterday")
	weeklyFlag := flag.Bool("weekly", false, "send weekly summary notifications instead of syncing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := config.RunMigrations(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)

	ctx := context.Background()

	if *weeklyFlag {
		runWeekly(ctx, services, *projectFlag)
		return
	}

	window, err := resolveWindow(*fromFlag, *toFlag, *daysFlag)
	if err != nil {
		log.Fatalf("Invalid window: %v", err)
	}

	runSync(ctx, services, *projectFlag, window)
}

func resolveWindow(from, to string, days int) (domain.DateRange, error) {
	if days > 0 && (from != "" || to != "") {
		return domain.DateRange{}, fmt.Errorf("-days cannot be combined with -from/-to")
	}

	if days > 0 {
		return domain.LastDays(time.Now(), days), nil
	}

	if from == "" && to == "" {
		return domain.PreviousDay(time.Now()), nil
	}

	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("parse -from: %w", err)
	}

	toDate := fromDate
	if to != "" {
		toDate, err = time.Parse("2006-01-02", to)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("parse -to: %w", err)
		}
	}

	if toDate.Before(fromDate) {
		return domain.DateRange{}, fmt.Errorf("-to is before -from")
	}

	return domain.DateRange{From: fromDate, To: toDate}, nil
}

func runSync(ctx context.Context, services *service.Services, projectID string, window domain.DateRange) {
	var summaries []syncsvc.Summary

	if projectID != "" {
		id, err := uuid.Parse(projectID)
		if err != nil {
			log.Fatalf("Invalid project ID: %v", err)
		}

		summary, err := services.Sync.SyncProject(ctx, id, window)
		if err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		summaries = append(summaries, *summary)
	} else {
		var err error
		summaries, err = services.Sync.SyncAll(ctx, window)
		if err != nil {
			log.Printf("Sync finished with errors: %v", err)
		}
	}

	failed := false
	for _, s := range summaries {
		printSummary(&s)
		if s.Failed() {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func runWeekly(ctx context.Context, services *service.Services, projectID string) {
	if projectID != "" {
		id, err := uuid.Parse(projectID)
		if err != nil {
			log.Fatalf("Invalid project ID: %v", err)
		}

		if err := services.Sync.SendWeeklySummary(ctx, id); err != nil {
			log.Fatalf("Weekly summary failed: %v", err)
		}
		return
	}

	if err := services.Sync.SendAllWeeklySummaries(ctx); err != nil {
		log.Printf("Weekly summaries finished with errors: %v", err)
		os.Exit(1)
	}
}

func printSummary(s *syncsvc.Summary) {
	status := "ok"
	if s.Failed() {
		status = "FAILED"
	}

	fmt.Printf("%s (%s): keywords=%d recorded=%d events=%d notified=%d failed_chunks=%d failed_keywords=%d missing_credentials=%t [%s]\n",
		s.ProjectName, s.ProjectID, s.Keywords, s.Recorded, s.Events, s.Notified,
		s.FailedChunks, s.FailedKeywords, s.MissingCredentials, status)
}
