package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"nanowatch/internal/config"
	"nanowatch/internal/ena"
	"nanowatch/internal/logger"
	"nanowatch/internal/store"
	"nanowatch/internal/summary"
)

func main() {
	weeks := flag.Int("weeks", 8, "look back this many weeks from today")
	from := flag.String("from", "", "start of an explicit release-date range (YYYY-MM-DD)")
	to := flag.String("to", "", "end of an explicit release-date range (YYYY-MM-DD)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	snapshotID := uuid.NewString()
	log = log.With("snapshot_id", snapshotID)

	ctx := context.Background()
	runs, err := fetchRuns(ctx, cfg, log, *weeks, *from, *to)
	if err != nil {
		log.Fatal("fetch failed", "err", err)
	}
	rows := summary.Reduce(runs).Rows()
	if len(rows) == 0 {
		log.Info("nothing to ingest")
		return
	}

	db, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("open database", "err", err)
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		log.Fatal("ping database", "err", err)
	}

	repo := store.NewSummaryPG(db)
	if err := repo.UpsertStudies(ctx, time.Now().UTC(), rows); err != nil {
		log.Fatal("persist snapshot", "err", err)
	}
	log.Info("snapshot stored", "studies", len(rows), "runs", len(runs))
}

// fetchRuns resolves the flag combination into one fetch: an explicit
// -from/-to pair wins over the rolling -weeks lookback.
func fetchRuns(ctx context.Context, cfg config.Config, log *logger.Logger, weeks int, from, to string) ([]ena.RunRecord, error) {
	client, err := ena.NewClient(cfg.ENA, log)
	if err != nil {
		return nil, err
	}
	fetcher := ena.NewFetcher(client, log)

	if from != "" || to != "" {
		start, err := time.Parse(ena.DateLayout, from)
		if err != nil {
			return nil, fmt.Errorf("parse -from: %w", err)
		}
		end, err := time.Parse(ena.DateLayout, to)
		if err != nil {
			return nil, fmt.Errorf("parse -to: %w", err)
		}
		return fetcher.FetchBetween(ctx, start, end)
	}

	since := time.Now().UTC().AddDate(0, 0, -7*weeks)
	return fetcher.FetchSince(ctx, since)
}
