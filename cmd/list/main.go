package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"nanowatch/internal/config"
	"nanowatch/internal/ena"
	"nanowatch/internal/logger"
	"nanowatch/internal/render"
	"nanowatch/internal/summary"
)

func main() {
	weeks := flag.Int("weeks", 8, "look back this many weeks from today")
	from := flag.String("from", "", "start of an explicit release-date range (YYYY-MM-DD)")
	to := flag.String("to", "", "end of an explicit release-date range (YYYY-MM-DD)")
	format := flag.String("format", "table", "output format: table, csv, json or html")
	out := flag.String("out", "", "write output to this file instead of stdout")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	runs, err := fetchRuns(context.Background(), cfg, log, *weeks, *from, *to)
	if err != nil {
		log.Fatal("fetch failed", "err", err)
	}

	rows := summary.Reduce(runs).Rows()
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No Oxford Nanopore runs found for the requested range.")
		return
	}

	var dst io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal("create output file", "path", *out, "err", err)
		}
		defer f.Close()
		dst = f
	}

	if err := renderRows(dst, render.Format(*format), rows); err != nil {
		log.Fatal("render failed", "format", *format, "err", err)
	}
	log.Info("done", "studies", len(rows), "runs", len(runs))
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

func renderRows(w io.Writer, format render.Format, rows []summary.StudyRow) error {
	switch format {
	case render.FormatTable:
		return render.Table(w, rows)
	case render.FormatCSV:
		return render.CSV(w, rows)
	case render.FormatJSON:
		return render.JSON(w, rows)
	case render.FormatHTML:
		return render.HTML(w, rows)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
