package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"nanowatch/internal/config"
	"nanowatch/internal/httpapi"
	"nanowatch/internal/httpx"
	"nanowatch/internal/logger"
	"nanowatch/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db := mustOpenDB(cfg.DatabaseDSN, log)
	defer db.Close()

	studies := httpapi.NewStudyHandler(store.NewSummaryPG(db))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			httpx.JSONError(r, w, http.StatusServiceUnavailable, "db_unavailable", "database not reachable")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/studies", studies.List)
	mux.HandleFunc("/studies/", studies.GetByAccession)

	var handler http.Handler = mux
	handler = httpx.RecoveryMiddleware(log)(handler)
	handler = httpx.AccessLogMiddleware(log)(handler)
	handler = httpx.RequestIDMiddleware(handler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("api listening", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server stopped", "err", err)
	}
}

func mustOpenDB(dsn string, log *logger.Logger) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("open database", "err", err)
	}
	if err := db.Ping(ctx); err != nil {
		log.Fatal("ping database", "err", err)
	}
	return db
}
