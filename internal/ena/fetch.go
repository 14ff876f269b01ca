package ena

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nanowatch/internal/logger"
)

// Fetcher drives search requests over a date range and deduplicates the
// resulting run rows by accession. All fetching is sequential: one window's
// request completes before the next begins, and the dedup state lives only
// for the duration of a single call.
type Fetcher struct {
	client *Client
	log    *logger.Logger

	// now is swapped out in tests to pin "today".
	now func() time.Time
}

func NewFetcher(client *Client, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Fetcher{client: client, log: log, now: time.Now}
}

// FetchSince returns runs first published or updated on/after since, through
// today. One unbounded request covering the whole range is attempted first;
// any non-success status falls back to 14-day windows over the same
// predicate. The fallback also swallows 4xx that windowing may well
// reproduce, so the failing status is logged before windowing starts.
func (f *Fetcher) FetchSince(ctx context.Context, since time.Time) ([]RunRecord, error) {
	f.handshake(ctx)

	day := midnightUTC(since)
	url := searchURL(f.client.baseURL, sinceQuery(day.Format(DateLayout)), runFields)
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if success(resp.StatusCode) {
		runs, err := decodeRuns(resp)
		if err != nil {
			return nil, err
		}
		f.log.Info("full-range request satisfied", "runs", len(runs))
		return runs, nil
	}
	drain(resp)
	f.log.Warn("full-range request failed, falling back to windows", "status", resp.StatusCode)

	return f.fetchWindows(ctx, splitWindows(day, f.now()), rollingWindowQuery)
}

// FetchBetween returns runs whose first_public date falls in [start, end],
// both ends inclusive. It always windows; there is no single-shot attempt.
// An end before start is rejected before any network activity.
func (f *Fetcher) FetchBetween(ctx context.Context, start, end time.Time) ([]RunRecord, error) {
	s := midnightUTC(start)
	e := midnightUTC(end)
	if e.Before(s) {
		return nil, ErrInvalidRange
	}

	f.handshake(ctx)
	return f.fetchWindows(ctx, splitWindows(s, e), releasedWindowQuery)
}

func (f *Fetcher) handshake(ctx context.Context) {
	if err := f.client.Ping(ctx); err != nil {
		f.log.Warn("ena handshake warning", "err", err)
	}
}

// fetchWindows runs one search per window, failing the whole fetch on the
// first window that cannot be fetched or decoded; a partial result is never
// returned as if it were complete. The dedup set spans all windows of this
// call; rows without a run accession always pass through.
func (f *Fetcher) fetchWindows(ctx context.Context, windows []Window, query func(Window) string) ([]RunRecord, error) {
	seen := make(map[string]struct{})
	out := []RunRecord{}

	for _, w := range windows {
		w := w
		url := searchURL(f.client.baseURL, query(w), runFields)
		resp, err := f.client.Get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w, err)
		}
		if !success(resp.StatusCode) {
			status := resp.StatusCode
			drain(resp)
			return nil, &StatusError{Status: status, Window: &w}
		}
		runs, err := decodeRuns(resp)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w, err)
		}

		before := len(out)
		for _, rec := range runs {
			if rec.RunAccession != "" {
				if _, dup := seen[rec.RunAccession]; dup {
					continue
				}
				seen[rec.RunAccession] = struct{}{}
			}
			out = append(out, rec)
		}
		f.log.Info("window fetched", "window", w.String(), "new", len(out)-before, "total", len(out))
	}
	return out, nil
}

func decodeRuns(resp *http.Response) ([]RunRecord, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read read_run response: %w", err)
	}
	var runs []RunRecord
	if err := json.Unmarshal(body, &runs); err != nil {
		return nil, fmt.Errorf("decode read_run response: %w", err)
	}
	return runs, nil
}
