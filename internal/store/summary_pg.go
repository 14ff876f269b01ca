package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nanowatch/internal/summary"
)

// ErrNotFound reports a study accession absent from the snapshot table.
var ErrNotFound = errors.New("not found")

// SummaryPG persists finalized study summaries in Postgres.
type SummaryPG struct {
	db *pgxpool.Pool
}

func NewSummaryPG(db *pgxpool.Pool) *SummaryPG {
	return &SummaryPG{db: db}
}

// UpsertStudies writes one snapshot of finalized rows; re-ingesting a study
// refreshes its row and snapshot timestamp.
func (repo *SummaryPG) UpsertStudies(ctx context.Context, fetchedAt time.Time, rows []summary.StudyRow) error {
	upsertSQL := `
		insert into study_summaries(
			study_accession, release_date, platforms, sequencing_types, species,
			biosamples, gbases, gbytes, study_title, fetched_at)
		values($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		on conflict(study_accession)
		do update set
			release_date = excluded.release_date,
			platforms = excluded.platforms,
			sequencing_types = excluded.sequencing_types,
			species = excluded.species,
			biosamples = excluded.biosamples,
			gbases = excluded.gbases,
			gbytes = excluded.gbytes,
			study_title = excluded.study_title,
			fetched_at = excluded.fetched_at;
	`
	for _, r := range rows {
		if _, err := repo.db.Exec(ctx, upsertSQL,
			r.StudyAccession, r.ReleaseDate, r.Platforms, r.SequencingTypes, r.Species,
			r.Biosamples, r.Gbases, r.Gbytes, r.Title, fetchedAt); err != nil {
			return fmt.Errorf("upsert study %s: %w", r.StudyAccession, err)
		}
	}
	return nil
}

// ListParams filters and pages the stored summaries.
type ListParams struct {
	Platform      string
	ReleasedAfter string
	Limit         int
	Offset        int
}

const summaryColumns = `study_accession, release_date, platforms, sequencing_types,
	species, biosamples, gbases, gbytes, study_title`

// List returns one page of stored summaries plus the unpaged total, newest
// release first.
func (repo *SummaryPG) List(ctx context.Context, params ListParams) ([]summary.StudyRow, int, error) {
	where := "true"
	args := []any{}
	if params.Platform != "" {
		args = append(args, "%"+params.Platform+"%")
		where += fmt.Sprintf(" and platforms ilike $%d", len(args))
	}
	if params.ReleasedAfter != "" {
		args = append(args, params.ReleasedAfter)
		where += fmt.Sprintf(" and release_date >= $%d", len(args))
	}

	var total int
	countSQL := "select count(*) from study_summaries where " + where
	if err := repo.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Limit, params.Offset)
	listSQL := fmt.Sprintf(`
		select %s
		from study_summaries
		where %s
		order by release_date desc, study_accession asc
		limit $%d offset $%d`, summaryColumns, where, len(args)-1, len(args))

	rows, err := repo.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []summary.StudyRow
	for rows.Next() {
		var r summary.StudyRow
		if err := rows.Scan(&r.StudyAccession, &r.ReleaseDate, &r.Platforms, &r.SequencingTypes,
			&r.Species, &r.Biosamples, &r.Gbases, &r.Gbytes, &r.Title); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// GetByAccession returns one stored summary or ErrNotFound.
func (repo *SummaryPG) GetByAccession(ctx context.Context, accession string) (summary.StudyRow, error) {
	query := fmt.Sprintf(`select %s from study_summaries where study_accession = $1 limit 1`, summaryColumns)

	var r summary.StudyRow
	err := repo.db.QueryRow(ctx, query, accession).Scan(
		&r.StudyAccession, &r.ReleaseDate, &r.Platforms, &r.SequencingTypes,
		&r.Species, &r.Biosamples, &r.Gbases, &r.Gbytes, &r.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.StudyRow{}, ErrNotFound
		}
		return summary.StudyRow{}, err
	}
	return r, nil
}
