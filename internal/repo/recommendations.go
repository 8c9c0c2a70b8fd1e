package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/altkan/linkwise/internal"
	"github.com/altkan/linkwise/internal/recs"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	statusActive   = "active"
	statusAccepted = "accepted"
)

type recommendationRow struct {
	ID            string `db:"id"`
	Type          string `db:"type"`
	Priority      string `db:"priority"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	SuggestedSlug string `db:"suggested_slug"`
	TargetURL     string `db:"target_url"`
	Status        string `db:"status"`
	ExpiresAt     Date   `db:"expires_at"`
	CreatedAt     Date   `db:"created_at"`
}

type RecommendationsRepo struct {
	db *sql.DB
}

func NewRecommendationsRepo(db *sql.DB) *RecommendationsRepo {
	return &RecommendationsRepo{db: db}
}

// ListActive returns unexpired, unaccepted recommendations in insertion order.
func (r *RecommendationsRepo) ListActive(ctx context.Context, now time.Time) ([]recs.Recommendation, error) {
	executor := goqu.New("sqlite", r.db)

	query := executor.From("recommendations").
		Select("id", "type", "priority", "title", "description", "suggested_slug", "target_url", "status", "expires_at", "created_at").
		Where(
			goqu.Ex{"status": statusActive},
			goqu.C("expires_at").Gt(Date(now.UTC())),
		).
		Order(goqu.C("rowid").Asc())

	var rows []recommendationRow
	if err := query.Executor().ScanStructsContext(ctx, &rows); err != nil {
		log.Error().Err(err).Msg("failed to list recommendations")
		return nil, err
	}

	out := make([]recs.Recommendation, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Get fetches one recommendation regardless of status. Accepted ones come
// back as ErrRecommendationAccepted so handlers can answer with a conflict.
func (r *RecommendationsRepo) Get(ctx context.Context, id string) (*recs.Recommendation, error) {
	executor := goqu.New("sqlite", r.db)

	query := executor.From("recommendations").
		Select("id", "type", "priority", "title", "description", "suggested_slug", "target_url", "status", "expires_at", "created_at").
		Where(goqu.Ex{"id": id})

	var row recommendationRow
	found, err := query.Executor().ScanStructContext(ctx, &row)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to fetch recommendation")
		return nil, err
	}
	if !found {
		return nil, internal.ErrRecommendationNotFound
	}
	if row.Status == statusAccepted {
		return nil, internal.ErrRecommendationAccepted
	}

	rec := row.toDomain()
	return &rec, nil
}

func (r *RecommendationsRepo) InsertBatch(ctx context.Context, batch []recs.Recommendation) error {
	if len(batch) == 0 {
		return nil
	}

	executor := goqu.New("sqlite", r.db)

	rows := make([]recommendationRow, len(batch))
	for i, rec := range batch {
		rows[i] = fromDomain(rec)
	}

	query := executor.Insert("recommendations").Rows(rows)
	if _, err := query.Executor().ExecContext(ctx); err != nil {
		log.Error().Err(err).Int("count", len(batch)).Msg("failed to insert recommendations")
		return err
	}

	log.Info().Int("count", len(batch)).Msg("recommendations stored")
	return nil
}

func (r *RecommendationsRepo) MarkAccepted(ctx context.Context, id string) error {
	executor := goqu.New("sqlite", r.db)

	query := executor.Update("recommendations").
		Set(goqu.Record{"status": statusAccepted}).
		Where(goqu.Ex{"id": id})

	res, err := query.Executor().ExecContext(ctx)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to mark recommendation accepted")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return internal.ErrRecommendationNotFound
	}

	log.Debug().Str("id", id).Msg("recommendation accepted")
	return nil
}

func (row recommendationRow) toDomain() recs.Recommendation {
	return recs.Recommendation{
		ID:            row.ID,
		Type:          recs.Type(row.Type),
		Priority:      recs.Priority(row.Priority),
		Title:         row.Title,
		Description:   row.Description,
		SuggestedSlug: row.SuggestedSlug,
		TargetURL:     row.TargetURL,
		ExpiresAt:     row.ExpiresAt.Time(),
		CreatedAt:     row.CreatedAt.Time(),
	}
}

func fromDomain(rec recs.Recommendation) recommendationRow {
	return recommendationRow{
		ID:            rec.ID,
		Type:          string(rec.Type),
		Priority:      string(rec.Priority),
		Title:         rec.Title,
		Description:   rec.Description,
		SuggestedSlug: rec.SuggestedSlug,
		TargetURL:     rec.TargetURL,
		Status:        statusActive,
		ExpiresAt:     Date(rec.ExpiresAt.UTC()),
		CreatedAt:     Date(rec.CreatedAt.UTC()),
	}
}
