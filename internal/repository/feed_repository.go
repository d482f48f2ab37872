package repository

import (
	"context"
	"time"

	"gainezis-fintrade/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// FeedRepository persists generated opportunity batches and serves the
// public feed.
type FeedRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewFeedRepository(pool PgxPool, tracer trace.Tracer) *FeedRepository {
	return &FeedRepository{pool: pool, tracer: tracer}
}

func (r *FeedRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "feed-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS opportunity_feed (
			id BIGSERIAL PRIMARY KEY,
			asset TEXT NOT NULL,
			action TEXT NOT NULL,
			entry_point DOUBLE PRECISION NOT NULL DEFAULT 0,
			stop_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
			take_profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			confidence TEXT NOT NULL,
			potential_gain TEXT NOT NULL,
			rationale TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_opportunity_feed_created_at
			ON opportunity_feed (created_at DESC);
	`)
	return err
}

func (r *FeedRepository) RecordOpportunities(ctx context.Context, opportunities []domain.Opportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "feed-repo.record-opportunities")
	defer span.End()

	batch := &pgx.Batch{}
	for _, o := range opportunities {
		batch.Queue(
			`INSERT INTO opportunity_feed (asset, action, entry_point, stop_loss, take_profit, confidence, potential_gain, rationale)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.Asset,
			string(o.Action),
			o.EntryPoint,
			o.StopLoss,
			o.TakeProfit,
			string(o.Confidence),
			string(o.PotentialGain),
			o.Rationale,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range opportunities {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *FeedRepository) ListRecent(ctx context.Context, limit int) ([]domain.FeedEntry, error) {
	_, span := r.tracer.Start(ctx, "feed-repo.list-recent")
	defer span.End()

	if limit <= 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, asset, action, entry_point, stop_loss, take_profit, confidence, potential_gain, rationale, created_at
		FROM opportunity_feed
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.FeedEntry, 0, limit)
	for rows.Next() {
		var e domain.FeedEntry
		var action string
		var confidence string
		var potentialGain string
		var createdAt time.Time

		if err := rows.Scan(
			&e.ID,
			&e.Asset,
			&action,
			&e.EntryPoint,
			&e.StopLoss,
			&e.TakeProfit,
			&confidence,
			&potentialGain,
			&e.Rationale,
			&createdAt,
		); err != nil {
			return nil, err
		}
		e.Action = domain.TradeAction(action)
		e.Confidence = domain.GainLevel(confidence)
		e.PotentialGain = domain.GainLevel(potentialGain)
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
