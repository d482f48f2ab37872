package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gainezis-fintrade/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

func TestFeedRunMigrationsExecutesSchema(t *testing.T) {
	pool := &feedStubPool{}
	repo := NewFeedRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	if err := repo.RunMigrations(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool.execSQL) == 0 {
		t.Fatal("expected Exec to be called")
	}
}

func TestFeedRecordOpportunitiesBatchesStatements(t *testing.T) {
	batchResults := &feedStubBatchResults{}
	pool := &feedStubPool{batchResults: batchResults}
	repo := NewFeedRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	opportunities := []domain.Opportunity{
		{Asset: "BTC", Action: domain.ActionBuy, Confidence: domain.GainHigh, PotentialGain: domain.GainHigh, Rationale: "breakout"},
		{Asset: "EUR/USD", Action: domain.ActionSell, Confidence: domain.GainMedium, PotentialGain: domain.GainLow, Rationale: "resistance"},
	}
	if err := repo.RecordOpportunities(context.Background(), opportunities); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.queuedBatch == nil || pool.queuedBatch.Len() != len(opportunities) {
		t.Fatalf("expected batch of size %d", len(opportunities))
	}
	if batchResults.execCalls != len(opportunities) {
		t.Fatalf("expected %d Exec calls, got %d", len(opportunities), batchResults.execCalls)
	}
}

func TestFeedRecordOpportunitiesSkipsEmptyBatch(t *testing.T) {
	pool := &feedStubPool{}
	repo := NewFeedRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	if err := repo.RecordOpportunities(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.queuedBatch != nil {
		t.Fatal("expected no batch for empty input")
	}
}

func TestFeedListRecentReturnsRows(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	rows := [][]any{{
		int64(7), "BTC", string(domain.ActionBuy), 64000.0, 62000.0, 70000.0,
		string(domain.GainHigh), string(domain.GainHigh), "breakout above resistance", now,
	}}
	pool := &feedStubPool{rowsData: rows}
	repo := NewFeedRepository(pool, trace.NewNoopTracerProvider().Tracer("test"))

	entries, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != 7 || e.Asset != "BTC" || e.Action != domain.ActionBuy || e.PotentialGain != domain.GainHigh {
		t.Fatalf("unexpected entry payload: %+v", e)
	}
	if !e.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at: %v", e.CreatedAt)
	}
}

type feedStubPool struct {
	execSQL      []string
	batchResults pgx.BatchResults
	queuedBatch  *pgx.Batch
	rowsData     [][]any
}

func (s *feedStubPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.execSQL = append(s.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

func (s *feedStubPool) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	s.queuedBatch = b
	if s.batchResults != nil {
		return s.batchResults
	}
	return &feedStubBatchResults{}
}

func (s *feedStubPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	dataCopy := make([][]any, len(s.rowsData))
	for i := range s.rowsData {
		row := make([]any, len(s.rowsData[i]))
		copy(row, s.rowsData[i])
		dataCopy[i] = row
	}
	return &feedStubRows{data: dataCopy}, nil
}

func (s *feedStubPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &feedStubRow{}
}

type feedStubBatchResults struct {
	execCalls int
}

func (s *feedStubBatchResults) Exec() (pgconn.CommandTag, error) {
	s.execCalls++
	return pgconn.CommandTag{}, nil
}

func (s *feedStubBatchResults) Query() (pgx.Rows, error) { return &feedStubRows{}, nil }

func (s *feedStubBatchResults) QueryRow() pgx.Row { return &feedStubRow{} }

func (s *feedStubBatchResults) Close() error { return nil }

type feedStubRows struct {
	data [][]any
	idx  int
}

func (r *feedStubRows) Close() {}

func (r *feedStubRows) Err() error { return nil }

func (r *feedStubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *feedStubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *feedStubRows) Next() bool {
	if len(r.data) == 0 || r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *feedStubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.data) {
		return fmt.Errorf("invalid scan index")
	}
	row := r.data[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = row[i].(int64)
		case *string:
			*v = row[i].(string)
		case *float64:
			*v = row[i].(float64)
		case *time.Time:
			*v = row[i].(time.Time)
		default:
			return fmt.Errorf("unsupported destination type %T", d)
		}
	}
	return nil
}

func (r *feedStubRows) Values() ([]any, error) { return nil, nil }

func (r *feedStubRows) RawValues() [][]byte { return nil }

func (r *feedStubRows) Conn() *pgx.Conn { return nil }

type feedStubRow struct{}

func (r *feedStubRow) Scan(dest ...any) error { return nil }
