package store

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// SampleStore keeps sample rows in Postgres, features as a pgvector column.
type SampleStore struct {
	db *pgxpool.Pool
}

func NewSampleStore(db *pgxpool.Pool) *SampleStore {
	return &SampleStore{db: db}
}

func (s *SampleStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS samples (
			id         UUID PRIMARY KEY,
			features   vector NOT NULL,
			label      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS samples_label_idx ON samples (label);`)
	return err
}

func (s *SampleStore) List(ctx context.Context) ([]domain.Sample, error) {
	rows, err := s.db.Query(ctx,
		`SELECT features::real[], label FROM samples ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []domain.Sample
	for rows.Next() {
		var (
			features []float32
			label    string
		)
		if err := rows.Scan(&features, &label); err != nil {
			return nil, err
		}
		samples = append(samples, domain.Sample{
			Features: toFloat64(features),
			Label:    domain.Hypothesis(label),
		})
	}
	return samples, rows.Err()
}

func (s *SampleStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM samples`).Scan(&n)
	return n, err
}

// InsertBatch writes all samples in one round trip.
func (s *SampleStore) InsertBatch(ctx context.Context, samples []domain.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, sample := range samples {
		batch.Queue(
			`INSERT INTO samples (id, features, label) VALUES ($1, $2, $3)`,
			uuid.New(), pgvector.NewVector(toFloat32(sample.Features)), string(sample.Label),
		)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()
	for i := range samples {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert sample %d: %w", i, err)
		}
	}
	return nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
