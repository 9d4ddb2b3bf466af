package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) RecordFetch(ctx context.Context, record *domain.FetchRecord) error {
	query := `
        INSERT INTO page_fetches (url, digest, title, snippet_count,
                                  handle_count, link_count, cached, fetched_at)
        VALUES (:url, :digest, :title, :snippet_count,
                :handle_count, :link_count, :cached, :fetched_at)
        RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("failed to insert fetch record: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&record.ID, &record.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan returning values: %w", err)
		}
	}

	return nil
}

func (r *PostgresRepository) RecentFetches(ctx context.Context, limit, offset int) ([]*domain.FetchRecord, error) {
	var records []*domain.FetchRecord
	query := `
        SELECT id, url, digest, title, snippet_count, handle_count,
               link_count, cached, fetched_at, created_at
        FROM page_fetches
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	if err := r.db.SelectContext(ctx, &records, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get recent fetches: %w", err)
	}

	return records, nil
}
