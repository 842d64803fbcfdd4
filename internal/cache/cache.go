// Package cache provides Postgres-backed persistence for expensive
// per-URL lookups surfaced alongside the dashboard: PageSpeed-style
// scores and static map images. The core engine never depends on this
// package; consumers read through it with a get/set-with-timestamp
// contract and must tolerate a cold (empty) cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTTL is how long a cached entry stays fresh.
const DefaultTTL = 7 * 24 * time.Hour

// Store wraps a Postgres connection pool. A nil *Store behaves as a
// permanently cold cache: gets miss, sets are dropped.
type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// PageScore is a cached PageSpeed-style result for one URL.
type PageScore struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Performance int       `json:"performance"`
	SEO         int       `json:"seo"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// MapImage is a cached static map image for one address.
type MapImage struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	ImageURL  string    `json:"image_url"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Connect establishes a connection pool. A zero ttl uses DefaultTTL.
func Connect(ctx context.Context, databaseURL string, ttl time.Duration) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{pool: pool, ttl: ttl}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// GetScore returns the fresh cached score for a URL. A miss (absent or
// expired row, or a nil store) returns (nil, nil).
func (s *Store) GetScore(ctx context.Context, url string) (*PageScore, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}

	var score PageScore
	err := s.pool.QueryRow(ctx,
		`SELECT id, url, performance, seo, fetched_at
		 FROM page_scores
		 WHERE url = $1 AND fetched_at > $2`,
		url, time.Now().Add(-s.ttl),
	).Scan(&score.ID, &score.URL, &score.Performance, &score.SEO, &score.FetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached score: %w", err)
	}
	return &score, nil
}

// SetScore upserts a score with the current timestamp.
func (s *Store) SetScore(ctx context.Context, url string, performance, seo int) error {
	if s == nil || s.pool == nil {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO page_scores (id, url, performance, seo, fetched_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (url) DO UPDATE SET performance = $3, seo = $4, fetched_at = NOW()`,
		uuid.New(), url, performance, seo,
	)
	if err != nil {
		return fmt.Errorf("failed to cache score: %w", err)
	}
	return nil
}

// GetMapImage returns the fresh cached map image for an address, or
// (nil, nil) on a miss.
func (s *Store) GetMapImage(ctx context.Context, address string) (*MapImage, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}

	var image MapImage
	err := s.pool.QueryRow(ctx,
		`SELECT id, address, image_url, fetched_at
		 FROM map_images
		 WHERE address = $1 AND fetched_at > $2`,
		address, time.Now().Add(-s.ttl),
	).Scan(&image.ID, &image.Address, &image.ImageURL, &image.FetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached map image: %w", err)
	}
	return &image, nil
}

// SetMapImage upserts a map image with the current timestamp.
func (s *Store) SetMapImage(ctx context.Context, address, imageURL string) error {
	if s == nil || s.pool == nil {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO map_images (id, address, image_url, fetched_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (address) DO UPDATE SET image_url = $3, fetched_at = NOW()`,
		uuid.New(), address, imageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to cache map image: %w", err)
	}
	return nil
}
