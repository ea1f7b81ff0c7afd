// Package store persists cached analyses as one JSONB document per cache
// key in a flat Postgres table.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"policylens/apimodels"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const memCacheSize = 1024

type Store struct {
	pool *pgxpool.Pool

	// mem holds recently read/written records so repeat lookups within one
	// process skip the round trip. Freshness is still checked on read.
	mem *lru.Cache[string, *apimodels.CachedAnalysis]
}

// Connect opens the pool, runs migrations, and verifies connectivity.
func Connect(ctx context.Context, url string) (*Store, error) {
	if err := migrate(url); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	mem, err := lru.New[string, *apimodels.CachedAnalysis](memCacheSize)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool, mem: mem}, nil
}

// migrate applies embedded migrations through the database/sql pgx driver,
// which is what goose expects.
func migrate(url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func (s *Store) Close() { s.pool.Close() }

// Get returns the record for key if it was created at or after since.
// Stale records stay in the table untouched; they are simply not returned.
func (s *Store) Get(ctx context.Context, key string, since time.Time) (*apimodels.CachedAnalysis, error) {
	if rec, ok := s.mem.Get(key); ok {
		if !rec.CreatedAt.Before(since) {
			return rec, nil
		}
		// Stale in memory; fall through in case another writer refreshed it.
	}

	var doc []byte
	err := s.pool.QueryRow(ctx, `
		SELECT doc FROM analyses
		WHERE cache_key = $1 AND created_at >= $2
	`, key, since).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec apimodels.CachedAnalysis
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, err
	}
	s.mem.Add(key, &rec)
	return &rec, nil
}

// Put upserts the record under its cache key: a full replace, not a merge.
// created_at is written fresh so an overwrite restarts the freshness window.
func (s *Store) Put(ctx context.Context, rec *apimodels.CachedAnalysis) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO analyses (cache_key, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cache_key) DO UPDATE SET
			doc = EXCLUDED.doc,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`, rec.CacheKey, doc, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return err
	}

	s.mem.Add(rec.CacheKey, rec)
	return nil
}
