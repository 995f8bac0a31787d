// Package catalog persists search result snapshots in SQLite and serves them
// back, ranked by a Bleve title index, when live scraping produces nothing.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/models"
)

// seedQuery marks products loaded from the seed file rather than captured
// from a live search. Seed rows survive pruning.
const seedQuery = "__seed__"

// Store is the snapshot catalog: a SQLite database of past search results
// plus a Bleve index over product titles for fuzzy fallback lookup.
type Store struct {
	db     *sql.DB
	index  *titleIndex
	logger *zap.Logger
}

// Open opens or creates the catalog at dataDir (database plus index
// directory) and initializes the schema.
func Open(dataDir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(dataDir, "catalog.db"))
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}
	index, err := openTitleIndex(filepath.Join(dataDir, "titles.bleve"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, index: index, logger: logger}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_query ON snapshots(query);
	CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		snapshot_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		image TEXT,
		rating REAL,
		is_prime INTEGER NOT NULL DEFAULT 0,
		amazon_price REAL,
		amazon_link TEXT,
		flipkart_price REAL,
		flipkart_link TEXT,
		has_comparison INTEGER NOT NULL DEFAULT 0,
		match_confidence REAL NOT NULL DEFAULT 0,
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_products_snapshot ON products(snapshot_id, position);
	`
	_, err := db.Exec(schema)
	return err
}

// Close releases the database and index.
func (s *Store) Close() error {
	ierr := s.index.Close()
	derr := s.db.Close()
	if derr != nil {
		return derr
	}
	return ierr
}

// SaveSnapshot stores one search's unified products and indexes their
// titles. Meant to run asynchronously after a response is served; failures
// are logged and swallowed by the caller.
func (s *Store) SaveSnapshot(ctx context.Context, query string, products []models.UnifiedProduct) error {
	if len(products) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	snapshotID := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, query, created_at) VALUES (?, ?, ?)`,
		snapshotID, query, time.Now(),
	); err != nil {
		return err
	}

	ids := make(map[string]string, len(products))
	for i, p := range products {
		id := uuid.New().String()
		ids[id] = p.Title
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, snapshot_id, position, title, image, rating, is_prime,
			    amazon_price, amazon_link, flipkart_price, flipkart_link, has_comparison, match_confidence)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, snapshotID, i, p.Title, p.Image, p.Rating, p.IsPrime,
			p.AmazonPrice, p.AmazonLink, p.FlipkartPrice, p.FlipkartLink,
			p.HasComparison, p.MatchConfidence,
		); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := s.index.IndexBatch(ids); err != nil {
		s.logger.Warn("title indexing failed", zap.String("query", query), zap.Error(err))
	}
	s.logger.Debug("snapshot saved",
		zap.String("query", query), zap.Int("products", len(products)))
	return nil
}

// Lookup serves fallback products for query: first the newest snapshot for
// the exact query (a repeat search gets the full result set it produced
// before), then the title index over all stored products, then the seed set.
func (s *Store) Lookup(ctx context.Context, query string, limit int) ([]models.UnifiedProduct, error) {
	if limit <= 0 {
		limit = 20
	}
	products, err := s.latestSnapshotProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return renumber(products), nil
	}

	ids, err := s.index.Search(query, limit)
	if err != nil {
		s.logger.Warn("title index lookup failed", zap.Error(err))
	}
	if len(ids) > 0 {
		products, err := s.productsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(products) > 0 {
			return renumber(products), nil
		}
	}

	products, err = s.latestSnapshotProducts(ctx, seedQuery)
	if err != nil {
		return nil, err
	}
	return renumber(products), nil
}

// ReplaceSeed swaps the seed snapshot for a freshly loaded product set.
func (s *Store) ReplaceSeed(ctx context.Context, products []models.UnifiedProduct) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM products WHERE snapshot_id IN (SELECT id FROM snapshots WHERE query = ?)`,
		seedQuery,
	); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE query = ?`, seedQuery,
	); err != nil {
		return err
	}
	return s.SaveSnapshot(ctx, seedQuery, products)
}

// Prune deletes non-seed snapshots older than retention and reports how
// many were removed.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM products WHERE snapshot_id IN
		   (SELECT id FROM snapshots WHERE query != ? AND created_at < ?)`,
		seedQuery, cutoff,
	); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE query != ? AND created_at < ?`,
		seedQuery, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) latestSnapshotProducts(ctx context.Context, query string) ([]models.UnifiedProduct, error) {
	var snapshotID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM snapshots WHERE query = ? ORDER BY created_at DESC LIMIT 1`,
		query,
	).Scan(&snapshotID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, image, rating, is_prime, amazon_price, amazon_link,
		        flipkart_price, flipkart_link, has_comparison, match_confidence
		 FROM products WHERE snapshot_id = ? ORDER BY position`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *Store) productsByIDs(ctx context.Context, ids []string) ([]models.UnifiedProduct, error) {
	var out []models.UnifiedProduct
	for _, id := range ids {
		rows, err := s.db.QueryContext(ctx,
			`SELECT title, image, rating, is_prime, amazon_price, amazon_link,
			        flipkart_price, flipkart_link, has_comparison, match_confidence
			 FROM products WHERE id = ?`, id,
		)
		if err != nil {
			return nil, err
		}
		products, err := scanProducts(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, products...)
	}
	return dedupeByTitle(out), nil
}

func scanProducts(rows *sql.Rows) ([]models.UnifiedProduct, error) {
	var out []models.UnifiedProduct
	for rows.Next() {
		var p models.UnifiedProduct
		var image, amazonLink, flipkartLink sql.NullString
		if err := rows.Scan(&p.Title, &image, &p.Rating, &p.IsPrime,
			&p.AmazonPrice, &amazonLink, &p.FlipkartPrice, &flipkartLink,
			&p.HasComparison, &p.MatchConfidence); err != nil {
			return nil, err
		}
		p.Image = image.String
		p.AmazonLink = amazonLink.String
		p.FlipkartLink = flipkartLink.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func dedupeByTitle(products []models.UnifiedProduct) []models.UnifiedProduct {
	seen := make(map[string]bool, len(products))
	out := products[:0]
	for _, p := range products {
		if seen[p.Title] {
			continue
		}
		seen[p.Title] = true
		out = append(out, p)
	}
	return out
}

func renumber(products []models.UnifiedProduct) []models.UnifiedProduct {
	for i := range products {
		products[i].ID = i + 1
	}
	return products
}
