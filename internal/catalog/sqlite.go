package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"shopmind/internal/logging"
)

// =============================================================================
// SQLITE SEARCHER - local catalog snapshot
// =============================================================================

// SQLiteSearcher serves searches from a local SQLite catalog snapshot. It is
// used by the CLI and by deployments that sync the catalog down rather than
// query the storefront backend per turn.
type SQLiteSearcher struct {
	db *sql.DB
}

// NewSQLiteSearcher opens (creating if needed) the catalog database at path.
func NewSQLiteSearcher(path string) (*SQLiteSearcher, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	s := &SQLiteSearcher{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSearcher) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL,
		brand TEXT DEFAULT '',
		material TEXT DEFAULT '',
		tags TEXT DEFAULT '',
		rating_avg REAL
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

	CREATE TABLE IF NOT EXISTS variants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		sku TEXT DEFAULT '',
		color TEXT DEFAULT '',
		size TEXT DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize catalog schema: %w", err)
	}
	return nil
}

// Upsert inserts or replaces a product and its variants.
func (s *SQLiteSearcher) Upsert(ctx context.Context, p ProductHit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	var rating interface{}
	if p.RatingAvg != nil {
		rating = *p.RatingAvg
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO products (id, name, category, price, brand, material, tags, rating_avg)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Category, p.Price, p.Brand, p.Material, p.Tags, rating); err != nil {
		return fmt.Errorf("upsert product %d: %w", p.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE product_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear variants for %d: %w", p.ID, err)
	}
	for _, v := range p.Variants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO variants (product_id, sku, color, size) VALUES (?, ?, ?, ?)`,
			p.ID, v.SKU, v.Color, v.Size); err != nil {
			return fmt.Errorf("insert variant for %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Search implements Searcher with LIKE matching over product text and
// variant colors.
func (s *SQLiteSearcher) Search(ctx context.Context, term, category, color string, limit int) ([]ProductHit, error) {
	where := []string{"1=1"}
	var args []interface{}

	if term != "" {
		// Any word of the term may match name, tags, brand, or material.
		var wordClauses []string
		for _, word := range strings.Fields(term) {
			pattern := "%" + strings.ToLower(word) + "%"
			wordClauses = append(wordClauses,
				`(LOWER(p.name) LIKE ? OR LOWER(p.tags) LIKE ? OR LOWER(p.brand) LIKE ? OR LOWER(p.material) LIKE ?)`)
			args = append(args, pattern, pattern, pattern, pattern)
		}
		where = append(where, "("+strings.Join(wordClauses, " OR ")+")")
	}
	if category != "" {
		where = append(where, `LOWER(p.category) LIKE ?`)
		args = append(args, "%"+strings.ToLower(category)+"%")
	}
	if color != "" {
		where = append(where, `EXISTS (SELECT 1 FROM variants v WHERE v.product_id = p.id AND LOWER(v.color) = ?)`)
		args = append(args, strings.ToLower(color))
	}

	if limit <= 0 {
		limit = 24
	}
	args = append(args, limit)

	query := `SELECT p.id, p.name, p.category, p.price, p.brand, p.material, p.tags, p.rating_avg
		FROM products p WHERE ` + strings.Join(where, " AND ") + ` ORDER BY p.id LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	defer rows.Close()

	var hits []ProductHit
	for rows.Next() {
		var p ProductHit
		var rating sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Brand, &p.Material, &p.Tags, &rating); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			p.RatingAvg = &v
		}
		hits = append(hits, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	for i := range hits {
		variants, err := s.loadVariants(ctx, hits[i].ID)
		if err != nil {
			return nil, err
		}
		hits[i].Variants = variants
	}

	logging.Catalog("sqlite search term=%q category=%q color=%q limit=%d -> %d hits",
		term, category, color, limit, len(hits))
	return hits, nil
}

func (s *SQLiteSearcher) loadVariants(ctx context.Context, productID int64) ([]Variant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sku, color, size FROM variants WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("variant query: %w", err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.SKU, &v.Color, &v.Size); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteSearcher) Close() error {
	return s.db.Close()
}
