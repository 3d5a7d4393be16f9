package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/inventory-catalog/internal/catalog"
	"github.com/fekuna/inventory-catalog/internal/model"
)

// SQLiteRepository maps the catalog tree to two flat tables:
//
//	categories(id, name, parent_id)
//	products(id, name, quantity, price, alert_threshold, location, category_id)
//
// Table and column names are the compatibility contract for stores written
// by earlier versions.
type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

type categoryRow struct {
	ID       int64         `db:"id"`
	Name     string        `db:"name"`
	ParentID sql.NullInt64 `db:"parent_id"`
}

type productRow struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Quantity       sql.NullInt64   `db:"quantity"`
	Price          sql.NullFloat64 `db:"price"`
	AlertThreshold sql.NullInt64   `db:"alert_threshold"`
	Location       sql.NullString  `db:"location"`
	CategoryID     sql.NullInt64   `db:"category_id"`
}

// InitSchema creates the tables if they do not exist, then applies additive
// column migrations for stores written before location and alert_threshold
// existed. The ALTERs fail when the column is already there, which is the
// expected steady state, so those errors are ignored.
func (r *SQLiteRepository) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			parent_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			quantity INTEGER,
			price REAL,
			alert_threshold INTEGER,
			location TEXT,
			category_id INTEGER,
			FOREIGN KEY(category_id) REFERENCES categories(id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %v: %w", err, catalog.ErrPersistence)
		}
	}

	// Best-effort additive migration; column removal/renaming is
	// intentionally unsupported.
	_, _ = r.DB.ExecContext(ctx, `ALTER TABLE products ADD COLUMN location TEXT`)
	_, _ = r.DB.ExecContext(ctx, `ALTER TABLE products ADD COLUMN alert_threshold INTEGER`)

	return nil
}

// Save wipes both tables and rewrites root's subtree depth-first inside one
// transaction. Each category row is written before its children so the
// generated id can serve as their parent_id/category_id. Any failure rolls
// the whole save back.
func (r *SQLiteRepository) Save(ctx context.Context, root *model.Category) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save transaction: %v: %w", err, catalog.ErrPersistence)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %v: %w", err, catalog.ErrPersistence)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %v: %w", err, catalog.ErrPersistence)
	}

	if err := saveCategory(ctx, tx, root, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %v: %w", err, catalog.ErrPersistence)
	}
	return nil
}

func saveCategory(ctx context.Context, tx *sqlx.Tx, c *model.Category, parentID *int64) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO categories(name, parent_id) VALUES(?, ?)`, c.Name(), parentID)
	if err != nil {
		return fmt.Errorf("failed to insert category %q: %v: %w", c.Name(), err, catalog.ErrPersistence)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read category id for %q: %v: %w", c.Name(), err, catalog.ErrPersistence)
	}

	for _, child := range c.Children() {
		switch node := child.(type) {
		case *model.Category:
			if err := saveCategory(ctx, tx, node, &id); err != nil {
				return err
			}
		case *model.Product:
			if err := saveProduct(ctx, tx, node, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func saveProduct(ctx context.Context, tx *sqlx.Tx, p *model.Product, categoryID int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO products(name, quantity, price, alert_threshold, location, category_id)
		 VALUES(?, ?, ?, ?, ?, ?)`,
		p.Name(), p.Quantity(), p.Price(), p.AlertThresholdOverride(), p.Location(), categoryID)
	if err != nil {
		return fmt.Errorf("failed to insert product %q: %v: %w", p.Name(), err, catalog.ErrPersistence)
	}
	return nil
}

// Load reconstructs the tree in three passes: all categories into an
// id-keyed map (the row with a NULL parent_id becomes the root), then the
// category edges, then the products. Rows whose parent or category id does
// not resolve are dropped. An empty store yields (nil, nil) so the caller
// can fall back to a fresh root.
func (r *SQLiteRepository) Load(ctx context.Context) (*model.Category, error) {
	var catRows []categoryRow
	if err := r.DB.SelectContext(ctx, &catRows,
		`SELECT id, name, parent_id FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to load categories: %v: %w", err, catalog.ErrPersistence)
	}
	if len(catRows) == 0 {
		return nil, nil
	}

	var root *model.Category
	catMap := make(map[int64]*model.Category, len(catRows))
	for _, row := range catRows {
		c, err := model.NewCategory(row.Name)
		if err != nil {
			// A blank name cannot enter through the API; drop the row like
			// any other unreconstructable one.
			continue
		}
		catMap[row.ID] = c
		// Older stores wrote 0 instead of NULL for the root.
		if root == nil && (!row.ParentID.Valid || row.ParentID.Int64 == 0) {
			root = c
		}
	}
	if root == nil {
		return nil, nil
	}

	for _, row := range catRows {
		if !row.ParentID.Valid || row.ParentID.Int64 == 0 {
			continue
		}
		child, okChild := catMap[row.ID]
		parent, okParent := catMap[row.ParentID.Int64]
		if !okChild || !okParent {
			continue // orphan row
		}
		if err := parent.Add(child); err != nil {
			continue // self-referencing or duplicated row
		}
	}

	var prodRows []productRow
	if err := r.DB.SelectContext(ctx, &prodRows,
		`SELECT id, name, quantity, price, alert_threshold, location, category_id FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to load products: %v: %w", err, catalog.ErrPersistence)
	}

	for _, row := range prodRows {
		if !row.CategoryID.Valid {
			continue // orphan row
		}
		parent, ok := catMap[row.CategoryID.Int64]
		if !ok {
			continue // orphan row
		}
		p, err := model.NewProduct(row.Name, int(row.Quantity.Int64), row.Price.Float64, row.Location.String)
		if err != nil {
			continue // out-of-range row, cannot be rebuilt
		}
		// A negative threshold in an old store loads as "no override".
		if row.AlertThreshold.Valid && row.AlertThreshold.Int64 >= 0 {
			threshold := int(row.AlertThreshold.Int64)
			_ = p.SetAlertThresholdOverride(&threshold)
		}
		if err := parent.Add(p); err != nil {
			continue
		}
	}

	return root, nil
}
