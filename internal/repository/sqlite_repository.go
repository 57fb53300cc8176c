package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"inventory-catalog/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const itemsSchema = `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		quantity INTEGER NOT NULL,
		price TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK(quantity >= 0)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_items_name ON items(name);
`

const selectItemColumns = `SELECT id, name, description, quantity, price FROM items`

// SQLiteItemRepository stores items in SQLite following the single writer principle.
// The UNIQUE index on name is what makes uniqueness atomic.
type SQLiteItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
	mu     sync.Mutex // Mutex to ensure single writer
}

// NewSQLiteItemRepository opens the database and creates the schema
func NewSQLiteItemRepository(dbPath string, logger *zap.Logger) (*SQLiteItemRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(itemsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteItemRepository{db: db, logger: logger}, nil
}

// Close closes the database connection
func (r *SQLiteItemRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, selectItemColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return scanItems(rows)
}

func (r *SQLiteItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, selectItemColumns+` WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return item, nil
}

func (r *SQLiteItemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM items WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item name: %w", err)
	}
	return exists, nil
}

// FindByNameContaining matches a literal substring, ignoring case.
// instr is used instead of LIKE so '%' and '_' in the query are not wildcards.
func (r *SQLiteItemRepository) FindByNameContaining(ctx context.Context, substring string) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		selectItemColumns+` WHERE instr(lower(name), lower(?)) > 0 ORDER BY id`, substring)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return scanItems(rows)
}

func (r *SQLiteItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	if item.IsNew() {
		result, err := r.db.ExecContext(ctx,
			`INSERT INTO items (name, description, quantity, price, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.Name, item.Description, item.Quantity, item.Price.String(), now, now,
		)
		if err != nil {
			return nil, translateWriteError(err, item.Name, "create")
		}

		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get item id: %w", err)
		}

		saved := item.Clone()
		saved.ID = id
		r.logger.Debug("Item inserted", zap.Int64("item_id", id))
		return saved, nil
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, quantity = ?, price = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, item.Description, item.Quantity, item.Price.String(), now, item.ID,
	)
	if err != nil {
		return nil, translateWriteError(err, item.Name, "update")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, domain.ErrItemNotFound
	}

	return item.Clone(), nil
}

func (r *SQLiteItemRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// translateWriteError turns a unique index failure into a constraint violation
func translateWriteError(err error, name, operation string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return domain.NewNameConstraintViolation(name)
	}
	return fmt.Errorf("failed to %s item: %w", operation, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var description sql.NullString
	var price string

	if err := row.Scan(&item.ID, &item.Name, &description, &item.Quantity, &price); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q for item %d: %w", price, item.ID, err)
	}
	item.Description = description.String
	item.Price = parsed
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}
