package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/misshanya/shortlink/internal/errorz"
	"github.com/misshanya/shortlink/internal/models"
)

const (
	liteSelectByID = `SELECT id, original_url, short_code FROM url_mappings WHERE id = ?`

	liteSelectByOriginalURL = `SELECT id, original_url, short_code FROM url_mappings WHERE original_url = ?`

	liteSelectByShortCode = `SELECT id, original_url, short_code FROM url_mappings WHERE short_code = ?`

	liteSelectPage = `SELECT id, original_url, short_code FROM url_mappings ORDER BY id LIMIT ? OFFSET ?`

	liteInsert = `INSERT INTO url_mappings (original_url, short_code) VALUES (?, ?)`

	liteDelete = `DELETE FROM url_mappings WHERE id = ?`

	liteCount = `SELECT count(*) FROM url_mappings`
)

// SQLiteRepo keeps mappings in a local SQLite file, or in memory for ":memory:".
type SQLiteRepo struct {
	db *sql.DB
}

// OpenSQLite opens the database at path with a single connection,
// which also keeps a ":memory:" database alive for the repo lifetime.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

func (r *SQLiteRepo) Get(ctx context.Context, id int64) (*models.URLMapping, error) {
	return r.selectOne(ctx, liteSelectByID, id)
}

func (r *SQLiteRepo) GetByOriginalURL(ctx context.Context, originalURL string) (*models.URLMapping, error) {
	return r.selectOne(ctx, liteSelectByOriginalURL, originalURL)
}

func (r *SQLiteRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.URLMapping, error) {
	return r.selectOne(ctx, liteSelectByShortCode, shortCode)
}

func (r *SQLiteRepo) GetPage(ctx context.Context, page, limit int) ([]models.URLMapping, error) {
	offset, err := pageOffset(page, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, liteSelectPage, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings page: %w", err)
	}
	defer rows.Close()

	mappings := make([]models.URLMapping, 0)
	for rows.Next() {
		var m models.URLMapping
		if err := rows.Scan(&m.ID, &m.OriginalURL, &m.ShortCode); err != nil {
			return nil, fmt.Errorf("failed to scan mappings page: %w", err)
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mappings page: %w", err)
	}

	return mappings, nil
}

func (r *SQLiteRepo) Add(ctx context.Context, mapping *models.URLMapping) (*models.URLMapping, error) {
	result, err := r.db.ExecContext(ctx, liteInsert, mapping.OriginalURL, mapping.ShortCode)
	if err != nil {
		var liteErr sqlite3.Error
		if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("%w: %s", errorz.ErrConstraintViolation, liteErr.Error())
		}
		return nil, fmt.Errorf("failed to insert mapping: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	stored := *mapping
	stored.ID = id

	return &stored, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, mapping *models.URLMapping) error {
	result, err := r.db.ExecContext(ctx, liteDelete, mapping.ID)
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return errorz.ErrNotFound
	}

	return nil
}

func (r *SQLiteRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, liteCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepo) selectOne(ctx context.Context, query string, arg any) (*models.URLMapping, error) {
	var m models.URLMapping

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&m.ID, &m.OriginalURL, &m.ShortCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorz.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to query mapping: %w", err)
	}

	return &m, nil
}
