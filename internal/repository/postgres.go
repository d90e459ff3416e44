package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/misshanya/shortlink/internal/errorz"
	"github.com/misshanya/shortlink/internal/models"
)

const (
	pgSelectByID = `SELECT id, original_url, short_code FROM url_mappings WHERE id = $1`

	pgSelectByOriginalURL = `SELECT id, original_url, short_code FROM url_mappings WHERE original_url = $1`

	pgSelectByShortCode = `SELECT id, original_url, short_code FROM url_mappings WHERE short_code = $1`

	pgSelectPage = `SELECT id, original_url, short_code FROM url_mappings ORDER BY id LIMIT $1 OFFSET $2`

	pgInsert = `INSERT INTO url_mappings (original_url, short_code) VALUES ($1, $2) RETURNING id`

	pgDelete = `DELETE FROM url_mappings WHERE id = $1`

	pgCount = `SELECT count(*) FROM url_mappings`
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (*models.URLMapping, error) {
	return r.selectOne(ctx, pgSelectByID, id)
}

func (r *PostgresRepo) GetByOriginalURL(ctx context.Context, originalURL string) (*models.URLMapping, error) {
	return r.selectOne(ctx, pgSelectByOriginalURL, originalURL)
}

func (r *PostgresRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.URLMapping, error) {
	return r.selectOne(ctx, pgSelectByShortCode, shortCode)
}

func (r *PostgresRepo) GetPage(ctx context.Context, page, limit int) ([]models.URLMapping, error) {
	offset, err := pageOffset(page, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, pgSelectPage, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings page: %w", err)
	}

	mappings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.URLMapping])
	if err != nil {
		return nil, fmt.Errorf("failed to scan mappings page: %w", err)
	}

	return mappings, nil
}

func (r *PostgresRepo) Add(ctx context.Context, mapping *models.URLMapping) (*models.URLMapping, error) {
	stored := *mapping

	err := r.pool.QueryRow(ctx, pgInsert, mapping.OriginalURL, mapping.ShortCode).Scan(&stored.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%w: %s", errorz.ErrConstraintViolation, pgErr.ConstraintName)
		}
		return nil, fmt.Errorf("failed to insert mapping: %w", err)
	}

	return &stored, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, mapping *models.URLMapping) error {
	tag, err := r.pool.Exec(ctx, pgDelete, mapping.ID)
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return errorz.ErrNotFound
	}

	return nil
}

func (r *PostgresRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, pgCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return count, nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepo) selectOne(ctx context.Context, query string, arg any) (*models.URLMapping, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query mapping: %w", err)
	}

	mapping, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.URLMapping])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errorz.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to scan mapping: %w", err)
	}

	return mapping, nil
}
