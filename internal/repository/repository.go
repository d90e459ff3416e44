package repository

import (
	"context"

	"github.com/misshanya/shortlink/internal/errorz"
	"github.com/misshanya/shortlink/internal/models"
)

// Repository is the base contract of an entity store.
// Lookups that match nothing return errorz.ErrNotFound.
type Repository[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	// GetPage returns the 1-indexed page of at most limit entities ordered
	// by id. A page past the end is an empty slice.
	GetPage(ctx context.Context, page, limit int) ([]T, error)
	// Add stores entity and returns it with the id filled in.
	Add(ctx context.Context, entity *T) (*T, error)
	// Delete removes entity by id. Deleting a missing entity
	// returns errorz.ErrNotFound.
	Delete(ctx context.Context, entity *T) error
}

// MappingRepository adds URL mapping lookups on top of Repository.
// Add wraps errorz.ErrConstraintViolation when original_url or
// short_code is already taken.
type MappingRepository interface {
	Repository[models.URLMapping]
	GetByOriginalURL(ctx context.Context, originalURL string) (*models.URLMapping, error)
	GetByShortCode(ctx context.Context, shortCode string) (*models.URLMapping, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

var (
	_ MappingRepository = (*PostgresRepo)(nil)
	_ MappingRepository = (*SQLiteRepo)(nil)
)

func pageOffset(page, limit int) (int, error) {
	if page < 1 || limit < 1 {
		return 0, errorz.ErrInvalidPage
	}
	return (page - 1) * limit, nil
}
