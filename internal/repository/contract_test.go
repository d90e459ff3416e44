package repository

import (
	"context"
	"testing"

	"github.com/misshanya/shortlink/internal/errorz"
	"github.com/misshanya/shortlink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMappingRepository runs the store contract against an empty repository
// produced by newRepo for every subtest.
func testMappingRepository(t *testing.T, newRepo func(t *testing.T) MappingRepository) {
	ctx := context.Background()

	seed := func(t *testing.T, repo MappingRepository) []*models.URLMapping {
		mappings := []models.URLMapping{
			{OriginalURL: "https://example.com", ShortCode: "abc123"},
			{OriginalURL: "https://test.com", ShortCode: "def456"},
			{OriginalURL: "https://another.com", ShortCode: "ghi789"},
		}

		stored := make([]*models.URLMapping, 0, len(mappings))
		for i := range mappings {
			m, err := repo.Add(ctx, &mappings[i])
			require.NoError(t, err)
			stored = append(stored, m)
		}
		return stored
	}

	t.Run("Add assigns id", func(t *testing.T) {
		repo := newRepo(t)

		m, err := repo.Add(ctx, &models.URLMapping{OriginalURL: "https://go.dev", ShortCode: "Ab3dE6gH"})
		require.NoError(t, err)

		assert.NotZero(t, m.ID)
		assert.Equal(t, "https://go.dev", m.OriginalURL)
		assert.Equal(t, "Ab3dE6gH", m.ShortCode)
	})

	t.Run("Get by id", func(t *testing.T) {
		repo := newRepo(t)
		stored := seed(t, repo)

		m, err := repo.Get(ctx, stored[1].ID)
		require.NoError(t, err)
		assert.Equal(t, stored[1], m)

		_, err = repo.Get(ctx, stored[2].ID+100)
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("Get by original URL", func(t *testing.T) {
		repo := newRepo(t)
		stored := seed(t, repo)

		m, err := repo.GetByOriginalURL(ctx, "https://test.com")
		require.NoError(t, err)
		assert.Equal(t, stored[1], m)

		_, err = repo.GetByOriginalURL(ctx, "https://nonexistent.com")
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("Get by short code", func(t *testing.T) {
		repo := newRepo(t)
		stored := seed(t, repo)

		m, err := repo.GetByShortCode(ctx, "ghi789")
		require.NoError(t, err)
		assert.Equal(t, stored[2], m)

		_, err = repo.GetByShortCode(ctx, "nonexistent")
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("Short code lookup is case sensitive", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		_, err := repo.GetByShortCode(ctx, "ABC123")
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("Pagination", func(t *testing.T) {
		repo := newRepo(t)
		stored := seed(t, repo)

		page, err := repo.GetPage(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, *stored[0], page[0])
		assert.Equal(t, *stored[1], page[1])

		page, err = repo.GetPage(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, *stored[2], page[0])

		page, err = repo.GetPage(ctx, 3, 2)
		require.NoError(t, err)
		assert.NotNil(t, page)
		assert.Empty(t, page)
	})

	t.Run("Invalid page", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetPage(ctx, 0, 2)
		assert.ErrorIs(t, err, errorz.ErrInvalidPage)

		_, err = repo.GetPage(ctx, 1, 0)
		assert.ErrorIs(t, err, errorz.ErrInvalidPage)
	})

	t.Run("Duplicate original URL", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		_, err := repo.Add(ctx, &models.URLMapping{OriginalURL: "https://example.com", ShortCode: "zzz999"})
		assert.ErrorIs(t, err, errorz.ErrConstraintViolation)
	})

	t.Run("Duplicate short code", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		_, err := repo.Add(ctx, &models.URLMapping{OriginalURL: "https://unique.com", ShortCode: "abc123"})
		assert.ErrorIs(t, err, errorz.ErrConstraintViolation)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		stored := seed(t, repo)

		require.NoError(t, repo.Delete(ctx, stored[0]))

		_, err := repo.GetByShortCode(ctx, "abc123")
		assert.ErrorIs(t, err, errorz.ErrNotFound)

		err = repo.Delete(ctx, stored[0])
		assert.ErrorIs(t, err, errorz.ErrNotFound)

		// Freed values can be stored again
		_, err = repo.Add(ctx, &models.URLMapping{OriginalURL: "https://example.com", ShortCode: "abc123"})
		assert.NoError(t, err)
	})

	t.Run("Count", func(t *testing.T) {
		repo := newRepo(t)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		seed(t, repo)

		count, err = repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Ping", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(ctx))
	})
}
