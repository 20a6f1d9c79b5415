package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"automarket/internal/domain"
)

func TestCleanupRepository_RemovesOrphans(t *testing.T) {
	ads, w := setupAdvertisements(t)
	favs := NewFavoriteRepository(ads.db)
	cleanup := NewCleanupRepository(ads.db)
	ctx := context.Background()

	kept, err := ads.Create(ctx, w.camryInput())
	require.NoError(t, err)
	gone, err := ads.Create(ctx, w.rioInput())
	require.NoError(t, err)

	for _, id := range []uuid.UUID{kept.ID, gone.ID} {
		_, err = ads.AddMediaBatch(ctx, []domain.MediaInput{
			{URL: "https://cdn.example.com/1.jpg", Order: 1},
			{URL: "https://cdn.example.com/2.jpg", Order: 2},
		}, id)
		require.NoError(t, err)
		_, err = favs.Add(ctx, w.alice.ID, id)
		require.NoError(t, err)
	}

	require.NoError(t, ads.Delete(ctx, gone.ID))

	removed, err := cleanup.DeleteOrphanedMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = cleanup.DeleteOrphanedFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	media, err := ads.ListMedia(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, media, 2)
	count, err := favs.Count(ctx, w.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// second run has nothing to do
	removed, err = cleanup.DeleteOrphanedMedia(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("connection reset by peer"), false},
		{"not found", gorm.ErrRecordNotFound, false},
		{"gorm duplicate", gorm.ErrDuplicatedKey, true},
		{"gorm foreign key", fmt.Errorf("create: %w", gorm.ErrForeignKeyViolated), true},
		{"postgres unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, true},
		{"postgres connection", &pgconn.PgError{Code: "08006"}, false},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConstraintViolation(tt.err))
		})
	}
}
