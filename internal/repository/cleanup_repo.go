package repository

import (
	"context"

	"gorm.io/gorm"

	"automarket/internal/domain"
)

// CleanupRepository removes rows left behind by advertisement deletes, which
// do not cascade.
type CleanupRepository struct {
	db *gorm.DB
}

func NewCleanupRepository(db *gorm.DB) *CleanupRepository {
	return &CleanupRepository{db: db}
}

func (r *CleanupRepository) DeleteOrphanedMedia(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("advertisement_id NOT IN (?)", r.db.Model(&domain.Advertisement{}).Select("id")).
		Delete(&domain.Media{})
	return res.RowsAffected, res.Error
}

func (r *CleanupRepository) DeleteOrphanedFavorites(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("advertisement_id NOT IN (?)", r.db.Model(&domain.Advertisement{}).Select("id")).
		Delete(&domain.Favorite{})
	return res.RowsAffected, res.Error
}
