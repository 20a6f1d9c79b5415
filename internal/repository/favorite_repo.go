package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"automarket/internal/domain"
)

// FavoriteRepository manages the advertisements a user has saved.
type FavoriteRepository interface {
	Add(ctx context.Context, userID int64, advertisementID uuid.UUID) (*domain.Favorite, error)
	Remove(ctx context.Context, userID int64, advertisementID uuid.UUID) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error)
	Exists(ctx context.Context, userID int64, advertisementID uuid.UUID) (bool, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add saves the advertisement for the user and returns the row with the
// advertisement loaded. Saving twice yields ErrAlreadyFavorited.
func (r *favoriteRepository) Add(ctx context.Context, userID int64, advertisementID uuid.UUID) (*domain.Favorite, error) {
	exists, err := r.Exists(ctx, userID, advertisementID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	favorite := &domain.Favorite{
		UserID:          userID,
		AdvertisementID: advertisementID,
	}
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		// lost a race with a concurrent Add
		if IsConstraintViolation(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Preload("Advertisement").
		Where("user_id = ? AND advertisement_id = ?", userID, advertisementID).
		First(favorite).Error
	if err != nil {
		return nil, err
	}
	return favorite, nil
}

// Remove deletes the favorite; ErrFavoriteNotFound when there was none.
func (r *favoriteRepository) Remove(ctx context.Context, userID int64, advertisementID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND advertisement_id = ?", userID, advertisementID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListByUser returns the user's favorites, newest first, plus the total count.
// A non-positive limit returns everything.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Advertisement").
		Order("created_at DESC").
		Order("advertisement_id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	favorites := make([]domain.Favorite, 0)
	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID int64, advertisementID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND advertisement_id = ?", userID, advertisementID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
