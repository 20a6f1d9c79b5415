package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"automarket/internal/domain"
	"automarket/internal/metrics"
)

// requiredJoins are inner joins: an advertisement missing any of these
// relations never shows up in a listing, filtered or not.
var requiredJoins = []string{
	"JOIN users ON users.id = advertisements.user_id",
	"JOIN cities ON cities.id = users.city_id",
	"JOIN countries ON countries.id = cities.country_id",
	"JOIN engines ON engines.id = advertisements.engine_id",
	"JOIN colors ON colors.id = advertisements.color_id",
	"JOIN car_models ON car_models.id = advertisements.car_model_id",
	"JOIN makes ON makes.id = car_models.make_id",
	"JOIN conditions ON conditions.id = advertisements.condition_id",
}

type Option func(*AdvertisementRepository)

// WithMediaBatchLimit caps the number of concurrent inserts in AddMediaBatch.
// Zero means no cap.
func WithMediaBatchLimit(n int) Option {
	return func(r *AdvertisementRepository) {
		r.batchLimit = n
	}
}

type AdvertisementRepository struct {
	db         *gorm.DB
	log        *zap.Logger
	metrics    *metrics.Metrics
	batchLimit int
}

func NewAdvertisementRepository(db *gorm.DB, log *zap.Logger, m *metrics.Metrics, opts ...Option) *AdvertisementRepository {
	if log == nil {
		log = zap.NewNop()
	}
	r := &AdvertisementRepository{db: db, log: log.Named("advertisements"), metrics: m}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns one page of advertisements with their related entities,
// newest first.
func (r *AdvertisementRepository) List(ctx context.Context, f domain.AdvertisementFilter) (ads []domain.Advertisement, err error) {
	defer r.observe("list", time.Now(), &err)

	q := r.db.WithContext(ctx).Model(&domain.Advertisement{})
	for _, join := range requiredJoins {
		q = q.Joins(join)
	}
	for _, p := range f.Predicates() {
		q = q.Where(p.Column+" = ?", p.Value)
	}

	ads = make([]domain.Advertisement, 0, domain.PageSize)
	err = q.
		Preload("User.City.Country").
		Preload("Engine").
		Preload("Color").
		Preload("CarModel.Make").
		Preload("Condition").
		Preload("Images", orderMedia).
		Preload("FavoritedBy").
		Order("advertisements.created_at DESC").
		Order("advertisements.id DESC").
		Limit(domain.PageSize).
		Offset(f.Offset()).
		Find(&ads).Error
	if err != nil {
		return nil, err
	}
	return ads, nil
}

// GetByID returns the advertisement with its images, or nil when no row matches.
func (r *AdvertisementRepository) GetByID(ctx context.Context, id uuid.UUID) (ad *domain.Advertisement, err error) {
	defer r.observe("get_by_id", time.Now(), &err)

	var a domain.Advertisement
	err = r.db.WithContext(ctx).
		Preload("Images", orderMedia).
		Where("id = ?", id).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes the advertisement row only. Its media and favorites stay.
func (r *AdvertisementRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer r.observe("delete", time.Now(), &err)

	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Advertisement{}).Error
}

func (r *AdvertisementRepository) Create(ctx context.Context, in domain.AdvertisementInput) (ad *domain.Advertisement, err error) {
	defer r.observe("create", time.Now(), &err)

	ad = domain.NewAdvertisement(in)
	if err = r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return nil, err
	}
	return ad, nil
}

// Update writes the set fields of patch and returns the fresh row. An unknown
// id is not an error: nothing is written and the result is nil.
func (r *AdvertisementRepository) Update(ctx context.Context, id uuid.UUID, patch domain.AdvertisementPatch) (ad *domain.Advertisement, err error) {
	cols := patch.Columns()
	if len(cols) > 0 {
		start := time.Now()
		err = r.db.WithContext(ctx).
			Model(&domain.Advertisement{}).
			Where("id = ?", id).
			Updates(cols).Error
		r.observe("update", start, &err)
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *AdvertisementRepository) AddMedia(ctx context.Context, advertisementID uuid.UUID, imageURL string, order int, main bool) (m *domain.Media, err error) {
	defer r.observe("add_media", time.Now(), &err)

	return r.createMedia(ctx, advertisementID, domain.MediaInput{URL: imageURL, Order: order, Main: main})
}

// RemoveMedia deletes one media row; an unknown id is a no-op.
func (r *AdvertisementRepository) RemoveMedia(ctx context.Context, mediaID int64) (err error) {
	defer r.observe("remove_media", time.Now(), &err)

	return r.db.WithContext(ctx).
		Where("id = ?", mediaID).
		Delete(&domain.Media{}).Error
}

// AddMediaBatch inserts every item concurrently, each in its own statement.
// A failed insert does not cancel the others and rows already written are
// kept, so on error the advertisement may hold part of the batch. The first
// error is returned once all inserts have finished.
func (r *AdvertisementRepository) AddMediaBatch(ctx context.Context, items []domain.MediaInput, advertisementID uuid.UUID) (created []domain.Media, err error) {
	defer r.observe("add_media_batch", time.Now(), &err)
	r.metrics.ObserveBatch(len(items))

	results := make([]domain.Media, len(items))

	var g errgroup.Group
	if r.batchLimit > 0 {
		g.SetLimit(r.batchLimit)
	}
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			m, err := r.createMedia(ctx, advertisementID, item)
			if err != nil {
				return err
			}
			results[i] = *m
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		r.log.Warn("media batch failed, earlier inserts are kept",
			zap.Stringer("advertisement_id", advertisementID),
			zap.Int("items", len(items)),
			zap.Error(err),
		)
		return nil, err
	}
	return results, nil
}

// AddMediaBatchAtomic inserts all items in one transaction: either every row
// is written or none is.
func (r *AdvertisementRepository) AddMediaBatchAtomic(ctx context.Context, items []domain.MediaInput, advertisementID uuid.UUID) (created []domain.Media, err error) {
	defer r.observe("add_media_batch_atomic", time.Now(), &err)
	r.metrics.ObserveBatch(len(items))

	created = make([]domain.Media, len(items))
	for i, item := range items {
		created[i] = newMedia(advertisementID, item)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range created {
			if err := tx.Create(&created[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListMedia returns the media of one advertisement in display order.
func (r *AdvertisementRepository) ListMedia(ctx context.Context, advertisementID uuid.UUID) (media []domain.Media, err error) {
	defer r.observe("list_media", time.Now(), &err)

	media = make([]domain.Media, 0)
	err = orderMedia(r.db.WithContext(ctx)).
		Where("advertisement_id = ?", advertisementID).
		Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (r *AdvertisementRepository) createMedia(ctx context.Context, advertisementID uuid.UUID, in domain.MediaInput) (*domain.Media, error) {
	m := newMedia(advertisementID, in)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *AdvertisementRepository) observe(operation string, start time.Time, err *error) {
	r.metrics.Observe(operation, start, *err)
}

func newMedia(advertisementID uuid.UUID, in domain.MediaInput) domain.Media {
	return domain.Media{
		AdvertisementID: advertisementID,
		ImageURL:        in.URL,
		Order:           in.Order,
		IsMain:          in.Main,
	}
}

func orderMedia(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}
