package repository

import (
	"context"
	"time"

	"golang-kessan/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnnouncementRepository interface {
	CreateBulk(ctx context.Context, announcements []model.Announcement) error
	Get(ctx context.Context, ticker string, limit int) ([]model.Announcement, error)
	DeleteOlderThan(ctx context.Context, date time.Time) (int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// CreateBulk ignores rows already present; the scraper revisits the same
// listing pages on every run.
func (r *announcementRepository) CreateBulk(ctx context.Context, announcements []model.Announcement) error {
	if len(announcements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "title"}, {Name: "announced_at"}},
		DoNothing: true,
	}).CreateInBatches(announcements, 100).Error
}

func (r *announcementRepository) Get(ctx context.Context, ticker string, limit int) ([]model.Announcement, error) {
	db := r.db.WithContext(ctx).Where("ticker = ?", ticker).Order("announced_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var announcements []model.Announcement
	err := db.Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	db := r.db.WithContext(ctx).Where("created_at < ?", date).Delete(&model.Announcement{})
	if db.Error != nil {
		return 0, db.Error
	}
	return db.RowsAffected, nil
}
