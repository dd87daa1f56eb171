package repository

import (
	"context"
	"encoding/json"

	"golang-kessan/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SystemParamRepository interface {
	Get(ctx context.Context, name string, destValue interface{}) error
	Set(ctx context.Context, name string, value interface{}) error
	GetLastFetchedDate(ctx context.Context, name string) (string, error)
	SetLastFetchedDate(ctx context.Context, name, date string) error
}

type systemParamRepository struct {
	db *gorm.DB
}

func NewSystemParamRepository(db *gorm.DB) SystemParamRepository {
	return &systemParamRepository{db: db}
}

func (s *systemParamRepository) Get(ctx context.Context, name string, destValue interface{}) error {
	var param model.SystemParameter

	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&param).Error; err != nil {
		return err
	}
	return json.Unmarshal(param.Value, destValue)
}

func (s *systemParamRepository) Set(ctx context.Context, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	param := model.SystemParameter{Name: name, Value: datatypes.JSON(raw)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&param).Error
}

// GetLastFetchedDate returns the stored watermark for a fetch job, empty
// when the job has never run.
func (s *systemParamRepository) GetLastFetchedDate(ctx context.Context, name string) (string, error) {
	var date string
	if err := s.Get(ctx, name, &date); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return date, nil
}

func (s *systemParamRepository) SetLastFetchedDate(ctx context.Context, name, date string) error {
	return s.Set(ctx, name, date)
}
