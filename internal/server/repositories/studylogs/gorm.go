package studylogs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context) ([]records.StudyLog, error) {
	logs := []records.StudyLog{}
	if err := r.db.WithContext(ctx).Order("date DESC").Limit(ListLimit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return logs, nil
}

func (r *GormRepository) Get(ctx context.Context, id string) (*records.StudyLog, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormRepository) get(db *gorm.DB, id string) (*records.StudyLog, error) {
	var l records.StudyLog
	if err := db.Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &l, nil
}

func (r *GormRepository) Create(ctx context.Context, log *records.StudyLog) (*records.StudyLog, error) {
	l := *log
	if err := r.db.WithContext(ctx).Create(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &l, nil
}

func (r *GormRepository) Update(ctx context.Context, id string, patch records.StudyLogPatch, now time.Time) (*records.StudyLog, error) {
	if len(patch.Assignments()) == 0 {
		return r.Get(ctx, id)
	}

	var out *records.StudyLog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := r.get(tx, id)
		if err != nil {
			return err
		}
		patch.Apply(l)
		l.UpdatedAt = records.Touch(l.UpdatedAt, now)
		if err := tx.Save(l).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&records.StudyLog{})
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
