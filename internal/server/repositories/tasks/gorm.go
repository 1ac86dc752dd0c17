package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"gorm.io/gorm"
)

// GormRepository stores tasks through gorm. It backs the sqlite driver.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context) ([]records.Task, error) {
	tasks := []records.Task{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tasks, nil
}

func (r *GormRepository) Get(ctx context.Context, id string) (*records.Task, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormRepository) get(db *gorm.DB, id string) (*records.Task, error) {
	var t records.Task
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

func (r *GormRepository) Create(ctx context.Context, task *records.Task) (*records.Task, error) {
	t := *task
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

// Update reads, patches and saves the row inside one transaction.
func (r *GormRepository) Update(ctx context.Context, id string, patch records.TaskPatch, now time.Time) (*records.Task, error) {
	if patch.Empty() {
		return r.Get(ctx, id)
	}

	var out *records.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := r.get(tx, id)
		if err != nil {
			return err
		}
		patch.Apply(t)
		t.UpdatedAt = records.Touch(t.UpdatedAt, now)
		if err := tx.Save(t).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&records.Task{})
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
