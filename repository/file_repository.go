package repository

import (
	"context"
	"errors"

	"github.com/sambbaron/tuneful/model"

	"gorm.io/gorm"
)

// FileRepository defines the data operations on uploaded file records.
type FileRepository interface {
	GetByID(ctx context.Context, id uint) (*model.File, error)
	Create(ctx context.Context, file *model.File) error
}

type gormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository creates a GORM file repository.
func NewGormFileRepository(db *gorm.DB) FileRepository {
	return &gormFileRepository{db: db}
}

func (r *gormFileRepository) GetByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File
	err := r.db.WithContext(ctx).First(&file, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *gormFileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}
