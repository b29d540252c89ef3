package repository

import (
	"context"
	"errors"

	"github.com/sambbaron/tuneful/model"

	"gorm.io/gorm"
)

// SongRepository defines the data operations on songs.
type SongRepository interface {
	List(ctx context.Context) ([]*model.Song, error)
	GetByID(ctx context.Context, id uint) (*model.Song, error)
	Create(ctx context.Context, song *model.Song) error
	UpdateFile(ctx context.Context, song *model.Song, fileID uint) error
	Delete(ctx context.Context, id uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type gormSongRepository struct {
	db *gorm.DB
}

// NewGormSongRepository creates a GORM song repository.
func NewGormSongRepository(db *gorm.DB) SongRepository {
	return &gormSongRepository{db: db}
}

// List returns every song with its file, oldest first.
func (r *gormSongRepository) List(ctx context.Context) ([]*model.Song, error) {
	songs := make([]*model.Song, 0)
	err := r.db.WithContext(ctx).
		Preload("File").
		Order("id ASC").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}

// GetByID returns the song with its file, or nil if there is none.
func (r *gormSongRepository) GetByID(ctx context.Context, id uint) (*model.Song, error) {
	var song model.Song
	err := r.db.WithContext(ctx).
		Preload("File").
		First(&song, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &song, nil
}

func (r *gormSongRepository) Create(ctx context.Context, song *model.Song) error {
	return r.db.WithContext(ctx).Omit("File").Create(song).Error
}

// UpdateFile points the song at another file.
func (r *gormSongRepository) UpdateFile(ctx context.Context, song *model.Song, fileID uint) error {
	err := r.db.WithContext(ctx).Model(song).Update("file_id", fileID).Error
	if err != nil {
		return err
	}
	song.FileID = fileID
	song.File = nil
	return nil
}

// Delete removes the song row and reports how many rows went away.
func (r *gormSongRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Song{}, id)
	return res.RowsAffected, res.Error
}

func (r *gormSongRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Song{}).Count(&count).Error
	return count, err
}
