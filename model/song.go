package model

import (
	"errors"
	"fmt"
)

// Song is a metadata record pointing at exactly one uploaded File.
type Song struct {
	ID     uint  `json:"id" gorm:"primaryKey;autoIncrement"`
	FileID uint  `json:"fileId" gorm:"not null;index"`
	File   *File `json:"file,omitempty" gorm:"foreignKey:FileID"`
}

// TableName 指定表名
func (Song) TableName() string {
	return "song"
}

// SongResponse is the JSON form of a Song.
type SongResponse struct {
	ID   uint         `json:"id"`
	File FileResponse `json:"file"`
}

// ErrIntegrity marks a song whose file row is missing.
var ErrIntegrity = errors.New("integrity error")

// IntegrityError reports a Song that references a File which could not be loaded.
type IntegrityError struct {
	SongID uint
	FileID uint
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("song %d references missing file %d", e.SongID, e.FileID)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// ToResponse serializes the song together with its file. The File
// association must be loaded.
func (s *Song) ToResponse(pathFor PathFunc) (SongResponse, error) {
	if s.File == nil || s.File.ID != s.FileID {
		return SongResponse{}, &IntegrityError{SongID: s.ID, FileID: s.FileID}
	}
	return SongResponse{
		ID:   s.ID,
		File: s.File.ToResponse(pathFor),
	}, nil
}

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{&File{}, &Song{}}
}
