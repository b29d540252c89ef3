package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store hands out request-scoped sessions over a shared connection pool.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Session is one unit of work. It is opened at the start of a request and
// must be closed when the request ends; anything not committed by then is
// rolled back.
type Session struct {
	tx   *gorm.DB
	done bool

	Songs SongRepository
	Files FileRepository
}

// ErrSessionClosed is returned when a finished session is committed again.
var ErrSessionClosed = errors.New("session already closed")

// Begin opens a new session bound to ctx.
func (s *Store) Begin(ctx context.Context) (*Session, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin session: %w", tx.Error)
	}
	return &Session{
		tx:    tx,
		Songs: NewGormSongRepository(tx),
		Files: NewGormFileRepository(tx),
	}, nil
}

// Commit makes the session's writes durable and ends it.
func (s *Session) Commit() error {
	if s.done {
		return ErrSessionClosed
	}
	s.done = true
	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// Close rolls back an uncommitted session. It is a no-op after Commit.
func (s *Session) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Rollback().Error
}
