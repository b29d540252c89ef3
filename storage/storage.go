package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a blob does not exist.
var ErrNotFound = errors.New("blob not found")

// ObjectInfo describes a stored blob.
type ObjectInfo struct {
	Name         string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// Object is an open blob. It supports seeking so it can be served with
// range requests.
type Object interface {
	io.ReadSeekCloser
	Info() ObjectInfo
}

// BlobStore keeps uploaded bytes keyed by sanitized file name. Saving an
// existing name replaces it.
type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (Object, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
