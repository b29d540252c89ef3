package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const tempPrefix = ".upload-"

// LocalStore keeps blobs as plain files in one directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed and returns a store rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes to a temporary file first and renames it into place, so
// readers never see a partial blob and concurrent writers of the same name
// resolve to the last rename.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	dest, err := s.path(name)
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.dir, tempPrefix+uuid.NewString()+".part")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write upload %s: %w", name, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move upload into place %s: %w", name, err)
	}
	return nil
}

type localObject struct {
	*os.File
	info ObjectInfo
}

func (o *localObject) Info() ObjectInfo {
	return o.info
}

func (s *LocalStore) Open(ctx context.Context, name string) (Object, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, ErrNotFound
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	return &localObject{File: f, info: ObjectInfo{
		Name:         name,
		Size:         st.Size(),
		LastModified: st.ModTime(),
		ContentType:  mime.TypeByExtension(filepath.Ext(name)),
	}}, nil
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the stored blobs whose names start with prefix, sorted by name.
// Temporary upload files are skipped.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	objects := make([]ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed while listing
		}
		objects = append(objects, ObjectInfo{
			Name:         e.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime(),
			ContentType:  mime.TypeByExtension(filepath.Ext(e.Name())),
		})
	}

	return objects, nil
}
