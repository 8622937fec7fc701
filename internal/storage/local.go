package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Local keeps objects under a base directory on disk.
type Local struct {
	baseDir string
	now     func() time.Time
}

func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		return nil, errors.New("storage base dir is empty")
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{baseDir: abs, now: time.Now}, nil
}

func (l *Local) Save(ctx context.Context, originalName string, r io.Reader) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	key := newKey(l.now(), originalName)
	absPath := l.path(key)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return Object{}, fmt.Errorf("failed to create storage directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return Object{}, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(dst, r)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return Object{}, fmt.Errorf("failed to write file: %w", err)
	}

	return Object{Key: key, Size: n}, nil
}

func (l *Local) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return f, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	err := os.Remove(l.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (l *Local) path(key string) string {
	return filepath.Join(l.baseDir, filepath.FromSlash(key))
}
