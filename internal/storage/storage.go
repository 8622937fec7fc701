// Package storage persists raw file bytes behind opaque keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"atrium/internal/config"
)

var (
	ErrObjectNotFound = errors.New("storage object not found")
	ErrInvalidKey     = errors.New("invalid storage key")
)

// Object describes bytes persisted by a Storage.
type Object struct {
	Key  string
	Size int64
}

type Storage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New builds the provider selected in cfg.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "local":
		return NewLocal(cfg.Dir)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// newKey builds YYYY/MM/DD/<uuid>_<name><ext>.
func newKey(now time.Time, originalName string) string {
	dir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if len(ext) > 10 {
		ext = ""
	}
	return path.Join(dir, fmt.Sprintf("%s_%s%s", uuid.New().String(), sanitizeName(originalName), ext))
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "file"
	}
	return name
}

// countingReader tracks how many bytes went through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
