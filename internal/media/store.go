// Package media is the disk-backed bucket for product images uploaded from
// the admin form. Files get randomized names and are served back under a
// stable public URL.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxUploadBytes = 5 << 20 // 5 MB

var (
	ErrNotImage = errors.New("file must be an image")
	ErrTooLarge = errors.New("image exceeds the 5 MB limit")
)

type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save validates and writes one upload, returning its public URL. The stored
// name is a fresh uuid keeping the original extension.
func (s *Store) Save(originalName string, size int64, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: got %s", ErrNotImage, contentType)
	}
	if size > MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	defer dst.Close()

	// the declared size is client input; re-check what actually arrived
	if _, err := io.Copy(dst, io.LimitReader(r, MaxUploadBytes+1)); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("store image: %w", err)
	}
	if fi, err := dst.Stat(); err == nil && fi.Size() > MaxUploadBytes {
		_ = os.Remove(dst.Name())
		return "", ErrTooLarge
	}
	return s.baseURL + "/" + name, nil
}
