// Package upload stores project images on local disk under generated names.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"wefixit/internal/apperr"
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "/uploads/"

const DefaultMaxBytes = 10 << 20

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save copies the uploaded file into the upload directory and returns its
// public reference, e.g. /uploads/<uuid>.png.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", apperr.Validation("invalid image", "image", "must be a jpg, png, gif or webp file")
	}
	if fh.Size > s.maxBytes {
		return "", apperr.Validation("invalid image", "image", fmt.Sprintf("must be at most %d bytes", s.maxBytes))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1)); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close image file: %w", err)
	}
	return PublicPrefix + name, nil
}

// Remove deletes the file behind ref. References that do not point into
// the upload directory, such as absolute URLs, are left alone.
func (s *Store) Remove(ref string) error {
	if !strings.HasPrefix(ref, PublicPrefix) {
		return nil
	}
	name := path.Base(ref)
	if name == "." || name == "/" || name != strings.TrimPrefix(ref, PublicPrefix) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
