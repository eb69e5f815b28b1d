// Package assets persists uploaded post images and hands back the public
// path they are served from.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// PublicPrefix is the URL path uploaded files are served under
	PublicPrefix = "/uploads/"

	// DefaultMaxDimension bounds the longest edge of a stored image
	DefaultMaxDimension = 1600

	// DefaultMaxPixels bounds the decoded size of an upload. A compressed file
	// can declare dimensions far larger than its byte size.
	DefaultMaxPixels = 24_000_000

	jpegQuality = 85
)

// Store persists an uploaded image and returns its public path
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)

	// Delete removes a file previously returned by Save
	Delete(ctx context.Context, path string) error
}

// DiskStore writes normalized images into a directory served at PublicPrefix
type DiskStore struct {
	logger       *slog.Logger
	dir          string
	maxDimension int
	maxPixels    int
}

// NewDiskStore creates dir if needed and returns a store writing into it
func NewDiskStore(dir string, maxDimension int, logger *slog.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{
		dir:          dir,
		maxDimension: maxDimension,
		maxPixels:    DefaultMaxPixels,
		logger:       logger,
	}, nil
}

// Dir returns the directory files are written to
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save decodes the upload, shrinks it to fit within the max dimension and
// stores it under a fresh random name. The client filename is only used in logs.
func (s *DiskStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	// Check the header before allocating the full bitmap
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > s.maxPixels/cfg.Height {
		s.logger.Warn("image upload rejected: too many pixels",
			"original_name", filename,
			"width", cfg.Width,
			"height", cfg.Height)
		return "", ErrImageTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	// Fit never upscales
	img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + extensionFor(format)
	path := filepath.Join(s.dir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	bounds := img.Bounds()
	s.logger.Info("image stored",
		"file", name,
		"original_name", filename,
		"format", format,
		"width", bounds.Dx(),
		"height", bounds.Dy())

	return PublicPrefix + name, nil
}

// Delete removes a stored file. Paths outside PublicPrefix are ignored and a
// file that is already gone is not an error.
func (s *DiskStore) Delete(_ context.Context, path string) error {
	name, ok := strings.CutPrefix(path, PublicPrefix)
	if !ok || name == "" || name != filepath.Base(name) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image %s: %w", name, err)
	}
	s.logger.Info("image deleted", "file", name)
	return nil
}

// extensionFor picks the stored encoding. imaging cannot encode webp, so
// those uploads are kept as jpeg.
func extensionFor(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
