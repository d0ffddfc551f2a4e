package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"devevents/internal/domain"
)

// UploadsPath is the URL prefix local uploads are served under.
const UploadsPath = "/uploads/"

type localStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage returns ImageStorage that writes files into dir, creating it if needed.
func NewLocalStorage(dir, publicBaseURL string) (domain.ImageStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: UPLOAD_DIR is required for local image storage", domain.ErrConfiguration)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStorage{dir: dir, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *localStorage) Upload(ctx context.Context, img *domain.ImageUpload) (string, error) {
	if img == nil {
		return "", domain.NewValidationError("image", "image is required")
	}
	mt, body, err := detectImage(img.Body)
	if err != nil {
		return "", err
	}
	name := objectName(mt)
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	log.Printf("[STORAGE] Stored %s (%d bytes)", path, n)
	return s.baseURL + UploadsPath + name, nil
}
