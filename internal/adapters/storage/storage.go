package storage

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"devevents/internal/domain"
)

// sniffLen is how many leading bytes are inspected to detect the file type.
const sniffLen = 3072

// S3Config holds configuration for the S3 uploader.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Config selects and configures the image storage backend.
type Config struct {
	Provider      string
	UploadDir     string
	PublicBaseURL string
	S3            S3Config
}

// NewImageStorage creates image storage from config. Provider "s3" uploads to a bucket;
// "local" or unknown writes under UploadDir and serves from PublicBaseURL/uploads.
func NewImageStorage(config Config) (domain.ImageStorage, error) {
	switch config.Provider {
	case "s3":
		return NewS3Storage(config.S3)
	case "local":
		return NewLocalStorage(config.UploadDir, config.PublicBaseURL)
	default:
		log.Printf("[STORAGE] Unknown image storage %q, using local", config.Provider)
		return NewLocalStorage(config.UploadDir, config.PublicBaseURL)
	}
}

// detectImage sniffs the head of body and returns the detected type together with a
// reader that replays the full content. Non-image content is a validation error.
func detectImage(body io.Reader) (*mimetype.MIME, io.Reader, error) {
	if body == nil {
		return nil, nil, domain.NewValidationError("image", "image is required")
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, nil, fmt.Errorf("read image: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, nil, domain.NewValidationError("image", "image is empty")
	}
	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, nil, domain.NewValidationError("image", "image must be an image file")
	}
	return mt, io.MultiReader(bytes.NewReader(head), body), nil
}

// objectName returns a collision-free name keeping the detected extension.
func objectName(mt *mimetype.MIME) string {
	return uuid.NewString() + mt.Extension()
}
