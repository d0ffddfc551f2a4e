package domain

import (
	"context"
	"io"
)

// ImageUpload is an image received from the create-event form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageStorage stores uploaded event images and returns their public URL.
type ImageStorage interface {
	Upload(ctx context.Context, img *ImageUpload) (url string, err error)
}
