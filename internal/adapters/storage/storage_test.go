package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevents/internal/domain"
)

// pngBytes is a PNG signature followed by an IHDR chunk header, enough for type detection.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"), bytes.Repeat([]byte{0}, 64)...)

type fakePutObject struct {
	lastInput *s3.PutObjectInput
	lastBody  []byte
	err       error
}

func (f *fakePutObject) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastInput = in
	if in.Body != nil {
		f.lastBody, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads image and returns public url", func(t *testing.T) {
		client := &fakePutObject{}
		s := &s3Storage{client: client, bucket: "dev-events", region: "eu-west-1"}

		url, err := s.Upload(ctx, &domain.ImageUpload{Filename: "cover.png", Body: bytes.NewReader(pngBytes)})
		require.NoError(t, err)
		key := aws.ToString(client.lastInput.Key)
		assert.True(t, strings.HasPrefix(key, "events/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
		assert.Equal(t, "https://dev-events.s3.eu-west-1.amazonaws.com/"+key, url)
		assert.Equal(t, "image/png", aws.ToString(client.lastInput.ContentType))
		assert.Equal(t, pngBytes, client.lastBody)
	})

	t.Run("rejects non-image", func(t *testing.T) {
		client := &fakePutObject{}
		s := &s3Storage{client: client, bucket: "b", region: "r"}

		_, err := s.Upload(ctx, &domain.ImageUpload{Body: strings.NewReader("just some text")})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, client.lastInput)
	})

	t.Run("upload failure", func(t *testing.T) {
		s := &s3Storage{client: &fakePutObject{err: errors.New("access denied")}, bucket: "b", region: "r"}

		_, err := s.Upload(ctx, &domain.ImageUpload{Body: bytes.NewReader(pngBytes)})
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestNewS3Storage_MissingConfig(t *testing.T) {
	_, err := NewS3Storage(S3Config{Bucket: "b"})
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), &domain.ImageUpload{Body: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))

	name := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	written, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)

	_, err = s.Upload(context.Background(), &domain.ImageUpload{Body: bytes.NewReader(nil)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewImageStorage(t *testing.T) {
	s, err := NewImageStorage(Config{Provider: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &localStorage{}, s)

	_, err = NewImageStorage(Config{Provider: "s3"})
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = NewImageStorage(Config{Provider: "local"})
	require.ErrorIs(t, err, domain.ErrConfiguration)
}
