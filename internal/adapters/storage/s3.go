package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"devevents/internal/domain"
)

const s3KeyPrefix = "events/"

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Storage struct {
	client putObjectAPI
	bucket string
	region string
}

// NewS3Storage returns ImageStorage backed by an S3 bucket with static credentials.
func NewS3Storage(config S3Config) (domain.ImageStorage, error) {
	if config.Bucket == "" || config.Region == "" || config.AccessKeyID == "" || config.SecretAccessKey == "" {
		return nil, fmt.Errorf("%w: S3_BUCKET, AWS_REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required for s3 image storage", domain.ErrConfiguration)
	}
	awsCfg := aws.Config{
		Region: config.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		),
	}
	return &s3Storage{
		client: s3.NewFromConfig(awsCfg),
		bucket: config.Bucket,
		region: config.Region,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, img *domain.ImageUpload) (string, error) {
	if img == nil {
		return "", domain.NewValidationError("image", "image is required")
	}
	mt, body, err := detectImage(img.Body)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, body); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	key := s3KeyPrefix + objectName(mt)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentType:   aws.String(mt.String()),
		ContentLength: aws.Int64(int64(buf.Len())),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}
	log.Printf("[STORAGE] Uploaded %s (%d bytes) to s3://%s", key, buf.Len(), s.bucket)
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
