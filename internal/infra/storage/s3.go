package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/alysonbarber/agenda-api/internal/config"
)

type MediaStorage struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

func NewMediaStorage(cfg *config.Config) *MediaStorage {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})

	return &MediaStorage{
		client:    client,
		bucket:    cfg.S3Bucket,
		region:    cfg.S3Region,
		publicURL: cfg.S3PublicURL,
	}
}

// UploadBarberPhoto grava a foto (já em webp) e devolve a URL pública.
func (s *MediaStorage) UploadBarberPhoto(
	ctx context.Context,
	barberID uint,
	data []byte,
) (string, error) {

	key := fmt.Sprintf("barbers/%d.webp", barberID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	if s.publicURL != "" {
		return strings.TrimRight(s.publicURL, "/") + "/" + key, nil
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
