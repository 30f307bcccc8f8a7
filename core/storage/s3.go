package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"restaurant-directory/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrNotConfigured = errors.New("object storage is not configured")

type Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// ObjectStore writes export snapshots.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store works against AWS or any S3-compatible endpoint (MinIO, B2).
// Without a bucket and credentials it returns a store whose Put always
// fails with ErrNotConfigured.
func NewS3Store(cfg Config) ObjectStore {
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		logger.Info("Storage:Disabled", "reason", "missing bucket or credentials")
		return disabledStore{}
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return &S3Store{client: s3.New(opts), bucket: cfg.Bucket}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Put", "bucket", s.bucket, "key", key, "error", err)
		return fmt.Errorf("put %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

type disabledStore struct{}

func (disabledStore) Put(context.Context, string, []byte, string) error {
	return ErrNotConfigured
}
