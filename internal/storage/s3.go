package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/PedrohFolster/inkspiration/internal/config"
)

// ObjectStore keeps portfolio image blobs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type S3Store struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewS3 builds a client for AWS S3 or any S3-compatible endpoint.
func NewS3(cfg *config.Config) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Store{
		client:   s3.New(opts),
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		endpoint: strings.TrimRight(cfg.S3Endpoint, "/"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %q: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %q: %w", key, err)
	}
	return nil
}

// URL returns the public address of key.
func (s *S3Store) URL(key string) string {
	return objectURL(s.endpoint, s.bucket, s.region, key)
}

func objectURL(endpoint, bucket, region, key string) string {
	if endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// PortfolioKey is the object key of one portfolio image.
func PortfolioKey(professionalID uint, name string) string {
	return fmt.Sprintf("portfolio/%d/%s.webp", professionalID, name)
}

var _ ObjectStore = (*S3Store)(nil)
