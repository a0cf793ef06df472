// Package storage deletes objects from S3-compatible buckets.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Bucket struct {
	client s3API
	name   string
}

// NewBucket loads credentials from the default AWS chain.
func NewBucket(ctx context.Context, name, region string) (*Bucket, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &Bucket{client: s3.NewFromConfig(cfg), name: name}, nil
}

// DeleteObject removes key. S3 deletes are idempotent, so a missing key
// is not an error.
func (b *Bucket) DeleteObject(ctx context.Context, key string) error {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return nil
	}

	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}

	return nil
}
