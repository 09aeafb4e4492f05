package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used by S3.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 is an ObjectStore backed by Amazon S3.
type S3 struct {
	client      S3API
	contentType string
}

// NewS3 wraps an S3 client. Objects are written as text/csv.
func NewS3(client S3API) *S3 {
	return &S3{client: client, contentType: "text/csv"}
}

// GetObject downloads the whole object body.
func (s *S3) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: object %s/%s", ErrNotFound, bucket, key)
		}
		return nil, fmt.Errorf("storage: s3 get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: s3 read %s/%s: %w", bucket, key, err)
	}
	return b, nil
}

// PutObject uploads body, replacing any existing object.
func (s *S3) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(s.contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: s3 put %s/%s: %w", bucket, key, err)
	}
	return nil
}
