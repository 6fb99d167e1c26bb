package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client the store needs. Satisfied by
// *s3.Client; tests supply fakes.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads documents to a bucket. When an upload fails and a
// fallback is configured, the document is kept locally instead of lost;
// the returned location reflects where the bytes actually landed.
type S3Store struct {
	api      S3API
	bucket   string
	fallback *LocalStore
}

// NewS3Store returns a store targeting bucket. fallback may be nil to
// make upload failures fatal.
func NewS3Store(api S3API, bucket string, fallback *LocalStore) *S3Store {
	return &S3Store{api: api, bucket: bucket, fallback: fallback}
}

// Save uploads the document via PutObject.
func (s *S3Store) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		if s.fallback != nil {
			path, ferr := s.fallback.Save(ctx, name, contentType, data)
			if ferr != nil {
				return "", fmt.Errorf("s3 upload: %w (local fallback also failed: %v)", err, ferr)
			}
			return path, nil
		}
		return "", fmt.Errorf("s3 upload to %s: %w", s.bucket, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, name), nil
}
