package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// GetObjectAPI is the slice of the S3 client used to fetch stored emails.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads raw email objects from the inbound mail bucket.
type S3Fetcher struct {
	api    GetObjectAPI
	bucket string
}

func NewS3Fetcher(api GetObjectAPI, bucket string) *S3Fetcher {
	return &S3Fetcher{api: api, bucket: bucket}
}

// Fetch downloads the object stored under key and returns its bytes.
func (f *S3Fetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := f.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("Fetch: get object %q from bucket %q: %w", key, f.bucket, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("Fetch: read object %q: %w", key, err)
	}
	return data, nil
}
