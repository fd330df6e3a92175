package r2

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the minimal storage surface the node needs: a single
// authenticated write per artifact.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// s3Store writes objects to an S3-compatible endpoint (Cloudflare R2).
type s3Store struct {
	client *s3.Client
	bucket string
}

// newS3Store builds a client for the resolved credentials. R2 endpoints
// are region-less; the SDK still wants a region string, and "auto" is
// the documented value for R2.
func newS3Store(ctx context.Context, creds Credentials) (*s3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(awscreds.NewStaticCredentialsProvider(
			creds.AccessKeyID,
			creds.SecretAccessKey,
			"",
		)),
		// R2 rejects aws-chunked streaming checksums, so only compute
		// checksums where the operation requires one.
		config.WithRequestChecksumCalculation(aws.RequestChecksumCalculationWhenRequired),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(creds.Endpoint)
		o.UsePathStyle = true
	})

	return &s3Store{
		client: client,
		bucket: creds.BucketName,
	}, nil
}

func (s *s3Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return err
	}
	return nil
}
