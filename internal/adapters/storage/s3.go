package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sirupsen/logrus"

	"storefront-api/internal/metrics"
)

// S3Storage reads image objects from Amazon S3 or an S3-compatible service.
// Bucket names passed to Fetch are used as S3 bucket names.
type S3Storage struct {
	client s3iface.S3API
	logger logrus.FieldLogger
}

// NewS3Storage creates an S3-backed storage.
// Without static credentials the default AWS credential chain is used,
// which is what a Lambda execution role provides.
func NewS3Storage(region, endpoint, accessKey, secretKey string, logger logrus.FieldLogger) (*S3Storage, error) {
	cfg := aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if accessKey != "" && secretKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewS3StorageWithClient(s3.New(sess), logger), nil
}

// NewS3StorageWithClient wraps an existing S3 client
func NewS3StorageWithClient(client s3iface.S3API, logger logrus.FieldLogger) *S3Storage {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &S3Storage{client: client, logger: logger}
}

// Fetch implements ObjectStorage.Fetch
func (s *S3Storage) Fetch(ctx context.Context, bucket, key string) (*Object, error) {
	if bucket == "" || key == "" {
		return nil, NewStorageError("Fetch", bucket, key, ErrInvalidKey)
	}

	start := time.Now()
	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			s.observe("404", start)
			return nil, NewStorageError("Fetch", bucket, key, ErrObjectNotFound)
		}

		s.observe("error", start)
		s.logger.WithFields(logrus.Fields{
			"bucket": bucket,
			"key":    key,
			"error":  err.Error(),
		}).Error("Failed to get object from S3")
		return nil, NewStorageError("Fetch", bucket, key, err)
	}
	defer result.Body.Close()
	s.observe("200", start)

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, NewStorageError("Fetch", bucket, key, fmt.Errorf("failed to read object body: %w", err))
	}

	return &Object{
		Bucket:       bucket,
		Key:          key,
		ContentType:  aws.StringValue(result.ContentType),
		Data:         data,
		LastModified: aws.TimeValue(result.LastModified),
		ETag:         strings.Trim(aws.StringValue(result.ETag), `"`),
	}, nil
}

// Close implements ObjectStorage.Close
func (s *S3Storage) Close() error {
	return nil
}

func (s *S3Storage) observe(status string, start time.Time) {
	metrics.UpstreamRequestDuration.
		WithLabelValues(metrics.ServiceStorage, "get_object", status).
		Observe(time.Since(start).Seconds())
}

func isS3NotFound(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return true
		}
	}
	return false
}
