package s3infra

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/findr-api/internal/config"
)

// Store keeps item photos in one bucket.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewClient creates an S3 client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint and enables path-style addressing.
func NewClient(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for S3: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsCfg, clientOpts...), nil
}

// NewStore creates a Store for bucket. Object URLs are built against the
// custom endpoint when one is configured, otherwise the regional host.
func NewStore(client *s3.Client, cfg *config.Config) *Store {
	return &Store{client: client, bucket: cfg.S3BucketName, baseURL: objectBaseURL(cfg)}
}

// ItemImageKey is the object key of a new photo uploaded by userID.
func ItemImageKey(userID string) string {
	return fmt.Sprintf("items/%s/%s.jpg", userID, uuid.NewString())
}

// Upload stores data under key and returns the object URL.
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes an object. Used to drop a photo whose item was rejected.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// KeyFromURL returns the object key of a URL produced by Upload, or false
// when the URL points elsewhere.
func (s *Store) KeyFromURL(objectURL string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(objectURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(objectURL, prefix)
	return key, key != ""
}

func objectBaseURL(cfg *config.Config) string {
	if cfg.AWSEndpointURL != "" {
		return strings.TrimSuffix(cfg.AWSEndpointURL, "/") + "/" + cfg.S3BucketName
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3BucketName, cfg.AWSRegion)
}
