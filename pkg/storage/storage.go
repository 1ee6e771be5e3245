package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"familykarting/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Client stores objects on a S3 compatible bucket.
type Client struct {
	s3        *s3.Client
	endpoint  string
	publicURL string
}

// NewClient creates the S3 client from the bucket configuration.
func NewClient(cfg config.BucketConfiguration) *Client {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.AccessSecret,
				"",
			),
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:        client,
		endpoint:  cfg.Endpoint,
		publicURL: cfg.PublicURL,
	}
}

// PutObject uploads the body under the key.
// The body should be seekable, S3 signs the payload.
func (c *Client) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", key, bucket, err)
	}

	return nil
}

// DeleteObject removes the key from the bucket.
func (c *Client) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from bucket %s: %w", key, bucket, err)
	}

	return nil
}

// PublicURL is the address the key is served from.
func (c *Client) PublicURL(bucket, key string) string {
	return PublicURL(c.publicURL, c.endpoint, bucket, key)
}

// PublicURL derives the URL of an object. A configured public URL points at the
// bucket root, otherwise the object is addressed path style on the endpoint.
func PublicURL(publicURL, endpoint, bucket, key string) string {
	if publicURL != "" {
		return strings.TrimSuffix(publicURL, "/") + "/" + key
	}
	if endpoint != "" {
		return strings.TrimSuffix(endpoint, "/") + "/" + bucket + "/" + key
	}
	return "https://" + bucket + ".s3.amazonaws.com/" + key
}

// ObjectKey builds a unique key for an upload, grouped by folder and month.
func ObjectKey(folder, extension string, now time.Time) string {
	name := uuid.NewString() + extension
	return path.Join(folder, now.UTC().Format("2006/01"), name)
}

// KeyFromURL recovers the object key of a URL built by PublicURL.
// It returns false when the URL doesn't belong to the bucket.
func (c *Client) KeyFromURL(bucket, url string) (string, bool) {
	prefix := PublicURL(c.publicURL, c.endpoint, bucket, "")
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
