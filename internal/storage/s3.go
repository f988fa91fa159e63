// Package storage provides an S3-compatible object storage client for
// uploading and serving the images attached to events and menu categories.
// It wraps the AWS SDK v2 and is configured for path-style access.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Client wraps an S3 client for upload operations on the two public
// content buckets.
type Client struct {
	s3          *s3.Client
	eventBucket string
	menuBucket  string
	endpoint    string
	publicURL   string // optional CDN/direct URL for uploaded files
}

// New creates an S3 storage client with static credentials and path-style
// addressing. Returns (nil, nil) if endpoint or credentials are empty,
// allowing the app to start without storage.
func New(endpoint, region, accessKey, secretKey, eventBucket, menuBucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:          s3Client,
		eventBucket: eventBucket,
		menuBucket:  menuBucket,
		endpoint:    endpoint,
		publicURL:   strings.TrimRight(publicURL, "/"),
	}, nil
}

// RandomKey generates a randomized object key for an uploaded file,
// preserving the original file extension.
func RandomKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.New().String() + ext
}

// Upload stores an object in the given bucket with a public-read ACL so
// it can be served directly from the bucket URL.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for an uploaded file. Uses the configured
// public URL if set, otherwise builds a path-style URL on the endpoint.
func (c *Client) FileURL(bucket, key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + bucket + "/" + key
	}
	return c.endpoint + "/" + bucket + "/" + key
}

// EventBucket returns the bucket name for event images.
func (c *Client) EventBucket() string {
	return c.eventBucket
}

// MenuBucket returns the bucket name for menu images.
func (c *Client) MenuBucket() string {
	return c.menuBucket
}
