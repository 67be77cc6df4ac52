// Package backup uploads dataset snapshots to an S3-compatible object store
// (DigitalOcean Spaces). The nightly cron job serializes the full dataset and
// ships it as a dated JSON object, giving admins a restore point independent
// of the database's own backups.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Config holds credentials and placement for the backup bucket.
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
}

// Client uploads snapshot objects.
type Client struct {
	s3Client *s3.S3
	bucket   string
	prefix   string
}

// NewClient creates a backup client against an S3-compatible endpoint.
func NewClient(config Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backup session: %w", err)
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = "backups"
	}

	return &Client{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		prefix:   prefix,
	}, nil
}

// UploadSnapshot serializes the snapshot as JSON and uploads it under a
// dated key. Returns the object key.
func (c *Client) UploadSnapshot(ctx context.Context, snapshot interface{}, at time.Time) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	key := fmt.Sprintf("%s/simpdb-%s.json", c.prefix, at.Format("2006-01-02T15-04-05"))
	_, err = c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(bytes.NewReader(data)),
		ACL:         aws.String("private"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return key, nil
}

// ListBackups returns the keys of existing snapshot objects, newest last.
func (c *Client) ListBackups(ctx context.Context) ([]string, error) {
	out, err := c.s3Client.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(c.prefix + "/"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.StringValue(obj.Key))
	}
	return keys, nil
}
