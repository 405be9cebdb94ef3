// Package storage archives generated lead exports to S3-compatible object
// storage (AWS S3, DigitalOcean Spaces). Archival is best-effort: a failed
// upload is logged by the caller and never blocks the download.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

type ArchiveClient struct {
	client *s3.Client
	bucket string
}

// NewArchiveClient creates an S3 client for export archival. Endpoint may be
// empty for plain AWS S3; set it for S3-compatible providers.
func NewArchiveClient(endpoint, region, bucket, accessKeyID, secretAccessKey string) (*ArchiveClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, secretAccessKey, "",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // required for Spaces-style endpoints
		}
	})

	return &ArchiveClient{
		client: client,
		bucket: bucket,
	}, nil
}

// ArchiveExport uploads one export under a unique, date-stamped key and
// returns the key.
func (c *ArchiveClient) ArchiveExport(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("exports/leads-%s-%s.xlsx", time.Now().UTC().Format("20060102-150405"), uuid.NewString())

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export %s: %w", key, err)
	}

	return key, nil
}
