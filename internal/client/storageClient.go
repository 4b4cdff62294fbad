package client

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"audio-marketplace/internal/config"
)

// StorageClient uploads media buffers to the object store and returns the
// durable public URL the catalog records.
type StorageClient interface {
	Upload(ctx context.Context, buf []byte, folder, name, contentType string) (string, error)
}

type s3StorageClient struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3StorageClient works against AWS S3 and S3-compatible stores such as
// MinIO (path-style addressing).
func NewS3StorageClient(ctx context.Context, storageCfg *config.Storage) (StorageClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(storageCfg.Region),
		awsconfig.WithBaseEndpoint(storageCfg.Endpoint),
		awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     storageCfg.AccessKey,
					SecretAccessKey: storageCfg.SecretKey,
				}, nil
			})),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &s3StorageClient{
		client:        client,
		bucket:        storageCfg.Bucket,
		publicBaseURL: strings.TrimSuffix(storageCfg.PublicBaseURL, "/"),
	}, nil
}

func (s *s3StorageClient) Upload(ctx context.Context, buf []byte, folder, name, contentType string) (string, error) {
	key := folder + "/" + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.publicBaseURL + "/" + key, nil
}
