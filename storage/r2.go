package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Options struct {
	Bucket          string
	AccountID       string
	PublicURL       string // e.g. https://pub-<hash>.r2.dev
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides https://<account>.r2.cloudflarestorage.com.
	Endpoint string
}

// R2Store uploads to a Cloudflare R2 bucket through the S3 API.
type R2Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewR2Store(ctx context.Context, o R2Options) (*R2Store, error) {
	if o.Bucket == "" || o.AccountID == "" || o.PublicURL == "" {
		return nil, fmt.Errorf("missing required R2 settings")
	}
	endpoint := o.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", o.AccountID)
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"), // R2 ignores regions but the signer needs one
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.AccessKeyID, o.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(opts *s3.Options) {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	})
	return NewR2StoreWithClient(client, o.Bucket, o.PublicURL), nil
}

func NewR2StoreWithClient(client *s3.Client, bucket, publicBase string) *R2Store {
	return &R2Store{client: client, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}
}

func (s *R2Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = path.Base(key)
	if key == "/" || key == "." {
		return "", ErrInvalidKey
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return fmt.Sprintf("%s/%s", s.publicBase, url.PathEscape(key)), nil
}

func (s *R2Store) Delete(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %w", err)
	}
	key := path.Base(u.Path)

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete R2 object: %w", err)
	}
	return nil
}
