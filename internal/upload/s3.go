package upload

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client is the subset of the S3 API the uploader needs.
// Narrow on purpose so tests can substitute a mock.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config contains settings for the card image host. Upload is optional:
// an unset bucket disables it entirely.
type Config struct {
	Bucket      string `env:"S3_BUCKET"`
	Region      string `env:"S3_REGION"`
	AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"S3_SECRET_KEY"`
	Endpoint    string `env:"S3_ENDPOINT"` // for S3-compatible services
	BaseURL     string `env:"S3_BASE_URL"` // public URL base for serving files
}

// Enabled reports whether enough configuration is present to attempt uploads.
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.Region != ""
}

// S3Uploader stores rendered cards on S3 (or a compatible service) and hands
// back a public link. Safe for concurrent use.
type S3Uploader struct {
	client  S3Client
	bucket  string
	baseURL string
}

// Option configures S3Uploader construction.
type Option func(*options)

type options struct {
	client S3Client
}

// WithS3Client sets a pre-configured client, mainly for tests.
func WithS3Client(client S3Client) Option {
	return func(o *options) { o.client = client }
}

// NewS3Uploader creates an uploader from config. Credentials fall back to the
// default AWS provider chain when not set explicitly.
func NewS3Uploader(ctx context.Context, cfg Config, opts ...Option) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("bucket and region are required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
				so.UsePathStyle = true
			}
		})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload stores the card image under key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading card image: %w", err)
	}
	return u.baseURL + "/" + strings.TrimPrefix(key, "/"), nil
}
