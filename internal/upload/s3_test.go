package upload_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/allergycard/internal/upload"
)

type mockS3Client struct {
	input *s3.PutObjectInput
	err   error
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestUploader(t *testing.T, cfg upload.Config, client upload.S3Client) *upload.S3Uploader {
	t.Helper()
	u, err := upload.NewS3Uploader(context.Background(), cfg, upload.WithS3Client(client))
	require.NoError(t, err)
	return u
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, upload.Config{}.Enabled())
	assert.False(t, upload.Config{Bucket: "cards"}.Enabled())
	assert.True(t, upload.Config{Bucket: "cards", Region: "eu-west-1"}.Enabled())
}

func TestNewS3Uploader(t *testing.T) {
	t.Parallel()

	_, err := upload.NewS3Uploader(context.Background(), upload.Config{})
	assert.Error(t, err)
}

func TestS3Uploader_Upload(t *testing.T) {
	t.Parallel()

	cfg := upload.Config{Bucket: "cards", Region: "eu-west-1", BaseURL: "https://cdn.example.com/"}

	t.Run("stores the object and returns the public url", func(t *testing.T) {
		t.Parallel()
		client := &mockS3Client{}
		u := newTestUploader(t, cfg, client)

		url, err := u.Upload(context.Background(), "cards/42.png", "image/png", []byte("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/cards/42.png", url)

		require.NotNil(t, client.input)
		assert.Equal(t, "cards", aws.ToString(client.input.Bucket))
		assert.Equal(t, "cards/42.png", aws.ToString(client.input.Key))
		assert.Equal(t, "image/png", aws.ToString(client.input.ContentType))
		body, err := io.ReadAll(client.input.Body)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(body))
	})

	t.Run("default public url derives from bucket and region", func(t *testing.T) {
		t.Parallel()
		u := newTestUploader(t, upload.Config{Bucket: "cards", Region: "eu-west-1"}, &mockS3Client{})

		url, err := u.Upload(context.Background(), "cards/1.png", "image/png", []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, "https://cards.s3.eu-west-1.amazonaws.com/cards/1.png", url)
	})

	t.Run("propagates put failures", func(t *testing.T) {
		t.Parallel()
		u := newTestUploader(t, cfg, &mockS3Client{err: errors.New("denied")})

		_, err := u.Upload(context.Background(), "cards/1.png", "image/png", []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "denied")
	})
}
