package s3_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examparse/internal/config"
	"examparse/internal/storage/s3"
)

func TestNewArchive_RequiresBucket(t *testing.T) {
	_, err := s3.NewArchive(context.Background(), &config.S3Config{Region: "us-east-1"})
	assert.ErrorContains(t, err, "bucket")
}

func TestArchive_PresignGet_CustomEndpoint(t *testing.T) {
	a, err := s3.NewArchive(context.Background(), &config.S3Config{
		Region:    "us-east-1",
		Bucket:    "papers",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})
	require.NoError(t, err)

	url, err := a.PresignGet(context.Background(), "extractions/abc/source.pdf", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/papers/extractions/abc/source.pdf?"), url)
	assert.Contains(t, url, "X-Amz-Expires=600")
}
