package blobstorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/google/uuid"

	"github.com/ieeesb/event-portal/internal/pkg/logger"
)

// GCSStorage stores poster uploads in a Google Cloud Storage bucket (the
// Firebase storage bucket of the project).
type GCSStorage struct {
	client *storage.Client
	bucket string
}

// NewGCSStorage creates a storage client for the given bucket
func NewGCSStorage(ctx context.Context, bucket, credentialsFile string) (*GCSStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating storage client: %w", err)
	}

	logger.Info().Str("bucket", bucket).Msg("Cloud storage client initialized")
	return &GCSStorage{client: client, bucket: bucket}, nil
}

// SaveFile uploads the file to the bucket and returns its public URL
func (gs *GCSStorage) SaveFile(ctx context.Context, fileHeader *multipart.FileHeader, pathPrefix string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectName := pathPrefix + "/" + uuid.New().String() + ext

	writer := gs.client.Bucket(gs.bucket).Object(objectName).NewWriter(ctx)
	writer.ContentType = fileHeader.Header.Get("Content-Type")

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		logger.Error().Err(err).Str("object", objectName).Msg("Failed to upload file")
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", gs.bucket, objectName), nil
}

// Close releases the storage client
func (gs *GCSStorage) Close() error {
	return gs.client.Close()
}
