package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSArchiver mirrors finished artifacts to a Cloud Storage bucket so runs
// survive the local work directory being cleared.
type GCSArchiver struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSArchiver(ctx context.Context, bucket, prefix string) (*GCSArchiver, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSArchiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSArchiver) Close() error {
	return s.client.Close()
}

// Archive uploads the file under the archiver's prefix and returns the
// gs:// URL.
func (s *GCSArchiver) Archive(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	objectName := path.Join(s.prefix, filepath.Base(localPath))
	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

// ListArtifacts returns the archived videos and text packages under the
// prefix.
func (s *GCSArchiver) ListArtifacts(ctx context.Context) ([]string, error) {
	bkt := s.client.Bucket(s.bucket)
	query := &storage.Query{Prefix: s.prefix}

	var artifacts []string
	it := bkt.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		ext := strings.ToLower(path.Ext(attrs.Name))
		if ext == ".mp4" || ext == ".txt" {
			artifacts = append(artifacts, attrs.Name)
		}
	}

	return artifacts, nil
}
