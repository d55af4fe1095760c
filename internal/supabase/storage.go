package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	storage "github.com/supabase-community/storage-go"

	"designflow-backend/internal/store"
)

// StorageClient stores order assets in a Supabase Storage bucket and
// satisfies store.BlobStore. It reuses the storage client the Supabase
// SDK already configured with the service-role credentials.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(client *Client, bucket string) *StorageClient {
	return &StorageClient{
		client:  client.Supabase.Storage,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(client.Config.SupabaseURL, "/"),
	}
}

var _ store.BlobStore = (*StorageClient)(nil)

func (s *StorageClient) Upload(ctx context.Context, data []byte, path, contentType string) (string, error) {
	return s.UploadWithProgress(ctx, data, path, contentType, nil)
}

func (s *StorageClient) UploadWithProgress(ctx context.Context, data []byte, path, contentType string, onProgress func(float64)) (string, error) {
	upsert := true
	var reader io.Reader = bytes.NewReader(data)
	if onProgress != nil {
		reader = &progressReader{r: reader, total: int64(len(data)), onProgress: onProgress}
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.client.UploadFile(s.bucket, path, reader, storage.FileOptions{
			ContentType: &contentType,
			Upsert:      &upsert,
		})
		done <- err
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("failed to upload file: %w", err)
		}
	}

	if onProgress != nil {
		onProgress(100)
	}
	return s.PublicURL(path), nil
}

func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// DeleteByURL removes the object a public URL points at. URLs minted by
// a different bucket or host are rejected.
func (s *StorageClient) DeleteByURL(ctx context.Context, url string) error {
	marker := fmt.Sprintf("/storage/v1/object/public/%s/", s.bucket)
	idx := strings.Index(url, marker)
	if idx < 0 {
		return fmt.Errorf("url %q is not in bucket %q", url, s.bucket)
	}
	path := url[idx+len(marker):]
	if path == "" {
		return fmt.Errorf("url %q has no object path", url)
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{path}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteOrderFiles removes every stored object under an order's prefix.
func (s *StorageClient) DeleteOrderFiles(clientID, orderID string) error {
	prefix := fmt.Sprintf("%s/uploads/%s/", clientID, orderID)

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) > 0 {
		filePaths := make([]string, len(files))
		for i, file := range files {
			filePaths[i] = file.Name
		}
		if _, err := s.client.RemoveFile(s.bucket, filePaths); err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}

	return nil
}

// progressReader reports percentage read as the upload consumes it.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress func(float64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.total > 0 {
			pct := float64(p.read) / float64(p.total) * 100
			if pct > 99 {
				pct = 99
			}
			p.onProgress(pct)
		}
	}
	return n, err
}
