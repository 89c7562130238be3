package supabase

import (
	"bytes"
	"fmt"
	"net/http"

	storage "github.com/supabase-community/storage-go"
)

// SignedURLExpirySeconds is how long document view links stay valid.
const SignedURLExpirySeconds = 60

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, publishableKey, bucket string) (*StorageClient, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", publishableKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload writes raw file bytes under the given object key. The key carries
// the owner prefix ({userID}/...), which the bucket's RLS policies rely on.
func (s *StorageClient) Upload(path string, data []byte) error {
	contentType := http.DetectContentType(data)
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// CreateSignedURL returns a short-lived link for viewing a stored object.
func (s *StorageClient) CreateSignedURL(path string) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, path, SignedURLExpirySeconds)
	if err != nil {
		return "", fmt.Errorf("failed to sign url: %w", err)
	}
	return resp.SignedURL, nil
}

func (s *StorageClient) DeleteFile(path string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{path})
	return err
}
