package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const blobAPIVersion = "7"

// BlobStorage writes public objects through the blob store HTTP API.
// Without a read-write token it reports itself unavailable and refuses uploads.
type BlobStorage struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

type blobPutResponse struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

type blobErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewBlobStorage(apiURL, token string, httpClient *http.Client) *BlobStorage {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &BlobStorage{
		apiURL:     strings.TrimRight(apiURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (s *BlobStorage) Available() bool {
	return s.token != ""
}

func (s *BlobStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	if !s.Available() {
		return "", ErrStorageUnavailable
	}

	endpoint := s.apiURL + "/" + (&url.URL{Path: strings.TrimLeft(path, "/")}).EscapedPath()
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, file)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("X-Api-Version", blobAPIVersion)
	req.Header.Set("X-Add-Random-Suffix", "0")
	if contentType != "" {
		req.Header.Set("X-Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr blobErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("blob upload failed (%d %s): %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
		}
		return "", fmt.Errorf("blob upload failed with status %d", resp.StatusCode)
	}

	var out blobPutResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("blob upload response has no url")
	}

	return out.URL, nil
}
